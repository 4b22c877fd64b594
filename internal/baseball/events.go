package baseball

import (
	"encoding/json"
	"fmt"
)

type Half int

const (
	Top Half = iota
	Bottom
)

func (h Half) String() string {
	if h == Bottom {
		return "bottom"
	}
	return "top"
}

func (h Half) MarshalJSON() ([]byte, error) { return json.Marshal(h.String()) }

type EventKind string

const (
	KindAtBat           EventKind = "at_bat"
	KindStolenBase      EventKind = "stolen_base"
	KindCaughtStealing  EventKind = "caught_stealing"
	KindWildPitch       EventKind = "wild_pitch"
	KindPassedBall      EventKind = "passed_ball"
	KindIntentionalWalk EventKind = "intentional_walk"
	KindPitcherChange   EventKind = "pitcher_change"
)

// EventKinds lists every kind in the order they are documented.
var EventKinds = []EventKind{
	KindAtBat, KindStolenBase, KindCaughtStealing, KindWildPitch,
	KindPassedBall, KindIntentionalWalk, KindPitcherChange,
}

// Event is a closed set of play records. Consumers dispatch through
// EventVisitor, so a new kind fails to compile until every consumer
// handles it.
type Event interface {
	Kind() EventKind
	Header() EventHeader
	Accept(v EventVisitor)
	sealed()
}

type EventVisitor interface {
	AtBat(e *AtBatEvent)
	StolenBase(e *StolenBaseEvent)
	CaughtStealing(e *CaughtStealingEvent)
	WildPitch(e *WildPitchEvent)
	PassedBall(e *PassedBallEvent)
	IntentionalWalk(e *IntentionalWalkEvent)
	PitcherChange(e *PitcherChangeEvent)
}

// EventHeader is the state transition every event records. PitcherID is
// the pitcher on the mound when the event happened.
type EventHeader struct {
	Seq         int          `json:"seq"`
	Inning      int          `json:"inning"`
	Half        Half         `json:"half"`
	PitcherID   string       `json:"pitcher_id"`
	OutsBefore  int          `json:"outs_before"`
	OutsAfter   int          `json:"outs_after"`
	BasesBefore BaseSnapshot `json:"bases_before"`
	BasesAfter  BaseSnapshot `json:"bases_after"`
	Text        string       `json:"text"`
}

func (h EventHeader) Header() EventHeader { return h }
func (EventHeader) sealed()                {}

// Advance is one runner moving on a wild pitch or passed ball.
type Advance struct {
	RunnerID string `json:"runner_id"`
	From     int    `json:"from"`
	To       int    `json:"to"` // 3 is home
}

type AtBatEvent struct {
	EventHeader
	Result AtBatResult `json:"result"`
}

type StolenBaseEvent struct {
	EventHeader
	RunnerID  string     `json:"runner_id"`
	From      int        `json:"from"`
	To        int        `json:"to"`
	CatcherID string     `json:"catcher_id"`
	Scored    *ScoredRun `json:"scored,omitempty"`
}

type CaughtStealingEvent struct {
	EventHeader
	RunnerID  string `json:"runner_id"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	CatcherID string `json:"catcher_id"`
}

type WildPitchEvent struct {
	EventHeader
	Advances []Advance   `json:"advances"`
	Scorers  []ScoredRun `json:"scorers,omitempty"`
}

type PassedBallEvent struct {
	EventHeader
	CatcherID string      `json:"catcher_id"`
	Advances  []Advance   `json:"advances"`
	Scorers   []ScoredRun `json:"scorers,omitempty"`
}

type IntentionalWalkEvent struct {
	EventHeader
	BatterID string `json:"batter_id"`
}

type PitcherChangeEvent struct {
	EventHeader
	TeamID           string `json:"team_id"`
	OutgoingID       string `json:"outgoing_id"`
	IncomingID       string `json:"incoming_id"`
	Reason           string `json:"reason"`
	InheritedRunners int    `json:"inherited_runners"`
}

func (e *AtBatEvent) Kind() EventKind           { return KindAtBat }
func (e *StolenBaseEvent) Kind() EventKind      { return KindStolenBase }
func (e *CaughtStealingEvent) Kind() EventKind  { return KindCaughtStealing }
func (e *WildPitchEvent) Kind() EventKind       { return KindWildPitch }
func (e *PassedBallEvent) Kind() EventKind      { return KindPassedBall }
func (e *IntentionalWalkEvent) Kind() EventKind { return KindIntentionalWalk }
func (e *PitcherChangeEvent) Kind() EventKind   { return KindPitcherChange }

func (e *AtBatEvent) Accept(v EventVisitor)           { v.AtBat(e) }
func (e *StolenBaseEvent) Accept(v EventVisitor)      { v.StolenBase(e) }
func (e *CaughtStealingEvent) Accept(v EventVisitor)  { v.CaughtStealing(e) }
func (e *WildPitchEvent) Accept(v EventVisitor)       { v.WildPitch(e) }
func (e *PassedBallEvent) Accept(v EventVisitor)      { v.PassedBall(e) }
func (e *IntentionalWalkEvent) Accept(v EventVisitor) { v.IntentionalWalk(e) }
func (e *PitcherChangeEvent) Accept(v EventVisitor)   { v.PitcherChange(e) }

// Scorers returns the runs an event put on the board.
func Scorers(e Event) []ScoredRun {
	switch ev := e.(type) {
	case *AtBatEvent:
		return ev.Result.Scorers
	case *StolenBaseEvent:
		if ev.Scored != nil {
			return []ScoredRun{*ev.Scored}
		}
	case *WildPitchEvent:
		return ev.Scorers
	case *PassedBallEvent:
		return ev.Scorers
	}
	return nil
}

type eventEnvelope struct {
	Type  EventKind `json:"type"`
	Event Event     `json:"event"`
}

func (h HalfInningResult) MarshalJSON() ([]byte, error) {
	type alias HalfInningResult
	env := make([]eventEnvelope, len(h.Events))
	for i, ev := range h.Events {
		env[i] = eventEnvelope{Type: ev.Kind(), Event: ev}
	}
	return json.Marshal(struct {
		alias
		Events []eventEnvelope `json:"events"`
	}{alias(h), env})
}

// ReplayHalfInning walks a half-inning's events from empty bases and no
// outs, checking that each event starts where the previous one ended. It
// returns the final bases and outs.
func ReplayHalfInning(h HalfInningResult) (BaseSnapshot, int, error) {
	var bases BaseSnapshot
	outs := 0
	for i, ev := range h.Events {
		hd := ev.Header()
		if hd.BasesBefore != bases || hd.OutsBefore != outs {
			return bases, outs, fmt.Errorf("event %d (%s): starts at %v/%d outs, state is %v/%d outs",
				i, ev.Kind(), hd.BasesBefore, hd.OutsBefore, bases, outs)
		}
		bases, outs = hd.BasesAfter, hd.OutsAfter
	}
	return bases, outs, nil
}
