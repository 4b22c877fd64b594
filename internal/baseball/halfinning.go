package baseball

import (
	"fmt"
	"math/rand"
)

// Env carries the random source and the optional event observer through a
// game. Emit, when set, sees every event in order.
type Env struct {
	Rng         *rand.Rand
	Emit        func(Event)
	Diagnostics bool

	seq int
}

func (env *Env) next() int {
	env.seq++
	return env.seq
}

type HalfInningInput struct {
	Inning        int
	Half          Half
	Batting       *TeamGameState
	Fielding      *TeamGameState
	BattingScore  int
	FieldingScore int
	// WalkOff stops the half as soon as the batting team leads.
	WalkOff bool
	// Policy defaults to a RopePolicy built from the fielding strategy.
	Policy SubstitutionPolicy
}

type HalfInningResult struct {
	Inning         int          `json:"inning"`
	Half           Half         `json:"half"`
	BattingTeamID  string       `json:"batting_team_id"`
	FieldingTeamID string       `json:"fielding_team_id"`
	Events         []Event      `json:"events"`
	Runs           int          `json:"runs"`
	Hits           int          `json:"hits"`
	Errors         int          `json:"errors"`
	LeftOnBase     int          `json:"left_on_base"`
	Outs           int          `json:"outs"`
	FinalBases     BaseSnapshot `json:"final_bases"`
	WalkOff        bool         `json:"walk_off,omitempty"`
}

// halfInning is the mutable state of one half. The teams it points at are
// the game loop's clones.
type halfInning struct {
	env     *Env
	in      HalfInningInput
	policy  SubstitutionPolicy
	ratings DefenseRatings

	bases   BaseState
	outs    int
	origins Origins
	res     HalfInningResult

	// allowed since the current pitcher took the mound; inherited runners
	// who score count against whoever put them on
	pitcherRuns int
	pitcherHits int
}

// PlayHalfInning runs one half: intentional walk, wild pitch or passed ball,
// steal, the plate appearance, then the substitution check, until the third
// out or a walk-off. Batting and Fielding are mutated (batting cursor, pitch
// counts, staff).
func PlayHalfInning(env *Env, in HalfInningInput) (HalfInningResult, error) {
	if in.Batting == nil || in.Fielding == nil {
		return HalfInningResult{}, fmt.Errorf("half inning %d: missing team", in.Inning)
	}
	h := &halfInning{
		env:     env,
		in:      in,
		policy:  in.Policy,
		ratings: RateDefense(in.Fielding.Defense),
		origins: Origins{},
		res: HalfInningResult{
			Inning:         in.Inning,
			Half:           in.Half,
			BattingTeamID:  in.Batting.ID,
			FieldingTeamID: in.Fielding.ID,
		},
	}
	if h.policy == nil {
		h.policy = RopePolicy{Strategy: in.Fielding.Strategy.Pitching}
	}

	if err := h.checkCloser(); err != nil {
		return h.res, err
	}
	if err := h.checkSubstitution(); err != nil {
		return h.res, err
	}
	for h.outs < 3 && !h.res.WalkOff {
		walked, err := h.intentionalWalk()
		if err != nil {
			return h.res, err
		}
		if walked {
			if err := h.afterPlay(); err != nil {
				return h.res, err
			}
			continue
		}
		if err := h.misplay(); err != nil {
			return h.res, err
		}
		if h.res.WalkOff {
			break
		}
		if err := h.steal(); err != nil {
			return h.res, err
		}
		if h.outs >= 3 || h.res.WalkOff {
			break
		}
		if err := h.plateAppearance(); err != nil {
			return h.res, err
		}
		if err := h.afterPlay(); err != nil {
			return h.res, err
		}
	}

	h.res.Outs = h.outs
	h.res.LeftOnBase = h.bases.Count()
	h.res.FinalBases = h.bases.Snapshot()
	return h.res, nil
}

func (h *halfInning) header(before BaseState, outsBefore int, text string) EventHeader {
	return EventHeader{
		Seq:         h.env.next(),
		Inning:      h.in.Inning,
		Half:        h.in.Half,
		PitcherID:   h.in.Fielding.Pitcher().ID,
		OutsBefore:  outsBefore,
		OutsAfter:   h.outs,
		BasesBefore: before.Snapshot(),
		BasesAfter:  h.bases.Snapshot(),
		Text:        text,
	}
}

func (h *halfInning) emit(ev Event) {
	h.res.Events = append(h.res.Events, ev)
	if h.env.Emit != nil {
		h.env.Emit(ev)
	}
}

// scoreDiff is batting minus fielding.
func (h *halfInning) scoreDiff() int {
	return h.in.BattingScore + h.res.Runs - h.in.FieldingScore
}

// record books the runs of an event and flags a walk-off.
func (h *halfInning) record(scored []ScoredRun) {
	h.res.Runs += len(scored)
	id := h.in.Fielding.Pitcher().ID
	for _, s := range scored {
		if s.ResponsiblePitcherID == id {
			h.pitcherRuns++
		}
	}
	if h.in.WalkOff && h.scoreDiff() > 0 {
		h.res.WalkOff = true
	}
}

// settle rebuilds the origin map for the new bases: runners already on keep
// their origin, a new runner gets one charged to the pitcher on the mound.
func (h *halfInning) settle(newcomer ReachedVia) error {
	next := make(Origins, h.bases.Count())
	for _, p := range h.bases {
		if p == nil {
			continue
		}
		if o, ok := h.origins[p.ID]; ok {
			next[p.ID] = o
			continue
		}
		via := newcomer
		if via == "" {
			via = ViaHit
		}
		next[p.ID] = RunnerOrigin{ReachedVia: via, ResponsiblePitcherID: h.in.Fielding.Pitcher().ID}
	}
	h.origins = next
	if err := h.origins.Check(h.bases); err != nil {
		return fmt.Errorf("inning %d %s: %w", h.in.Inning, h.in.Half, err)
	}
	return nil
}

func (h *halfInning) intentionalWalk() (bool, error) {
	bat := h.in.Batting
	ok := CheckIntentionalWalk(IBBContext{
		Batter:    bat.Batter(),
		OnDeck:    bat.OnDeck(),
		Bases:     h.bases,
		Inning:    h.in.Inning,
		ScoreDiff: h.scoreDiff(),
		Strategy:  h.in.Fielding.Strategy.Pitching,
	})
	if !ok {
		return false, nil
	}
	batter := bat.Batter()
	before := h.bases
	h.bases.ForceAdvance(batter)
	if err := h.settle(ViaIntentionalWalk); err != nil {
		return false, err
	}
	h.emit(&IntentionalWalkEvent{
		EventHeader: h.header(before, h.outs, batter.DisplayName()+" is intentionally walked"),
		BatterID:    batter.ID,
	})
	bat.AdvanceBatter()
	return true, nil
}

func (h *halfInning) misplay() error {
	f := h.in.Fielding
	st, err := f.PitcherState()
	if err != nil {
		return err
	}
	kind := CheckWildPitch(h.env.Rng, Pitching(f.Pitcher(), st.Degradation), h.ratings.CatcherBlocking, h.bases)
	if kind == NoMisplay {
		return nil
	}
	before := h.bases
	var advances []Advance
	var runners []*Player
	h.bases, advances, runners = AdvanceOnMisplay(h.env.Rng, h.bases)
	if len(advances) == 0 {
		h.bases = before
		return nil
	}
	// passed-ball runs are unearned
	scored := make([]ScoredRun, 0, len(runners))
	for _, r := range runners {
		scored = append(scored, h.origins.Charge(r, f.Pitcher().ID, kind == PassedBall))
	}
	h.record(scored)
	if err := h.settle(""); err != nil {
		return err
	}
	switch kind {
	case WildPitch:
		h.emit(&WildPitchEvent{
			EventHeader: h.header(before, h.outs, misplayText("Wild pitch", advances)),
			Advances:    advances,
			Scorers:     scored,
		})
	case PassedBall:
		catcher := f.Defense[PosC]
		h.emit(&PassedBallEvent{
			EventHeader: h.header(before, h.outs, misplayText("Passed ball", advances)),
			CatcherID:   catcher.ID,
			Advances:    advances,
			Scorers:     scored,
		})
	}
	return nil
}

func misplayText(what string, advances []Advance) string {
	text := what
	for _, a := range advances {
		if a.To == Home {
			text += ", " + a.RunnerID + " scores"
		} else {
			text += fmt.Sprintf(", %s to %s", a.RunnerID, baseName(a.To))
		}
	}
	return text
}

func baseName(base int) string {
	switch base {
	case First:
		return "first"
	case Second:
		return "second"
	case Third:
		return "third"
	}
	return "home"
}

func (h *halfInning) steal() error {
	f := h.in.Fielding
	st, err := f.PitcherState()
	if err != nil {
		return err
	}
	att, ok := CheckSteal(h.env.Rng, StealContext{
		Bases:      h.bases,
		Inning:     h.in.Inning,
		Outs:       h.outs,
		ScoreDiff:  h.scoreDiff(),
		CatcherArm: h.ratings.CatcherArm,
		Hold:       Pitching(f.Pitcher(), st.Degradation).Hold,
		Style:      h.in.Batting.Strategy.Batting.Baserunning,
	})
	if !ok {
		return nil
	}
	before, outsBefore := h.bases, h.outs
	catcherID := f.Defense[PosC].ID
	name := att.Runner.DisplayName()
	h.bases[att.From] = nil
	if !att.Success {
		h.outs++
		if err := h.settle(""); err != nil {
			return err
		}
		h.emit(&CaughtStealingEvent{
			EventHeader: h.header(before, outsBefore, fmt.Sprintf("%s caught stealing %s", name, baseName(att.To))),
			RunnerID:    att.Runner.ID,
			From:        att.From,
			To:          att.To,
			CatcherID:   catcherID,
		})
		return nil
	}
	ev := &StolenBaseEvent{RunnerID: att.Runner.ID, From: att.From, To: att.To, CatcherID: catcherID}
	if att.To == Home {
		sr := h.origins.Charge(att.Runner, f.Pitcher().ID, false)
		ev.Scored = &sr
		h.record([]ScoredRun{sr})
	} else {
		h.bases[att.To] = att.Runner
	}
	if err := h.settle(""); err != nil {
		return err
	}
	ev.EventHeader = h.header(before, outsBefore, fmt.Sprintf("%s steals %s", name, baseName(att.To)))
	h.emit(ev)
	return nil
}

func (h *halfInning) plateAppearance() error {
	bat, f := h.in.Batting, h.in.Fielding
	st, err := f.PitcherState()
	if err != nil {
		return err
	}
	pitcher := f.Pitcher()
	res := ResolveAtBat(h.env.Rng, AtBatInput{
		Batter:      bat.Batter(),
		Pitcher:     pitcher,
		Defense:     f.Defense,
		Ratings:     h.ratings,
		Bases:       h.bases,
		Origins:     h.origins,
		Inning:      h.in.Inning,
		Outs:        h.outs,
		ScoreDiff:   h.scoreDiff(),
		Batting:     bat.Strategy.Batting,
		Degradation: st.Degradation,
		Diagnostics: h.env.Diagnostics,
	})
	res.Pitches = EstimatePitches(h.env.Rng, res.Outcome)
	if err := f.Pitches.Add(pitcher.ID, res.Pitches); err != nil {
		return err
	}

	before, outsBefore := h.bases, h.outs
	h.bases = res.Bases
	h.outs = min(h.outs+res.OutsRecorded, 3)
	if res.Hit {
		h.res.Hits++
		h.pitcherHits++
	}
	if res.Error {
		h.res.Errors++
	}
	h.record(res.Scorers)
	if err := h.settle(res.BatterReached); err != nil {
		return err
	}
	h.emit(&AtBatEvent{EventHeader: h.header(before, outsBefore, res.Text), Result: res})
	bat.AdvanceBatter()
	return nil
}

// afterPlay runs the substitution check once the inning is still live.
func (h *halfInning) afterPlay() error {
	if h.outs >= 3 || h.res.WalkOff {
		return nil
	}
	return h.checkSubstitution()
}

func (h *halfInning) checkSubstitution() error {
	f := h.in.Fielding
	entry := f.Staff.Active()
	count, err := f.Pitches.Count(entry.Pitcher.ID)
	if err != nil {
		return err
	}
	d := h.policy.Decide(SubstitutionContext{
		PitcherID:        entry.Pitcher.ID,
		Role:             entry.Role,
		PitchCount:       count,
		Inning:           h.in.Inning,
		Outs:             h.outs,
		Bases:            h.bases,
		RunsThisInning:   h.pitcherRuns,
		HitsThisInning:   h.pitcherHits,
		ScoreDiff:        -h.scoreDiff(),
		BullpenAvailable: f.Staff.Available(),
	})
	if !d.Replace {
		return nil
	}
	i, ok := f.Staff.NextReliever()
	if !ok {
		return nil
	}
	return h.changePitcher(i, d.Reason)
}

// checkCloser brings the closer in at the start of a save situation.
func (h *halfInning) checkCloser() error {
	f := h.in.Fielding
	if !f.Strategy.Pitching.UseCloser || f.Staff.Active().Role == RoleCloser {
		return nil
	}
	if !ShouldUseCloser(h.in.Inning, -h.scoreDiff()) {
		return nil
	}
	i, ok := f.Staff.Closer()
	if !ok {
		return nil
	}
	return h.changePitcher(i, "closer")
}

func (h *halfInning) changePitcher(i int, reason string) error {
	f := h.in.Fielding
	outgoing := f.Pitcher()
	incoming, err := f.ChangePitcher(i)
	if err != nil {
		return err
	}
	h.pitcherRuns, h.pitcherHits = 0, 0
	text := fmt.Sprintf("Pitching change: %s replaces %s", incoming.DisplayName(), outgoing.DisplayName())
	h.emit(&PitcherChangeEvent{
		EventHeader:      h.header(h.bases, h.outs, text),
		TeamID:           f.ID,
		OutgoingID:       outgoing.ID,
		IncomingID:       incoming.ID,
		Reason:           reason,
		InheritedRunners: h.bases.Count(),
	})
	return nil
}
