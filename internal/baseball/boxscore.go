package baseball

import "fmt"

type BattingLine struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	PA       int    `json:"pa"`
	AB       int    `json:"ab"`
	R        int    `json:"r"`
	H        int    `json:"h"`
	Doubles  int    `json:"2b"`
	Triples  int    `json:"3b"`
	HR       int    `json:"hr"`
	RBI      int    `json:"rbi"`
	BB       int    `json:"bb"`
	IBB      int    `json:"ibb"`
	HBP      int    `json:"hbp"`
	SO       int    `json:"so"`
	SB       int    `json:"sb"`
	CS       int    `json:"cs"`
	SF       int    `json:"sf"`
	GIDP     int    `json:"gidp"`
	ROE      int    `json:"roe"`
}

type PitchingLine struct {
	PlayerID         string `json:"player_id"`
	TeamID           string `json:"team_id"`
	Outs             int    `json:"outs"`
	IP               string `json:"ip"`
	BF               int    `json:"bf"`
	H                int    `json:"h"`
	R                int    `json:"r"`
	ER               int    `json:"er"`
	BB               int    `json:"bb"`
	SO               int    `json:"so"`
	HR               int    `json:"hr"`
	HBP              int    `json:"hbp"`
	WP               int    `json:"wp"`
	Pitches          int    `json:"pitches"`
	InheritedRunners int    `json:"inherited_runners"`
	InheritedScored  int    `json:"inherited_scored"`
}

type CatcherLine struct {
	PlayerID  string `json:"player_id"`
	TeamID    string `json:"team_id"`
	PB        int    `json:"pb"`
	SBAllowed int    `json:"sb_allowed"`
	CS        int    `json:"cs"`
}

type TeamTotals struct {
	TeamID string `json:"team_id"`
	R      int    `json:"r"`
	H      int    `json:"h"`
	E      int    `json:"e"`
	LOB    int    `json:"lob"`
}

type BoxScore struct {
	Batting  []BattingLine  `json:"batting"`
	Pitching []PitchingLine `json:"pitching"`
	Catching []CatcherLine  `json:"catching,omitempty"`
	Errors   map[string]int `json:"errors,omitempty"`
	Teams    []TeamTotals   `json:"teams"`
}

// Pitcher returns the line for id.
func (b BoxScore) Pitcher(id string) (PitchingLine, bool) {
	for _, l := range b.Pitching {
		if l.PlayerID == id {
			return l, true
		}
	}
	return PitchingLine{}, false
}

func (b BoxScore) Batter(id string) (BattingLine, bool) {
	for _, l := range b.Batting {
		if l.PlayerID == id {
			return l, true
		}
	}
	return BattingLine{}, false
}

func (b BoxScore) Team(id string) (TeamTotals, bool) {
	for _, t := range b.Teams {
		if t.TeamID == id {
			return t, true
		}
	}
	return TeamTotals{}, false
}

// InningsPitched renders outs the conventional way: 19 outs is "6.1".
func InningsPitched(outs int) string {
	return fmt.Sprintf("%d.%d", outs/3, outs%3)
}

// boxBuilder replays events in order. Lines keep first-appearance order.
type boxBuilder struct {
	batting  []BattingLine
	pitching []PitchingLine
	catching []CatcherLine
	teams    []TeamTotals
	bIdx     map[string]int
	pIdx     map[string]int
	cIdx     map[string]int
	tIdx     map[string]int
	errors   map[string]int

	battingTeam  string
	fieldingTeam string
}

// BuildBoxScore aggregates half-innings into a box score.
func BuildBoxScore(halves []HalfInningResult) BoxScore {
	b := &boxBuilder{
		bIdx:   map[string]int{},
		pIdx:   map[string]int{},
		cIdx:   map[string]int{},
		tIdx:   map[string]int{},
		errors: map[string]int{},
	}
	for _, h := range halves {
		b.battingTeam, b.fieldingTeam = h.BattingTeamID, h.FieldingTeamID
		b.team(h.BattingTeamID).LOB += h.LeftOnBase
		b.team(h.FieldingTeamID)
		for _, ev := range h.Events {
			ev.Accept(b)
		}
	}
	for i := range b.pitching {
		b.pitching[i].IP = InningsPitched(b.pitching[i].Outs)
	}
	return BoxScore{
		Batting:  b.batting,
		Pitching: b.pitching,
		Catching: b.catching,
		Errors:   b.errors,
		Teams:    b.teams,
	}
}

func (b *boxBuilder) batter(id string) *BattingLine {
	i, ok := b.bIdx[id]
	if !ok {
		i = len(b.batting)
		b.bIdx[id] = i
		b.batting = append(b.batting, BattingLine{PlayerID: id, TeamID: b.battingTeam})
	}
	return &b.batting[i]
}

func (b *boxBuilder) pitcher(id string) *PitchingLine {
	i, ok := b.pIdx[id]
	if !ok {
		i = len(b.pitching)
		b.pIdx[id] = i
		b.pitching = append(b.pitching, PitchingLine{PlayerID: id, TeamID: b.fieldingTeam})
	}
	return &b.pitching[i]
}

func (b *boxBuilder) catcher(id string) *CatcherLine {
	i, ok := b.cIdx[id]
	if !ok {
		i = len(b.catching)
		b.cIdx[id] = i
		b.catching = append(b.catching, CatcherLine{PlayerID: id, TeamID: b.fieldingTeam})
	}
	return &b.catching[i]
}

func (b *boxBuilder) team(id string) *TeamTotals {
	i, ok := b.tIdx[id]
	if !ok {
		i = len(b.teams)
		b.tIdx[id] = i
		b.teams = append(b.teams, TeamTotals{TeamID: id})
	}
	return &b.teams[i]
}

// runs credits each scorer and charges the responsible pitcher. A run
// charged to someone other than the pitcher on the mound is an inherited
// runner scoring.
func (b *boxBuilder) runs(h EventHeader, scored []ScoredRun) {
	for _, s := range scored {
		b.batter(s.RunnerID).R++
		p := b.pitcher(s.ResponsiblePitcherID)
		p.R++
		if s.Earned {
			p.ER++
		}
		if s.ResponsiblePitcherID != h.PitcherID {
			b.pitcher(h.PitcherID).InheritedScored++
		}
		b.team(b.battingTeam).R++
	}
}

func (b *boxBuilder) outs(h EventHeader) {
	b.pitcher(h.PitcherID).Outs += h.OutsAfter - h.OutsBefore
}

func (b *boxBuilder) AtBat(e *AtBatEvent) {
	r := e.Result
	bl := b.batter(r.BatterID)
	pl := b.pitcher(e.PitcherID)
	bl.PA++
	pl.BF++
	pl.Pitches += r.Pitches
	if r.Outcome.IsAtBat() {
		bl.AB++
	}
	if r.Hit {
		bl.H++
		pl.H++
		b.team(b.battingTeam).H++
	}
	switch r.Outcome {
	case OutcomeDouble:
		bl.Doubles++
	case OutcomeTriple:
		bl.Triples++
	case OutcomeHomeRun:
		bl.HR++
		pl.HR++
	case OutcomeWalk:
		bl.BB++
		pl.BB++
	case OutcomeHitByPitch:
		bl.HBP++
		pl.HBP++
	case OutcomeStrikeout:
		bl.SO++
		pl.SO++
	case OutcomeReachedOnError:
		bl.ROE++
	}
	if r.SacFly {
		bl.SF++
	}
	if r.GIDP {
		bl.GIDP++
	}
	bl.RBI += r.RBI
	if r.Error {
		b.errors[r.ErrorFielderID]++
		b.team(b.fieldingTeam).E++
	}
	b.outs(e.EventHeader)
	b.runs(e.EventHeader, r.Scorers)
}

func (b *boxBuilder) StolenBase(e *StolenBaseEvent) {
	b.batter(e.RunnerID).SB++
	b.catcher(e.CatcherID).SBAllowed++
	if e.Scored != nil {
		b.runs(e.EventHeader, []ScoredRun{*e.Scored})
	}
}

func (b *boxBuilder) CaughtStealing(e *CaughtStealingEvent) {
	b.batter(e.RunnerID).CS++
	b.catcher(e.CatcherID).CS++
	b.outs(e.EventHeader)
}

func (b *boxBuilder) WildPitch(e *WildPitchEvent) {
	b.pitcher(e.PitcherID).WP++
	b.runs(e.EventHeader, e.Scorers)
}

func (b *boxBuilder) PassedBall(e *PassedBallEvent) {
	b.catcher(e.CatcherID).PB++
	b.runs(e.EventHeader, e.Scorers)
}

func (b *boxBuilder) IntentionalWalk(e *IntentionalWalkEvent) {
	bl := b.batter(e.BatterID)
	bl.PA++
	bl.BB++
	bl.IBB++
	pl := b.pitcher(e.PitcherID)
	pl.BF++
	pl.BB++
}

func (b *boxBuilder) PitcherChange(e *PitcherChangeEvent) {
	b.pitcher(e.IncomingID).InheritedRunners += e.InheritedRunners
}
