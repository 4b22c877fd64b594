package baseball

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLineupSize      = errors.New("lineup must have exactly 9 batters")
	ErrMissingCatcher  = errors.New("defensive alignment has no catcher")
	ErrPitcherInLineup = errors.New("pitcher in batting lineup without two-way designation")
	ErrNoPitcher       = errors.New("team has no starting pitcher")
	ErrDuplicatePlayer = errors.New("player appears twice in lineup")
	ErrUnknownPitcher  = errors.New("unknown pitcher")
	ErrPitcherRetired  = errors.New("pitcher already removed from the game")
)

const LineupSize = 9

type Position string

const (
	PosP  Position = "P"
	PosC  Position = "C"
	Pos1B Position = "1B"
	Pos2B Position = "2B"
	Pos3B Position = "3B"
	PosSS Position = "SS"
	PosLF Position = "LF"
	PosCF Position = "CF"
	PosRF Position = "RF"
)

var (
	InfieldPositions  = []Position{Pos1B, Pos2B, Pos3B, PosSS}
	OutfieldPositions = []Position{PosLF, PosCF, PosRF}
)

// ParsePosition accepts the usual abbreviations in either case.
func ParsePosition(s string) (Position, error) {
	switch p := Position(strings.ToUpper(strings.TrimSpace(s))); p {
	case PosP, PosC, Pos1B, Pos2B, Pos3B, PosSS, PosLF, PosCF, PosRF:
		return p, nil
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// Defense maps each fielding position to its player.
type Defense map[Position]*Player

func (d Defense) Clone() Defense {
	out := make(Defense, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// TeamGameState is one team's side of a game. The game loop owns it for the
// duration of a game and mutates it between half-innings.
type TeamGameState struct {
	ID             string
	Name           string
	Lineup         []*Player
	Defense        Defense
	Staff          *Staff
	BattingIndex   int
	Pitches        PitchLedger
	TwoWayPlayerID string
	Strategy       Strategy
}

// NewTeamGameState assembles and validates a team.
func NewTeamGameState(id, name string, lineup []*Player, def Defense, starter *Player, bullpen []*Player, closerID, twoWayID string, st Strategy) (*TeamGameState, error) {
	if starter == nil {
		return nil, fmt.Errorf("team %s: %w", id, ErrNoPitcher)
	}
	staff := NewStaff(starter, bullpen, closerID)
	t := &TeamGameState{
		ID:             id,
		Name:           name,
		Lineup:         append([]*Player(nil), lineup...),
		Defense:        def.Clone(),
		Staff:          staff,
		Pitches:        NewPitchLedger(staff),
		TwoWayPlayerID: twoWayID,
		Strategy:       st.withDefaults(),
	}
	t.Defense[PosP] = starter
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate reports construction errors: lineup size, duplicate batters,
// a missing catcher, or a pitcher batting without the two-way designation.
func (t *TeamGameState) Validate() error {
	if len(t.Lineup) != LineupSize {
		return fmt.Errorf("team %s has %d: %w", t.ID, len(t.Lineup), ErrLineupSize)
	}
	if t.Staff == nil || t.Staff.Active() == nil {
		return fmt.Errorf("team %s: %w", t.ID, ErrNoPitcher)
	}
	if t.Defense[PosC] == nil {
		return fmt.Errorf("team %s: %w", t.ID, ErrMissingCatcher)
	}
	seen := map[string]bool{}
	for _, p := range t.Lineup {
		if p == nil {
			return fmt.Errorf("team %s has an empty lineup slot: %w", t.ID, ErrLineupSize)
		}
		if seen[p.ID] {
			return fmt.Errorf("team %s, %s: %w", t.ID, p.ID, ErrDuplicatePlayer)
		}
		seen[p.ID] = true
		if _, ok := t.Staff.Find(p.ID); ok && p.ID != t.TwoWayPlayerID {
			return fmt.Errorf("team %s, %s: %w", t.ID, p.ID, ErrPitcherInLineup)
		}
	}
	return nil
}

// Clone deep-copies everything the simulation mutates. Players are shared
// since they are immutable.
func (t *TeamGameState) Clone() *TeamGameState {
	c := *t
	c.Lineup = append([]*Player(nil), t.Lineup...)
	c.Defense = t.Defense.Clone()
	c.Staff = t.Staff.Clone()
	c.Pitches = t.Pitches.Clone()
	if c.Pitches == nil {
		c.Pitches = NewPitchLedger(c.Staff)
	}
	return &c
}

func (t *TeamGameState) Pitcher() *Player {
	if e := t.Staff.Active(); e != nil {
		return e.Pitcher
	}
	return nil
}

func (t *TeamGameState) Batter() *Player {
	return t.Lineup[t.BattingIndex%LineupSize]
}

// OnDeck is the hitter after the current batter.
func (t *TeamGameState) OnDeck() *Player {
	return t.Lineup[(t.BattingIndex+1)%LineupSize]
}

func (t *TeamGameState) AdvanceBatter() {
	t.BattingIndex = (t.BattingIndex + 1) % LineupSize
}

// ChangePitcher brings staff entry i to the mound, retires the current
// pitcher and keeps the defense's pitcher slot in sync.
func (t *TeamGameState) ChangePitcher(i int) (*Player, error) {
	if err := t.Staff.Bring(i); err != nil {
		return nil, fmt.Errorf("team %s: %w", t.ID, err)
	}
	p := t.Pitcher()
	t.Defense[PosP] = p
	return p, nil
}

// PitcherState returns the fatigue state of the pitcher on the mound.
func (t *TeamGameState) PitcherState() (PitcherFatigueState, error) {
	p := t.Pitcher()
	n, err := t.Pitches.Count(p.ID)
	if err != nil {
		return PitcherFatigueState{}, err
	}
	return Fatigue(n, composite(p, StaminaWeights)), nil
}
