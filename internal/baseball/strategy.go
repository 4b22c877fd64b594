package baseball

import (
	"errors"
	"fmt"
	"strings"

	"sportsim/internal/config"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

type PlateApproach string

const (
	ApproachBalanced   PlateApproach = "balanced"
	ApproachAggressive PlateApproach = "aggressive"
	ApproachPatient    PlateApproach = "patient"
)

// Multipliers returns the strikeout and walk multipliers of the approach.
func (a PlateApproach) Multipliers() (k, bb float64) {
	switch a {
	case ApproachAggressive:
		return 1.10, 0.80
	case ApproachPatient:
		return 1.08, 1.25
	default:
		return 1, 1
	}
}

type SwingStyle string

const (
	SwingBalanced SwingStyle = "balanced"
	SwingPower    SwingStyle = "power"
	SwingContact  SwingStyle = "contact"
)

// Adjust returns the additive hit-rate adjustment and the strikeout and
// home-run multipliers of the swing.
func (s SwingStyle) Adjust() (hit, k, hr float64) {
	switch s {
	case SwingPower:
		return -0.02, 1.10, 1.30
	case SwingContact:
		return 0.02, 0.90, 0.75
	default:
		return 0, 1, 1
	}
}

type BaserunningStyle string

const (
	RunningBalanced     BaserunningStyle = "balanced"
	RunningAggressive   BaserunningStyle = "aggressive"
	RunningConservative BaserunningStyle = "conservative"
)

// Steal returns the attempt multiplier and additive success adjustment.
func (s BaserunningStyle) Steal() (attempt, success float64) {
	switch s {
	case RunningAggressive:
		return 1.6, -0.03
	case RunningConservative:
		return 0.5, 0.05
	default:
		return 1, 0
	}
}

// ExtraBase is the additive adjustment for taking an extra base on a hit.
func (s BaserunningStyle) ExtraBase() float64 {
	switch s {
	case RunningAggressive:
		return 0.05
	case RunningConservative:
		return -0.05
	default:
		return 0
	}
}

type BattingStrategy struct {
	Approach    PlateApproach    `json:"plate_approach"`
	Swing       SwingStyle       `json:"swing_style"`
	Baserunning BaserunningStyle `json:"baserunning"`
}

type PitchingStrategy struct {
	BaseRope         float64 `json:"base_rope"`
	StarterPitchCap  int     `json:"starter_pitch_cap"`
	RelieverPitchCap int     `json:"reliever_pitch_cap"`
	MeltdownHits     int     `json:"meltdown_hits"`
	UseCloser        bool    `json:"use_closer"`
	IntentionalWalks bool    `json:"intentional_walks"`
}

// Strategy is supplied by the tactics layer and only read here.
type Strategy struct {
	ID       string           `json:"id"`
	Batting  BattingStrategy  `json:"batting"`
	Pitching PitchingStrategy `json:"pitching"`
}

func DefaultStrategy() Strategy {
	return Strategy{
		ID: "default",
		Batting: BattingStrategy{
			Approach: ApproachBalanced, Swing: SwingBalanced, Baserunning: RunningBalanced,
		},
		Pitching: PitchingStrategy{
			BaseRope:         4,
			StarterPitchCap:  110,
			RelieverPitchCap: 40,
			MeltdownHits:     4,
			UseCloser:        true,
			IntentionalWalks: true,
		},
	}
}

// withDefaults fills zero values so a partially specified strategy plays.
func (s Strategy) withDefaults() Strategy {
	d := DefaultStrategy()
	if s.Batting.Approach == "" {
		s.Batting.Approach = d.Batting.Approach
	}
	if s.Batting.Swing == "" {
		s.Batting.Swing = d.Batting.Swing
	}
	if s.Batting.Baserunning == "" {
		s.Batting.Baserunning = d.Batting.Baserunning
	}
	if s.Pitching.BaseRope <= 0 {
		s.Pitching.BaseRope = d.Pitching.BaseRope
	}
	if s.Pitching.StarterPitchCap <= 0 {
		s.Pitching.StarterPitchCap = d.Pitching.StarterPitchCap
	}
	if s.Pitching.RelieverPitchCap <= 0 {
		s.Pitching.RelieverPitchCap = d.Pitching.RelieverPitchCap
	}
	if s.Pitching.MeltdownHits <= 0 {
		s.Pitching.MeltdownHits = d.Pitching.MeltdownHits
	}
	return s
}

// StrategyBook resolves strategies by team, then by id, then the "*"
// default bucket.
type StrategyBook struct {
	byTeam map[string]Strategy
	byID   map[string]Strategy
}

func NewStrategyBook(cfg *config.StrategiesConfig) (*StrategyBook, error) {
	sb := &StrategyBook{
		byTeam: map[string]Strategy{},
		byID:   map[string]Strategy{},
	}
	if cfg == nil {
		return sb, nil
	}
	for _, s := range cfg.Strategies {
		st, err := strategyFromDef(s)
		if err != nil {
			return nil, err
		}
		if s.Team != "" {
			sb.byTeam[s.Team] = st
			continue
		}
		if s.ID != "" {
			sb.byID[s.ID] = st
			continue
		}
		sb.byID["*"] = st
	}
	return sb, nil
}

// For returns the strategy for teamID, falling back to strategyID, then the
// default bucket, then DefaultStrategy.
func (sb *StrategyBook) For(teamID, strategyID string) Strategy {
	if sb != nil {
		if st, ok := sb.byTeam[teamID]; ok {
			return st
		}
		if st, ok := sb.byID[strategyID]; ok && strategyID != "" {
			return st
		}
		if st, ok := sb.byID["*"]; ok {
			return st
		}
	}
	return DefaultStrategy()
}

// Lookup is For, except a named strategy missing from the book is an error.
func (sb *StrategyBook) Lookup(teamID, strategyID string) (Strategy, error) {
	if sb != nil && strategyID != "" {
		_, byTeam := sb.byTeam[teamID]
		_, byID := sb.byID[strategyID]
		if !byTeam && !byID {
			return Strategy{}, fmt.Errorf("team %s, %q: %w", teamID, strategyID, ErrUnknownStrategy)
		}
	}
	return sb.For(teamID, strategyID), nil
}

func strategyFromDef(s config.StrategyDef) (Strategy, error) {
	st := Strategy{
		ID: s.ID,
		Batting: BattingStrategy{
			Approach:    PlateApproach(strings.ToLower(s.PlateApproach)),
			Swing:       SwingStyle(strings.ToLower(s.SwingStyle)),
			Baserunning: BaserunningStyle(strings.ToLower(s.Baserunning)),
		},
		Pitching: PitchingStrategy{
			BaseRope:         s.BaseRope,
			StarterPitchCap:  s.StarterPitchCap,
			RelieverPitchCap: s.RelieverPitchCap,
			MeltdownHits:     s.MeltdownHits,
			UseCloser:        true,
			IntentionalWalks: true,
		},
	}
	if s.UseCloser != nil {
		st.Pitching.UseCloser = *s.UseCloser
	}
	if s.IntentionalWalks != nil {
		st.Pitching.IntentionalWalks = *s.IntentionalWalks
	}
	switch st.Batting.Approach {
	case "", ApproachBalanced, ApproachAggressive, ApproachPatient:
	default:
		return Strategy{}, fmt.Errorf("strategy %q: unknown plate approach %q", s.ID, s.PlateApproach)
	}
	switch st.Batting.Swing {
	case "", SwingBalanced, SwingPower, SwingContact:
	default:
		return Strategy{}, fmt.Errorf("strategy %q: unknown swing style %q", s.ID, s.SwingStyle)
	}
	switch st.Batting.Baserunning {
	case "", RunningBalanced, RunningAggressive, RunningConservative:
	default:
		return Strategy{}, fmt.Errorf("strategy %q: unknown baserunning style %q", s.ID, s.Baserunning)
	}
	return st.withDefaults(), nil
}
