package baseball

import (
	"fmt"
	"math"
	"math/rand"

	"sportsim/internal/prob"
)

const (
	BaseFatigueThreshold = 80
	DegradationPerPitch  = 0.005
	MaxDegradation       = 0.30
	MinRope              = 1.0
	CloseGameMargin      = 2
)

// PitcherFatigueState is derived from the pitch count; it is never stored
// on the player.
type PitcherFatigueState struct {
	PitchCount    int     `json:"pitch_count"`
	Threshold     int     `json:"threshold"`
	Degradation   float64 `json:"degradation"`
	OverThreshold bool    `json:"over_threshold"`
}

// Fatigue computes degradation from pitch count and the stamina composite.
func Fatigue(pitchCount int, stamina float64) PitcherFatigueState {
	threshold := BaseFatigueThreshold + int(math.Floor((stamina-50)/2.5))
	deg := prob.Clamp(float64(pitchCount-threshold)*DegradationPerPitch, 0, MaxDegradation)
	return PitcherFatigueState{
		PitchCount:    pitchCount,
		Threshold:     threshold,
		Degradation:   deg,
		OverThreshold: pitchCount > threshold,
	}
}

// PitchLedger holds pitch counts keyed by pitcher ID. Only pitchers
// registered from the staff may be counted.
type PitchLedger map[string]int

func NewPitchLedger(s *Staff) PitchLedger {
	l := PitchLedger{}
	if s != nil {
		for _, e := range s.Entries {
			l[e.Pitcher.ID] = 0
		}
	}
	return l
}

func (l PitchLedger) Clone() PitchLedger {
	if l == nil {
		return nil
	}
	out := make(PitchLedger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

func (l PitchLedger) Count(id string) (int, error) {
	n, ok := l[id]
	if !ok {
		return 0, fmt.Errorf("pitch count for %s: %w", id, ErrUnknownPitcher)
	}
	return n, nil
}

func (l PitchLedger) Add(id string, pitches int) error {
	if _, ok := l[id]; !ok {
		return fmt.Errorf("pitch count for %s: %w", id, ErrUnknownPitcher)
	}
	l[id] += pitches
	return nil
}

// EstimatePitches returns how many pitches a plate appearance took.
func EstimatePitches(rng *rand.Rand, o Outcome) int {
	base := 3
	switch o {
	case OutcomeStrikeout:
		base = 5
	case OutcomeWalk:
		base = 6
	case OutcomeHitByPitch:
		base = 3
	case OutcomeIntentionalWalk:
		return 0
	default:
		if rng.Intn(2) == 0 {
			base = 4
		}
	}
	return base + rng.Intn(3) - 1
}

// SubstitutionContext is the snapshot the rope policy decides from.
type SubstitutionContext struct {
	PitcherID        string      `json:"pitcher_id"`
	Role             PitcherRole `json:"role"`
	PitchCount       int         `json:"pitch_count"`
	Inning           int         `json:"inning"`
	Outs             int         `json:"outs"`
	Bases            BaseState   `json:"-"`
	RunsThisInning   int         `json:"runs_this_inning"`
	HitsThisInning   int         `json:"hits_this_inning"`
	ScoreDiff        int         `json:"score_diff"` // fielding team minus batting team
	BullpenAvailable int         `json:"bullpen_available"`
}

// EffectiveRope applies the pitch-count, inning and situation tiers to the
// base rope. The result is never below MinRope.
func EffectiveRope(ctx SubstitutionContext, baseRope float64) float64 {
	rope := baseRope
	switch {
	case ctx.PitchCount >= 100:
		rope -= 1.5
	case ctx.PitchCount >= 80:
		rope -= 1.0
	case ctx.PitchCount >= 60:
		rope -= 0.5
	}
	switch {
	case ctx.Inning >= 8:
		rope -= 1.0
	case ctx.Inning >= 6:
		rope -= 0.5
	}
	if ctx.Bases.Count() >= 2 {
		rope -= 0.5
	}
	if abs(ctx.ScoreDiff) <= CloseGameMargin {
		rope -= 0.5
	}
	return math.Max(rope, MinRope)
}

type Decision struct {
	Replace bool    `json:"replace"`
	Reason  string  `json:"reason,omitempty"`
	Rope    float64 `json:"rope"`
}

// SubstitutionPolicy decides whether the pitcher on the mound comes out.
type SubstitutionPolicy interface {
	Decide(ctx SubstitutionContext) Decision
}

// RopePolicy pulls a pitcher when runs this inning reach the effective
// rope, on a hits meltdown, or at the pitch cap for the role.
type RopePolicy struct {
	Strategy PitchingStrategy
}

func (rp RopePolicy) Decide(ctx SubstitutionContext) Decision {
	st := rp.Strategy
	rope := EffectiveRope(ctx, st.BaseRope)
	d := Decision{Rope: rope}
	if ctx.BullpenAvailable == 0 {
		return d
	}
	limit := st.StarterPitchCap
	if ctx.Role != RoleStarter {
		limit = st.RelieverPitchCap
	}
	switch {
	case float64(ctx.RunsThisInning) >= rope:
		d.Replace, d.Reason = true, "rope"
	case st.MeltdownHits > 0 && ctx.HitsThisInning >= st.MeltdownHits:
		d.Replace, d.Reason = true, "meltdown"
	case limit > 0 && ctx.PitchCount >= limit:
		d.Replace, d.Reason = true, "pitch_count"
	}
	return d
}

// ShouldUseCloser reports a save situation at the start of an inning.
func ShouldUseCloser(inning, lead int) bool {
	return inning >= 9 && lead >= 1 && lead <= 3
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
