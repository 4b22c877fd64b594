package baseball

import (
	"math/rand"

	"sportsim/internal/prob"
)

const (
	IBBMinInning     = 7
	IBBMaxScoreDiff  = 2
	IBBDangerEdge    = 15.0
	StealSuccessBase = 0.70
	StealHomeBase    = 0.35
	Home             = 3
)

// misplayAdvance holds advance chances, indexed by the base the runner starts on.
var misplayAdvance = [3]float64{0.95, 0.85, 0.75}

// IBBContext is what the intentional-walk decision reads.
type IBBContext struct {
	Batter    *Player
	OnDeck    *Player
	Bases     BaseState
	Inning    int
	ScoreDiff int
	Strategy  PitchingStrategy
}

// CheckIntentionalWalk reports whether the defense puts the batter on.
// First base must be open, the game late and close, and the batter clearly
// more dangerous than the one on deck.
func CheckIntentionalWalk(ctx IBBContext) bool {
	if !ctx.Strategy.IntentionalWalks || ctx.Bases[First] != nil {
		return false
	}
	if ctx.Inning < IBBMinInning || abs(ctx.ScoreDiff) > IBBMaxScoreDiff {
		return false
	}
	edge := Batting(ctx.Batter).Danger() - Batting(ctx.OnDeck).Danger()
	return edge >= IBBDangerEdge
}

type Misplay int

const (
	NoMisplay Misplay = iota
	WildPitch
	PassedBall
)

// WildPitchRate is driven by control; PassedBallRate by the catcher's
// blocking.
func WildPitchRate(pc PitchingComposites) float64 {
	return prob.Clamp(0.012+(NeutralRating-pc.Control)*0.0003, 0.002, 0.03)
}

func PassedBallRate(blocking float64) float64 {
	return prob.Clamp(0.006+(NeutralRating-blocking)*0.0002, 0.001, 0.02)
}

// CheckWildPitch rolls for a wild pitch, then a passed ball. Only called
// with runners on.
func CheckWildPitch(rng *rand.Rand, pc PitchingComposites, catcherBlocking float64, bases BaseState) Misplay {
	if bases.Empty() {
		return NoMisplay
	}
	if rng.Float64() < WildPitchRate(pc) {
		return WildPitch
	}
	if rng.Float64() < PassedBallRate(catcherBlocking) {
		return PassedBall
	}
	return NoMisplay
}

// AdvanceOnMisplay moves runners on a ball that gets away, lead runner
// first. A runner only moves into an open base. Runners sent home are
// returned in the order they scored.
func AdvanceOnMisplay(rng *rand.Rand, bases BaseState) (BaseState, []Advance, []*Player) {
	var (
		advances []Advance
		scored   []*Player
	)
	for base := Third; base >= First; base-- {
		r := bases[base]
		if r == nil {
			continue
		}
		if base < Third && bases[base+1] != nil {
			continue
		}
		if rng.Float64() >= misplayAdvance[base] {
			continue
		}
		bases[base] = nil
		advances = append(advances, Advance{RunnerID: r.ID, From: base, To: base + 1})
		if base == Third {
			scored = append(scored, r)
			continue
		}
		bases[base+1] = r
	}
	return bases, advances, scored
}

// StealContext is what the steal decision reads.
type StealContext struct {
	Bases      BaseState
	Inning     int
	Outs       int
	ScoreDiff  int // batting minus fielding
	CatcherArm float64
	Hold       float64
	Style      BaserunningStyle
}

type StealAttempt struct {
	Runner  *Player
	From    int
	To      int
	P       float64
	Success bool
}

// stealCandidate returns the fastest runner with an open base ahead.
// Home is only open in the 9th or later, down one, with two outs.
func stealCandidate(ctx StealContext) (int, float64) {
	from, best := -1, 0.0
	for base := First; base <= Third; base++ {
		r := ctx.Bases[base]
		if r == nil {
			continue
		}
		if base == Third {
			if ctx.Inning < 9 || ctx.ScoreDiff != -1 || ctx.Outs != 2 {
				continue
			}
		} else if ctx.Bases[base+1] != nil {
			continue
		}
		if s := Batting(r).Steal; from < 0 || s > best {
			from, best = base, s
		}
	}
	return from, best
}

// StealAttemptRate is the per-plate-appearance chance the candidate goes.
func StealAttemptRate(steal float64, from int, style BaserunningStyle) float64 {
	mult, _ := style.Steal()
	switch from {
	case Third:
		return 0.10 * mult
	case Second:
		return prob.Clamp(0.02+max(0, steal-55)*0.005, 0, 0.25) * mult * 0.5
	}
	return prob.Clamp(0.02+max(0, steal-55)*0.005, 0, 0.25) * mult
}

// StealSuccessRate weighs the runner against the catcher's arm and the
// pitcher's hold.
func StealSuccessRate(steal float64, from int, catcherArm, hold float64, style BaserunningStyle) float64 {
	base := StealSuccessBase
	if from == Third {
		base = StealHomeBase
	}
	_, adj := style.Steal()
	p := prob.WSP(base, steal-(0.7*catcherArm+0.3*hold)) + adj
	return prob.Clamp(p, prob.MinProbability, prob.MaxProbability)
}

// CheckSteal decides whether a runner goes and whether the runner is safe.
func CheckSteal(rng *rand.Rand, ctx StealContext) (StealAttempt, bool) {
	from, steal := stealCandidate(ctx)
	if from < 0 {
		return StealAttempt{}, false
	}
	if rng.Float64() >= StealAttemptRate(steal, from, ctx.Style) {
		return StealAttempt{}, false
	}
	p := StealSuccessRate(steal, from, ctx.CatcherArm, ctx.Hold, ctx.Style)
	return StealAttempt{
		Runner:  ctx.Bases[from],
		From:    from,
		To:      from + 1,
		P:       p,
		Success: rng.Float64() < p,
	}, true
}
