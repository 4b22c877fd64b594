package baseball

import (
	"math"
	"testing"
)

func TestCheckIntentionalWalk(t *testing.T) {
	slugger := player("slugger", 90)
	scrub := player("scrub", 40)
	base := IBBContext{
		Batter:    slugger,
		OnDeck:    scrub,
		Inning:    8,
		ScoreDiff: -1,
		Strategy:  DefaultStrategy().Pitching,
	}
	if !CheckIntentionalWalk(base) {
		t.Fatalf("expected an intentional walk late and close with first open")
	}

	tests := []struct {
		name   string
		mutate func(c *IBBContext)
	}{
		{"first occupied", func(c *IBBContext) { c.Bases[First] = player("r", 50) }},
		{"too early", func(c *IBBContext) { c.Inning = 6 }},
		{"not close", func(c *IBBContext) { c.ScoreDiff = 3 }},
		{"small edge", func(c *IBBContext) { c.OnDeck = player("decent", 80) }},
		{"strategy forbids", func(c *IBBContext) { c.Strategy.IntentionalWalks = false }},
	}
	for _, tt := range tests {
		c := base
		tt.mutate(&c)
		if CheckIntentionalWalk(c) {
			t.Fatalf("%s: walked anyway", tt.name)
		}
	}
}

func TestMisplayRates_Clamped(t *testing.T) {
	for _, c := range []float64{0, 50, 100} {
		wp := WildPitchRate(PitchingComposites{Control: c})
		if wp < 0.002 || wp > 0.03 {
			t.Fatalf("wild pitch rate %.4f at control %.0f", wp, c)
		}
		pb := PassedBallRate(c)
		if pb < 0.001 || pb > 0.02 {
			t.Fatalf("passed ball rate %.4f at blocking %.0f", pb, c)
		}
	}
	if WildPitchRate(PitchingComposites{Control: 20}) <= WildPitchRate(PitchingComposites{Control: 80}) {
		t.Fatalf("wild pitches should fall as control rises")
	}
}

func TestCheckWildPitch_EmptyBasesNeverRolls(t *testing.T) {
	rng := newRand(1)
	for i := 0; i < 1000; i++ {
		if CheckWildPitch(rng, PitchingComposites{}, 0, BaseState{}) != NoMisplay {
			t.Fatalf("misplay with the bases empty")
		}
	}
}

func TestAdvanceOnMisplay_OnlyIntoOpenBases(t *testing.T) {
	a, b, c := player("a", 50), player("b", 50), player("c", 50)
	rng := newRand(4)
	for i := 0; i < 2000; i++ {
		before := BaseState{a, b, c}
		if i%2 == 1 {
			before = BaseState{a, nil, c}
		}
		after, advances, scored := AdvanceOnMisplay(rng, before)
		if err := after.Validate(); err != nil {
			t.Fatalf("%v", err)
		}
		if after.Count()+len(scored) != before.Count() {
			t.Fatalf("runner lost: %v -> %v, %d scored", before, after, len(scored))
		}
		for _, adv := range advances {
			if adv.To != adv.From+1 {
				t.Fatalf("advance skipped a base: %+v", adv)
			}
		}
		// a trailing runner can only move once the runner ahead has
		if before[Second] != nil && after[Second] == b && after[First] == nil {
			t.Fatalf("runner from first moved into an occupied second")
		}
	}
}

func TestStealCandidate_HomeGated(t *testing.T) {
	runner := player("r", 90)
	ctx := StealContext{Bases: BaseState{nil, nil, runner}, Inning: 8, Outs: 2, ScoreDiff: -1}
	if from, _ := stealCandidate(ctx); from != -1 {
		t.Fatalf("steal of home allowed in the 8th")
	}
	ctx.Inning = 9
	if from, _ := stealCandidate(ctx); from != Third {
		t.Fatalf("steal of home not allowed in the 9th, down one, two outs")
	}
	ctx.Outs = 1
	if from, _ := stealCandidate(ctx); from != -1 {
		t.Fatalf("steal of home allowed with one out")
	}
}

func TestStealCandidate_FastestWithOpenBase(t *testing.T) {
	slow, fast := player("slow", 40), player("fast", 90)
	ctx := StealContext{Bases: BaseState{fast, slow, nil}, Inning: 3}
	from, _ := stealCandidate(ctx)
	if from != Second {
		t.Fatalf("candidate from %d, want second (first is blocked)", from)
	}
	ctx.Bases = BaseState{fast, nil, slow}
	if from, _ := stealCandidate(ctx); from != First {
		t.Fatalf("candidate from %d, want first", from)
	}
}

func TestStealSuccessRate(t *testing.T) {
	neutral := StealSuccessRate(50, First, 50, 50, RunningBalanced)
	if math.Abs(neutral-StealSuccessBase) > 1e-9 {
		t.Fatalf("neutral steal = %.3f, want %.2f", neutral, StealSuccessBase)
	}
	if StealSuccessRate(50, First, 50, 50, RunningConservative) <= StealSuccessRate(50, First, 50, 50, RunningAggressive) {
		t.Fatalf("conservative runners should pick better spots")
	}
	if home := StealSuccessRate(50, Third, 50, 50, RunningBalanced); math.Abs(home-StealHomeBase) > 1e-9 {
		t.Fatalf("steal of home = %.3f", home)
	}
	for _, s := range []float64{0, 100} {
		p := StealSuccessRate(s, First, 100-s, 100-s, RunningAggressive)
		if p < 0.05 || p > 0.95 {
			t.Fatalf("steal success %.3f out of bounds", p)
		}
	}
}
