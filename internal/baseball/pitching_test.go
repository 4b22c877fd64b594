package baseball

import (
	"errors"
	"math"
	"testing"
)

func TestFatigue(t *testing.T) {
	tests := []struct {
		count     int
		stamina   float64
		threshold int
		deg       float64
	}{
		{50, 50, 80, 0},
		{80, 50, 80, 0},
		{100, 50, 80, 0.10},
		{100, 100, 100, 0},
		{160, 50, 80, MaxDegradation},
		{90, 30, 72, 0.09},
	}
	for _, tt := range tests {
		st := Fatigue(tt.count, tt.stamina)
		if st.Threshold != tt.threshold || math.Abs(st.Degradation-tt.deg) > 1e-9 {
			t.Fatalf("Fatigue(%d, %.0f) = %+v, want threshold %d degradation %.3f",
				tt.count, tt.stamina, st, tt.threshold, tt.deg)
		}
		if st.OverThreshold != (tt.count > tt.threshold) {
			t.Fatalf("Fatigue(%d, %.0f) over threshold = %v", tt.count, tt.stamina, st.OverThreshold)
		}
	}
}

func TestEffectiveRope_Floor(t *testing.T) {
	ctx := SubstitutionContext{
		PitchCount: 105,
		Inning:     8,
		Bases:      BaseState{player("a", 50), player("b", 50), nil},
		ScoreDiff:  1,
	}
	if got := EffectiveRope(ctx, 4); got != MinRope {
		t.Fatalf("rope = %.2f, want floor %.1f", got, MinRope)
	}
	ctx.Inning, ctx.PitchCount = 7, 105
	if got := EffectiveRope(ctx, 4); got != 1 {
		t.Fatalf("rope at 105 pitches in the 7th = %.2f, want 1", got)
	}
	if got := EffectiveRope(SubstitutionContext{PitchCount: 30, Inning: 2, ScoreDiff: 6}, 4); got != 4 {
		t.Fatalf("early rope = %.2f, want untouched 4", got)
	}
	if got := EffectiveRope(SubstitutionContext{PitchCount: 65, Inning: 6, ScoreDiff: 5}, 4); got != 3 {
		t.Fatalf("mid-game rope = %.2f, want 3", got)
	}
}

func TestRopePolicy(t *testing.T) {
	policy := RopePolicy{Strategy: DefaultStrategy().Pitching}
	late := SubstitutionContext{
		Role:             RoleStarter,
		PitchCount:       105,
		Inning:           8,
		Bases:            BaseState{player("a", 50), player("b", 50), nil},
		RunsThisInning:   1,
		ScoreDiff:        1,
		BullpenAvailable: 3,
	}
	if d := policy.Decide(late); !d.Replace || d.Reason != "rope" || d.Rope != MinRope {
		t.Fatalf("late-game single run: %+v", d)
	}

	late.BullpenAvailable = 0
	if d := policy.Decide(late); d.Replace {
		t.Fatalf("replaced with an empty bullpen: %+v", d)
	}

	meltdown := SubstitutionContext{Role: RoleStarter, PitchCount: 40, Inning: 2, ScoreDiff: 8, HitsThisInning: 4, BullpenAvailable: 2}
	if d := policy.Decide(meltdown); !d.Replace || d.Reason != "meltdown" {
		t.Fatalf("meltdown: %+v", d)
	}

	tired := SubstitutionContext{Role: RoleReliever, PitchCount: 40, Inning: 3, ScoreDiff: 8, BullpenAvailable: 2}
	if d := policy.Decide(tired); !d.Replace || d.Reason != "pitch_count" {
		t.Fatalf("reliever at cap: %+v", d)
	}

	cruising := SubstitutionContext{Role: RoleStarter, PitchCount: 40, Inning: 3, ScoreDiff: 8, BullpenAvailable: 2}
	if d := policy.Decide(cruising); d.Replace {
		t.Fatalf("pulled a cruising starter: %+v", d)
	}
}

func TestShouldUseCloser(t *testing.T) {
	tests := []struct {
		inning, lead int
		want         bool
	}{
		{8, 2, false},
		{9, 0, false},
		{9, 1, true},
		{9, 3, true},
		{9, 4, false},
		{11, 2, true},
		{9, -1, false},
	}
	for _, tt := range tests {
		if got := ShouldUseCloser(tt.inning, tt.lead); got != tt.want {
			t.Fatalf("ShouldUseCloser(%d, %d) = %v", tt.inning, tt.lead, got)
		}
	}
}

func TestPitchLedger_UnknownPitcherIsAnError(t *testing.T) {
	staff := NewStaff(player("sp", 50), []*Player{player("rp", 50)}, "")
	l := NewPitchLedger(staff)
	if err := l.Add("rp", 12); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if n, err := l.Count("rp"); err != nil || n != 12 {
		t.Fatalf("Count = %d, %v", n, err)
	}
	if err := l.Add("stranger", 3); !errors.Is(err, ErrUnknownPitcher) {
		t.Fatalf("Add unknown: %v", err)
	}
	if _, err := l.Count("stranger"); !errors.Is(err, ErrUnknownPitcher) {
		t.Fatalf("Count unknown: %v", err)
	}
}

func TestEstimatePitches(t *testing.T) {
	rng := newRand(9)
	for i := 0; i < 200; i++ {
		if n := EstimatePitches(rng, OutcomeIntentionalWalk); n != 0 {
			t.Fatalf("intentional walk threw %d pitches", n)
		}
		if n := EstimatePitches(rng, OutcomeWalk); n < 5 || n > 7 {
			t.Fatalf("walk took %d pitches", n)
		}
		if n := EstimatePitches(rng, OutcomeSingle); n < 2 || n > 5 {
			t.Fatalf("ball in play took %d pitches", n)
		}
	}
}
