package baseball

import "fmt"

const (
	First  = 0
	Second = 1
	Third  = 2
)

// BaseState is first, second and third base. A nil slot is empty.
type BaseState [3]*Player

// BaseSnapshot is the player IDs on each base, "" when empty.
type BaseSnapshot [3]string

func (b BaseState) Snapshot() BaseSnapshot {
	var s BaseSnapshot
	for i, p := range b {
		if p != nil {
			s[i] = p.ID
		}
	}
	return s
}

func (b BaseState) Occupied(base int) bool { return b[base] != nil }

func (b BaseState) Count() int {
	n := 0
	for _, p := range b {
		if p != nil {
			n++
		}
	}
	return n
}

func (b BaseState) Empty() bool { return b.Count() == 0 }

// ScoringPosition reports a runner on second or third.
func (b BaseState) ScoringPosition() bool { return b[Second] != nil || b[Third] != nil }

// ForcedFrom reports whether the runner on base would be forced by the
// batter reaching first.
func (b BaseState) ForcedFrom(base int) bool {
	for i := 0; i <= base; i++ {
		if b[i] == nil {
			return false
		}
	}
	return true
}

// ForceAdvance puts batter on first and pushes forced runners ahead one
// base, the way a walk does. It returns the runner forced home, if any.
func (b *BaseState) ForceAdvance(batter *Player) *Player {
	var scored *Player
	if b[First] != nil {
		if b[Second] != nil {
			if b[Third] != nil {
				scored = b[Third]
			}
			b[Third] = b[Second]
		}
		b[Second] = b[First]
	}
	b[First] = batter
	return scored
}

func (b BaseState) String() string {
	s := b.Snapshot()
	mark := func(id string) string {
		if id == "" {
			return "-"
		}
		return id
	}
	return fmt.Sprintf("[%s %s %s]", mark(s[0]), mark(s[1]), mark(s[2]))
}

// Validate checks that no player occupies two bases.
func (b BaseState) Validate() error {
	seen := map[string]int{}
	for i, p := range b {
		if p == nil {
			continue
		}
		if prev, ok := seen[p.ID]; ok {
			return fmt.Errorf("runner %s on base %d and %d", p.ID, prev+1, i+1)
		}
		seen[p.ID] = i
	}
	return nil
}

// ReachedVia records how a runner got on base.
type ReachedVia string

const (
	ViaHit             ReachedVia = "hit"
	ViaWalk            ReachedVia = "walk"
	ViaHitByPitch      ReachedVia = "hit_by_pitch"
	ViaIntentionalWalk ReachedVia = "intentional_walk"
	ViaError           ReachedVia = "error"
	ViaFieldersChoice  ReachedVia = "fielders_choice"
)

// RunnerOrigin travels with a runner from the moment they reach until they
// score or are put out, across any pitching change.
type RunnerOrigin struct {
	ReachedVia           ReachedVia `json:"reached_via"`
	ResponsiblePitcherID string     `json:"responsible_pitcher_id"`
}

// Origins is keyed by runner ID and lives for one half-inning.
type Origins map[string]RunnerOrigin

// Check verifies every occupant has exactly one origin and nothing else does.
func (o Origins) Check(b BaseState) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if len(o) != b.Count() {
		return fmt.Errorf("%d origins for %d runners on %s", len(o), b.Count(), b)
	}
	for _, p := range b {
		if p == nil {
			continue
		}
		if _, ok := o[p.ID]; !ok {
			return fmt.Errorf("runner %s has no origin", p.ID)
		}
	}
	return nil
}

// Charge returns the scored run for runner, attributing it to the pitcher
// recorded in the origin, or to current when the runner has none. A run is
// unearned on an error play or when the runner reached on an error.
func (o Origins) Charge(runner *Player, current string, errorPlay bool) ScoredRun {
	origin, ok := o[runner.ID]
	responsible := current
	if ok && origin.ResponsiblePitcherID != "" {
		responsible = origin.ResponsiblePitcherID
	}
	earned := !errorPlay && !(ok && origin.ReachedVia == ViaError)
	return ScoredRun{RunnerID: runner.ID, ResponsiblePitcherID: responsible, Earned: earned}
}

// ScoredRun attributes one run.
type ScoredRun struct {
	RunnerID             string `json:"runner_id"`
	ResponsiblePitcherID string `json:"responsible_pitcher_id"`
	Earned               bool   `json:"earned"`
}
