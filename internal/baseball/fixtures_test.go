package baseball

import (
	"fmt"
	"math/rand"
	"testing"
)

func player(id string, rating int) *Player {
	p := &Player{ID: id, Name: id, Bats: HandRight, Throws: HandRight}
	for i := range p.Ratings {
		p.Ratings[i] = rating
	}
	return p
}

func withRatings(p *Player, r map[Attr]int) *Player {
	for a, v := range r {
		p.Ratings[a] = v
	}
	return p
}

// buildTeam returns a valid team: nine hitters, the first of them catching,
// a starter, three relievers and a closer. Every rating is set to hit and
// pitch respectively.
func buildTeam(t *testing.T, id string, hit, pitch int) *TeamGameState {
	t.Helper()
	lineup := make([]*Player, LineupSize)
	for i := range lineup {
		lineup[i] = player(fmt.Sprintf("%s_b%d", id, i+1), hit)
	}
	def := Defense{PosC: lineup[0]}
	for i, pos := range append(append([]Position{}, InfieldPositions...), OutfieldPositions...) {
		def[pos] = lineup[i+1]
	}
	starter := player(id+"_sp", pitch)
	var bullpen []*Player
	for i := 1; i <= 3; i++ {
		bullpen = append(bullpen, player(fmt.Sprintf("%s_rp%d", id, i), pitch))
	}
	closer := player(id+"_cl", pitch)
	bullpen = append(bullpen, closer)
	team, err := NewTeamGameState(id, id, lineup, def, starter, bullpen, closer.ID, "", DefaultStrategy())
	if err != nil {
		t.Fatalf("NewTeamGameState(%s): %v", id, err)
	}
	return team
}

func neutralInput(bases BaseState, outs int) AtBatInput {
	return AtBatInput{
		Batter:  player("batter", 50),
		Pitcher: player("pitcher", 50),
		Ratings: RateDefense(nil),
		Bases:   bases,
		Origins: originsFor(bases, "starter"),
		Inning:  1,
		Outs:    outs,
		Batting: DefaultStrategy().Batting,
	}
}

func originsFor(b BaseState, pitcherID string) Origins {
	o := Origins{}
	for _, p := range b {
		if p != nil {
			o[p.ID] = RunnerOrigin{ReachedVia: ViaHit, ResponsiblePitcherID: pitcherID}
		}
	}
	return o
}

func newRand(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }
