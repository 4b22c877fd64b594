package match

import (
	"math/rand"
	"testing"

	"sportsim/internal/baseball"
)

func gameResult() baseball.BaseballGameResult {
	return baseball.BaseballGameResult{
		HomeTeamID: "harbor",
		AwayTeamID: "ridge",
		HomeScore:  5,
		AwayScore:  3,
		Winner:     "harbor",
		Innings:    10,
		LineScore: baseball.LineScore{
			Away: []int{0, 1, 0, 0, 2, 0, 0, 0, 0, 0},
			Home: []int{1, 0, 0, 0, 0, 2, 0, 0, 0, 2},
		},
		Box: baseball.BoxScore{
			Batting: []baseball.BattingLine{
				{PlayerID: "h1", TeamID: "harbor", PA: 5, AB: 4, H: 2, HR: 1, RBI: 3},
				{PlayerID: "h2", TeamID: "harbor", PA: 4, AB: 4, H: 1, Doubles: 1},
				{PlayerID: "h3", TeamID: "harbor", PA: 4, AB: 4, H: 1},
				{PlayerID: "h4", TeamID: "harbor", PA: 4, AB: 4},
				{PlayerID: "r1", TeamID: "ridge", PA: 4, AB: 4, H: 1, RBI: 1},
			},
			Pitching: []baseball.PitchingLine{
				{PlayerID: "hp1", TeamID: "harbor", Outs: 21, IP: "7.0", ER: 3},
				{PlayerID: "hp2", TeamID: "harbor", Outs: 9, IP: "3.0"},
				{PlayerID: "rp1", TeamID: "ridge", Outs: 29, IP: "9.2", ER: 5},
			},
		},
	}
}

func TestFromBaseball(t *testing.T) {
	m, err := FromBaseball(gameResult(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("FromBaseball: %v", err)
	}
	if m.Sport != SportBaseball || m.WinnerID != "harbor" || m.LoserID != "ridge" || m.Tie {
		t.Fatalf("result %+v", m)
	}
	if !m.Overtime || m.Periods != 10 || len(m.HomePeriods) != 10 {
		t.Fatalf("periods %d %v, overtime %v", m.Periods, m.HomePeriods, m.Overtime)
	}

	var harbor []string
	for _, h := range m.Headliners {
		if h.TeamID == "harbor" {
			harbor = append(harbor, h.PlayerID)
		}
	}
	want := []string{"h1", "h2", "hp1"}
	if len(harbor) != len(want) {
		t.Fatalf("harbor headliners %v, want %v", harbor, want)
	}
	for i := range want {
		if harbor[i] != want[i] {
			t.Fatalf("harbor headliners %v, want %v", harbor, want)
		}
	}
}

func TestFromBaseball_ReproducibleIDs(t *testing.T) {
	a, _ := FromBaseball(gameResult(), rand.New(rand.NewSource(42)))
	b, _ := FromBaseball(gameResult(), rand.New(rand.NewSource(42)))
	c, _ := FromBaseball(gameResult(), rand.New(rand.NewSource(43)))
	if a.ID != b.ID {
		t.Fatalf("same seed gave %s and %s", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Fatalf("different seeds gave the same id %s", a.ID)
	}
}

func TestFromBaseball_TieAndMercy(t *testing.T) {
	res := gameResult()
	res.HomeScore, res.AwayScore, res.Winner, res.Tie = 3, 3, "", true
	m, err := FromBaseball(res, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("FromBaseball: %v", err)
	}
	if !m.Tie || m.WinnerID != "" || m.LoserID != "" {
		t.Fatalf("tie recorded as %+v", m)
	}

	res = gameResult()
	res.Innings, res.Mercy, res.Winner = 7, true, "ridge"
	m, _ = FromBaseball(res, rand.New(rand.NewSource(1)))
	if m.ShortenedWhy != "mercy" || m.Overtime || m.LoserID != "harbor" {
		t.Fatalf("mercy game recorded as %+v", m)
	}
}
