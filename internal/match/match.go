// Package match converts sport-specific game results into the
// sport-neutral record consumed by scheduling and standings.
package match

import (
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"sportsim/internal/baseball"
)

const SportBaseball = "baseball"

type PlayerStat struct {
	PlayerID string         `json:"player_id"`
	TeamID   string         `json:"team_id"`
	Stats    map[string]int `json:"stats"`
	Summary  string         `json:"summary"`
}

type MatchResult struct {
	ID           string       `json:"id"`
	Sport        string       `json:"sport"`
	HomeTeamID   string       `json:"home_team_id"`
	AwayTeamID   string       `json:"away_team_id"`
	HomeScore    int          `json:"home_score"`
	AwayScore    int          `json:"away_score"`
	WinnerID     string       `json:"winner_id,omitempty"`
	LoserID      string       `json:"loser_id,omitempty"`
	Tie          bool         `json:"tie,omitempty"`
	Periods      int          `json:"periods"`
	HomePeriods  []int        `json:"home_periods"`
	AwayPeriods  []int        `json:"away_periods"`
	Overtime     bool         `json:"overtime,omitempty"`
	Headliners   []PlayerStat `json:"headliners,omitempty"`
	ShortenedWhy string       `json:"shortened,omitempty"`
}

// maxHeadliners per team.
const maxHeadliners = 3

// FromBaseball builds the match record for a finished game. The id is a
// UUIDv4 read from ids, so a seeded reader gives reproducible ids.
func FromBaseball(res baseball.BaseballGameResult, ids io.Reader) (MatchResult, error) {
	id, err := uuid.NewRandomFromReader(ids)
	if err != nil {
		return MatchResult{}, fmt.Errorf("match id: %w", err)
	}
	m := MatchResult{
		ID:          id.String(),
		Sport:       SportBaseball,
		HomeTeamID:  res.HomeTeamID,
		AwayTeamID:  res.AwayTeamID,
		HomeScore:   res.HomeScore,
		AwayScore:   res.AwayScore,
		Tie:         res.Tie,
		Periods:     res.Innings,
		HomePeriods: append([]int(nil), res.LineScore.Home...),
		AwayPeriods: append([]int(nil), res.LineScore.Away...),
		Overtime:    res.Extra(),
	}
	if res.Mercy {
		m.ShortenedWhy = "mercy"
	}
	if !res.Tie {
		m.WinnerID = res.Winner
		m.LoserID = res.HomeTeamID
		if res.Winner == res.HomeTeamID {
			m.LoserID = res.AwayTeamID
		}
	}
	for _, team := range []string{res.HomeTeamID, res.AwayTeamID} {
		m.Headliners = append(m.Headliners, headliners(res.Box, team)...)
	}
	return m, nil
}

// headliners picks a team's best hitters by total bases plus RBI, then its
// pitcher with the most outs.
func headliners(box baseball.BoxScore, teamID string) []PlayerStat {
	var hitters []baseball.BattingLine
	for _, l := range box.Batting {
		if l.TeamID == teamID && l.PA > 0 {
			hitters = append(hitters, l)
		}
	}
	score := func(l baseball.BattingLine) int {
		singles := l.H - l.Doubles - l.Triples - l.HR
		return singles + 2*l.Doubles + 3*l.Triples + 4*l.HR + l.RBI
	}
	sort.SliceStable(hitters, func(i, j int) bool { return score(hitters[i]) > score(hitters[j]) })

	var out []PlayerStat
	for _, l := range hitters {
		if len(out) == maxHeadliners-1 || score(l) == 0 {
			break
		}
		out = append(out, PlayerStat{
			PlayerID: l.PlayerID,
			TeamID:   teamID,
			Stats:    map[string]int{"ab": l.AB, "h": l.H, "hr": l.HR, "rbi": l.RBI, "r": l.R},
			Summary:  fmt.Sprintf("%d-%d, %d HR, %d RBI", l.H, l.AB, l.HR, l.RBI),
		})
	}

	var ace *baseball.PitchingLine
	for i := range box.Pitching {
		l := &box.Pitching[i]
		if l.TeamID == teamID && (ace == nil || l.Outs > ace.Outs) {
			ace = l
		}
	}
	if ace != nil {
		out = append(out, PlayerStat{
			PlayerID: ace.PlayerID,
			TeamID:   teamID,
			Stats:    map[string]int{"outs": ace.Outs, "h": ace.H, "er": ace.ER, "so": ace.SO, "bb": ace.BB},
			Summary:  fmt.Sprintf("%s IP, %d H, %d ER, %d K", ace.IP, ace.H, ace.ER, ace.SO),
		})
	}
	return out
}
