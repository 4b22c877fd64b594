package baseball

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	RegulationInnings      = 9
	DefaultMaxExtraInnings = 6
	MercyInning            = 7
	MercyMargin            = 10
)

var ErrMissingTeam = errors.New("game needs a home and an away team")

type GameInput struct {
	Home            *TeamGameState
	Away            *TeamGameState
	UseMercyRule    bool
	MaxExtraInnings int // 0 means DefaultMaxExtraInnings
	// HomeStrategy and AwayStrategy, when set, replace the team's own
	// strategy for this game only.
	HomeStrategy *Strategy
	AwayStrategy *Strategy
}

// LineScore holds runs per inning. Home is one short when the bottom of the
// last inning was not needed.
type LineScore struct {
	Away []int `json:"away"`
	Home []int `json:"home"`
}

type BaseballGameResult struct {
	HomeTeamID  string             `json:"home_team_id"`
	AwayTeamID  string             `json:"away_team_id"`
	HomeScore   int                `json:"home_score"`
	AwayScore   int                `json:"away_score"`
	Winner      string             `json:"winner,omitempty"`
	Innings     int                `json:"innings"`
	Mercy       bool               `json:"mercy,omitempty"`
	WalkOff     bool               `json:"walk_off,omitempty"`
	Tie         bool               `json:"tie,omitempty"`
	LineScore   LineScore          `json:"line_score"`
	Box         BoxScore           `json:"box_score"`
	PlayByPlay  []string           `json:"play_by_play,omitempty"`
	HalfInnings []HalfInningResult `json:"half_innings,omitempty"`
}

// Extra reports whether the game went past regulation.
func (r BaseballGameResult) Extra() bool { return r.Innings > RegulationInnings }

// SimulateGame plays a full game on clones of the input teams; the caller's
// values are never mutated.
func SimulateGame(env *Env, in GameInput) (BaseballGameResult, error) {
	if in.Home == nil || in.Away == nil {
		return BaseballGameResult{}, ErrMissingTeam
	}
	if err := in.Home.Validate(); err != nil {
		return BaseballGameResult{}, fmt.Errorf("home: %w", err)
	}
	if err := in.Away.Validate(); err != nil {
		return BaseballGameResult{}, fmt.Errorf("away: %w", err)
	}
	home, away := in.Home.Clone(), in.Away.Clone()
	if in.HomeStrategy != nil {
		home.Strategy = in.HomeStrategy.withDefaults()
	}
	if in.AwayStrategy != nil {
		away.Strategy = in.AwayStrategy.withDefaults()
	}
	maxExtra := in.MaxExtraInnings
	if maxExtra <= 0 {
		maxExtra = DefaultMaxExtraInnings
	}
	lastInning := RegulationInnings + maxExtra

	res := BaseballGameResult{HomeTeamID: home.ID, AwayTeamID: away.ID}
	play := func(inning int, half Half, bat, field *TeamGameState, batScore, fieldScore int) (HalfInningResult, error) {
		h, err := PlayHalfInning(env, HalfInningInput{
			Inning:        inning,
			Half:          half,
			Batting:       bat,
			Fielding:      field,
			BattingScore:  batScore,
			FieldingScore: fieldScore,
			WalkOff:       half == Bottom && inning >= RegulationInnings,
		})
		if err != nil {
			return h, fmt.Errorf("%s of inning %d: %w", half, inning, err)
		}
		res.HalfInnings = append(res.HalfInnings, h)
		for _, ev := range h.Events {
			res.PlayByPlay = append(res.PlayByPlay, fmt.Sprintf("%s %d: %s", half, inning, ev.Header().Text))
		}
		return h, nil
	}
	mercy := func(inning, lead int) bool {
		return in.UseMercyRule && inning >= MercyInning && lead >= MercyMargin
	}

	for inning := 1; ; inning++ {
		res.Innings = inning
		top, err := play(inning, Top, away, home, res.AwayScore, res.HomeScore)
		if err != nil {
			return res, err
		}
		res.AwayScore += top.Runs
		res.LineScore.Away = append(res.LineScore.Away, top.Runs)

		// after the top only a home lead can end the game
		if mercy(inning, res.HomeScore-res.AwayScore) {
			res.Mercy = true
			break
		}
		if inning >= RegulationInnings && res.HomeScore > res.AwayScore {
			break
		}

		bottom, err := play(inning, Bottom, home, away, res.HomeScore, res.AwayScore)
		if err != nil {
			return res, err
		}
		res.HomeScore += bottom.Runs
		res.LineScore.Home = append(res.LineScore.Home, bottom.Runs)

		if bottom.WalkOff {
			res.WalkOff = true
			break
		}
		if mercy(inning, abs(res.HomeScore-res.AwayScore)) {
			res.Mercy = true
			break
		}
		if inning >= RegulationInnings && res.HomeScore != res.AwayScore {
			break
		}
		if inning >= lastInning {
			res.Tie = true
			break
		}
	}

	switch {
	case res.HomeScore > res.AwayScore:
		res.Winner = home.ID
	case res.AwayScore > res.HomeScore:
		res.Winner = away.ID
	default:
		res.Tie = true
	}
	res.Box = BuildBoxScore(res.HalfInnings)
	return res, nil
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
