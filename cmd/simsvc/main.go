package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"sportsim/internal/baseball"
	"sportsim/internal/config"
	"sportsim/internal/match"
	"sportsim/internal/roster"
	"sportsim/internal/util"
)

func main() {
	var ev config.SimEnv
	if err := config.ParseEnv(&ev); err != nil {
		log.Fatalf("simsvc: %v", err)
	}

	var cfgDir, out, homeID, awayID string
	var seed int64
	var n, workers, maxExtra int
	var saveLog, mercy bool
	flag.StringVar(&cfgDir, "config", ev.ConfigDir, "config dir")
	flag.StringVar(&out, "out", ev.Out, "output file (single) or summary file (batch)")
	flag.StringVar(&homeID, "home", ev.Home, "home team id")
	flag.StringVar(&awayID, "away", ev.Away, "away team id")
	flag.Int64Var(&seed, "seed", ev.Seed, "seed")
	flag.IntVar(&n, "n", ev.Runs, "number of simulations")
	flag.IntVar(&workers, "workers", ev.Workers, "batch workers")
	flag.IntVar(&maxExtra, "max-extra", ev.MaxExtraInnings, "extra innings before a tie is declared")
	flag.BoolVar(&mercy, "mercy", ev.MercyRule, "end the game on a 10-run lead from the 7th")
	flag.BoolVar(&saveLog, "log", ev.SaveLog, "save play-by-play and at-bat diagnostics when n==1")
	flag.Parse()

	home, away, err := roster.Load(cfgDir, homeID, awayID)
	if err != nil {
		log.Fatalf("simsvc: load teams: %v", err)
	}
	input := baseball.GameInput{Home: home, Away: away, UseMercyRule: mercy, MaxExtraInnings: maxExtra}

	if n <= 1 {
		rng := util.New(seed)
		env := &baseball.Env{Rng: rng, Diagnostics: saveLog}
		res, err := baseball.SimulateGame(env, input)
		if err != nil {
			log.Fatalf("simsvc: %v", err)
		}
		m, err := match.FromBaseball(res, rng)
		if err != nil {
			log.Fatalf("simsvc: %v", err)
		}
		if !saveLog {
			res.PlayByPlay, res.HalfInnings = nil, nil
		}
		doc := struct {
			Game  baseball.BaseballGameResult `json:"game"`
			Match match.MatchResult           `json:"match"`
		}{res, m}
		if err := os.WriteFile(out, baseball.MarshalPretty(doc), 0644); err != nil {
			log.Fatalf("simsvc: %v", err)
		}
		fmt.Printf("Single simsvc finished. %s %d, %s %d in %d innings -> %s\n",
			res.AwayTeamID, res.AwayScore, res.HomeTeamID, res.HomeScore, res.Innings, out)
		return
	}

	type stat struct {
		HomeWins int
		AwayWins int
		Ties     int
		Extra    int
		Mercy    int
		Failed   int
		SumHome  int
		SumAway  int
	}
	var st stat
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				env := &baseball.Env{Rng: util.New(util.Derive(seed, workerID, i))}
				res, err := baseball.SimulateGame(env, input)

				mu.Lock()
				if err != nil {
					log.Printf("simsvc: game %d: %v", i, err)
					st.Failed++
					mu.Unlock()
					continue
				}
				switch {
				case res.Tie:
					st.Ties++
				case res.Winner == res.HomeTeamID:
					st.HomeWins++
				default:
					st.AwayWins++
				}
				if res.Extra() {
					st.Extra++
				}
				if res.Mercy {
					st.Mercy++
				}
				st.SumHome += res.HomeScore
				st.SumAway += res.AwayScore
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	played := n - st.Failed
	ratio := func(v int) float64 {
		if played == 0 {
			return 0
		}
		return float64(v) / float64(played)
	}
	summary := map[string]any{
		"runs":           n,
		"failed":         st.Failed,
		"home":           home.ID,
		"away":           away.ID,
		"home_win_rate":  ratio(st.HomeWins),
		"away_win_rate":  ratio(st.AwayWins),
		"tie_rate":       ratio(st.Ties),
		"extra_innings":  ratio(st.Extra),
		"mercy_rate":     ratio(st.Mercy),
		"avg_home_score": ratio(st.SumHome),
		"avg_away_score": ratio(st.SumAway),
	}
	if err := os.WriteFile(out, baseball.MarshalPretty(summary), 0644); err != nil {
		log.Fatalf("simsvc: %v", err)
	}
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}
