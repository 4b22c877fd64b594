package roster

import (
	"errors"
	"fmt"
	"strings"

	"sportsim/internal/baseball"
	"sportsim/internal/config"
)

var ErrUnknownPlayer = errors.New("unknown player")

// Players converts player definitions, rejecting duplicate ids and unknown
// attribute names.
func Players(defs []config.PlayerDef) (map[string]*baseball.Player, error) {
	out := make(map[string]*baseball.Player, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("player %q has no id", d.Name)
		}
		if _, dup := out[d.ID]; dup {
			return nil, fmt.Errorf("player %s: %w", d.ID, baseball.ErrDuplicatePlayer)
		}
		p := &baseball.Player{
			ID:     d.ID,
			Name:   d.Name,
			Bats:   baseball.Hand(strings.ToUpper(d.Bats)),
			Throws: baseball.Hand(strings.ToUpper(d.Throws)),
		}
		for name, v := range d.Ratings {
			a, err := baseball.ParseAttr(name)
			if err != nil {
				return nil, fmt.Errorf("player %s: %w", d.ID, err)
			}
			p.Ratings[a] = v
		}
		out[d.ID] = p
	}
	return out, nil
}

// BuildTeam assembles a validated TeamGameState from its definition. The
// strategy comes from book by team id, then by the team's strategy id.
func BuildTeam(def *config.TeamDef, book *baseball.StrategyBook) (*baseball.TeamGameState, error) {
	if def == nil {
		return nil, errors.New("nil team definition")
	}
	players, err := Players(def.Players)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", def.ID, err)
	}
	lookup := func(id string) (*baseball.Player, error) {
		p, ok := players[id]
		if !ok {
			return nil, fmt.Errorf("team %s, %q: %w", def.ID, id, ErrUnknownPlayer)
		}
		return p, nil
	}

	lineup := make([]*baseball.Player, 0, len(def.Lineup))
	for _, id := range def.Lineup {
		p, err := lookup(id)
		if err != nil {
			return nil, err
		}
		lineup = append(lineup, p)
	}

	defense := baseball.Defense{}
	for pos, id := range def.Defense {
		position, err := baseball.ParsePosition(pos)
		if err != nil {
			return nil, fmt.Errorf("team %s: %w", def.ID, err)
		}
		p, err := lookup(id)
		if err != nil {
			return nil, err
		}
		defense[position] = p
	}

	if def.Starter == "" {
		return nil, fmt.Errorf("team %s: %w", def.ID, baseball.ErrNoPitcher)
	}
	starter, err := lookup(def.Starter)
	if err != nil {
		return nil, err
	}
	bullpen := make([]*baseball.Player, 0, len(def.Bullpen))
	for _, id := range def.Bullpen {
		p, err := lookup(id)
		if err != nil {
			return nil, err
		}
		bullpen = append(bullpen, p)
	}
	if def.Closer != "" {
		if _, err := lookup(def.Closer); err != nil {
			return nil, err
		}
	}

	st, err := book.Lookup(def.ID, def.Strategy)
	if err != nil {
		return nil, err
	}
	name := def.Name
	if name == "" {
		name = def.ID
	}
	return baseball.NewTeamGameState(def.ID, name, lineup, defense, starter, bullpen,
		def.Closer, def.TwoWay, st)
}

// Load reads the config directory and builds the two named teams.
func Load(dir, homeID, awayID string) (home, away *baseball.TeamGameState, err error) {
	tc, sc, err := config.LoadAll(dir)
	if err != nil {
		return nil, nil, err
	}
	book, err := baseball.NewStrategyBook(sc)
	if err != nil {
		return nil, nil, err
	}
	build := func(id string) (*baseball.TeamGameState, error) {
		def, ok := tc.Team(id)
		if !ok {
			return nil, fmt.Errorf("team %q not found in %s", id, dir)
		}
		return BuildTeam(def, book)
	}
	if home, err = build(homeID); err != nil {
		return nil, nil, err
	}
	if away, err = build(awayID); err != nil {
		return nil, nil, err
	}
	return home, away, nil
}
