package config

type TeamsConfig struct {
	Teams []TeamDef `yaml:"teams"`
}

// Team returns the definition with the given id.
func (tc *TeamsConfig) Team(id string) (*TeamDef, bool) {
	if tc == nil {
		return nil, false
	}
	for i := range tc.Teams {
		if tc.Teams[i].ID == id {
			return &tc.Teams[i], true
		}
	}
	return nil, false
}

type TeamDef struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Strategy string            `yaml:"strategy"`
	Players  []PlayerDef       `yaml:"players"`
	Lineup   []string          `yaml:"lineup"`
	Defense  map[string]string `yaml:"defense"` // position -> player id
	Starter  string            `yaml:"starter"`
	Bullpen  []string          `yaml:"bullpen"`
	Closer   string            `yaml:"closer"`
	TwoWay   string            `yaml:"two_way"`
	Note     string            `yaml:"note"`
}

type PlayerDef struct {
	ID      string         `yaml:"id"`
	Name    string         `yaml:"name"`
	Bats    string         `yaml:"bats"`
	Throws  string         `yaml:"throws"`
	Ratings map[string]int `yaml:"ratings"`
	Note    string         `yaml:"note"`
}
