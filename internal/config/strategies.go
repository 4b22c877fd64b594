package config

type StrategiesConfig struct {
	Strategies []StrategyDef `yaml:"strategies"`
}

// StrategyDef is one tactics profile. Profiles with Team set apply to that
// team; ID "*" is the league default.
type StrategyDef struct {
	ID               string  `yaml:"id"`
	Team             string  `yaml:"team"`
	PlateApproach    string  `yaml:"plate_approach"`
	SwingStyle       string  `yaml:"swing_style"`
	Baserunning      string  `yaml:"baserunning"`
	BaseRope         float64 `yaml:"base_rope"`
	StarterPitchCap  int     `yaml:"starter_pitch_cap"`
	RelieverPitchCap int     `yaml:"reliever_pitch_cap"`
	MeltdownHits     int     `yaml:"meltdown_hits"`
	UseCloser        *bool   `yaml:"use_closer"`
	IntentionalWalks *bool   `yaml:"intentional_walks"`
	Note             string  `yaml:"note"`
}
