package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadAll reads teams.yaml and strategies.yaml from dir. A missing
// strategies file is not an error; every team then plays the defaults.
func LoadAll(dir string) (*TeamsConfig, *StrategiesConfig, error) {
	var tc TeamsConfig
	var sc StrategiesConfig
	if err := loadYAML(filepath.Join(dir, "teams.yaml"), &tc); err != nil {
		return nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "strategies.yaml"), &sc); err != nil && !os.IsNotExist(err) {
		return nil, nil, err
	}
	return &tc, &sc, nil
}
