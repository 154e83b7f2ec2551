// Package feeders provides configuration feeders for reading logging
// configuration from YAML, TOML and JSON files and from environment
// variables. Feeders populate an existing struct in place, so they stack:
// feed defaults first, then a file, then the environment.
package feeders

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YamlFeeder is a feeder that reads YAML files
type YamlFeeder struct {
	Path string
}

// NewYamlFeeder creates a new YamlFeeder that reads from the specified YAML file
func NewYamlFeeder(filePath string) YamlFeeder {
	return YamlFeeder{Path: filePath}
}

// Feed reads the YAML file and populates the provided structure
func (y YamlFeeder) Feed(target any) error {
	data, err := os.ReadFile(y.Path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file %s: %w", y.Path, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal YAML file %s: %w", y.Path, err)
	}
	return nil
}
