package feeders

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONFeeder is a feeder that reads JSON files
type JSONFeeder struct {
	Path string
}

// NewJSONFeeder creates a new JSONFeeder that reads from the specified JSON file
func NewJSONFeeder(filePath string) JSONFeeder {
	return JSONFeeder{Path: filePath}
}

// Feed reads the JSON file and populates the provided structure
func (j JSONFeeder) Feed(target any) error {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file %s: %w", j.Path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON file %s: %w", j.Path, err)
	}
	return nil
}
