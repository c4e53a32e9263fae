package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Game describes one playable assessment game from the catalog.
type Game struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	DurationSec int      `yaml:"duration_sec"`
	Indicators  []string `yaml:"indicators"`
}

// GameCatalog holds all games offered by the platform.
type GameCatalog struct {
	Games []Game `yaml:"games"`
}

// LoadGameCatalog reads and parses the games.yaml file.
func LoadGameCatalog(path string) (*GameCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game catalog: %w", err)
	}

	var catalog GameCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game catalog YAML: %w", err)
	}

	return &catalog, nil
}

// Lookup returns the game with the given id, or nil if unknown.
func (c *GameCatalog) Lookup(id string) *Game {
	for i := range c.Games {
		if c.Games[i].ID == id {
			return &c.Games[i]
		}
	}
	return nil
}
