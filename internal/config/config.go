// Package config provides YAML-based configuration loading for t2048 with
// environment overrides.
package config

import (
	"github.com/vovakirdan/t2048/internal/engine"
)

// Config contains all configuration for the game.
type Config struct {
	Board       BoardConfig       `yaml:"board"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Animation   AnimationConfig   `yaml:"animation"`
	Input       InputConfig       `yaml:"input"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Storage     StorageConfig     `yaml:"storage"`
	Log         LogConfig         `yaml:"log"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// SpawnConfig defines how new tiles appear.
type SpawnConfig struct {
	FourProbability       float64 `yaml:"four_probability"`        // chance a spawned tile is 4
	SecondTileProbability float64 `yaml:"second_tile_probability"` // chance a move spawns two tiles
	StartMin              int     `yaml:"start_min"`
	StartMax              int     `yaml:"start_max"`
}

// Engine converts the section into the engine's spawn policy.
func (s SpawnConfig) Engine() engine.SpawnConfig {
	return engine.SpawnConfig{
		FourProbability:       s.FourProbability,
		SecondTileProbability: s.SecondTileProbability,
		StartMin:              s.StartMin,
		StartMax:              s.StartMax,
	}
}

// AnimationConfig defines the tick rate and animation lengths.
type AnimationConfig struct {
	TickRate   int `yaml:"tick_rate"`   // ticks per second
	SlideTicks int `yaml:"slide_ticks"` // 0 commits moves immediately
	PopTicks   int `yaml:"pop_ticks"`
}

// InputConfig defines pointer input.
type InputConfig struct {
	SwipeThreshold int `yaml:"swipe_threshold"` // terminal cells
}

// LeaderboardConfig defines the local leaderboard.
type LeaderboardConfig struct {
	Capacity   int    `yaml:"capacity"`
	DateLayout string `yaml:"date_layout"` // Go time layout
}

// StorageConfig defines where records are kept.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // used by the interactive UI
}
