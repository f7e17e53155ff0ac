package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the default configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size: 4,
		},
		Spawn: SpawnConfig{
			FourProbability:       0.1,
			SecondTileProbability: 0.1,
			StartMin:              1,
			StartMax:              3,
		},
		Animation: AnimationConfig{
			TickRate:   60,
			SlideTicks: 9,
			PopTicks:   6,
		},
		Input: InputConfig{
			SwipeThreshold: 3,
		},
		Leaderboard: LeaderboardConfig{
			Capacity:   10,
			DateLayout: "02.01.2006",
		},
		Storage: StorageConfig{
			Path: "~/.t2048/t2048.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.t2048/t2048.log",
		},
	}
}
