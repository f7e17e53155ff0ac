package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file configuration.
const (
	EnvDB        = "T2048_DB"
	EnvLogLevel  = "T2048_LOG_LEVEL"
	EnvLogFile   = "T2048_LOG_FILE"
	EnvBoardSize = "T2048_BOARD_SIZE"
)

// Load loads the configuration, applies environment overrides and validates
// the result.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	// Fields missing from a file keep their defaults.
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := Default()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "t2048.yaml")); err == nil {
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	embedded := Default()
	if err := yaml.Unmarshal(defaultYAML, &embedded); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from T2048_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv(EnvBoardSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvBoardSize, v, err)
		}
		cfg.Board.Size = n
	}
	return nil
}

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Board.Size < 2 || c.Board.Size > 8:
		return fmt.Errorf("config: board.size %d out of range [2, 8]", c.Board.Size)
	case c.Spawn.FourProbability < 0 || c.Spawn.FourProbability > 1:
		return fmt.Errorf("config: spawn.four_probability %v out of range [0, 1]", c.Spawn.FourProbability)
	case c.Spawn.SecondTileProbability < 0 || c.Spawn.SecondTileProbability > 1:
		return fmt.Errorf("config: spawn.second_tile_probability %v out of range [0, 1]", c.Spawn.SecondTileProbability)
	case c.Spawn.StartMin < 1:
		return fmt.Errorf("config: spawn.start_min must be at least 1")
	case c.Spawn.StartMax < c.Spawn.StartMin:
		return fmt.Errorf("config: spawn.start_max %d below start_min %d", c.Spawn.StartMax, c.Spawn.StartMin)
	case c.Spawn.StartMax > c.Board.Size*c.Board.Size:
		return fmt.Errorf("config: spawn.start_max %d exceeds the board", c.Spawn.StartMax)
	case c.Animation.TickRate < 1 || c.Animation.TickRate > 240:
		return fmt.Errorf("config: animation.tick_rate %d out of range [1, 240]", c.Animation.TickRate)
	case c.Animation.SlideTicks < 0 || c.Animation.PopTicks < 0:
		return fmt.Errorf("config: animation ticks must not be negative")
	case c.Input.SwipeThreshold < 1:
		return fmt.Errorf("config: input.swipe_threshold must be at least 1")
	case c.Leaderboard.Capacity < 1:
		return fmt.Errorf("config: leaderboard.capacity must be at least 1")
	case c.Leaderboard.DateLayout == "":
		return fmt.Errorf("config: leaderboard.date_layout is empty")
	case c.Storage.Path == "":
		return fmt.Errorf("config: storage.path is empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", filename)
}
