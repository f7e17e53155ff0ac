package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Start the interactive game. The saved game is restored if there is one.

Controls:
  Arrows/WASD/HJKL  - Slide
  Mouse drag        - Swipe
  U                 - Undo the last move
  N                 - New game
  Tab               - Leaderboard
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --config ./my-t2048.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.Animation.TickRate,
		Seed:     flagSeed,
	}

	g := game.New(a.session(), game.Options{
		SlideTicks: a.cfg.Animation.SlideTicks,
		PopTicks:   a.cfg.Animation.PopTicks,
	})

	a.log.Info("starting", "width", width, "height", height, "tick_rate", cfg.TickRate)
	return tui.Run(g, tui.Options{
		Runtime:        cfg,
		SwipeThreshold: a.cfg.Input.SwipeThreshold,
		Logger:         a.log,
	})
}
