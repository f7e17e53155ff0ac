// t2048 is the 2048 sliding-tile game for the terminal.
//
// Usage:
//
//	t2048 play               - Play interactively
//	t2048 show               - Print the saved board
//	t2048 move <direction>   - Make one move on the saved game
//	t2048 undo               - Take back the last move
//	t2048 new                - Start a new game
//	t2048 submit <name>      - Put a finished game on the leaderboard
//	t2048 scores             - Show the leaderboard
//	t2048 stats              - Show finished-game statistics
//	t2048 reset              - Delete the saved game, best score and leaderboard
//
// Global flags:
//
//	--config <path>     - Config YAML (default: search ~/.t2048, ./configs)
//	--db <path>         - Database path (default: ~/.t2048/t2048.db)
//	--seed <value>      - RNG seed for reproducible tile spawns
//	--log-level <lvl>   - debug, info, warn or error
//	--no-save           - Keep everything in memory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
	flagNoSave   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board up, down, left or right. Equal tiles that collide merge
into their sum and add it to your score. Reach 2048, then keep going.

The game is saved after every move, so headless commands and the
interactive UI share the same board.

Examples:
  t2048 play
  t2048 move left
  t2048 undo
  t2048 scores
  t2048 --no-save play`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the game database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoSave, "no-save", false, "Do not read or write the database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
}
