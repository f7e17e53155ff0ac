package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/leaderboard"
	"github.com/vovakirdan/t2048/internal/platform/tui"
	"github.com/vovakirdan/t2048/internal/session"
)

var (
	flagInteractive bool
	flagRecent      int
	flagResetAll    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard: the top scores by name, highest first.

Examples:
  t2048 scores
  t2048 scores -i`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics of finished games",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved game, best score and leaderboard",
	Long: `Delete the saved game, best score and leaderboard.
The history of finished games is kept unless --all is given.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Show the leaderboard as a table")
	statsCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent games to list")
	resetCmd.Flags().BoolVar(&flagResetAll, "all", false, "Also delete the finished-game history")
}

func runScores(cmd *cobra.Command, _ []string) error {
	return withSession(func(sess *session.Session) error {
		entries := sess.Leaderboard()
		best := sess.State().Best

		if flagInteractive {
			width, height := 80, 24
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width, height = w, h
			}
			return tui.RunScoreboard(entries, best, width, height)
		}

		printLeaderboard(cmd.OutOrStdout(), entries, best)
		return nil
	})
}

// printLeaderboard writes the ranked entries and the best score.
func printLeaderboard(w io.Writer, entries []leaderboard.Entry, best int) {
	fmt.Fprintln(w, "High Scores")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Finish a game with 't2048 play' to set the first high score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-*s  %-8s  %s\n", "Rank", leaderboard.MaxNameLength, "Name", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-*s  %-8s  %s\n", "----", leaderboard.MaxNameLength, "----", "-----", "----")
	for i, e := range entries {
		fmt.Fprintf(w, "  %-4d  %-*s  %-8d  %s\n", i+1, leaderboard.MaxNameLength, e.Name, e.Score, e.Date)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d\n", best)
}

func runStats(cmd *cobra.Command, _ []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.store.Stats()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if stats.GamesCount == 0 {
		fmt.Fprintln(out, "No finished games yet.")
		return nil
	}

	fmt.Fprintf(out, "Games played:  %d\n", stats.GamesCount)
	fmt.Fprintf(out, "High score:    %d\n", stats.HighScore)
	fmt.Fprintf(out, "Average score: %.0f\n", stats.AvgScore)
	fmt.Fprintf(out, "Total score:   %d\n", stats.TotalScore)
	fmt.Fprintf(out, "Best tile:     %d\n", stats.BestTile)
	fmt.Fprintf(out, "Last played:   %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))

	if flagRecent <= 0 {
		return nil
	}
	recent, err := a.store.RecentGames(flagRecent)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent games:")
	for _, g := range recent {
		fmt.Fprintf(out, "  %s  score %-6d  tile %-5d  %d moves\n",
			g.FinishedAt.Local().Format("2006-01-02 15:04"), g.Score, g.MaxTile, g.Moves)
	}
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Reset(flagResetAll); err != nil {
		return err
	}
	a.log.Info("records reset", "history", flagResetAll)
	fmt.Fprintln(cmd.OutOrStdout(), "Saved game, best score and leaderboard deleted.")
	if flagResetAll {
		fmt.Fprintln(cmd.OutOrStdout(), "Finished-game history deleted.")
	}
	return nil
}
