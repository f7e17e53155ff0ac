package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/session"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(func(sess *session.Session) error {
			printState(cmd.OutOrStdout(), sess.State())
			return nil
		})
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <direction>",
	Short: "Slide the saved board once",
	Long: `Apply one move to the saved game, spawn the new tile and print the board.
A move that would not change the board is not made.

Directions: up, down, left, right (or u, d, l, r).

Examples:
  t2048 move left
  t2048 move u`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "left", "right"},
	RunE:      runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	dir, ok := engine.ParseDirection(args[0])
	if !ok {
		return fmt.Errorf("unknown direction %q (want up, down, left or right)", args[0])
	}

	return withSession(func(sess *session.Session) error {
		out := cmd.OutOrStdout()
		c, ok := sess.Move(dir)
		switch {
		case ok:
			if c.ScoreDelta > 0 {
				fmt.Fprintf(out, "+%d\n", c.ScoreDelta)
			}
			if c.NewBest {
				fmt.Fprintln(out, "New best!")
			}
		case sess.State().GameOver:
			fmt.Fprintln(out, "Game over. Run 't2048 new' to start again.")
		default:
			fmt.Fprintf(out, "No change moving %s.\n", dir)
		}
		printState(out, sess.State())
		return nil
	})
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Take back the last move",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(func(sess *session.Session) error {
			out := cmd.OutOrStdout()
			if !sess.Undo() {
				fmt.Fprintln(out, "Nothing to undo.")
			}
			printState(out, sess.State())
			return nil
		})
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new game",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(func(sess *session.Session) error {
			sess.NewGame()
			printState(cmd.OutOrStdout(), sess.State())
			return nil
		})
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <name>",
	Short: "Put a finished game on the leaderboard",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	return withSession(func(sess *session.Session) error {
		out := cmd.OutOrStdout()
		if sess.Submitted() {
			return errors.New("this game's score was already submitted")
		}
		if !sess.Qualifies() && sess.State().GameOver {
			fmt.Fprintf(out, "Score %d does not make the leaderboard.\n", sess.State().Score)
			return nil
		}
		entry, err := sess.SubmitScore(name)
		switch {
		case errors.Is(err, session.ErrNotFinished):
			return errors.New("the game is not over yet")
		case err != nil:
			return err
		}
		fmt.Fprintf(out, "%s: %d (%s)\n", entry.Name, entry.Score, entry.Date)
		printLeaderboard(out, sess.Leaderboard(), sess.State().Best)
		return nil
	})
}

// withSession runs fn on the saved game and closes the app afterwards.
func withSession(fn func(*session.Session) error) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a.session())
}

// printState writes the score line and the board.
func printState(w io.Writer, st session.State) {
	fmt.Fprintf(w, "Score: %d  Best: %d\n\n", st.Score, st.Best)
	for _, line := range strings.Split(st.Grid.String(), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	switch {
	case st.GameOver:
		fmt.Fprintln(w, "\nGame over.")
	case st.CanUndo():
		fmt.Fprintln(w, "\nUndo available.")
	}
}
