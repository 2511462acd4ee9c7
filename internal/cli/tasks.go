package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/tasklist"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

const indexHint = "Hint: run `tada ls` to see valid indexes"

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <title...>",
		Short:   "Add a new task (title can be multiple words)",
		Example: `  tada add "Buy milk"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: tada add <title...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open(cmd, false)
			if err != nil {
				return err
			}
			defer sess.close()

			if _, ok := sess.store.Add(strings.Join(args, " ")); !ok {
				return usagef("add: empty title")
			}
			ui.OK(cmd.OutOrStdout(), "added")
			return nil
		},
	}
}

func (a *app) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.open(cmd, false)
			if err != nil {
				return err
			}
			defer sess.close()
			render(cmd, sess.store, a.group)
			return nil
		},
	}
}

func render(cmd *cobra.Command, s *tasklist.Store, group bool) {
	t := ui.Current()
	done, pending := s.Stats()

	var lines []string
	lines = append(lines, ui.Header(done, pending))
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(done, done+pending, 28)))
	lines = append(lines, "")
	lines = append(lines, ui.TaskLines(s.Tasks(), group)...)
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `tada add \"Buy milk\"`"))
	ui.Panel(cmd.OutOrStdout(), lines)
}

func (a *app) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the task at a 1-based index",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("usage: tada done <index>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIndex("done", args[0])
			if err != nil {
				return err
			}
			sess, err := a.open(cmd, false)
			if err != nil {
				return err
			}
			defer sess.close()

			id, ok := sess.store.IDAt(n - 1)
			if !ok {
				return outOfRange(sess.store.Len(), n)
			}
			sess.store.Toggle(id)
			ui.OK(cmd.OutOrStdout(), "toggled")
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index...>",
		Short:   "Remove tasks at 1-based indexes",
		Example: "  tada rm 3\n  tada rm 1 4",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: tada rm <index...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			positions := make([]int, 0, len(args))
			for _, arg := range args {
				n, err := parseIndex("rm", arg)
				if err != nil {
					return err
				}
				positions = append(positions, n)
			}
			sess, err := a.open(cmd, false)
			if err != nil {
				return err
			}
			defer sess.close()

			have := sess.store.Len()
			indices := make([]int, 0, len(positions))
			for _, n := range positions {
				if n < 1 || n > have {
					return outOfRange(have, n)
				}
				indices = append(indices, n-1)
			}
			removed := sess.store.Delete(indices...)
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %d", removed))
			return nil
		},
	}
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task screen",
		Args:  noArgs,
		RunE:  a.runTUI,
	}
}

var errNoTerminal = errors.New("tui: stdin is not a terminal (use add, ls, done, rm)")

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	if !isTerminal() {
		return errNoTerminal
	}
	sess, err := a.open(cmd, true)
	if err != nil {
		return err
	}
	defer sess.close()
	if err := tui.Run(sess.store); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func parseIndex(cmd, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("%s: not a number: %s", cmd, arg)
	}
	return n, nil
}

func outOfRange(have, got int) error {
	return &usageError{
		msg:  fmt.Sprintf("index out of range: have %d, got %d", have, got),
		hint: indexHint,
	}
}
