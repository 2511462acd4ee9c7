// Package cli wires the tada command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/exitcode"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/tasklist"
	"github.com/Makepad-fr/tada/internal/ui"
)

// usageError carries a message for exit code 2, plus an optional hint line.
type usageError struct {
	msg  string
	hint string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// app holds root flag values and the resources opened for one run.
type app struct {
	configPath string
	backend    string
	dir        string
	format     string
	theme      string
	group      bool
	noColor    bool
	ephemeral  bool
}

// NewRoot builds a fresh command tree.
func NewRoot(version string) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - a tiny task list",
		Long: `tada keeps a single ordered task list on local storage.

Run without a subcommand for the interactive screen.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		RunE:          a.runTUI,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (merged over ~/.tada and ./.tada)")
	pf.StringVar(&a.backend, "backend", "", "storage backend: json, sqlite, memory")
	pf.StringVar(&a.dir, "dir", "", "data directory")
	pf.StringVar(&a.format, "format", "", "snapshot format: json, yaml")
	pf.StringVar(&a.theme, "theme", "", "output theme: classic, neon, mono")
	pf.BoolVar(&a.group, "group", false, "group output by pending/done")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	pf.BoolVar(&a.ephemeral, "ephemeral", false, "keep tasks in memory only")

	root.AddCommand(
		a.addCmd(),
		a.lsCmd(),
		a.doneCmd(),
		a.rmCmd(),
		a.tuiCmd(),
		a.configCmd(),
		versionCmd(version),
	)
	return root
}

// Execute runs the CLI and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(version string, args []string, stdout, stderr io.Writer) int {
	root := NewRoot(version)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitcode.Success
	}
	var ue *usageError
	if errors.As(err, &ue) {
		ui.Fail(stderr, ue.msg)
		if ue.hint != "" {
			ui.Hint(stderr, ue.hint)
		}
		return exitcode.Usage
	}
	ui.Fail(stderr, err.Error())
	return exitcode.Failure
}

// loadConfig applies flag overrides on top of the layered config and sets
// up global output state.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Storage.Backend = a.backend
	}
	if flags.Changed("dir") {
		cfg.Storage.Dir = a.dir
	}
	if flags.Changed("format") {
		cfg.Storage.Format = a.format
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = a.theme
	}
	if a.ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	cfg.Resolve()
	ui.SetTheme(cfg.UI.Theme)
	ui.SetColorForcing(false, a.noColor)
	return cfg, nil
}

// session is everything a task command needs; close releases it.
type session struct {
	cfg   *config.Config
	log   *slog.Logger
	store *tasklist.Store
	close func()
}

// open loads config, logger and backend, and loads the task list once.
// interactive sends logs to the configured file only, never the terminal.
func (a *app) open(cmd *cobra.Command, interactive bool) (*session, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	var fallback io.Writer = cmd.ErrOrStderr()
	if interactive {
		fallback = nil
	}
	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File, fallback)
	if err != nil {
		return nil, err
	}
	codec, err := tasklist.CodecByName(cfg.Storage.Format)
	if err != nil {
		closeLog()
		return nil, err
	}
	kv, err := store.Open(cfg.Storage.Options())
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir, "key", cfg.Storage.Key, "format", codec.Name())

	s := tasklist.New(kv,
		tasklist.WithKey(cfg.Storage.Key),
		tasklist.WithCodec(codec),
		tasklist.WithLogger(logger),
	)
	s.Load()
	return &session{
		cfg:   cfg,
		log:   logger,
		store: s,
		close: func() {
			if err := kv.Close(); err != nil {
				logger.Warn("close storage", "err", err)
			}
			closeLog()
		},
	}, nil
}

func versionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tada %s\n", version)
		},
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("usage: tada %s", cmd.Use)
	}
	return nil
}

func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
