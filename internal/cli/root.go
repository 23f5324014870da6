// Package cli wires the cobra command tree. Scriptable subcommands mirror
// what the TUI does interactively; `vida` with no subcommand opens the TUI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vida/internal/config"
	"vida/internal/store"
	"vida/internal/tui"
	"vida/internal/ui"
)

// UsageError wraps command-line mistakes (bad flags, wrong argument counts,
// unknown commands) so Execute can exit 2 for them.
type UsageError struct{ Err error }

func (e UsageError) Error() string { return e.Err.Error() }
func (e UsageError) Unwrap() error { return e.Err }

// usageArgs turns a cobra argument-count failure into a UsageError.
func usageArgs(pa cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := pa(cmd, args); err != nil {
			return UsageError{err}
		}
		return nil
	}
}

// Execute runs the command tree and maps failures to exit codes: 0 on
// success, 2 for usage mistakes, 1 for everything else. Failures print as a
// styled ✖ line instead of cobra's default Error: prefix.
func Execute() int { return run(os.Args[1:]) }

func run(args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		ui.Fail(err.Error())
		var usage UsageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	return 0
}

// App carries the resolved configuration and open store across commands.
type App struct {
	cfg       config.Config
	kv        store.KV
	close     func() error
	watchPath string // JSON store file, empty for the sqlite backend
}

// NewRootCmd builds the vida command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "vida",
		Short:         "Áreas de vida: metas, reflexiones y bienes, en tu terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Interactive TUI
  vida

  # Scriptable commands
  vida add --area fisica "Caminar 30 minutos"
  vida ls --area familia
  vida reflect ls --range week --sort desc
  vida assets ls
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return tui.Run(app.cfg, app.kv, app.watchPath)
			}
			_ = cmd.Help()
			return UsageError{fmt.Errorf("unknown command %q", args[0])}
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{err}
	})

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.open()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.close != nil {
			return app.close()
		}
		return nil
	}

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newLsCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newReflectCmd(app))
	cmd.AddCommand(newAssetsCmd(app))

	return cmd
}

func (a *App) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	dir := cfg.ResolvedDataDir()
	if dir == "" {
		return fmt.Errorf("cannot resolve a data directory; set VIDA_DATA_DIR")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	switch cfg.Store {
	case config.StoreSQLite:
		s, err := store.OpenSQLite(filepath.Join(dir, "vida.sqlite"))
		if err != nil {
			return err
		}
		a.kv = s
		a.close = s.Close
	default:
		path := filepath.Join(dir, "vida.json")
		a.kv = store.OpenJSON(path)
		a.watchPath = path
	}
	return nil
}
