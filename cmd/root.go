// Package cmd wires the yedit command line: flag parsing, logger setup,
// and launching the terminal editor.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/yedit/internal/clipboard"
	"github.com/oakwood-commons/yedit/internal/session"
	"github.com/oakwood-commons/yedit/internal/ui"
	"github.com/oakwood-commons/yedit/pkg/logger"
	"github.com/oakwood-commons/yedit/pkg/settings"
)

var (
	debug   bool
	noColor bool
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Terminal editor for YAML documents",
	Long: settings.CliBinaryName + ` opens a YAML file as a navigable tree and lets you edit
values, rename keys, add and delete nodes, and search by key or path.
Files that do not parse open in a raw line editor so they can be fixed
in place. Run without arguments to pick a file from the current
directory.`,
	Example: "\n  " + settings.CliBinaryName + " config.yaml\n  " + settings.CliBinaryName + "\n",
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// debug maps to zap.DebugLevel (-1), default is zap.InfoLevel (0).
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("stdout is not a terminal; " + settings.CliBinaryName + " is interactive only")
		}
		lgr := logger.FromContext(rootCtx)

		var (
			sess *session.Session
			err  error
		)
		if len(args) == 1 {
			sess, err = session.New(args[0], *lgr, clipboard.System{})
		} else {
			sess, err = session.NewPicker(*lgr, clipboard.System{})
		}
		if err != nil {
			return err
		}

		model := ui.NewModel(sess, *lgr, noColor)
		p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run editor: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print " + settings.CliBinaryName + " version",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println(cliVersionString()) //nolint:forbidigo
		return nil
	},
}

func cliVersionString() string {
	vi := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)", settings.CliBinaryName, vi.BuildVersion, vi.Commit, vi.BuildTime)
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
