package cli

import (
	"fmt"
	"strings"

	"desk-cli/internal/config"
	"desk-cli/internal/format"
	"desk-cli/internal/scene"
	"desk-cli/internal/store"
	"desk-cli/internal/tui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigFile string
	Format     string
	Pretty     bool
	LogLevel   string
	SeedFile   string

	cfg config.Config
	log *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "desk",
		Short:         "In-memory desk simulator (TUI + scripts)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive desk
  desk

  # Run a desk script and print the final scene
  desk script moves.desk
  desk moves.desk

  # Print the bootstrap scene as yaml
  desk snapshot --format yaml
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(app.ConfigFile, cmd.Flags())
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		app.log = cfg.Logger(cmd.ErrOrStderr())
		return nil
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return writeErr(c, err)
	})

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "Config file (default $XDG_CONFIG_HOME/desk/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "Output format (json|yaml|text)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "warn", "Log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.SeedFile, "seed", "", "Bootstrap scene yaml (default: built-in desk)")

	cmd.AddCommand(newScriptCmd(app))
	cmd.AddCommand(newSnapshotCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// Execute runs the root command and makes sure a failure is reported exactly once.
func Execute(cmd *cobra.Command) error {
	c, err := cmd.ExecuteC()
	if err != nil {
		if c == nil {
			c = cmd
		}
		_ = writeErr(c, err)
	}
	return err
}

func runTUI(cmd *cobra.Command, app *App) error {
	sc, closeFn, err := newScene(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeFn()
	// The alt screen owns stderr while the program runs.
	app.log.SetLevel(logrus.ErrorLevel)
	return tui.Run(sc, tui.Options{Extent: app.cfg.ItemExtent})
}

// newScene builds a bootstrapped scene with its journal. The returned func releases the
// journal.
func newScene(cmd *cobra.Command, app *App) (*scene.Scene, func(), error) {
	seed, err := app.cfg.Seed()
	if err != nil {
		return nil, nil, err
	}
	j, err := store.OpenJournal(cmd.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	sc := scene.New(scene.Options{
		Bounds:     app.cfg.DeskBounds(),
		ItemExtent: app.cfg.ItemExtent,
		Logger:     app.log,
		Journal:    j,
		RandSeed:   app.cfg.SeedRandom,
	})
	if err := sc.Bootstrap(seed); err != nil {
		_ = j.Close()
		return nil, nil, err
	}
	if err := sc.RegisterActions(); err != nil {
		_ = j.Close()
		return nil, nil, err
	}
	return sc, func() { _ = j.Close() }, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.cfg.OutputFormat, app.cfg.Pretty)
}
