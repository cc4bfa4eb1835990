package cli

import (
	"github.com/spf13/cobra"
)

func newSnapshotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the bootstrap scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, closeFn, err := newScene(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()
			return writeOut(cmd, app, sc.Snapshot())
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{
				"config":     app.cfg,
				"deskBounds": app.cfg.DeskBounds(),
			})
		},
	}
}
