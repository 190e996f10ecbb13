package cli

import (
	"context"

	"github.com/amanthanvi/bloom/internal/app"
	"github.com/amanthanvi/bloom/internal/recovery"
	"github.com/amanthanvi/bloom/internal/tui"
	"github.com/spf13/cobra"
)

var runTUIFn = tui.Run

func newTUICommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive journey view",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("tui does not accept positional arguments")
			}
			if !isInteractive() {
				return usageErrorf("tui: requires a tty")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				settings, err := s.service.LoadSettings(ctx)
				if err != nil {
					return err
				}
				return runTUIFn(tui.Options{
					Client:          s.service,
					Milestones:      recovery.NewTracker(s.service, recovery.TrackerOptions{}),
					Now:             nowFn,
					RefreshInterval: s.cfg.Journey.RefreshInterval,
					ColorScheme:     app.ResolveColorScheme(settings.Theme, systemSchemeFn()),
					IsTTY:           isInteractive,
				})
			})
		},
	}
}
