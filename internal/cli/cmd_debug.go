package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/amanthanvi/bloom/internal/app"
	debugpkg "github.com/amanthanvi/bloom/internal/debug"
	"github.com/spf13/cobra"
)

func newDebugCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "debug",
		Short:   "Diagnostics helpers",
		Example: "  bloom debug bundle --output ./bloom-debug.json",
	}
	cmd.AddCommand(newDebugBundleCommand(deps))
	return cmd
}

func newDebugBundleCommand(deps commandDeps) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Collect diagnostics into a JSON bundle without record contents",
		Example: "  bloom debug bundle --output ./bloom-debug.json\n" +
			"  bloom --json debug bundle --output ./bloom-debug.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("debug bundle does not accept positional arguments")
			}
			if strings.TrimSpace(outputPath) == "" {
				return usageErrorf("debug bundle requires --output")
			}

			bundle := debugpkg.NewBundle(nowFn())
			bundle.Version = map[string]any{
				"version":    deps.build.Version,
				"commit":     deps.build.Commit,
				"build_time": deps.build.BuildTime,
			}

			cfg, err := loadConfig(deps.globals)
			bundle.AddCheck("config", err, "loaded")
			if err == nil {
				bundle.Config = map[string]any{
					"storage_backend":  cfg.Storage.Backend,
					"storage_path":     cfg.Storage.Path,
					"sync_writes":      cfg.Storage.SyncWrites,
					"refresh_interval": cfg.Journey.RefreshInterval.String(),
					"log_level":        cfg.Logging.Level,
					"log_file":         cfg.Logging.File != "",
				}
				storageErr := withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
					counts, err := collectRecordCounts(ctx, s.service)
					bundle.AddCheck("records", err, "readable")
					if err == nil {
						bundle.Records = &counts
					}
					return nil
				})
				bundle.AddCheck("storage", storageErr, fmt.Sprintf("%s store opened", cfg.Storage.Backend))
			}
			bundle.Notes = append(bundle.Notes, "journal text, urge notes and contact details are not included")

			if err := debugpkg.WriteBundle(outputPath, bundle); err != nil {
				return mapCommandError(err)
			}
			if deps.globals.JSON {
				return printJSON(deps.out, map[string]any{"output": outputPath, "healthy": bundle.Healthy()})
			}
			if deps.globals.Quiet {
				return nil
			}
			_, err = fmt.Fprintf(deps.out, "debug bundle written: %s\n", outputPath)
			return mapCommandError(err)
		},
	}
	cmd.Flags().StringVar(&outputPath, "output", "", "Output JSON bundle path")
	return cmd
}

func collectRecordCounts(ctx context.Context, service *app.StorageService) (debugpkg.RecordCounts, error) {
	var counts debugpkg.RecordCounts

	_, started, err := service.GetSobrietyDate(ctx)
	if err != nil {
		return counts, err
	}
	counts.Started = started

	entries, err := service.GetJournalEntries(ctx)
	if err != nil {
		return counts, err
	}
	counts.JournalEntries = len(entries)

	logs, err := service.GetUrgeLogs(ctx)
	if err != nil {
		return counts, err
	}
	counts.UrgeLogs = len(logs)

	shown, err := service.GetShownMilestones(ctx)
	if err != nil {
		return counts, err
	}
	counts.ShownMilestones = len(shown)

	_, hasContact, err := service.GetEmergencyContact(ctx)
	if err != nil {
		return counts, err
	}
	counts.EmergencyContact = hasContact
	return counts, nil
}
