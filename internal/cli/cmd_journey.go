package cli

import (
	"context"
	"strings"
	"time"

	"github.com/amanthanvi/bloom/internal/records"
	"github.com/amanthanvi/bloom/internal/recovery"
	"github.com/spf13/cobra"
)

// Accepted --at layouts, tried in order. Layouts without a zone are local time.
var startLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

const displayTimeLayout = "Mon Jan 2, 2006 3:04 PM"

func newBeginCommand(deps commandDeps) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "begin",
		Short: "Start the journey counter",
		Example: "  bloom begin\n" +
			"  bloom begin --at 2024-03-01\n" +
			"  bloom begin --at 2024-03-01T21:30:00-08:00",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("begin does not accept positional arguments")
			}
			now := nowFn()
			start := now
			if strings.TrimSpace(at) != "" {
				parsed, err := parseStart(at, now.Location())
				if err != nil {
					return err
				}
				if parsed.After(now) {
					return usageErrorf("begin --at must not be in the future")
				}
				start = parsed
			}

			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				_, ok, err := s.service.GetSobrietyDate(ctx)
				if err != nil {
					return err
				}
				if ok {
					proceed, err := confirm(deps, "Replace the current start date?", "Replace")
					if err != nil {
						return err
					}
					if !proceed {
						return printf(deps, "begin cancelled\n")
					}
				}
				if err := s.service.SetSobrietyDate(ctx, start); err != nil {
					return err
				}
				stored := start.UTC().Truncate(time.Millisecond)
				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"sobriety_date": records.EncodeInstant(stored)})
				}
				return printf(deps, "journey started %s\n", formatLocal(stored))
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Start time (RFC3339, YYYY-MM-DD or YYYY-MM-DD HH:MM); defaults to now")
	return cmd
}

func parseStart(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, usageErrorf("begin --at %q is not a recognised time", raw)
}

type statusOutput struct {
	Started       bool                `json:"started"`
	SobrietyDate  string              `json:"sobriety_date,omitempty"`
	Elapsed       recovery.Duration   `json:"elapsed"`
	Stage         recovery.Stage      `json:"stage"`
	NextMilestone *recovery.Milestone `json:"next_milestone,omitempty"`
	Celebrated    *recovery.Milestone `json:"celebrated,omitempty"`
	Quote         recovery.Quote      `json:"quote"`
}

func newStatusCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show elapsed time, growth stage and today's quote",
		Example: "  bloom status\n" +
			"  bloom --json status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("status does not accept positional arguments")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				now := nowFn()
				out := statusOutput{Stage: recovery.StageSeed, Quote: recovery.QuoteOfDay(now)}

				start, ok, err := s.service.GetSobrietyDate(ctx)
				if err != nil {
					return err
				}
				if ok {
					out.Started = true
					out.SobrietyDate = records.EncodeInstant(start)
					out.Elapsed = recovery.Elapsed(start, now)
					out.Stage = recovery.StageFor(out.Elapsed.Days)
					if next, found := recovery.NextMilestone(out.Elapsed.Days); found {
						out.NextMilestone = &next
					}

					tracker := recovery.NewTracker(s.service, recovery.TrackerOptions{
						OnCelebrate: func(m recovery.Milestone) {
							s.logger.Info("milestone reached", "days", m.Days)
						},
					})
					milestone, celebrated, err := tracker.Check(ctx, out.Elapsed.Days)
					if err != nil {
						return err
					}
					if celebrated {
						out.Celebrated = &milestone
					}
				}

				if deps.globals.JSON {
					return printJSON(deps.out, out)
				}
				return printStatus(deps, out, start.In(now.Location()))
			})
		},
	}
}

func printStatus(deps commandDeps, out statusOutput, start time.Time) error {
	if !out.Started {
		return printf(deps, "journey not started; run `bloom begin`\n\n%s\n", out.Quote)
	}
	if out.Celebrated != nil {
		if err := printf(deps, "*** %s ***\n%s\n\n", out.Celebrated.Title, out.Celebrated.Message); err != nil {
			return err
		}
	}
	if err := printf(deps, "%s\nstage: %s\nsince: %s\n",
		out.Elapsed, out.Stage.Label(), formatLocal(start)); err != nil {
		return err
	}
	if out.NextMilestone != nil {
		if err := printf(deps, "next milestone: %s in %d days\n",
			out.NextMilestone.Title, out.NextMilestone.Days-out.Elapsed.Days); err != nil {
			return err
		}
	}
	return printf(deps, "\n%s\n", out.Quote)
}

func newResetCommand(deps commandDeps) *cobra.Command {
	var deleteData bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the start date and milestone history",
		Long: "Clear the start date and milestone history. Journal entries and urge logs\n" +
			"are kept unless --delete-data is set. The emergency contact and settings\n" +
			"are always kept.",
		Example: "  bloom reset\n" +
			"  bloom --yes reset --delete-data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("reset does not accept positional arguments")
			}
			keepData := !deleteData
			title := "Reset the journey and delete journal entries and urge logs?"
			if keepData {
				title = "Reset the journey counter? Journal entries and urge logs are kept."
			}
			proceed, err := confirm(deps, title, "Reset")
			if err != nil {
				return err
			}
			if !proceed {
				return printf(deps, "reset cancelled\n")
			}

			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				if err := s.service.ResetJourney(ctx, keepData); err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"reset": true, "kept_data": keepData})
				}
				return printf(deps, "journey reset (%s)\n", boolToState(keepData, "data kept", "data removed"))
			})
		},
	}
	cmd.Flags().BoolVar(&deleteData, "delete-data", false, "Also delete journal entries and urge logs")
	return cmd
}

func formatLocal(t time.Time) string {
	return t.In(nowFn().Location()).Format(displayTimeLayout)
}
