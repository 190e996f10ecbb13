package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/amanthanvi/bloom/internal/recovery"
	"github.com/spf13/cobra"
)

func newMilestonesCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Review milestone thresholds and celebrations",
	}
	cmd.AddCommand(
		newMilestonesListCommand(deps),
		newMilestonesResetCommand(deps),
	)
	return cmd
}

type milestoneOutput struct {
	recovery.Milestone
	Shown bool `json:"shown"`
}

func newMilestonesListCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List milestones and whether each has been celebrated",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("milestones ls does not accept positional arguments")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				shown, err := s.service.GetShownMilestones(ctx)
				if err != nil {
					return err
				}
				all := recovery.Milestones()
				out := make([]milestoneOutput, 0, len(all))
				for _, m := range all {
					out = append(out, milestoneOutput{Milestone: m, Shown: slices.Contains(shown, m.Days)})
				}
				if deps.globals.JSON {
					return printJSON(deps.out, out)
				}
				for _, m := range out {
					if err := printf(deps, "%-4d %-20s %s\n", m.Days, m.Title, boolToState(m.Shown, "celebrated", "-")); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newMilestonesResetCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget which milestones were celebrated",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("milestones reset does not accept positional arguments")
			}
			proceed, err := confirm(deps, "Forget every celebrated milestone?", "Reset")
			if err != nil {
				return err
			}
			if !proceed {
				return printf(deps, "reset cancelled\n")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				if err := s.service.ResetShownMilestones(ctx); err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"reset": true})
				}
				return printf(deps, "milestone history cleared\n")
			})
		},
	}
}

func newQuoteCommand(deps commandDeps) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the quote of the day",
		Example: "  bloom quote\n" +
			"  bloom quote --date 2024-01-01",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("quote does not accept positional arguments")
			}
			day := nowFn()
			if value := strings.TrimSpace(date); value != "" {
				parsed, err := time.ParseInLocation("2006-01-02", value, day.Location())
				if err != nil {
					return usageErrorf("quote --date must be YYYY-MM-DD, got %q", date)
				}
				day = parsed
			}
			quote := recovery.QuoteOfDay(day)
			if deps.globals.JSON {
				return mapCommandError(printJSON(deps.out, quote))
			}
			_, err := fmt.Fprintln(deps.out, quote)
			return mapCommandError(err)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Calendar date (YYYY-MM-DD); defaults to today")
	return cmd
}
