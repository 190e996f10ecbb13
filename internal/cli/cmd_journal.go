package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/amanthanvi/bloom/internal/app"
	"github.com/amanthanvi/bloom/internal/records"
	"github.com/amanthanvi/bloom/internal/recovery"
	"github.com/spf13/cobra"
)

func newJournalCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and review journal entries",
	}
	cmd.AddCommand(
		newJournalAddCommand(deps),
		newJournalListCommand(deps),
		newJournalRemoveCommand(deps),
	)
	return cmd
}

func newJournalAddCommand(deps commandDeps) *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Add a journal entry",
		Example: "  bloom journal add \"Called my sponsor today\"\n" +
			"  echo \"Long entry\" | bloom journal add --stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if fromStdin {
				if len(args) != 0 {
					return usageErrorf("journal add accepts either text arguments or --stdin")
				}
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return mapCommandError(fmt.Errorf("read stdin: %w", err))
				}
				text = string(raw)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return usageErrorf("journal add requires entry text")
			}
			if err := checkLength("entry", text, app.MaxJournalEntryLength); err != nil {
				return err
			}

			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				entry, err := s.service.SaveJournalEntry(ctx, text)
				if err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, journalEntryOutput(entry))
				}
				return printf(deps, "journal entry saved: %s\n", entry.ID)
			})
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read entry text from stdin")
	return cmd
}

func newJournalListCommand(deps commandDeps) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("journal ls does not accept positional arguments")
			}
			if limit < 0 {
				return usageErrorf("journal ls --limit must be >= 0")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				entries, err := s.service.GetJournalEntries(ctx)
				if err != nil {
					return err
				}
				if limit > 0 && len(entries) > limit {
					entries = entries[:limit]
				}
				if deps.globals.JSON {
					out := make([]map[string]any, 0, len(entries))
					for _, entry := range entries {
						out = append(out, journalEntryOutput(entry))
					}
					return printJSON(deps.out, out)
				}
				if len(entries) == 0 {
					return printf(deps, "no journal entries\n")
				}
				now := nowFn()
				for _, entry := range entries {
					if err := printf(deps, "%s  %s\n%s\n\n",
						entry.ID, recovery.FormatEntryTime(entry.Timestamp, now), entry.Entry); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most N entries (0 for all)")
	return cmd
}

func newJournalRemoveCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("journal rm requires exactly one entry id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				entries, err := s.service.GetJournalEntries(ctx)
				if err != nil {
					return err
				}
				if !slices.ContainsFunc(entries, func(e records.JournalEntry) bool { return e.ID == id }) {
					return notFoundf("journal entry %q", id)
				}
				proceed, err := confirm(deps, "Delete this journal entry?", "Delete")
				if err != nil {
					return err
				}
				if !proceed {
					return printf(deps, "delete cancelled\n")
				}
				if err := s.service.DeleteJournalEntry(ctx, id); err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"deleted": id})
				}
				return printf(deps, "journal entry deleted: %s\n", id)
			})
		},
	}
}

func journalEntryOutput(entry records.JournalEntry) map[string]any {
	return map[string]any{
		"id":        entry.ID,
		"timestamp": records.EncodeInstant(entry.Timestamp),
		"entry":     entry.Entry,
	}
}

func newUrgeCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urge",
		Short: "Log and review urges",
	}
	cmd.AddCommand(
		newUrgeLogCommand(deps),
		newUrgeListCommand(deps),
	)
	return cmd
}

func newUrgeLogCommand(deps commandDeps) *cobra.Command {
	var (
		intensity int
		note      string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record an urge and its intensity",
		Example: "  bloom urge log --intensity 6\n" +
			"  bloom urge log --intensity 8 --note \"after the argument\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("urge log does not accept positional arguments")
			}
			if !cmd.Flags().Changed("intensity") {
				return usageErrorf("urge log requires --intensity")
			}
			if err := checkLength("note", strings.TrimSpace(note), app.MaxUrgeNoteLength); err != nil {
				return err
			}

			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				log, err := s.service.SaveUrgeLog(ctx, intensity, note)
				if err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, urgeLogOutput(log))
				}
				return printf(deps, "urge logged: intensity %d/10\n", log.Intensity)
			})
		},
	}
	cmd.Flags().IntVar(&intensity, "intensity", 0, "Intensity from 1 to 10")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	return cmd
}

func newUrgeListCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List urge logs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("urge ls does not accept positional arguments")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				logs, err := s.service.GetUrgeLogs(ctx)
				if err != nil {
					return err
				}
				if deps.globals.JSON {
					out := make([]map[string]any, 0, len(logs))
					for _, log := range logs {
						out = append(out, urgeLogOutput(log))
					}
					return printJSON(deps.out, out)
				}
				if len(logs) == 0 {
					return printf(deps, "no urges logged\n")
				}
				now := nowFn()
				for _, log := range logs {
					line := fmt.Sprintf("%s  intensity=%d", recovery.FormatEntryTime(log.Timestamp, now), log.Intensity)
					if log.Note != "" {
						line += "  " + log.Note
					}
					if err := printf(deps, "%s\n", line); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func urgeLogOutput(log records.UrgeLog) map[string]any {
	return map[string]any{
		"id":        log.ID,
		"timestamp": records.EncodeInstant(log.Timestamp),
		"intensity": log.Intensity,
		"note":      log.Note,
	}
}
