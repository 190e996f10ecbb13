package cli

import (
	"io"

	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

type GlobalOptions struct {
	ConfigPath string
	DataDir    string
	Backend    string
	JSON       bool
	Quiet      bool
	Yes        bool
}

type commandDeps struct {
	out     io.Writer
	globals *GlobalOptions
	build   BuildInfo
}

func NewRootCommand(out io.Writer, build BuildInfo) *cobra.Command {
	globals := &GlobalOptions{}
	deps := commandDeps{out: out, globals: globals, build: build}

	cmd := &cobra.Command{
		Use:           "bloom",
		Short:         "Track a sobriety journey locally",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: "  bloom begin\n" +
			"  bloom status\n" +
			"  bloom journal add \"Slept well, walked after work\"",
	}
	cmd.SetOut(out)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&globals.ConfigPath, "config", "", "Config file path")
	flags.StringVar(&globals.DataDir, "data-dir", "", "Directory holding the bloom store")
	flags.StringVar(&globals.Backend, "backend", "", "Storage backend (sqlite or badger)")
	flags.BoolVar(&globals.JSON, "json", false, "Print output as JSON")
	flags.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress non-essential output")
	flags.BoolVarP(&globals.Yes, "yes", "y", false, "Skip confirmation prompts")

	cmd.AddCommand(
		newInitCommand(deps),
		newBeginCommand(deps),
		newStatusCommand(deps),
		newResetCommand(deps),
		newJournalCommand(deps),
		newUrgeCommand(deps),
		newContactCommand(deps),
		newMilestonesCommand(deps),
		newQuoteCommand(deps),
		newSettingsCommand(deps),
		newTUICommand(deps),
		newDebugCommand(deps),
		newVersionCommand(deps),
	)
	cmd.InitDefaultCompletionCmd()
	return cmd
}
