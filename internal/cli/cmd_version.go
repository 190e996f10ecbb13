package cli

import (
	"github.com/spf13/cobra"
)

func newVersionCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Example: "  bloom version\n" +
			"  bloom --json version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("version does not accept positional arguments")
			}
			if deps.globals.JSON {
				return mapCommandError(printJSON(deps.out, deps.build))
			}
			return mapCommandError(printf(deps, "bloom %s (commit %s, built %s)\n",
				deps.build.Version, deps.build.Commit, deps.build.BuildTime))
		},
	}
}
