package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amanthanvi/bloom/internal/app"
	"github.com/amanthanvi/bloom/internal/config"
	"github.com/spf13/cobra"
)

const defaultInitConfig = `[storage]
backend = "sqlite"
path = ""
sync_writes = true

[journey]
refresh_interval = "1s"

[logging]
level = "info"
file = ""
max_size_mb = 10
max_files = 5
`

func newInitCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("init does not accept positional arguments")
			}
			path, err := config.Path(config.LoadOptions{ConfigPath: strings.TrimSpace(deps.globals.ConfigPath)})
			if err != nil {
				return mapCommandError(fmt.Errorf("init: %w", err))
			}
			written, err := writeDefaultConfig(path, deps.globals.Yes)
			if err != nil {
				return mapCommandError(err)
			}

			if deps.globals.JSON {
				return printJSON(deps.out, map[string]any{
					"config_path": path,
					"written":     written,
				})
			}
			if !written {
				return printf(deps, "config already exists at %s (pass --yes to overwrite)\n", path)
			}
			return printf(deps, "wrote %s\n", path)
		},
	}
}

// writeDefaultConfig leaves an existing file alone unless overwrite is set.
func writeDefaultConfig(path string, overwrite bool) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, fmt.Errorf("%w: config path is required", app.ErrValidation)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, fmt.Errorf("init: create config directory: %w", err)
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("init: stat config path: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(defaultInitConfig), 0o600); err != nil {
		return false, fmt.Errorf("init: write config: %w", err)
	}
	return true, nil
}
