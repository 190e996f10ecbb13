package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/amanthanvi/bloom/internal/app"
	"github.com/amanthanvi/bloom/internal/records"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var systemSchemeFn = func() records.ThemePreference {
	if lipgloss.HasDarkBackground() {
		return records.ThemeDark
	}
	return records.ThemeLight
}

func newSettingsCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change preferences",
	}
	cmd.AddCommand(
		newSettingsShowCommand(deps),
		newSettingsThemeCommand(deps),
		newSettingsNotificationsCommand(deps),
	)
	return cmd
}

type settingsOutput struct {
	app.Settings
	ColorScheme records.ThemePreference `json:"color_scheme"`
}

func newSettingsShowCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("settings show does not accept positional arguments")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				settings, err := s.service.LoadSettings(ctx)
				if err != nil {
					return err
				}
				out := settingsOutput{
					Settings:    settings,
					ColorScheme: app.ResolveColorScheme(settings.Theme, systemSchemeFn()),
				}
				if deps.globals.JSON {
					return printJSON(deps.out, out)
				}
				return printf(deps, "theme=%s (%s) notifications=%s\n",
					out.Theme, out.ColorScheme, boolToState(out.NotificationsEnabled, "on", "off"))
			})
		},
	}
}

func newSettingsThemeCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:       "theme <light|dark|system>",
		Short:     "Set the color theme",
		ValidArgs: []string{string(records.ThemeLight), string(records.ThemeDark), string(records.ThemeSystem)},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("settings theme requires exactly one of light, dark or system")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pref, err := records.ParseThemePreference(args[0])
			if err != nil {
				return usageErrorf("%v", err)
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				if err := s.service.SetThemePreference(ctx, pref); err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"theme": pref})
				}
				return printf(deps, "theme set to %s\n", pref)
			})
		},
	}
}

func newSettingsNotificationsCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:       "notifications <on|off>",
		Short:     "Turn milestone notifications on or off",
		ValidArgs: []string{"on", "off"},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("settings notifications requires on or off")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := parseToggle(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				if err := s.service.SetNotificationsEnabled(ctx, enabled); err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"notifications_enabled": enabled})
				}
				return printf(deps, "notifications %s\n", boolToState(enabled, "on", "off"))
			})
		},
	}
}

func parseToggle(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return false, usageErrorf("expected on or off, got %q", raw)
	}
	return enabled, nil
}
