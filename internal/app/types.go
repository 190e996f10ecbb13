package app

import (
	"log/slog"
	"time"

	"github.com/amanthanvi/bloom/internal/records"
)

// Input limits applied by the CLI and TUI before calling the service.
const (
	MaxJournalEntryLength = 2000
	MaxUrgeNoteLength     = 500
	MaxContactNameLength  = 50
	MaxContactPhoneLength = 20
)

type Settings struct {
	NotificationsEnabled bool                    `json:"notifications_enabled"`
	Theme                records.ThemePreference `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{NotificationsEnabled: false, Theme: records.ThemeSystem}
}

type ServiceOptions struct {
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Keys defaults to records.DefaultKeys().
	Keys records.Keys
}

// ResolveColorScheme returns the concrete scheme for pref. ThemeSystem
// follows system, and an unknown system scheme resolves to light.
func ResolveColorScheme(pref, system records.ThemePreference) records.ThemePreference {
	switch pref {
	case records.ThemeLight, records.ThemeDark:
		return pref
	}
	if system == records.ThemeDark {
		return records.ThemeDark
	}
	return records.ThemeLight
}
