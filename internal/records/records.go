// Package records defines the persisted record shapes, the key namespace
// they live under, and the JSON codec used to turn them into store values.
package records

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Namespace prefixes every persisted key.
const Namespace = "@sobriety_tracker:"

var ErrDecode = errors.New("records: malformed stored value")

// isoLayout matches the millisecond UTC instants written by earlier installs.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

type Keys struct {
	SobrietyDate         string
	UrgeLogs             string
	JournalEntries       string
	EmergencyContact     string
	ShownMilestones      string
	NotificationsEnabled string
	DarkModePreference   string
}

func KeysFor(namespace string) Keys {
	return Keys{
		SobrietyDate:         namespace + "sobriety_date",
		UrgeLogs:             namespace + "urge_logs",
		JournalEntries:       namespace + "journal_entries",
		EmergencyContact:     namespace + "emergency_contact",
		ShownMilestones:      namespace + "shown_milestones",
		NotificationsEnabled: namespace + "notifications_enabled",
		DarkModePreference:   namespace + "dark_mode_preference",
	}
}

func DefaultKeys() Keys {
	return KeysFor(Namespace)
}

type UrgeLog struct {
	ID        string
	Timestamp time.Time
	Intensity int
	Note      string
}

type JournalEntry struct {
	ID        string
	Timestamp time.Time
	Entry     string
}

type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ThemePreference string

const (
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
	ThemeSystem ThemePreference = "system"
)

func ParseThemePreference(raw string) (ThemePreference, error) {
	switch ThemePreference(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	case ThemeSystem:
		return ThemeSystem, nil
	default:
		return "", fmt.Errorf("unknown theme preference %q", raw)
	}
}

func EncodeInstant(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func DecodeInstant(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: instant %q: %v", ErrDecode, raw, err)
	}
	return t.UTC(), nil
}

// DialURI returns a tel: link with everything but digits and '+' stripped.
func DialURI(phone string) string {
	var b strings.Builder
	b.WriteString("tel:")
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
