package records

import (
	"encoding/json"
	"fmt"
	"strings"
)

type urgeLogWire struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Intensity int    `json:"intensity"`
	Note      string `json:"note,omitempty"`
}

type journalEntryWire struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Entry     string `json:"entry"`
}

func EncodeUrgeLogs(logs []UrgeLog) (string, error) {
	wire := make([]urgeLogWire, 0, len(logs))
	for _, log := range logs {
		wire = append(wire, urgeLogWire{
			ID:        log.ID,
			Timestamp: EncodeInstant(log.Timestamp),
			Intensity: log.Intensity,
			Note:      log.Note,
		})
	}
	return encodeJSON("urge logs", wire)
}

// DecodeUrgeLogs decodes each element on its own. Elements that cannot be
// decoded are reported in skipped; only a value that is not a JSON array is
// an error.
func DecodeUrgeLogs(raw string) (logs []UrgeLog, skipped []ItemError, err error) {
	return decodeItems("urge logs", raw, func(item json.RawMessage) (UrgeLog, error) {
		var wire urgeLogWire
		if err := decodeJSON("urge log", string(item), &wire); err != nil {
			return UrgeLog{}, err
		}
		ts, err := DecodeInstant(wire.Timestamp)
		if err != nil {
			return UrgeLog{}, fmt.Errorf("urge log %q: %w", wire.ID, err)
		}
		return UrgeLog{
			ID:        wire.ID,
			Timestamp: ts,
			Intensity: wire.Intensity,
			Note:      wire.Note,
		}, nil
	})
}

func EncodeJournalEntries(entries []JournalEntry) (string, error) {
	wire := make([]journalEntryWire, 0, len(entries))
	for _, entry := range entries {
		wire = append(wire, journalEntryWire{
			ID:        entry.ID,
			Timestamp: EncodeInstant(entry.Timestamp),
			Entry:     entry.Entry,
		})
	}
	return encodeJSON("journal entries", wire)
}

func DecodeJournalEntries(raw string) (entries []JournalEntry, skipped []ItemError, err error) {
	return decodeItems("journal entries", raw, func(item json.RawMessage) (JournalEntry, error) {
		var wire journalEntryWire
		if err := decodeJSON("journal entry", string(item), &wire); err != nil {
			return JournalEntry{}, err
		}
		ts, err := DecodeInstant(wire.Timestamp)
		if err != nil {
			return JournalEntry{}, fmt.Errorf("journal entry %q: %w", wire.ID, err)
		}
		return JournalEntry{
			ID:        wire.ID,
			Timestamp: ts,
			Entry:     wire.Entry,
		}, nil
	})
}

func EncodeEmergencyContact(contact EmergencyContact) (string, error) {
	return encodeJSON("emergency contact", contact)
}

func DecodeEmergencyContact(raw string) (EmergencyContact, error) {
	var contact EmergencyContact
	if err := decodeJSON("emergency contact", raw, &contact); err != nil {
		return EmergencyContact{}, err
	}
	if strings.TrimSpace(contact.Name) == "" || strings.TrimSpace(contact.Phone) == "" {
		return EmergencyContact{}, fmt.Errorf("%w: emergency contact is missing name or phone", ErrDecode)
	}
	return contact, nil
}

func EncodeDays(days []int) (string, error) {
	if days == nil {
		days = []int{}
	}
	return encodeJSON("milestone days", days)
}

func DecodeDays(raw string) (days []int, skipped []ItemError, err error) {
	return decodeItems("milestone days", raw, func(item json.RawMessage) (int, error) {
		var day int
		if err := decodeJSON("milestone day", string(item), &day); err != nil {
			return 0, err
		}
		return day, nil
	})
}

func EncodeBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// DecodeBool treats anything other than "true" as false.
func DecodeBool(raw string) bool {
	return raw == "true"
}

// DecodeThemePreference maps unknown or empty values to ThemeSystem.
func DecodeThemePreference(raw string) ThemePreference {
	switch ThemePreference(raw) {
	case ThemeLight, ThemeDark:
		return ThemePreference(raw)
	default:
		return ThemeSystem
	}
}

// ItemError is one list element that could not be decoded.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// decodeItems never returns a nil slice for a readable value, so "null"
// decodes as an empty list.
func decodeItems[T any](what, raw string, decode func(json.RawMessage) (T, error)) ([]T, []ItemError, error) {
	var items []json.RawMessage
	if err := decodeJSON(what, raw, &items); err != nil {
		return nil, nil, err
	}
	out := make([]T, 0, len(items))
	var skipped []ItemError
	for i, item := range items {
		value, err := decode(item)
		if err != nil {
			skipped = append(skipped, ItemError{Index: i, Err: err})
			continue
		}
		out = append(out, value)
	}
	return out, skipped, nil
}

func encodeJSON(what string, value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", what, err)
	}
	return string(data), nil
}

func decodeJSON(what, raw string, target any) error {
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, what, err)
	}
	return nil
}
