package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/amanthanvi/bloom/internal/records"
	"github.com/amanthanvi/bloom/internal/storage"
	"github.com/google/uuid"
)

// StorageService is the only component that reads or writes the record keys.
// List updates are read-modify-write; a per-key mutex serialises them within
// the process. Two processes sharing a store can still lose an update.
type StorageService struct {
	kv     storage.KeyValueStore
	keys   records.Keys
	now    func() time.Time
	logger *slog.Logger

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewStorageService(kv storage.KeyValueStore, opts ServiceOptions) *StorageService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Keys == (records.Keys{}) {
		opts.Keys = records.DefaultKeys()
	}
	return &StorageService{
		kv:     kv,
		keys:   opts.Keys,
		now:    opts.Clock,
		logger: opts.Logger,
		locks:  map[string]*sync.Mutex{},
	}
}

func (s *StorageService) Keys() records.Keys {
	return s.keys
}

func (s *StorageService) SetSobrietyDate(ctx context.Context, start time.Time) error {
	const op = "set sobriety date"
	if start.IsZero() {
		return s.invalid(op, &ValidationError{Field: "sobriety_date", Reason: "is required"})
	}
	defer s.lock(s.keys.SobrietyDate)()
	return s.write(ctx, op, s.keys.SobrietyDate, records.EncodeInstant(start))
}

// GetSobrietyDate reports false when no journey has been started.
func (s *StorageService) GetSobrietyDate(ctx context.Context) (time.Time, bool, error) {
	const op = "get sobriety date"
	raw, ok, err := s.read(ctx, op, s.keys.SobrietyDate)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	start, err := records.DecodeInstant(raw)
	if err != nil {
		return time.Time{}, false, s.fail(op, KindDecode, s.keys.SobrietyDate, err)
	}
	return start, true, nil
}

func (s *StorageService) ResetSobrietyDate(ctx context.Context) error {
	defer s.lock(s.keys.SobrietyDate)()
	return s.remove(ctx, "reset sobriety date", s.keys.SobrietyDate)
}

func (s *StorageService) SaveUrgeLog(ctx context.Context, intensity int, note string) (records.UrgeLog, error) {
	const op = "save urge log"
	input := urgeLogInput{Intensity: intensity, Note: strings.TrimSpace(note)}
	if err := checkInput(input); err != nil {
		return records.UrgeLog{}, s.invalid(op, err)
	}

	defer s.lock(s.keys.UrgeLogs)()
	logs, err := s.urgeLogs(ctx, op, forWrite)
	if err != nil {
		return records.UrgeLog{}, err
	}

	now := s.now()
	log := records.UrgeLog{
		ID:        newRecordID(now),
		Timestamp: now.UTC().Truncate(time.Millisecond),
		Intensity: input.Intensity,
		Note:      input.Note,
	}
	raw, err := records.EncodeUrgeLogs(append([]records.UrgeLog{log}, logs...))
	if err != nil {
		return records.UrgeLog{}, s.fail(op, KindWrite, s.keys.UrgeLogs, err)
	}
	if err := s.write(ctx, op, s.keys.UrgeLogs, raw); err != nil {
		return records.UrgeLog{}, err
	}
	return log, nil
}

// GetUrgeLogs returns the logs most recent first. A missing or unreadable
// value reads as an empty list and unreadable items are left out.
func (s *StorageService) GetUrgeLogs(ctx context.Context) ([]records.UrgeLog, error) {
	return s.urgeLogs(ctx, "get urge logs", forRead)
}

func (s *StorageService) urgeLogs(ctx context.Context, op string, mode decodeMode) ([]records.UrgeLog, error) {
	raw, ok, err := s.read(ctx, op, s.keys.UrgeLogs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []records.UrgeLog{}, nil
	}
	logs, skipped, decodeErr := records.DecodeUrgeLogs(raw)
	if err := s.checkDecoded(op, s.keys.UrgeLogs, mode, skipped, decodeErr); err != nil {
		return nil, err
	}
	if logs == nil {
		return []records.UrgeLog{}, nil
	}
	return logs, nil
}

func (s *StorageService) SaveJournalEntry(ctx context.Context, text string) (records.JournalEntry, error) {
	const op = "save journal entry"
	input := journalEntryInput{Entry: strings.TrimSpace(text)}
	if err := checkInput(input); err != nil {
		return records.JournalEntry{}, s.invalid(op, err)
	}

	defer s.lock(s.keys.JournalEntries)()
	entries, err := s.journalEntries(ctx, op, forWrite)
	if err != nil {
		return records.JournalEntry{}, err
	}

	now := s.now()
	entry := records.JournalEntry{
		ID:        newRecordID(now),
		Timestamp: now.UTC().Truncate(time.Millisecond),
		Entry:     input.Entry,
	}
	if err := s.writeJournal(ctx, op, append([]records.JournalEntry{entry}, entries...)); err != nil {
		return records.JournalEntry{}, err
	}
	return entry, nil
}

// GetJournalEntries returns the entries most recent first, with the same
// leniency as GetUrgeLogs.
func (s *StorageService) GetJournalEntries(ctx context.Context) ([]records.JournalEntry, error) {
	return s.journalEntries(ctx, "get journal entries", forRead)
}

// DeleteJournalEntry removes the entry with id. An unknown id is not an error
// and leaves the stored list untouched.
func (s *StorageService) DeleteJournalEntry(ctx context.Context, id string) error {
	const op = "delete journal entry"
	defer s.lock(s.keys.JournalEntries)()
	entries, err := s.journalEntries(ctx, op, forWrite)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(entries), func(e records.JournalEntry) bool {
		return e.ID == id
	})
	if len(kept) == len(entries) {
		return nil
	}
	return s.writeJournal(ctx, op, kept)
}

func (s *StorageService) journalEntries(ctx context.Context, op string, mode decodeMode) ([]records.JournalEntry, error) {
	raw, ok, err := s.read(ctx, op, s.keys.JournalEntries)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []records.JournalEntry{}, nil
	}
	entries, skipped, decodeErr := records.DecodeJournalEntries(raw)
	if err := s.checkDecoded(op, s.keys.JournalEntries, mode, skipped, decodeErr); err != nil {
		return nil, err
	}
	if entries == nil {
		return []records.JournalEntry{}, nil
	}
	return entries, nil
}

func (s *StorageService) writeJournal(ctx context.Context, op string, entries []records.JournalEntry) error {
	raw, err := records.EncodeJournalEntries(entries)
	if err != nil {
		return s.fail(op, KindWrite, s.keys.JournalEntries, err)
	}
	return s.write(ctx, op, s.keys.JournalEntries, raw)
}

func (s *StorageService) SaveEmergencyContact(ctx context.Context, contact records.EmergencyContact) (records.EmergencyContact, error) {
	const op = "save emergency contact"
	input := contactInput{Name: strings.TrimSpace(contact.Name), Phone: strings.TrimSpace(contact.Phone)}
	if err := checkInput(input); err != nil {
		return records.EmergencyContact{}, s.invalid(op, err)
	}

	saved := records.EmergencyContact{Name: input.Name, Phone: input.Phone}
	raw, err := records.EncodeEmergencyContact(saved)
	if err != nil {
		return records.EmergencyContact{}, s.fail(op, KindWrite, s.keys.EmergencyContact, err)
	}
	defer s.lock(s.keys.EmergencyContact)()
	if err := s.write(ctx, op, s.keys.EmergencyContact, raw); err != nil {
		return records.EmergencyContact{}, err
	}
	return saved, nil
}

// GetEmergencyContact reports false when no contact is saved. A stored
// contact that cannot be decoded is an error rather than absent.
func (s *StorageService) GetEmergencyContact(ctx context.Context) (records.EmergencyContact, bool, error) {
	const op = "get emergency contact"
	raw, ok, err := s.read(ctx, op, s.keys.EmergencyContact)
	if err != nil || !ok {
		return records.EmergencyContact{}, false, err
	}
	contact, err := records.DecodeEmergencyContact(raw)
	if err != nil {
		return records.EmergencyContact{}, false, s.fail(op, KindDecode, s.keys.EmergencyContact, err)
	}
	return contact, true, nil
}

func (s *StorageService) ClearEmergencyContact(ctx context.Context) error {
	defer s.lock(s.keys.EmergencyContact)()
	return s.remove(ctx, "clear emergency contact", s.keys.EmergencyContact)
}

func (s *StorageService) GetShownMilestones(ctx context.Context) ([]int, error) {
	return s.shownMilestones(ctx, "get shown milestones", forRead)
}

// MarkMilestoneAsShown adds day to the shown set. Nothing is written when the
// day is already present.
func (s *StorageService) MarkMilestoneAsShown(ctx context.Context, day int) error {
	const op = "mark milestone as shown"
	defer s.lock(s.keys.ShownMilestones)()
	days, err := s.shownMilestones(ctx, op, forWrite)
	if err != nil {
		return err
	}
	if slices.Contains(days, day) {
		return nil
	}
	raw, err := records.EncodeDays(append(days, day))
	if err != nil {
		return s.fail(op, KindWrite, s.keys.ShownMilestones, err)
	}
	return s.write(ctx, op, s.keys.ShownMilestones, raw)
}

func (s *StorageService) ResetShownMilestones(ctx context.Context) error {
	defer s.lock(s.keys.ShownMilestones)()
	return s.remove(ctx, "reset shown milestones", s.keys.ShownMilestones)
}

func (s *StorageService) shownMilestones(ctx context.Context, op string, mode decodeMode) ([]int, error) {
	raw, ok, err := s.read(ctx, op, s.keys.ShownMilestones)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []int{}, nil
	}
	days, skipped, decodeErr := records.DecodeDays(raw)
	if err := s.checkDecoded(op, s.keys.ShownMilestones, mode, skipped, decodeErr); err != nil {
		return nil, err
	}
	if days == nil {
		return []int{}, nil
	}
	return days, nil
}

// ResetJourney clears the sobriety date and the shown milestones. Unless
// keepData is set it also removes journal entries and urge logs. Each key is
// removed separately; the first failure stops the reset.
func (s *StorageService) ResetJourney(ctx context.Context, keepData bool) error {
	if err := s.ResetSobrietyDate(ctx); err != nil {
		return err
	}
	if err := s.ResetShownMilestones(ctx); err != nil {
		return err
	}
	if keepData {
		return nil
	}
	for _, key := range []string{s.keys.JournalEntries, s.keys.UrgeLogs} {
		unlock := s.lock(key)
		err := s.remove(ctx, "reset journey", key)
		unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadSettings falls back to defaults for anything missing or unreadable.
func (s *StorageService) LoadSettings(ctx context.Context) (Settings, error) {
	const op = "load settings"
	settings := DefaultSettings()

	raw, ok, err := s.read(ctx, op, s.keys.NotificationsEnabled)
	if err != nil {
		return settings, err
	}
	if ok {
		settings.NotificationsEnabled = records.DecodeBool(raw)
	}

	raw, ok, err = s.read(ctx, op, s.keys.DarkModePreference)
	if err != nil {
		return settings, err
	}
	if ok {
		settings.Theme = records.DecodeThemePreference(raw)
	}
	return settings, nil
}

func (s *StorageService) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	defer s.lock(s.keys.NotificationsEnabled)()
	return s.write(ctx, "set notifications", s.keys.NotificationsEnabled, records.EncodeBool(enabled))
}

// SetThemePreference stores light or dark. ThemeSystem removes the key so the
// platform default applies.
func (s *StorageService) SetThemePreference(ctx context.Context, pref records.ThemePreference) error {
	const op = "set theme preference"
	defer s.lock(s.keys.DarkModePreference)()
	switch pref {
	case records.ThemeLight, records.ThemeDark:
		return s.write(ctx, op, s.keys.DarkModePreference, string(pref))
	case records.ThemeSystem:
		return s.remove(ctx, op, s.keys.DarkModePreference)
	default:
		return s.invalid(op, &ValidationError{Field: "theme", Reason: fmt.Sprintf("must be light, dark or system, got %q", pref)})
	}
}

func (s *StorageService) lock(key string) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[key] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (s *StorageService) read(ctx context.Context, op, key string) (string, bool, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.fail(op, KindRead, key, err)
	}
	return raw, true, nil
}

func (s *StorageService) write(ctx context.Context, op, key, value string) error {
	if err := s.kv.Set(ctx, key, value); err != nil {
		return s.fail(op, KindWrite, key, err)
	}
	return nil
}

func (s *StorageService) remove(ctx context.Context, op, key string) error {
	if err := s.kv.Remove(ctx, key); err != nil {
		return s.fail(op, KindRemove, key, err)
	}
	return nil
}

func (s *StorageService) fail(op string, kind ErrorKind, key string, err error) error {
	s.logger.Error("storage operation failed", "op", op, "kind", string(kind), "key", key, "error", err)
	return &StorageError{Kind: kind, Op: op, Err: err}
}

func (s *StorageService) invalid(op string, err error) error {
	return &StorageError{Kind: KindValidation, Op: op, Err: err}
}

// decodeMode says whether a decoded list is about to be written back.
type decodeMode int

const (
	forRead decodeMode = iota
	forWrite
)

// checkDecoded logs unreadable list content on reads. Before a write it
// refuses instead, so a rewrite never drops items that could not be read.
func (s *StorageService) checkDecoded(op, key string, mode decodeMode, skipped []records.ItemError, err error) error {
	if mode == forWrite {
		if err != nil {
			return s.fail(op, KindDecode, key, err)
		}
		if len(skipped) > 0 {
			return s.fail(op, KindDecode, key, fmt.Errorf("%w: %d unreadable item(s) would be overwritten", records.ErrDecode, len(skipped)))
		}
		return nil
	}
	if err != nil {
		s.logger.Warn("ignoring malformed stored list", "op", op, "key", key, "error", err)
		return nil
	}
	for _, item := range skipped {
		s.logger.Warn("skipping malformed stored item", "op", op, "key", key, "index", item.Index, "error", item.Err)
	}
	return nil
}

// newRecordID is the creation time in unix milliseconds plus a random suffix.
func newRecordID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}
