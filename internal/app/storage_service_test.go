package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amanthanvi/bloom/internal/records"
	"github.com/amanthanvi/bloom/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestSobrietyDateLifecycle(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, ok, err := svc.GetSobrietyDate(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	start := time.Date(2024, time.May, 1, 21, 15, 0, 0, time.FixedZone("UTC-4", -4*60*60))
	require.NoError(t, svc.SetSobrietyDate(ctx, start))

	got, ok, err := svc.GetSobrietyDate(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, start.Equal(got))

	later := start.Add(48 * time.Hour)
	require.NoError(t, svc.SetSobrietyDate(ctx, later))
	got, _, err = svc.GetSobrietyDate(ctx)
	require.NoError(t, err)
	require.True(t, later.Equal(got))

	require.NoError(t, svc.ResetSobrietyDate(ctx))
	require.NoError(t, svc.ResetSobrietyDate(ctx))
	_, ok, err = svc.GetSobrietyDate(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSetSobrietyDateStoresISOInstant(t *testing.T) {
	t.Parallel()

	svc, kv := newTestService(t)
	ctx := context.Background()

	start := time.Date(2024, time.May, 2, 1, 15, 0, 0, time.UTC)
	require.NoError(t, svc.SetSobrietyDate(ctx, start))

	raw, err := kv.Get(ctx, records.DefaultKeys().SobrietyDate)
	require.NoError(t, err)
	require.Equal(t, "2024-05-02T01:15:00.000Z", raw)
}

func TestSaveUrgeLogRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	for intensity := 1; intensity <= 10; intensity++ {
		saved, err := svc.SaveUrgeLog(ctx, intensity, "  after dinner  ")
		require.NoError(t, err)

		logs, err := svc.GetUrgeLogs(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, logs)
		first := logs[0]
		require.Equal(t, saved.ID, first.ID)
		require.Equal(t, intensity, first.Intensity)
		require.Equal(t, "after dinner", first.Note)
		require.True(t, saved.Timestamp.Equal(first.Timestamp))
		require.True(t, fixedNow.Equal(first.Timestamp))
	}
}

func TestSaveUrgeLogValidatesIntensityBounds(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, intensity := range []int{0, 11, -3} {
		_, err := svc.SaveUrgeLog(ctx, intensity, "")
		require.ErrorIsf(t, err, ErrValidation, "intensity %d", intensity)
		require.True(t, IsKind(err, KindValidation))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "intensity", verr.Field)
	}

	for _, intensity := range []int{1, 10} {
		_, err := svc.SaveUrgeLog(ctx, intensity, "")
		require.NoErrorf(t, err, "intensity %d", intensity)
	}

	logs, err := svc.GetUrgeLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, 10, logs[0].Intensity)
	require.Equal(t, 1, logs[1].Intensity)
}

func TestJournalEntriesAreOrderedByInsertion(t *testing.T) {
	t.Parallel()

	clock := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	ticks := []time.Duration{0, -time.Hour, 3 * time.Hour, -48 * time.Hour}
	var n int
	svc, _ := newTestServiceWithClock(t, func() time.Time {
		d := ticks[n%len(ticks)]
		n++
		return clock.Add(d)
	})
	ctx := context.Background()

	texts := []string{"first", "second", "third", "fourth"}
	for _, text := range texts {
		_, err := svc.SaveJournalEntry(ctx, text)
		require.NoError(t, err)
	}

	entries, err := svc.GetJournalEntries(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Entry)
	}
	require.Equal(t, []string{"fourth", "third", "second", "first"}, got)
}

func TestSaveJournalEntryTrimsAndRejectsBlank(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	entry, err := svc.SaveJournalEntry(ctx, "\n  grateful today \t")
	require.NoError(t, err)
	require.Equal(t, "grateful today", entry.Entry)
	require.Regexp(t, regexp.MustCompile(`^\d+-[0-9a-f]{9}$`), entry.ID)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.SaveJournalEntry(ctx, text)
		require.ErrorIs(t, err, ErrValidation)
	}

	entries, err := svc.GetJournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSaveJournalEntryKeepsLongText(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	long := strings.Repeat("a", MaxJournalEntryLength+10)
	entry, err := svc.SaveJournalEntry(context.Background(), long)
	require.NoError(t, err)
	require.Len(t, entry.Entry, MaxJournalEntryLength+10)
}

func TestDeleteJournalEntry(t *testing.T) {
	t.Parallel()

	svc, kv := newTestService(t)
	ctx := context.Background()

	a, err := svc.SaveJournalEntry(ctx, "a")
	require.NoError(t, err)
	b, err := svc.SaveJournalEntry(ctx, "b")
	require.NoError(t, err)

	before, err := kv.Get(ctx, records.DefaultKeys().JournalEntries)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteJournalEntry(ctx, "no-such-id"))
	after, err := kv.Get(ctx, records.DefaultKeys().JournalEntries)
	require.NoError(t, err)
	require.Equal(t, before, after)

	require.NoError(t, svc.DeleteJournalEntry(ctx, a.ID))
	entries, err := svc.GetJournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, b.ID, entries[0].ID)
}

func TestDeleteJournalEntryOnEmptyStore(t *testing.T) {
	t.Parallel()

	svc, kv := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.DeleteJournalEntry(ctx, "missing"))

	_, err := kv.Get(ctx, records.DefaultKeys().JournalEntries)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEmergencyContactLifecycle(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, ok, err := svc.GetEmergencyContact(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	saved, err := svc.SaveEmergencyContact(ctx, records.EmergencyContact{Name: " Sam ", Phone: " +1 555 0100 "})
	require.NoError(t, err)
	require.Equal(t, records.EmergencyContact{Name: "Sam", Phone: "+1 555 0100"}, saved)

	got, ok, err := svc.GetEmergencyContact(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, saved, got)

	require.NoError(t, svc.ClearEmergencyContact(ctx))
	require.NoError(t, svc.ClearEmergencyContact(ctx))
	_, ok, err = svc.GetEmergencyContact(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSaveEmergencyContactRequiresBothFields(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveEmergencyContact(ctx, records.EmergencyContact{Name: "Sam", Phone: "  "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "phone", verr.Field)

	_, err = svc.SaveEmergencyContact(ctx, records.EmergencyContact{Phone: "555"})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "name", verr.Field)

	_, ok, err := svc.GetEmergencyContact(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestShownMilestonesSetSemantics(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	days, err := svc.GetShownMilestones(ctx)
	require.NoError(t, err)
	require.Empty(t, days)

	require.NoError(t, svc.MarkMilestoneAsShown(ctx, 1))
	require.NoError(t, svc.MarkMilestoneAsShown(ctx, 7))
	require.NoError(t, svc.MarkMilestoneAsShown(ctx, 1))

	days, err = svc.GetShownMilestones(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{1, 7}, days)

	require.NoError(t, svc.ResetShownMilestones(ctx))
	days, err = svc.GetShownMilestones(ctx)
	require.NoError(t, err)
	require.Empty(t, days)
}

func TestMarkMilestoneAsShownSkipsWriteWhenPresent(t *testing.T) {
	t.Parallel()

	kv := newFaultyStore(t)
	svc := NewStorageService(kv, ServiceOptions{Logger: discardLogger()})
	ctx := context.Background()

	require.NoError(t, svc.MarkMilestoneAsShown(ctx, 3))
	kv.failSet = errors.New("read-only")
	require.NoError(t, svc.MarkMilestoneAsShown(ctx, 3))
	require.Error(t, svc.MarkMilestoneAsShown(ctx, 14))
}

func TestListDecodeFailureReadsAsEmptyButBlocksWrites(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	kv := newFaultyStore(t)
	svc := NewStorageService(kv, ServiceOptions{Logger: slog.New(slog.NewTextHandler(&logs, nil)), Clock: fixedClock})
	ctx := context.Background()
	keys := records.DefaultKeys()

	require.NoError(t, kv.Set(ctx, keys.UrgeLogs, `{"not":"a list"}`))
	require.NoError(t, kv.Set(ctx, keys.JournalEntries, `garbage`))
	require.NoError(t, kv.Set(ctx, keys.ShownMilestones, `"7"`))

	urges, err := svc.GetUrgeLogs(ctx)
	require.NoError(t, err)
	require.NotNil(t, urges)
	require.Empty(t, urges)
	entries, err := svc.GetJournalEntries(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
	days, err := svc.GetShownMilestones(ctx)
	require.NoError(t, err)
	require.Empty(t, days)
	require.Contains(t, logs.String(), "ignoring malformed stored list")

	_, err = svc.SaveJournalEntry(ctx, "fresh start")
	require.True(t, IsKind(err, KindDecode))
	require.ErrorIs(t, err, records.ErrDecode)
	_, err = svc.SaveUrgeLog(ctx, 3, "")
	require.True(t, IsKind(err, KindDecode))
	require.True(t, IsKind(svc.DeleteJournalEntry(ctx, "any"), KindDecode))
	require.True(t, IsKind(svc.MarkMilestoneAsShown(ctx, 1), KindDecode))

	raw, err := kv.Get(ctx, keys.JournalEntries)
	require.NoError(t, err)
	require.Equal(t, "garbage", raw)
	raw, err = kv.Get(ctx, keys.UrgeLogs)
	require.NoError(t, err)
	require.Equal(t, `{"not":"a list"}`, raw)
	raw, err = kv.Get(ctx, keys.ShownMilestones)
	require.NoError(t, err)
	require.Equal(t, `"7"`, raw)

	require.NoError(t, svc.ResetJourney(ctx, false))
	_, err = svc.SaveJournalEntry(ctx, "fresh start")
	require.NoError(t, err)
}

func TestSaveKeepsExistingItemsWhenOneIsMalformed(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	kv := newFaultyStore(t)
	svc := NewStorageService(kv, ServiceOptions{Logger: slog.New(slog.NewTextHandler(&logs, nil)), Clock: fixedClock})
	ctx := context.Background()
	keys := records.DefaultKeys()

	stored := `[{"id":"a","timestamp":"2024-04-10T08:00:00.000Z","intensity":6},` +
		`{"id":"b","timestamp":"2024-04-09T08:00:00.000Z","intensity":2,"note":"walked it off"},` +
		`{"id":"c","timestamp":"bad","intensity":9}]`
	require.NoError(t, kv.Set(ctx, keys.UrgeLogs, stored))

	urges, err := svc.GetUrgeLogs(ctx)
	require.NoError(t, err)
	require.Len(t, urges, 2)
	require.Equal(t, "a", urges[0].ID)
	require.Equal(t, "b", urges[1].ID)
	require.Contains(t, logs.String(), "skipping malformed stored item")

	_, err = svc.SaveUrgeLog(ctx, 4, "")
	require.True(t, IsKind(err, KindDecode))
	require.ErrorIs(t, err, records.ErrDecode)

	raw, err := kv.Get(ctx, keys.UrgeLogs)
	require.NoError(t, err)
	require.Equal(t, stored, raw)

	urges, err = svc.GetUrgeLogs(ctx)
	require.NoError(t, err)
	require.Len(t, urges, 2)
}

func TestSingleValueDecodeFailureIsError(t *testing.T) {
	t.Parallel()

	kv := newFaultyStore(t)
	svc := NewStorageService(kv, ServiceOptions{Logger: discardLogger()})
	ctx := context.Background()
	keys := records.DefaultKeys()

	require.NoError(t, kv.Set(ctx, keys.SobrietyDate, "yesterday"))
	_, ok, err := svc.GetSobrietyDate(ctx)
	require.False(t, ok)
	require.True(t, IsKind(err, KindDecode))
	require.ErrorIs(t, err, records.ErrDecode)

	require.NoError(t, kv.Set(ctx, keys.EmergencyContact, `{"name":"Sam"}`))
	_, ok, err = svc.GetEmergencyContact(ctx)
	require.False(t, ok)
	require.True(t, IsKind(err, KindDecode))
}

func TestStoreFailuresSurfaceAsStorageError(t *testing.T) {
	t.Parallel()

	kv := newFaultyStore(t)
	svc := NewStorageService(kv, ServiceOptions{Logger: discardLogger()})
	ctx := context.Background()
	boom := errors.New("disk full")

	kv.failGet = boom
	_, err := svc.GetUrgeLogs(ctx)
	require.True(t, IsKind(err, KindRead))
	require.ErrorIs(t, err, boom)
	_, err = svc.SaveJournalEntry(ctx, "x")
	require.True(t, IsKind(err, KindRead))
	kv.failGet = nil

	kv.failSet = boom
	_, err = svc.SaveUrgeLog(ctx, 5, "")
	require.True(t, IsKind(err, KindWrite))
	require.ErrorIs(t, err, boom)
	kv.failSet = nil

	logs, err := svc.GetUrgeLogs(ctx)
	require.NoError(t, err)
	require.Empty(t, logs)

	kv.failRemove = boom
	err = svc.ClearEmergencyContact(ctx)
	require.True(t, IsKind(err, KindRemove))

	var se *StorageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "clear emergency contact", se.Op)
}

func TestConcurrentSavesDoNotLoseUpdates(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	const writers = 12
	var wg sync.WaitGroup
	errs := make(chan error, writers*2)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.SaveUrgeLog(ctx, i%10+1, "")
			errs <- err
			errs <- svc.MarkMilestoneAsShown(ctx, i)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	logs, err := svc.GetUrgeLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, writers)
	ids := map[string]bool{}
	for _, l := range logs {
		ids[l.ID] = true
	}
	require.Len(t, ids, writers)

	days, err := svc.GetShownMilestones(ctx)
	require.NoError(t, err)
	require.Len(t, days, writers)
}

func TestResetJourney(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, keepData := range []bool{true, false} {
		svc, _ := newTestService(t)
		require.NoError(t, svc.SetSobrietyDate(ctx, fixedNow))
		require.NoError(t, svc.MarkMilestoneAsShown(ctx, 1))
		_, err := svc.SaveJournalEntry(ctx, "day one")
		require.NoError(t, err)
		_, err = svc.SaveUrgeLog(ctx, 4, "")
		require.NoError(t, err)
		_, err = svc.SaveEmergencyContact(ctx, records.EmergencyContact{Name: "Sam", Phone: "555"})
		require.NoError(t, err)

		require.NoError(t, svc.ResetJourney(ctx, keepData))

		_, ok, err := svc.GetSobrietyDate(ctx)
		require.NoError(t, err)
		require.False(t, ok)
		days, err := svc.GetShownMilestones(ctx)
		require.NoError(t, err)
		require.Empty(t, days)

		entries, err := svc.GetJournalEntries(ctx)
		require.NoError(t, err)
		urges, err := svc.GetUrgeLogs(ctx)
		require.NoError(t, err)
		if keepData {
			require.Len(t, entries, 1)
			require.Len(t, urges, 1)
		} else {
			require.Empty(t, entries)
			require.Empty(t, urges)
		}

		_, ok, err = svc.GetEmergencyContact(ctx)
		require.NoError(t, err)
		require.True(t, ok, "contact survives reset")
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()

	svc, kv := newTestService(t)
	ctx := context.Background()
	keys := records.DefaultKeys()

	settings, err := svc.LoadSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, DefaultSettings(), settings)

	require.NoError(t, svc.SetNotificationsEnabled(ctx, true))
	require.NoError(t, svc.SetThemePreference(ctx, records.ThemeDark))
	raw, err := kv.Get(ctx, keys.NotificationsEnabled)
	require.NoError(t, err)
	require.Equal(t, "true", raw)

	settings, err = svc.LoadSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, Settings{NotificationsEnabled: true, Theme: records.ThemeDark}, settings)

	require.NoError(t, svc.SetThemePreference(ctx, records.ThemeSystem))
	_, err = kv.Get(ctx, keys.DarkModePreference)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.ErrorIs(t, svc.SetThemePreference(ctx, "sepia"), ErrValidation)

	require.NoError(t, kv.Set(ctx, keys.DarkModePreference, "neon"))
	settings, err = svc.LoadSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, records.ThemeSystem, settings.Theme)
}

func TestResolveColorScheme(t *testing.T) {
	t.Parallel()

	require.Equal(t, records.ThemeDark, ResolveColorScheme(records.ThemeDark, records.ThemeLight))
	require.Equal(t, records.ThemeLight, ResolveColorScheme(records.ThemeLight, records.ThemeDark))
	require.Equal(t, records.ThemeDark, ResolveColorScheme(records.ThemeSystem, records.ThemeDark))
	require.Equal(t, records.ThemeLight, ResolveColorScheme(records.ThemeSystem, ""))
}

func TestCustomKeyNamespace(t *testing.T) {
	t.Parallel()

	kv := newFaultyStore(t)
	svc := NewStorageService(kv, ServiceOptions{Keys: records.KeysFor("test:"), Logger: discardLogger()})
	ctx := context.Background()
	require.NoError(t, svc.SetSobrietyDate(ctx, fixedNow))

	_, err := kv.Get(ctx, "test:sobriety_date")
	require.NoError(t, err)
	_, err = kv.Get(ctx, records.DefaultKeys().SobrietyDate)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

var fixedNow = time.Date(2024, time.April, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*StorageService, storage.KeyValueStore) {
	t.Helper()
	return newTestServiceWithClock(t, fixedClock)
}

func newTestServiceWithClock(t *testing.T, clock func() time.Time) (*StorageService, storage.KeyValueStore) {
	t.Helper()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "bloom.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	return NewStorageService(store, ServiceOptions{Clock: clock, Logger: discardLogger()}), store
}

// faultyStore is an in-memory KeyValueStore with injectable failures.
type faultyStore struct {
	mu         sync.Mutex
	values     map[string]string
	failGet    error
	failSet    error
	failRemove error
}

func newFaultyStore(t *testing.T) *faultyStore {
	t.Helper()
	return &faultyStore{values: map[string]string{}}
}

func (f *faultyStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return "", f.failGet
	}
	v, ok := f.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (f *faultyStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet != nil {
		return f.failSet
	}
	f.values[key] = value
	return nil
}

func (f *faultyStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemove != nil {
		return f.failRemove
	}
	delete(f.values, key)
	return nil
}
