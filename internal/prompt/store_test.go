package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dbpd/internal/models"
	"dbpd/internal/structures"
	"dbpd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeConfig(filePath string) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: 1 * time.Second,
		},
		Status: structures.StatusConfig{
			DesktopEntry:    "browser.desktop",
			ProbeTimeout:    2 * time.Second,
			RefreshInterval: 1 * time.Second,
		},
	}
}

func newTestStore(path string, comp *testutil.MockCompressor) *PersistentStore {
	logger := &testutil.MockLogger{}
	fm := NewStateFileManager(comp, logger)
	return NewPersistentStore(storeConfig(path), models.NewStateStore(), fm, &testutil.MockMetrics{}, logger)
}

func TestPersistentStore_SaveActivity_WriteThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")
	store := newTestStore(path, &testutil.MockCompressor{})

	activity := models.UserActivity{
		LastActiveDay: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ActiveDays:    3,
	}
	require.NoError(t, store.SaveActivity(activity))

	assert.Equal(t, 3, store.CurrentActivity().ActiveDays)

	_, err := os.Stat(path)
	assert.NoError(t, err)

	// A fresh store reading the same file sees the same entities.
	other := newTestStore(path, &testutil.MockCompressor{})
	require.NoError(t, other.Restore())
	assert.Equal(t, activity, other.CurrentActivity())
}

func TestPersistentStore_SaveHistory_WriteThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")
	store := newTestStore(path, &testutil.MockCompressor{})

	history := models.PromptHistory{
		TimesShown:   2,
		LastShownDay: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		LastVariant:  models.VariantReminder,
	}
	require.NoError(t, store.SaveHistory(history))

	other := newTestStore(path, &testutil.MockCompressor{})
	require.NoError(t, other.Restore())
	assert.Equal(t, history, other.LoadHistory())
}

func TestPersistentStore_SaveFailure_KeepsMemoryAndRetries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")

	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	store := newTestStore(path, comp)

	activity := models.UserActivity{
		LastActiveDay: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ActiveDays:    1,
	}
	err := store.SaveActivity(activity)
	require.Error(t, err)

	// Memory holds the new value even though the file write failed.
	assert.Equal(t, 1, store.CurrentActivity().ActiveDays)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Heal the writer; Flush retries and catches the file up.
	comp.CompressFn = nil
	require.NoError(t, store.Flush())

	_, statErr = os.Stat(path)
	assert.NoError(t, statErr)
}

func TestPersistentStore_Flush_NoopWhenClean(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")
	store := newTestStore(path, &testutil.MockCompressor{})

	require.NoError(t, store.Flush())

	// Nothing was dirty, so nothing was written.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPersistentStore_Persist_WritesUnconditionally(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")
	store := newTestStore(path, &testutil.MockCompressor{})

	require.NoError(t, store.Persist())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestPersistentStore_Restore_MissingFile(t *testing.T) {
	store := newTestStore("/nonexistent/state.dat", &testutil.MockCompressor{})

	require.NoError(t, store.Restore())
	assert.True(t, store.CurrentActivity().IsZero())
	assert.True(t, store.LoadHistory().IsZero())
}

func TestPersistentStore_DeleteActivity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")
	store := newTestStore(path, &testutil.MockCompressor{})

	require.NoError(t, store.SaveActivity(models.UserActivity{
		LastActiveDay: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ActiveDays:    5,
	}))
	require.NoError(t, store.DeleteActivity())

	assert.True(t, store.CurrentActivity().IsZero())

	// The cleared state is what lands on disk.
	other := newTestStore(path, &testutil.MockCompressor{})
	require.NoError(t, other.Restore())
	assert.True(t, other.CurrentActivity().IsZero())
}
