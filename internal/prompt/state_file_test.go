package prompt

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dbpd/internal/models"
	"dbpd/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() models.PromptState {
	return models.PromptState{
		Activity: &models.UserActivity{
			LastActiveDay: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			ActiveDays:    12,
		},
		History: &models.PromptHistory{
			TimesShown:   1,
			LastShownDay: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			LastVariant:  models.VariantFirstPrompt,
		},
	}
}

func TestStateFileManager_Save_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")

	fm := NewStateFileManager(&testutil.MockCompressor{}, &testutil.MockLogger{})
	require.NoError(t, fm.Save(path, sampleState()))

	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestStateFileManager_SaveLoad_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	fm := NewStateFileManager(comp, &testutil.MockLogger{})

	require.NoError(t, fm.Save(path, sampleState()))

	loaded, err := fm.Load(path)
	require.NoError(t, err)
	assert.Equal(t, models.StateVersion, loaded.Version)
	require.NotNil(t, loaded.Activity)
	assert.Equal(t, 12, loaded.Activity.ActiveDays)
	require.NotNil(t, loaded.History)
	assert.Equal(t, 1, loaded.History.TimesShown)
	assert.Equal(t, models.VariantFirstPrompt, loaded.History.LastVariant)
}

func TestStateFileManager_Load_FileNotExist(t *testing.T) {
	fm := NewStateFileManager(&testutil.MockCompressor{}, &testutil.MockLogger{})

	state, err := fm.Load("/nonexistent/path/state.dat")
	require.NoError(t, err) // not an error, just no data
	assert.Nil(t, state.Activity)
	assert.Nil(t, state.History)
	assert.Zero(t, state.Version)
}

func TestStateFileManager_Load_LegacyPlainJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.dat")

	// Files written before compression: plain JSON, no version field.
	legacy := sampleState()
	legacy.Version = 0
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	logger := &testutil.MockLogger{}
	fm := NewStateFileManager(comp, logger)

	loaded, err := fm.Load(path)
	require.NoError(t, err)
	assert.Zero(t, loaded.Version)
	require.NotNil(t, loaded.Activity)
	assert.Equal(t, 12, loaded.Activity.ActiveDays)

	entries := logger.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, "warn", entries[0].Level)
}

func TestStateFileManager_Load_NewerVersionRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "future.dat")

	future := sampleState()
	future.Version = models.StateVersion + 1
	raw, err := json.Marshal(future)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	fm := NewStateFileManager(&testutil.MockCompressor{}, &testutil.MockLogger{})
	_, err = fm.Load(path)
	assert.Error(t, err)
}

func TestStateFileManager_Load_CorruptData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.dat")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a state file"), 0644))

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	fm := NewStateFileManager(comp, &testutil.MockLogger{})

	_, err = fm.Load(path)
	assert.Error(t, err)
}

func TestStateFileManager_Save_DirectoryMissing(t *testing.T) {
	fm := NewStateFileManager(&testutil.MockCompressor{}, &testutil.MockLogger{})
	err := fm.Save("/nonexistent/dir/state.dat", sampleState())
	assert.Error(t, err)
}
