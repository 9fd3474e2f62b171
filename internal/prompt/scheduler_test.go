package prompt

import (
	"errors"
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

func newSchedulerUnderTest(filePath string, comp *testutil.MockCompressor, provider *stubStatusProvider) (*Scheduler, *PersistentStore) {
	conf := storeConfig(filePath)
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	fm := NewStateFileManager(comp, logger)
	store := NewPersistentStore(conf, models.NewStateStore(), fm, metrics, logger)
	status := NewDefaultStatusCache(conf, provider, metrics, logger)
	s := NewScheduler(conf, logger, store, status).(*Scheduler)
	return s, store
}

func TestScheduler_Restore_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "restore.dat")

	state := models.PromptState{
		Version: models.StateVersion,
		Activity: &models.UserActivity{
			LastActiveDay: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			ActiveDays:    42,
		},
	}
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	provider := &stubStatusProvider{result: true}
	s, store := newSchedulerUnderTest(path, &testutil.MockCompressor{}, provider)

	require.NoError(t, s.Restore())
	assert.Equal(t, 42, store.CurrentActivity().ActiveDays)

	// Restore also runs the first status probe.
	assert.Equal(t, 1, provider.callCount())
}

func TestScheduler_Restore_FileNotExist(t *testing.T) {
	s, store := newSchedulerUnderTest("/nonexistent/file.dat", &testutil.MockCompressor{}, &stubStatusProvider{})

	require.NoError(t, s.Restore())
	assert.True(t, store.CurrentActivity().IsZero())
}

func TestScheduler_Restore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	s, _ := newSchedulerUnderTest(path, &testutil.MockCompressor{}, &stubStatusProvider{})
	assert.Error(t, s.Restore())
}

func TestScheduler_Restore_ProbeFailureNotFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")

	provider := &stubStatusProvider{err: errors.New("no desktop session")}
	s, _ := newSchedulerUnderTest(path, &testutil.MockCompressor{}, provider)

	// A dead probe must not keep the engine from starting.
	assert.NoError(t, s.Restore())
}

func TestScheduler_Persist_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persist.dat")

	s, store := newSchedulerUnderTest(path, &testutil.MockCompressor{}, &stubStatusProvider{})
	require.NoError(t, store.SaveActivity(models.UserActivity{
		LastActiveDay: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ActiveDays:    1,
	}))

	require.NoError(t, s.Persist())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestScheduler_Persist_WriteError(t *testing.T) {
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	s, _ := newSchedulerUnderTest("/tmp/test.dat", comp, &stubStatusProvider{})
	assert.Error(t, s.Persist())
}

func TestScheduler_StopNilCron(t *testing.T) {
	s, _ := newSchedulerUnderTest("/tmp/test.dat", &testutil.MockCompressor{}, &stubStatusProvider{})
	// Should not panic with nil cron
	s.Stop()
}

func TestScheduler_InitAndStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lifecycle.dat")

	s, _ := newSchedulerUnderTest(path, &testutil.MockCompressor{}, &stubStatusProvider{})
	s.Init()
	// Give the cron a moment to start
	time.Sleep(50 * time.Millisecond)
	s.Stop()
}
