package progress

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindbloom/internal/structures"
	"mindbloom/internal/testutil"
)

func schedulerConf(filePath string) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: time.Hour,
		},
		Progress: structures.ProgressConfig{HistoryLimit: 10},
	}
}

func newTestScheduler(filePath string) (*Scheduler, *History) {
	conf := schedulerConf(filePath)
	history := NewHistory(conf)
	snapshot := NewSnapshotManager(&testutil.MockCompressor{}, history, &testutil.MockLogger{})
	s := NewScheduler(conf, &testutil.MockLogger{}, testutil.NewMockMetrics(), snapshot)
	return s.(*Scheduler), history
}

func TestScheduler_PersistAndRestore(t *testing.T) {
	file := filepath.Join(t.TempDir(), "reports.dat")
	s, history := newTestScheduler(file)
	history.Append(report("u1"))

	require.NoError(t, s.Persist())

	s2, history2 := newTestScheduler(file)
	require.NoError(t, s2.Restore())
	assert.Equal(t, 1, history2.Len())
}

func TestScheduler_RestoreMissingFile(t *testing.T) {
	s, history := newTestScheduler(filepath.Join(t.TempDir(), "nope.dat"))

	assert.NoError(t, s.Restore())
	assert.Zero(t, history.Len())
}

func TestScheduler_PersistWriteError(t *testing.T) {
	s, _ := newTestScheduler(filepath.Join(t.TempDir(), "no-such-dir", "reports.dat"))

	assert.Error(t, s.Persist())
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s, _ := newTestScheduler(filepath.Join(t.TempDir(), "reports.dat"))

	assert.NotPanics(t, func() { s.Stop() })
}

func TestScheduler_InitAndStop(t *testing.T) {
	s, _ := newTestScheduler(filepath.Join(t.TempDir(), "reports.dat"))

	s.Init()
	assert.NotNil(t, s.cron)
	s.Stop()
}
