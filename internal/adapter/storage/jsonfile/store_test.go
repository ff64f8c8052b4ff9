package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/splice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("loads existing data from file", func(t *testing.T) {
		tempDir := t.TempDir()
		runs := []domain.Run{
			{ID: "run1", Destination: "/out/a.mp4", Inputs: []string{"a", "b"}},
			{ID: "run2", Destination: "/out/b.mp4", Inputs: []string{"c", "d"}},
		}
		data, _ := json.MarshalIndent(runs, "", "  ")
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "runs.json"), data, 0600))

		store, err := NewStore(tempDir)

		require.NoError(t, err)
		assert.Len(t, store.runs, 2)
		assert.Equal(t, "/out/b.mp4", store.runs["run2"].Destination)
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		tempDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "runs.json"), []byte("invalid json"), 0600))

		store, err := NewStore(tempDir)

		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("missing and empty files give an empty store", func(t *testing.T) {
		tempDir := t.TempDir()
		store, err := NewStore(tempDir)
		require.NoError(t, err)
		assert.Empty(t, store.runs)

		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "runs.json"), nil, 0600))
		store, err = NewStore(tempDir)
		require.NoError(t, err)
		assert.Empty(t, store.runs)
	})
}

func TestStore_SaveGetRoundTripThroughDisk(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewStore(tempDir)
	require.NoError(t, err)

	run := domain.NewRun([]string{"/v/a.mp4", "/v/b.mp4"}, "/out/m.mp4", "")
	require.NoError(t, store.Save(run))

	run.Inputs[0] = "mutated"
	got, err := store.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "/v/a.mp4", got.Inputs[0], "store keeps its own copy")

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	got, err = reopened.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "/out/m.mp4", got.Destination)

	_, err = reopened.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ProgressIsFlushedOnDone(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewStore(tempDir)
	require.NoError(t, err)

	run := domain.NewRun([]string{"a", "b"}, "/out/m.mp4", "")
	require.NoError(t, store.Save(run))
	require.NoError(t, store.UpdateProgress(run.ID, domain.ProgressReport{Stage: domain.StageMerging, Progress: 0.9, Status: "Merging videos..."}))

	got, _ := store.Get(run.ID)
	assert.Equal(t, 0.9, got.Progress)
	assert.Equal(t, domain.RunStatusRunning, got.Status)

	run.MarkAsDone("/out/m.mp4")
	require.NoError(t, store.UpdateDone(run))

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	got, err = reopened.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusDone, got.Status)
	assert.Equal(t, 1.0, got.Progress)

	assert.ErrorIs(t, store.UpdateProgress("missing", domain.ProgressReport{}), domain.ErrNotFound)
	assert.ErrorIs(t, store.UpdateDone(&domain.Run{ID: "missing"}), domain.ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	base := time.Now().UTC()
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.Save(&domain.Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	runs, err := store.List(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)

	all, err := store.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestConcurrentAccess(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run := domain.NewRun([]string{"a", "b"}, "/out/m.mp4", "")
			assert.NoError(t, store.Save(run))
			assert.NoError(t, store.UpdateProgress(run.ID, domain.ProgressReport{Progress: 0.5}))
			_, err := store.List(5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, store.runs, 20)
}
