package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/bnema/splice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	run := domain.NewRun([]string{"/v/a.mp4", "/v/it's b.mov"}, "/out/merged.mp4", "s3://bucket/merged.mp4")

	require.NoError(t, s.Save(run))

	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, domain.RunStatusPending, got.Status)
	assert.Equal(t, run.Inputs, got.Inputs)
	assert.Equal(t, "s3://bucket/merged.mp4", got.ExportTarget)
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Millisecond)
	assert.True(t, got.FinishedAt.IsZero())
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("NOPE0000")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_ProgressAndDone(t *testing.T) {
	s := newTestStore(t)
	run := domain.NewRun([]string{"a.mp4", "b.mp4"}, "/out/m.mp4", "")
	require.NoError(t, s.Save(run))

	require.NoError(t, s.UpdateProgress(run.ID, domain.ProgressReport{
		Stage: domain.StageNormalizing, Progress: 0.4, Status: "Normalizing video 2 of 2...",
	}))
	got, err := s.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusRunning, got.Status)
	assert.Equal(t, domain.StageNormalizing, got.Stage)
	assert.Equal(t, 0.4, got.Progress)

	run.MarkAsFailed(&domain.MergeError{Destination: "/out/m.mp4", Err: errors.New("exit status 1")})
	require.NoError(t, s.UpdateDone(run))
	got, err = s.Get(run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusFailed, got.Status)
	assert.Contains(t, got.ErrorMessage, "exit status 1")
	assert.False(t, got.FinishedAt.IsZero())

	assert.ErrorIs(t, s.UpdateProgress("NOPE0000", domain.ProgressReport{}), domain.ErrNotFound)
	assert.ErrorIs(t, s.UpdateDone(&domain.Run{ID: "NOPE0000"}), domain.ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Now().UTC()
	var ids []string
	for i := 0; i < 3; i++ {
		run := domain.NewRun([]string{"a.mp4", "b.mp4"}, "/out/m.mp4", "")
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.Save(run))
		ids = append(ids, run.ID)
	}

	runs, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}
