package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/splice/internal/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedProber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	key, err := DurationCacheKey(path)
	require.NoError(t, err)

	t.Run("hit skips probe", func(t *testing.T) {
		prober := mocks.NewMediaProberMock(t)
		cache := mocks.NewDurationCacheMock(t)
		cache.EXPECT().Get(key).Return(7.5, true, nil).Once()

		d, err := NewCachedProber(prober, cache).Duration(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, 7.5, d)
	})

	t.Run("miss probes and stores", func(t *testing.T) {
		prober := mocks.NewMediaProberMock(t)
		cache := mocks.NewDurationCacheMock(t)
		cache.EXPECT().Get(key).Return(0, false, nil).Once()
		prober.EXPECT().Duration(mock.Anything, path).Return(12.0, nil).Once()
		cache.EXPECT().Put(key, 12.0).Return(nil).Once()

		d, err := NewCachedProber(prober, cache).Duration(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, 12.0, d)
	})

	t.Run("cache errors fall back to probing", func(t *testing.T) {
		prober := mocks.NewMediaProberMock(t)
		cache := mocks.NewDurationCacheMock(t)
		cache.EXPECT().Get(key).Return(0, false, errors.New("closed")).Once()
		prober.EXPECT().Duration(mock.Anything, path).Return(3.0, nil).Once()
		cache.EXPECT().Put(key, 3.0).Return(errors.New("closed")).Once()

		d, err := NewCachedProber(prober, cache).Duration(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, 3.0, d)
	})

	t.Run("probe failure is not cached", func(t *testing.T) {
		prober := mocks.NewMediaProberMock(t)
		cache := mocks.NewDurationCacheMock(t)
		cache.EXPECT().Get(key).Return(0, false, nil).Once()
		prober.EXPECT().Duration(mock.Anything, path).Return(0, errors.New("invalid data")).Once()

		_, err := NewCachedProber(prober, cache).Duration(context.Background(), path)
		assert.Error(t, err)
	})
}

func TestDurationCacheKey_ChangesWithContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	k1, err := DurationCacheKey(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("longer"), 0o644))
	k2, err := DurationCacheKey(path)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	_, err = DurationCacheKey(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}
