// Package pebble persists probed durations in a Pebble key-value store.
package pebble

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cockroachdb/pebble"

	"github.com/bnema/splice/internal/port"
)

const keyPrefix = "duration/"

type DurationCache struct {
	db *pebble.DB
}

func Open(dir string) (*DurationCache, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open duration cache: %w", err)
	}
	return &DurationCache{db: db}, nil
}

func (c *DurationCache) Close() error {
	return c.db.Close()
}

func (c *DurationCache) Get(key string) (float64, bool, error) {
	value, closer, err := c.db.Get([]byte(keyPrefix + key))
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	defer closer.Close()

	if len(value) != 8 {
		return 0, false, fmt.Errorf("corrupt cache entry for %q", key)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(value)), true, nil
}

func (c *DurationCache) Put(key string, seconds float64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(seconds))
	return c.db.Set([]byte(keyPrefix+key), buf[:], pebble.Sync)
}

var _ port.DurationCache = (*DurationCache)(nil)
