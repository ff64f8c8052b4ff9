package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/port"
)

// CachedProber consults a DurationCache before probing. Cache errors only
// cost a re-probe.
type CachedProber struct {
	prober port.MediaProber
	cache  port.DurationCache
}

func NewCachedProber(prober port.MediaProber, cache port.DurationCache) *CachedProber {
	return &CachedProber{prober: prober, cache: cache}
}

func (p *CachedProber) Duration(ctx context.Context, path string) (float64, error) {
	key, err := DurationCacheKey(path)
	if err != nil {
		return p.prober.Duration(ctx, path)
	}

	if d, ok, err := p.cache.Get(key); err != nil {
		logger.Warn.Printf("duration cache read failed: %v", err)
	} else if ok {
		logger.Debug.Printf("duration cache hit for %s", logger.SanitizeForLog(path))
		return d, nil
	}

	d, err := p.prober.Duration(ctx, path)
	if err != nil {
		return 0, err
	}
	if err := p.cache.Put(key, d); err != nil {
		logger.Warn.Printf("duration cache write failed: %v", err)
	}
	return d, nil
}

// DurationCacheKey identifies a file's content by absolute path, size and
// modification time.
func DurationCacheKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano()), nil
}

var _ port.MediaProber = (*CachedProber)(nil)
