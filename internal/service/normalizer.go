package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/port"
)

// DefaultNormalizeWeight is the share of overall progress given to
// normalization. Merging takes the rest.
const DefaultNormalizeWeight = 0.8

type ProgressFunc func(domain.ProgressReport)

type Normalizer struct {
	converter port.MediaConverter
	weight    float64
	interval  time.Duration
}

func NewNormalizer(converter port.MediaConverter, weight float64, interval time.Duration) *Normalizer {
	return &Normalizer{
		converter: converter,
		weight:    weight,
		interval:  interval,
	}
}

// Normalize re-encodes jobs one at a time in order. On the first failure every
// output produced so far is removed and nothing is returned.
func (n *Normalizer) Normalize(ctx context.Context, jobs []domain.NormalizationJob, report ProgressFunc) ([]string, error) {
	var total float64
	for _, j := range jobs {
		total += j.Duration
	}

	outputs := make([]string, 0, len(jobs))
	var done float64
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			removeAll(outputs)
			return nil, cancelled(err)
		}

		b := n.bandFor(i, len(jobs), done, job.Duration, total)
		status := fmt.Sprintf("Normalizing video %d of %d...", i+1, len(jobs))
		emit := func(p float64) {
			report(domain.ProgressReport{Stage: domain.StageNormalizing, Progress: p, Status: status})
		}
		emit(b.lo)

		logger.Debug.Printf("normalize %d/%d: %s -> %s", i+1, len(jobs),
			logger.SanitizeForLog(job.SourcePath), job.TargetPath)

		mon := NewProgressMonitor(job.ProgressPath, job.Duration, n.interval)
		err := runMonitored(ctx, mon, func(f float64) { emit(b.at(f)) }, func(ctx context.Context) error {
			return n.converter.Normalize(ctx, job)
		})
		if err != nil {
			removeAll(append(outputs, job.TargetPath))
			if ctx.Err() != nil {
				return nil, cancelled(ctx.Err())
			}
			logger.Error.Printf("normalize %s failed: %v", logger.SanitizeForLog(job.SourcePath), err)
			return nil, &domain.NormalizationError{Index: job.Index, Path: job.SourcePath, Err: err}
		}

		outputs = append(outputs, job.TargetPath)
		done += job.Duration
		emit(b.hi)
	}
	return outputs, nil
}

// bandFor weights each file by duration. Without any known duration the band
// is split evenly by file count.
func (n *Normalizer) bandFor(i, count int, done, d, total float64) band {
	if total <= 0 {
		return band{
			lo: n.weight * float64(i) / float64(count),
			hi: n.weight * float64(i+1) / float64(count),
		}
	}
	return band{
		lo: n.weight * done / total,
		hi: n.weight * (done + d) / total,
	}
}

func removeAll(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Warn.Printf("failed to remove %s: %v", p, err)
		}
	}
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrCancelled, err)
}
