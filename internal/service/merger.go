package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/port"
)

type Merger struct {
	converter port.MediaConverter
	weight    float64
	interval  time.Duration
}

func NewMerger(converter port.MediaConverter, weight float64, interval time.Duration) *Merger {
	return &Merger{
		converter: converter,
		weight:    weight,
		interval:  interval,
	}
}

// Merge stream-copies the normalized files into plan.Destination. Once the
// concat has started, a failure removes the destination so a partial file is
// never handed out. Earlier failures leave it untouched.
func (m *Merger) Merge(ctx context.Context, plan domain.MergePlan, totalSeconds float64, report ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", cancelled(err)
	}

	concatStarted := false
	fail := func(err error) (string, error) {
		if concatStarted {
			removeAll([]string{plan.Destination})
		}
		if ctx.Err() != nil {
			return "", cancelled(ctx.Err())
		}
		logger.Error.Printf("merge into %s failed: %v", logger.SanitizeForLog(plan.Destination), err)
		return "", &domain.MergeError{Destination: plan.Destination, Err: err}
	}

	if err := WriteManifest(plan.ManifestPath, plan.NormalizedPaths); err != nil {
		return fail(err)
	}

	b := band{lo: m.weight, hi: 1}
	emit := func(p float64, status string) {
		report(domain.ProgressReport{Stage: domain.StageMerging, Progress: p, Status: status})
	}
	emit(b.lo, "Merging videos...")

	mon := NewProgressMonitor(plan.ProgressPath, totalSeconds, m.interval)
	concatStarted = true
	err := runMonitored(ctx, mon, func(f float64) { emit(b.at(f), "Merging videos...") }, func(ctx context.Context) error {
		return m.converter.Concat(ctx, plan)
	})
	if err != nil {
		return fail(err)
	}
	if _, err := os.Stat(plan.Destination); err != nil {
		return fail(fmt.Errorf("output not written: %w", err))
	}

	emit(b.hi, "Merge complete")
	return plan.Destination, nil
}

// WriteManifest writes an ffmpeg concat demuxer list, one quoted path per line.
func WriteManifest(path string, files []string) error {
	var sb strings.Builder
	for _, f := range files {
		sb.WriteString("file '")
		sb.WriteString(strings.ReplaceAll(f, "'", `'\''`))
		sb.WriteString("'\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	return nil
}
