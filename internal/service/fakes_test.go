package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/splice/internal/domain"
	"github.com/stretchr/testify/require"
)

var errExitStatus = errors.New("exit status 1")

// fakeProber serves durations from a map. Missing paths fail.
type fakeProber map[string]float64

func (p fakeProber) Duration(_ context.Context, path string) (float64, error) {
	d, ok := p[path]
	if !ok {
		return 0, errors.New("invalid data found when processing input")
	}
	return d, nil
}

// fakeConverter behaves like ffmpeg: it writes progress markers while
// "encoding" and creates the output file on success.
type fakeConverter struct {
	failIndex  int
	failConcat bool
	release    chan struct{}

	mu         sync.Mutex
	normalized []int
	concats    int
	manifest   string
}

func newFakeConverter() *fakeConverter {
	return &fakeConverter{failIndex: -1}
}

func (f *fakeConverter) wait(ctx context.Context) error {
	if f.release == nil {
		return nil
	}
	select {
	case <-f.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeConverter) Normalize(ctx context.Context, job domain.NormalizationJob) error {
	f.mu.Lock()
	f.normalized = append(f.normalized, job.Index)
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return err
	}
	emitProgress(job.ProgressPath, job.Duration)
	if job.Index == f.failIndex {
		return errExitStatus
	}
	return os.WriteFile(job.TargetPath, []byte(fmt.Sprintf("normalized %d", job.Index)), 0o644)
}

func (f *fakeConverter) Concat(ctx context.Context, plan domain.MergePlan) error {
	manifest, err := os.ReadFile(plan.ManifestPath)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.concats++
	f.manifest = string(manifest)
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return err
	}
	emitProgress(plan.ProgressPath, 3)
	if f.failConcat {
		_ = os.WriteFile(plan.Destination, []byte("partial"), 0o644)
		return errExitStatus
	}
	return os.WriteFile(plan.Destination, []byte(strings.Repeat("x", 16)), 0o644)
}

func (f *fakeConverter) normalizedIndexes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.normalized...)
}

func (f *fakeConverter) concatCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.concats
}

func emitProgress(path string, seconds float64) {
	var sb strings.Builder
	for step := 1; step <= 4; step++ {
		us := int64(seconds * float64(step) / 4 * 1e6)
		fmt.Fprintf(&sb, "out_time_ms=%d\nprogress=continue\n", us)
		_ = os.WriteFile(path, []byte(sb.String()), 0o644)
		time.Sleep(3 * time.Millisecond)
	}
}

// recorder collects progress reports from a run.
type recorder struct {
	mu      sync.Mutex
	reports []domain.ProgressReport
}

func (r *recorder) record(p domain.ProgressReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, p)
}

func (r *recorder) all() []domain.ProgressReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ProgressReport(nil), r.reports...)
}

func makeInputs(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("clip%d.mp4", i+1))
		require.NoError(t, os.WriteFile(paths[i], []byte("input"), 0o644))
	}
	return paths
}

func testOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.PollInterval = time.Millisecond
	opts.WorkDir = t.TempDir()
	return opts
}
