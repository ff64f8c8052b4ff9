package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/port"
)

const minInputs = 2

type Options struct {
	Policy            domain.ProbePolicy
	Profile           domain.TargetProfile
	NormalizeWeight   float64
	PollInterval      time.Duration
	WorkDir           string
	KeepIntermediates bool
}

func DefaultOptions() Options {
	return Options{
		Policy:          domain.ProbePolicyDegrade,
		Profile:         domain.DefaultProfile(),
		NormalizeWeight: DefaultNormalizeWeight,
		PollInterval:    DefaultPollInterval,
	}
}

type Request struct {
	Inputs      []string
	Destination string
}

func (r Request) Validate() error {
	if len(r.Inputs) < minInputs {
		return &domain.PreconditionError{Reason: fmt.Sprintf("at least %d input files are required, got %d", minInputs, len(r.Inputs))}
	}
	if r.Destination == "" {
		return &domain.PreconditionError{Reason: "destination path is required"}
	}
	dest, _ := filepath.Abs(r.Destination)
	for _, in := range r.Inputs {
		if in == "" {
			return &domain.PreconditionError{Reason: "input path is empty"}
		}
		if abs, _ := filepath.Abs(in); abs == dest {
			return &domain.PreconditionError{Reason: "destination must not be one of the inputs"}
		}
	}
	return nil
}

// Callbacks are invoked from the run's goroutine. OnResult fires exactly once
// per accepted run, after the coordinator is free to accept the next one.
type Callbacks struct {
	OnProgress func(domain.ProgressReport)
	OnResult   func(domain.PipelineResult)
}

// Coordinator sequences probe, normalize and merge for one run at a time.
type Coordinator struct {
	prober    port.MediaProber
	converter port.MediaConverter
	tools     port.ToolChecker
	opts      Options

	busy atomic.Bool

	mu    sync.RWMutex
	stage domain.Stage
}

// NewCoordinator builds a coordinator. tools may be nil to skip the upfront
// executable check.
func NewCoordinator(prober port.MediaProber, converter port.MediaConverter, tools port.ToolChecker, opts Options) *Coordinator {
	if opts.NormalizeWeight <= 0 || opts.NormalizeWeight >= 1 {
		opts.NormalizeWeight = DefaultNormalizeWeight
	}
	if opts.Policy == "" {
		opts.Policy = domain.ProbePolicyDegrade
	}
	return &Coordinator{
		prober:    prober,
		converter: converter,
		tools:     tools,
		opts:      opts,
		stage:     domain.StageIdle,
	}
}

func (c *Coordinator) Stage() domain.Stage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stage
}

func (c *Coordinator) Busy() bool {
	return c.busy.Load()
}

func (c *Coordinator) setStage(s domain.Stage) {
	c.mu.Lock()
	c.stage = s
	c.mu.Unlock()
}

// RunHandle tracks a run started with Start.
type RunHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	result domain.PipelineResult
}

func (h *RunHandle) Done() <-chan struct{} {
	return h.done
}

// Result blocks until the run finishes.
func (h *RunHandle) Result() domain.PipelineResult {
	<-h.done
	return h.result
}

func (h *RunHandle) Cancel() {
	h.cancel()
}

// Start validates req and runs the pipeline on its own goroutine. A second
// call while a run is active returns domain.ErrRunInProgress.
func (c *Coordinator) Start(ctx context.Context, req Request, cb Callbacks) (*RunHandle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !c.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrRunInProgress
	}

	runCtx, cancel := context.WithCancel(ctx)
	h := &RunHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer cancel()

		res := c.execute(runCtx, req, cb.OnProgress)
		h.result = res
		c.setStage(domain.StageIdle)
		c.busy.Store(false)

		if cb.OnResult != nil {
			cb.OnResult(res)
		}
	}()
	return h, nil
}

// Run is the blocking form of Start. Rejections are returned as a failed
// result as well.
func (c *Coordinator) Run(ctx context.Context, req Request, cb Callbacks) domain.PipelineResult {
	h, err := c.Start(ctx, req, cb)
	if err != nil {
		res := domain.Failure(err)
		if cb.OnResult != nil {
			cb.OnResult(res)
		}
		return res
	}
	return h.Result()
}

func (c *Coordinator) execute(ctx context.Context, req Request, onProgress func(domain.ProgressReport)) domain.PipelineResult {
	started := time.Now()
	tracker := &progressTracker{emit: onProgress, stage: c.setStage}

	if c.tools != nil {
		if _, err := c.tools.CheckTools(ctx); err != nil {
			return domain.Failure(err)
		}
	}

	tracker.report(domain.ProgressReport{Stage: domain.StageProbing, Status: "Probing inputs..."})
	files, total, err := c.probe(ctx, req.Inputs)
	if err != nil {
		return domain.Failure(err)
	}

	workDir, err := os.MkdirTemp(c.opts.WorkDir, "splice-")
	if err != nil {
		return domain.Failure(fmt.Errorf("create workspace: %w", err))
	}
	defer func() {
		if c.opts.KeepIntermediates {
			logger.Info.Printf("keeping intermediates in %s", workDir)
			return
		}
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn.Printf("failed to remove workspace %s: %v", workDir, err)
		}
	}()

	jobs := domain.NewNormalizationJobs(files, workDir, c.opts.Profile)
	normalizer := NewNormalizer(c.converter, c.opts.NormalizeWeight, c.opts.PollInterval)
	normalized, err := normalizer.Normalize(ctx, jobs, tracker.report)
	if err != nil {
		return domain.Failure(err)
	}

	plan, err := domain.NewMergePlan(normalized, req.Destination, workDir, len(req.Inputs))
	if err != nil {
		return domain.Failure(&domain.MergeError{Destination: req.Destination, Err: err})
	}
	merger := NewMerger(c.converter, c.opts.NormalizeWeight, c.opts.PollInterval)
	out, err := merger.Merge(ctx, plan, total, tracker.report)
	if err != nil {
		return domain.Failure(err)
	}

	tracker.report(domain.ProgressReport{Stage: domain.StageDone, Progress: 1, Status: "Done"})
	logger.Info.Printf("merged %d files into %s in %s", len(req.Inputs),
		logger.SanitizeForLog(out), time.Since(started).Round(time.Millisecond))
	return domain.Success(out)
}

// probe fills in every input's duration and returns their sum.
func (c *Coordinator) probe(ctx context.Context, paths []string) ([]*domain.MediaFile, float64, error) {
	files := domain.NewMediaFiles(paths)
	var total float64
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, 0, cancelled(err)
		}
		d, err := f.Probe(ctx, c.prober, c.opts.Policy)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, cancelled(ctx.Err())
			}
			if c.opts.Policy == domain.ProbePolicyStrict {
				return nil, 0, err
			}
			logger.Warn.Printf("duration unknown for %s, progress will be approximate: %v",
				logger.SanitizeForLog(f.Path), err)
		}
		total += d
	}
	return files, total, nil
}

// progressTracker is the single point where reports from every stage are
// clamped and held monotonic before reaching the caller.
type progressTracker struct {
	mu    sync.Mutex
	last  float64
	emit  func(domain.ProgressReport)
	stage func(domain.Stage)
}

func (t *progressTracker) report(r domain.ProgressReport) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if r.Progress < t.last {
		r.Progress = t.last
	}
	if r.Progress > 1 {
		r.Progress = 1
	}
	t.last = r.Progress

	if t.stage != nil {
		t.stage(r.Stage)
	}
	if t.emit != nil {
		t.emit(r)
	}
}
