package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/port"
)

type MergeRequest struct {
	Inputs      []string `json:"inputs"`
	Destination string   `json:"destination"`
	Export      string   `json:"export,omitempty"`
}

// MergeService is the entry point used by the CLI and the HTTP server. It
// records runs, publishes their events and exports finished outputs.
type MergeService struct {
	coord    *Coordinator
	store    port.RunStore
	events   EventPublisher
	exporter port.Exporter

	checkInput func(path string) error

	mu     sync.Mutex
	active map[string]*activeRun
}

// destinationExts are the containers ffmpeg can stream-copy the normalized
// H.264/AAC files into.
var destinationExts = map[string]bool{
	".mp4": true,
	".m4v": true,
	".mov": true,
	".mkv": true,
}

type activeRun struct {
	handle   *RunHandle
	finished chan struct{}
}

// NewMergeService wires the service. exporter may be nil when no export
// target is configured.
func NewMergeService(coord *Coordinator, store port.RunStore, events EventPublisher, exporter port.Exporter) *MergeService {
	return &MergeService{
		coord:    coord,
		store:    store,
		events:   events,
		exporter: exporter,
		active:   make(map[string]*activeRun),
	}
}

// SetInputCheck installs an extra per-input check, typically a content sniff,
// run after the file is known to exist.
func (s *MergeService) SetInputCheck(fn func(path string) error) {
	s.checkInput = fn
}

func (s *MergeService) validate(req MergeRequest) error {
	if err := (Request{Inputs: req.Inputs, Destination: req.Destination}).Validate(); err != nil {
		return err
	}
	for _, in := range req.Inputs {
		info, err := os.Stat(in)
		if err != nil {
			return &domain.PreconditionError{Reason: fmt.Sprintf("input %s is not readable", in)}
		}
		if !info.Mode().IsRegular() {
			return &domain.PreconditionError{Reason: fmt.Sprintf("input %s is not a regular file", in)}
		}
		if s.checkInput != nil {
			if err := s.checkInput(in); err != nil {
				return &domain.PreconditionError{Reason: fmt.Sprintf("input %s: %v", in, err)}
			}
		}
	}
	if ext := strings.ToLower(filepath.Ext(req.Destination)); !destinationExts[ext] {
		return &domain.PreconditionError{Reason: fmt.Sprintf("unsupported destination extension %q", ext)}
	}
	if info, err := os.Stat(filepath.Dir(req.Destination)); err != nil || !info.IsDir() {
		return &domain.PreconditionError{Reason: "destination directory does not exist"}
	}
	if req.Export != "" {
		if s.exporter == nil {
			return &domain.PreconditionError{Reason: "export is not configured"}
		}
		if err := s.exporter.Check(req.Export); err != nil {
			return &domain.PreconditionError{Reason: err.Error()}
		}
	}
	return nil
}

// Submit validates req and starts a run in the background. The returned Run is
// a snapshot. ctx only bounds submission; the run outlives it.
func (s *MergeService) Submit(ctx context.Context, req MergeRequest) (*domain.Run, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	run := domain.NewRun(req.Inputs, req.Destination, req.Export)
	saved := make(chan struct{})
	finished := make(chan struct{})

	cb := Callbacks{
		OnProgress: func(r domain.ProgressReport) {
			<-saved
			s.onProgress(run, r)
		},
		OnResult: func(res domain.PipelineResult) {
			<-saved
			s.onResult(context.WithoutCancel(ctx), run, res)
			s.mu.Lock()
			delete(s.active, run.ID)
			s.mu.Unlock()
			close(finished)
		},
	}

	h, err := s.coord.Start(context.WithoutCancel(ctx), Request{Inputs: req.Inputs, Destination: req.Destination}, cb)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active[run.ID] = &activeRun{handle: h, finished: finished}
	s.mu.Unlock()

	if err := s.store.Save(run); err != nil {
		logger.Error.Printf("failed to record run %s: %v", run.ID, err)
	}
	snapshot := *run
	close(saved)

	logger.Info.Printf("run %s started: inputs=%s dest=%s", run.ID,
		logger.SanitizePaths(req.Inputs), logger.SanitizeForLog(req.Destination))
	return &snapshot, nil
}

func (s *MergeService) onProgress(run *domain.Run, r domain.ProgressReport) {
	run.Apply(r)
	if err := s.store.UpdateProgress(run.ID, r); err != nil {
		logger.Warn.Printf("failed to record progress for run %s: %v", run.ID, err)
	}
	if s.events != nil {
		s.events.Publish(run.ID, ProgressEvent(r))
	}
}

func (s *MergeService) onResult(ctx context.Context, run *domain.Run, res domain.PipelineResult) {
	if res.OK() && run.ExportTarget != "" {
		s.onProgress(run, domain.ProgressReport{Stage: domain.StageDone, Progress: 1, Status: "Exporting..."})
		location, err := s.exporter.Export(ctx, res.OutputPath, run.ExportTarget)
		if err != nil {
			// the local output stays in place
			res = domain.Failure(&domain.ExportError{Target: run.ExportTarget, Err: err})
		} else {
			logger.Info.Printf("run %s exported to %s", run.ID, location)
		}
	}

	if res.OK() {
		run.MarkAsDone(res.OutputPath)
		logger.Info.Printf("run %s done: %s", run.ID, logger.SanitizeForLog(res.OutputPath))
	} else {
		run.MarkAsFailed(res.Err)
		logger.Error.Printf("run %s failed: %v", run.ID, res.Err)
	}

	if err := s.store.UpdateDone(run); err != nil {
		logger.Error.Printf("failed to record result for run %s: %v", run.ID, err)
	}
	if s.events != nil {
		s.events.Publish(run.ID, ResultEvent(res))
		s.events.Forget(run.ID)
	}
}

func (s *MergeService) Get(id string) (*domain.Run, error) {
	return s.store.Get(id)
}

func (s *MergeService) List(limit int) ([]*domain.Run, error) {
	return s.store.List(limit)
}

// Cancel stops an active run. Finished runs cannot be cancelled.
func (s *MergeService) Cancel(id string) error {
	s.mu.Lock()
	ar, ok := s.active[id]
	s.mu.Unlock()
	if ok {
		ar.handle.Cancel()
		logger.Info.Printf("run %s cancel requested", id)
		return nil
	}

	if _, err := s.store.Get(id); err != nil {
		return err
	}
	return &domain.PreconditionError{Reason: "run is not active"}
}

// Wait blocks until the run with id has been fully recorded, then returns its
// final state.
func (s *MergeService) Wait(ctx context.Context, id string) (*domain.Run, error) {
	s.mu.Lock()
	ar, ok := s.active[id]
	s.mu.Unlock()
	if ok {
		select {
		case <-ar.finished:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	run, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("run %s: %w", id, err)
		}
		return nil, err
	}
	return run, nil
}

func (s *MergeService) Busy() bool {
	return s.coord.Busy()
}

// CancelAll cancels every active run and waits until each has been recorded
// or ctx expires.
func (s *MergeService) CancelAll(ctx context.Context) error {
	s.mu.Lock()
	runs := make([]*activeRun, 0, len(s.active))
	for _, ar := range s.active {
		runs = append(runs, ar)
	}
	s.mu.Unlock()

	for _, ar := range runs {
		ar.handle.Cancel()
	}
	for _, ar := range runs {
		select {
		case <-ar.finished:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// errInterrupted marks runs left unfinished by a previous process.
var errInterrupted = errors.New("interrupted: splice stopped before the run finished")

// RecoverInterrupted fails stored runs that are neither terminal nor active
// in this process. It returns how many runs were updated.
func (s *MergeService) RecoverInterrupted(limit int) (int, error) {
	runs, err := s.store.List(limit)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, run := range runs {
		if run.IsTerminal() {
			continue
		}
		s.mu.Lock()
		_, active := s.active[run.ID]
		s.mu.Unlock()
		if active {
			continue
		}

		run.MarkAsFailed(errInterrupted)
		if err := s.store.UpdateDone(run); err != nil {
			return n, fmt.Errorf("recover run %s: %w", run.ID, err)
		}
		logger.Warn.Printf("run %s was interrupted, marked as failed", run.ID)
		n++
	}
	return n, nil
}
