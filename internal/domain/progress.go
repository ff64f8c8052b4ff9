package domain

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"
)

type Stage string

const (
	StageIdle        Stage = "idle"
	StageProbing     Stage = "probing"
	StageNormalizing Stage = "normalizing"
	StageMerging     Stage = "merging"
	StageDone        Stage = "done"
)

type ProgressReport struct {
	Stage    Stage   `json:"stage"`
	Progress float64 `json:"progress"`
	Status   string  `json:"status"`
}

// Percent returns the progress on a 0-100 scale.
func (r ProgressReport) Percent() float64 {
	return r.Progress * 100
}

func (r ProgressReport) String() string {
	return fmt.Sprintf("%5.1f%% %s", r.Percent(), r.Status)
}

// PipelineResult is delivered exactly once per run.
type PipelineResult struct {
	OutputPath string
	Err        error
}

func Success(outputPath string) PipelineResult {
	return PipelineResult{OutputPath: outputPath}
}

func Failure(err error) PipelineResult {
	return PipelineResult{Err: err}
}

func (r PipelineResult) OK() bool {
	return r.Err == nil
}

type RunStatus string

const (
	RunStatusPending RunStatus = "pending"
	RunStatusRunning RunStatus = "running"
	RunStatusDone    RunStatus = "done"
	RunStatusFailed  RunStatus = "failed"
)

// Run is the persisted record of one merge request.
type Run struct {
	ID           string    `json:"id"`
	Status       RunStatus `json:"status"`
	Stage        Stage     `json:"stage"`
	Progress     float64   `json:"progress"`
	StatusText   string    `json:"status_text"`
	Inputs       []string  `json:"inputs"`
	Destination  string    `json:"destination"`
	ExportTarget string    `json:"export_target,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	FinishedAt   time.Time `json:"finished_at,omitempty"`
}

func NewRun(inputs []string, destination, exportTarget string) *Run {
	return &Run{
		ID:           generateID(),
		Status:       RunStatusPending,
		Stage:        StageIdle,
		Inputs:       inputs,
		Destination:  destination,
		ExportTarget: exportTarget,
		CreatedAt:    time.Now().UTC(),
	}
}

func (r *Run) IsTerminal() bool {
	return r.Status == RunStatusDone || r.Status == RunStatusFailed
}

func (r *Run) Apply(report ProgressReport) {
	r.Status = RunStatusRunning
	r.Stage = report.Stage
	r.Progress = report.Progress
	r.StatusText = report.Status
}

func (r *Run) MarkAsDone(outputPath string) {
	r.Status = RunStatusDone
	r.Stage = StageDone
	r.Progress = 1
	r.Destination = outputPath
	r.ErrorMessage = ""
	r.FinishedAt = time.Now().UTC()
}

func (r *Run) MarkAsFailed(err error) {
	r.Status = RunStatusFailed
	r.Stage = StageDone
	r.ErrorMessage = err.Error()
	r.FinishedAt = time.Now().UTC()
}

func generateID() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base32.StdEncoding.EncodeToString(b)[:8]
}
