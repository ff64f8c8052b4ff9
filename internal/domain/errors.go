package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrRunInProgress = errors.New("a merge is already running")
	ErrCancelled     = errors.New("merge cancelled")
)

// PreconditionError rejects a merge request before any subprocess is started.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// ProbeError is only surfaced when the probe policy is strict.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// NormalizationError identifies the input whose re-encode failed.
type NormalizationError struct {
	Index int
	Path  string
	Err   error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize input %d (%s): %v", e.Index+1, e.Path, e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

type MergeError struct {
	Destination string
	Err         error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge into %s: %v", e.Destination, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// ToolMissingError carries installation guidance for the caller.
type ToolMissingError struct {
	Tool string
	Path string
	Hint string
}

func (e *ToolMissingError) Error() string {
	msg := fmt.Sprintf("%s not found (looked for %q)", e.Tool, e.Path)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

type ExportError struct {
	Target string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s: %v", e.Target, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
