package domain

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	durations map[string]float64
	errs      map[string]error
	calls     int
}

func (s *stubSource) Duration(_ context.Context, path string) (float64, error) {
	s.calls++
	if err, ok := s.errs[path]; ok {
		return 0, err
	}
	return s.durations[path], nil
}

func TestMediaFile_Probe(t *testing.T) {
	ctx := context.Background()
	probeFailure := errors.New("moov atom not found")

	tests := []struct {
		name       string
		source     *stubSource
		policy     ProbePolicy
		want       float64
		wantErr    bool
		wantProbed bool
	}{
		{
			name:       "successful probe",
			source:     &stubSource{durations: map[string]float64{"a.mp4": 12.5}},
			policy:     ProbePolicyDegrade,
			want:       12.5,
			wantProbed: true,
		},
		{
			name:       "degraded failure is zero",
			source:     &stubSource{errs: map[string]error{"a.mp4": probeFailure}},
			policy:     ProbePolicyDegrade,
			want:       0,
			wantErr:    true,
			wantProbed: true,
		},
		{
			name:       "strict failure is not cached",
			source:     &stubSource{errs: map[string]error{"a.mp4": probeFailure}},
			policy:     ProbePolicyStrict,
			want:       0,
			wantErr:    true,
			wantProbed: false,
		},
		{
			name:       "negative duration clamps to zero",
			source:     &stubSource{durations: map[string]float64{"a.mp4": -3}},
			policy:     ProbePolicyStrict,
			want:       0,
			wantProbed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewMediaFile("a.mp4")
			got, err := f.Probe(ctx, tt.source, tt.policy)

			if tt.wantErr {
				var perr *ProbeError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, "a.mp4", perr.Path)
				assert.ErrorIs(t, err, probeFailure)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantProbed, f.Probed())
		})
	}
}

func TestMediaFile_ProbeCachesDuration(t *testing.T) {
	src := &stubSource{durations: map[string]float64{"clip.mov": 4}}
	f := NewMediaFile("clip.mov")

	for i := 0; i < 3; i++ {
		d, err := f.Probe(context.Background(), src, ProbePolicyStrict)
		require.NoError(t, err)
		assert.Equal(t, 4.0, d)
	}
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 4.0, f.Duration())
	assert.Equal(t, "clip.mov", f.Name())
}

func TestTargetProfile_VideoFilter(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t,
		"scale=1920:1080:force_original_aspect_ratio=decrease,pad=1920:1080:(ow-iw)/2:(oh-ih)/2:color=black,setsar=1,fps=30",
		p.VideoFilter())
}

func TestTargetProfile_Validate(t *testing.T) {
	assert.NoError(t, DefaultProfile().Validate())

	odd := DefaultProfile()
	odd.Width = 1921
	err := odd.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "even")

	empty := TargetProfile{}
	err = empty.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "container must be set"))
}

func TestNewNormalizationJobs(t *testing.T) {
	files := NewMediaFiles([]string{"/in/b.mov", "/in/a.mp4", "/in/b.mov"})
	jobs := NewNormalizationJobs(files, "/work", DefaultProfile())

	require.Len(t, jobs, 3)
	seen := map[string]bool{}
	for i, j := range jobs {
		assert.Equal(t, i, j.Index)
		assert.Equal(t, files[i].Path, j.SourcePath)
		assert.Equal(t, "/work", filepath.Dir(j.TargetPath))
		assert.False(t, seen[j.TargetPath], "target paths must be unique")
		seen[j.TargetPath] = true
	}
	assert.Equal(t, "/work/norm_000.mp4", jobs[0].TargetPath)
	assert.Equal(t, "/work/progress_norm_002.txt", jobs[2].ProgressPath)
}

func TestNewMergePlan(t *testing.T) {
	plan, err := NewMergePlan([]string{"/w/norm_000.mp4", "/w/norm_001.mp4"}, "/out.mp4", "/w", 2)
	require.NoError(t, err)
	assert.Equal(t, "/w/concat.txt", plan.ManifestPath)
	assert.Equal(t, "/w/progress_concat.txt", plan.ProgressPath)

	_, err = NewMergePlan([]string{"/w/norm_000.mp4"}, "/out.mp4", "/w", 2)
	assert.Error(t, err)
}

func TestRunLifecycle(t *testing.T) {
	run := NewRun([]string{"a.mp4"}, "/out.mp4", "")
	assert.Len(t, run.ID, 8)
	assert.Equal(t, RunStatusPending, run.Status)
	assert.False(t, run.IsTerminal())

	run.Apply(ProgressReport{Stage: StageNormalizing, Progress: 0.4, Status: "Normalizing video 1 of 1..."})
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Equal(t, 0.4, run.Progress)

	run.MarkAsFailed(&MergeError{Destination: "/out.mp4", Err: errors.New("exit status 1")})
	assert.True(t, run.IsTerminal())
	assert.Contains(t, run.ErrorMessage, "exit status 1")
	assert.False(t, run.FinishedAt.IsZero())

	run.MarkAsDone("/out.mp4")
	assert.Equal(t, RunStatusDone, run.Status)
	assert.Equal(t, 1.0, run.Progress)
	assert.Empty(t, run.ErrorMessage)
}

func TestNormalizationError_Message(t *testing.T) {
	err := &NormalizationError{Index: 1, Path: "b.mov", Err: errors.New("exit status 1")}
	assert.Equal(t, "normalize input 2 (b.mov): exit status 1", err.Error())
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("12.480000\n")
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)

	for _, bad := range []string{"", "N/A", "abc", "-1"} {
		_, err := ParseDuration(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", FormatDuration(0))
	assert.Equal(t, "1:05", FormatDuration(65))
	assert.Equal(t, "1:01:01", FormatDuration(3661))
}
