package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs the whole pipeline against real ffmpeg. Enable with SPLICE_FFMPEG_IT=1.
func TestPipeline_OutputDurationIsSumOfInputs(t *testing.T) {
	if os.Getenv("SPLICE_FFMPEG_IT") != "1" {
		t.Skip("set SPLICE_FFMPEG_IT=1 to run against a real ffmpeg")
	}

	dir := t.TempDir()
	clips := []struct {
		size     string
		rate     int
		duration float64
		noAudio  bool
	}{
		{size: "640x360", rate: 25, duration: 1.0, noAudio: true},
		{size: "320x240", rate: 30, duration: 2.0},
		{size: "1280x720", rate: 24, duration: 1.5},
	}

	var inputs []string
	var want float64
	for i, c := range clips {
		path := filepath.Join(dir, fmt.Sprintf("clip%d.mp4", i))
		args := []string{"-hide_banner", "-loglevel", "error", "-y",
			"-f", "lavfi", "-i", fmt.Sprintf("testsrc=size=%s:rate=%d:duration=%g", c.size, c.rate, c.duration)}
		if c.noAudio {
			args = append(args, "-c:v", "libx264", "-an", path)
		} else {
			args = append(args,
				"-f", "lavfi", "-i", fmt.Sprintf("sine=frequency=440:sample_rate=44100:duration=%g", c.duration),
				"-c:v", "libx264", "-c:a", "aac", "-shortest", path)
		}
		out, err := exec.Command("ffmpeg", args...).CombinedOutput()
		require.NoError(t, err, string(out))
		inputs = append(inputs, path)
		want += c.duration
	}

	conv := NewConverter("", "")
	opts := service.DefaultOptions()
	opts.Profile.Width, opts.Profile.Height = 640, 360
	opts.Profile.Preset = "ultrafast"
	opts.PollInterval = 100 * time.Millisecond
	opts.WorkDir = t.TempDir()
	coord := service.NewCoordinator(conv, conv, conv, opts)

	dest := filepath.Join(dir, "merged.mp4")
	var last float64
	res := coord.Run(context.Background(), service.Request{Inputs: inputs, Destination: dest}, service.Callbacks{
		OnProgress: func(r domain.ProgressReport) {
			assert.GreaterOrEqual(t, r.Progress, last)
			last = r.Progress
		},
	})
	require.NoError(t, res.Err)

	got, err := conv.Duration(context.Background(), dest)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 0.2)
	assert.Equal(t, 1.0, last)

	assert.False(t, conv.hasAudio(context.Background(), inputs[0]))
	assert.True(t, conv.hasAudio(context.Background(), dest), "a silent first clip must not drop audio from the merge")
}
