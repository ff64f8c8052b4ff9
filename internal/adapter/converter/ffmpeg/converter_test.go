package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bnema/splice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "valid path", path: "/tmp/video.mp4"},
		{name: "valid path with spaces", path: "/tmp/my video.mp4"},
		{name: "valid relative path", path: "video.mp4"},
		{name: "empty path", path: "", wantErr: ErrEmptyPath},
		{name: "null byte at start", path: "\x00/tmp/video.mp4", wantErr: ErrInvalidPath},
		{name: "null byte in middle", path: "/tmp/\x00video.mp4", wantErr: ErrInvalidPath},
		{name: "null byte at end", path: "/tmp/video.mp4\x00", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeArgs(t *testing.T) {
	job := domain.NormalizationJob{
		Index:        1,
		SourcePath:   "/in/b.mov",
		TargetPath:   "/work/norm_001.mp4",
		ProgressPath: "/work/progress_norm_001.txt",
		Profile:      domain.DefaultProfile(),
	}
	args := NormalizeArgs(job, true)
	joined := strings.Join(args, " ")

	assert.Equal(t, "/work/norm_001.mp4", args[len(args)-1], "output path is last")
	assert.Contains(t, joined, "-progress /work/progress_norm_001.txt")
	assert.Contains(t, joined, "-i /in/b.mov")
	assert.Contains(t, joined, "-map 0:v:0 -map 0:a:0")
	assert.NotContains(t, joined, "anullsrc")
	assert.Contains(t, joined, "-vf "+job.Profile.VideoFilter())
	assert.Contains(t, joined, "-c:v libx264 -crf 23 -preset medium -pix_fmt yuv420p")
	assert.Contains(t, joined, "-c:a aac -ar 48000 -ac 2 -b:a 192k")
	assert.Contains(t, args, "-nostdin")
	assert.Contains(t, args, "-y")
}

func TestNormalizeArgs_SilentTrackWithoutAudio(t *testing.T) {
	job := domain.NormalizationJob{
		SourcePath:   "/in/screen.mp4",
		TargetPath:   "/work/norm_000.mp4",
		ProgressPath: "/work/progress_norm_000.txt",
		Profile:      domain.DefaultProfile(),
	}
	args := NormalizeArgs(job, false)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-i /in/screen.mp4 -f lavfi -i anullsrc=r=48000:cl=stereo")
	assert.Contains(t, joined, "-map 0:v:0 -map 1:a:0 -shortest")
	assert.Contains(t, joined, "-c:a aac -ar 48000 -ac 2 -b:a 192k")
	assert.Equal(t, "/work/norm_000.mp4", args[len(args)-1])
}

func TestChannelLayout(t *testing.T) {
	assert.Equal(t, "mono", channelLayout(1))
	assert.Equal(t, "stereo", channelLayout(2))
	assert.Equal(t, "6c", channelLayout(6))
}

func TestAudioStreamsArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"-v", "error", "-select_streams", "a", "-show_entries", "stream=index", "-of", "csv=p=0", "a.mp4"},
		AudioStreamsArgs("a.mp4"))
}

func TestConcatArgs(t *testing.T) {
	plan := domain.MergePlan{
		ManifestPath: "/work/concat.txt",
		ProgressPath: "/work/progress_concat.txt",
		Destination:  "/out/merged.mp4",
	}
	joined := strings.Join(ConcatArgs(plan), " ")

	assert.Contains(t, joined, "-f concat -safe 0 -i /work/concat.txt")
	assert.Contains(t, joined, "-c copy")
	assert.Contains(t, joined, "-progress /work/progress_concat.txt")
	assert.True(t, strings.HasSuffix(joined, " /out/merged.mp4"))
	assert.NotContains(t, joined, "libx264", "concat never re-encodes")
}

func TestProbeArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", "a.mp4"},
		ProbeArgs("a.mp4"))
}

func TestConverter_PathValidation(t *testing.T) {
	c := NewConverter("", "")
	ctx := context.Background()

	err := c.Normalize(ctx, domain.NormalizationJob{SourcePath: "", TargetPath: "/tmp/out.mp4"})
	assert.ErrorIs(t, err, ErrEmptyPath)
	assert.Contains(t, err.Error(), "invalid input path")

	err = c.Normalize(ctx, domain.NormalizationJob{SourcePath: "/tmp/in.mp4", TargetPath: "/tmp/\x00out.mp4"})
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Contains(t, err.Error(), "invalid output path")

	err = c.Concat(ctx, domain.MergePlan{ManifestPath: "", Destination: "/tmp/out.mp4"})
	assert.Contains(t, err.Error(), "invalid manifest path")

	_, err = c.Duration(ctx, "/tmp/\x00video.mp4")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

// writeTool drops an executable shell script standing in for ffmpeg/ffprobe.
func writeTool(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools need a unix shell")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestConverter_Duration(t *testing.T) {
	probe := writeTool(t, "ffprobe", `echo "12.480000"`)
	c := NewConverter("", probe)

	d, err := c.Duration(context.Background(), "/videos/a.mp4")
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)
}

func TestConverter_Duration_Unparsable(t *testing.T) {
	probe := writeTool(t, "ffprobe", `echo "N/A"`)
	c := NewConverter("", probe)

	_, err := c.Duration(context.Background(), "/videos/a.mp4")
	assert.Error(t, err)
}

func TestConverter_NonZeroExitCarriesStderr(t *testing.T) {
	tool := writeTool(t, "ffmpeg", `echo "first" >&2; echo "Invalid data found when processing input" >&2; exit 1`)
	c := NewConverter(tool, "")

	err := c.Normalize(context.Background(), domain.NormalizationJob{
		SourcePath: "/videos/a.mp4",
		TargetPath: filepath.Join(t.TempDir(), "norm_000.mp4"),
		Profile:    domain.DefaultProfile(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Contains(t, err.Error(), "Invalid data found when processing input")
}

func TestConverter_Normalize_AudioDetection(t *testing.T) {
	tests := []struct {
		name        string
		probeOutput string
		wantMap     string
		wantSilence bool
	}{
		{name: "input with audio", probeOutput: `echo "1"`, wantMap: "-map 0:a:0", wantSilence: false},
		{name: "input without audio", probeOutput: `true`, wantMap: "-map 1:a:0", wantSilence: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argsFile := filepath.Join(t.TempDir(), "args.txt")
			ff := writeTool(t, "ffmpeg", `echo "$@" > "`+argsFile+`"`)
			fp := writeTool(t, "ffprobe", tt.probeOutput)
			c := NewConverter(ff, fp)

			err := c.Normalize(context.Background(), domain.NormalizationJob{
				SourcePath:   "/videos/a.mp4",
				TargetPath:   filepath.Join(t.TempDir(), "norm_000.mp4"),
				ProgressPath: filepath.Join(t.TempDir(), "progress_norm_000.txt"),
				Profile:      domain.DefaultProfile(),
			})
			require.NoError(t, err)

			data, err := os.ReadFile(argsFile)
			require.NoError(t, err)
			args := string(data)
			assert.Contains(t, args, tt.wantMap)
			assert.Equal(t, tt.wantSilence, strings.Contains(args, "anullsrc"))
		})
	}
}

func TestConverter_CancelStopsSubprocess(t *testing.T) {
	tool := writeTool(t, "ffmpeg", `sleep 10`)
	c := NewConverter(tool, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Concat(ctx, domain.MergePlan{ManifestPath: "/w/concat.txt", Destination: "/w/out.mp4"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConverter_CheckTools(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		c := NewConverter("/nonexistent/ffmpeg", "/nonexistent/ffprobe")
		statuses, err := c.CheckTools(context.Background())

		var terr *domain.ToolMissingError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "ffmpeg", terr.Tool)
		assert.NotEmpty(t, terr.Hint)
		require.Len(t, statuses, 2)
		assert.False(t, statuses[0].Available())
	})

	t.Run("present binaries report versions", func(t *testing.T) {
		ff := writeTool(t, "ffmpeg", `echo "ffmpeg version 7.1 Copyright (c)"; echo "built with gcc"`)
		fp := writeTool(t, "ffprobe", `echo "ffprobe version 7.1 Copyright (c)"`)
		c := NewConverter(ff, fp)

		statuses, err := c.CheckTools(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ffmpeg version 7.1 Copyright (c)", statuses[0].Version)
		assert.Equal(t, "ffprobe version 7.1 Copyright (c)", statuses[1].Version)
	})
}

func TestInstallHint(t *testing.T) {
	assert.Contains(t, InstallHint("darwin"), "brew")
	assert.Contains(t, InstallHint("windows"), "winget")
	assert.Contains(t, InstallHint("linux"), "apt")
}
