package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/infrastructure/logger"
	"github.com/bnema/splice/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains a null byte")
)

type Converter struct {
	ffmpegPath  string
	ffprobePath string
}

// NewConverter uses the given executables. Empty values fall back to the
// names looked up on PATH.
func NewConverter(ffmpegPath, ffprobePath string) *Converter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Converter{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

func validatePath(p string) error {
	if p == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(p, 0) {
		return ErrInvalidPath
	}
	return nil
}

func (c *Converter) Normalize(ctx context.Context, job domain.NormalizationJob) error {
	if err := validatePath(job.SourcePath); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	if err := validatePath(job.TargetPath); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	withAudio := c.hasAudio(ctx, job.SourcePath)
	if !withAudio {
		logger.Info.Printf("input %d has no audio, adding a silent track", job.Index+1)
	}
	_, err := c.run(ctx, c.ffmpegPath, NormalizeArgs(job, withAudio))
	return err
}

// hasAudio reports whether path carries an audio stream. When ffprobe cannot
// tell, the input is assumed to have one and ffmpeg reports the real problem.
func (c *Converter) hasAudio(ctx context.Context, path string) bool {
	out, err := c.run(ctx, c.ffprobePath, AudioStreamsArgs(path))
	if err != nil {
		logger.Debug.Printf("audio stream probe failed for %s: %v", logger.SanitizeForLog(path), err)
		return true
	}
	return strings.TrimSpace(string(out)) != ""
}

func (c *Converter) Concat(ctx context.Context, plan domain.MergePlan) error {
	if err := validatePath(plan.ManifestPath); err != nil {
		return fmt.Errorf("invalid manifest path: %w", err)
	}
	if err := validatePath(plan.Destination); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	_, err := c.run(ctx, c.ffmpegPath, ConcatArgs(plan))
	return err
}

// Duration asks ffprobe for the container duration in seconds.
func (c *Converter) Duration(ctx context.Context, path string) (float64, error) {
	if err := validatePath(path); err != nil {
		return 0, fmt.Errorf("invalid input path: %w", err)
	}
	out, err := c.run(ctx, c.ffprobePath, ProbeArgs(path))
	if err != nil {
		return 0, err
	}
	return domain.ParseDuration(string(out))
}

// run executes a tool and folds the tail of its stderr into the error.
func (c *Converter) run(ctx context.Context, tool string, args []string) ([]byte, error) {
	logger.Debug.Printf("exec %s %s", tool, logger.SanitizeForLog(strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, tool, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if tail := lastLines(stderr.String(), 3); tail != "" {
			return nil, fmt.Errorf("%s: %w: %s", tool, err, tail)
		}
		return nil, fmt.Errorf("%s: %w", tool, err)
	}
	return stdout.Bytes(), nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, " | "))
}

// NormalizeArgs re-encodes one input to the target profile, letterboxed, and
// writes progress markers to job.ProgressPath. Without source audio a silent
// track in the target format is muxed in so every segment has the same
// streams.
func NormalizeArgs(job domain.NormalizationJob, withAudio bool) []string {
	p := job.Profile
	args := []string{
		"-hide_banner", "-nostdin", "-y",
		"-loglevel", "error", "-nostats",
		"-progress", job.ProgressPath,
		"-i", job.SourcePath,
	}
	if withAudio {
		args = append(args, "-map", "0:v:0", "-map", "0:a:0")
	} else {
		args = append(args,
			"-f", "lavfi",
			"-i", fmt.Sprintf("anullsrc=r=%d:cl=%s", p.AudioRate, channelLayout(p.AudioChannels)),
			"-map", "0:v:0", "-map", "1:a:0", "-shortest",
		)
	}
	return append(args,
		"-vf", p.VideoFilter(),
		"-c:v", p.VideoCodec,
		"-crf", strconv.Itoa(p.CRF),
		"-preset", p.Preset,
		"-pix_fmt", p.PixFmt,
		"-c:a", p.AudioCodec,
		"-ar", strconv.Itoa(p.AudioRate),
		"-ac", strconv.Itoa(p.AudioChannels),
		"-b:a", p.AudioBitrate,
		"-movflags", "+faststart",
		job.TargetPath,
	)
}

func channelLayout(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%dc", channels)
	}
}

// ConcatArgs joins the manifest entries with stream copy.
func ConcatArgs(plan domain.MergePlan) []string {
	return []string{
		"-hide_banner", "-nostdin", "-y",
		"-loglevel", "error", "-nostats",
		"-progress", plan.ProgressPath,
		"-f", "concat", "-safe", "0",
		"-i", plan.ManifestPath,
		"-c", "copy",
		"-movflags", "+faststart",
		plan.Destination,
	}
}

// AudioStreamsArgs lists the index of every audio stream, one per line.
func AudioStreamsArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=index",
		"-of", "csv=p=0",
		path,
	}
}

func ProbeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}

var (
	_ port.MediaConverter = (*Converter)(nil)
	_ port.MediaProber    = (*Converter)(nil)
	_ port.ToolChecker    = (*Converter)(nil)
)
