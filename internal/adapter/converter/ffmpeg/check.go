package ffmpeg

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/bnema/splice/internal/domain"
)

// CheckTools resolves ffmpeg and ffprobe and reads their version banners. The
// returned error is the first *domain.ToolMissingError, if any.
func (c *Converter) CheckTools(ctx context.Context) ([]domain.ToolStatus, error) {
	statuses := []domain.ToolStatus{
		c.checkTool(ctx, "ffmpeg", c.ffmpegPath),
		c.checkTool(ctx, "ffprobe", c.ffprobePath),
	}
	for _, s := range statuses {
		if s.Err != nil {
			return statuses, s.Err
		}
	}
	return statuses, nil
}

func (c *Converter) checkTool(ctx context.Context, tool, path string) domain.ToolStatus {
	status := domain.ToolStatus{Tool: tool, Path: path}

	resolved, err := exec.LookPath(path)
	if err != nil {
		status.Err = &domain.ToolMissingError{Tool: tool, Path: path, Hint: InstallHint(runtime.GOOS)}
		return status
	}
	status.Path = resolved

	out, err := exec.CommandContext(ctx, resolved, "-version").Output()
	if err == nil {
		status.Version = firstLine(string(out))
	}
	return status
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}

// InstallHint returns platform specific guidance for getting ffmpeg.
func InstallHint(goos string) string {
	switch goos {
	case "darwin":
		return "install it with `brew install ffmpeg` or set ffmpeg_path/ffprobe_path in the config"
	case "windows":
		return "install it with `winget install ffmpeg` or set ffmpeg_path/ffprobe_path in the config"
	default:
		return "install the ffmpeg package from your distribution (e.g. `apt install ffmpeg`) or set ffmpeg_path/ffprobe_path in the config"
	}
}
