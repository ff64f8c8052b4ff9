package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	oneKilobyte = 1024
	oneMegabyte = oneKilobyte * 1024
	oneGigabyte = oneMegabyte * 1024
)

// ParseDuration reads a seconds value as printed by ffprobe. Unknown or
// malformed values are reported as an error rather than guessed.
func ParseDuration(durationStr string) (float64, error) {
	s := strings.TrimSpace(durationStr)
	if s == "" || s == "N/A" {
		return 0, fmt.Errorf("duration unavailable")
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "00:00"
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func FormatSize(bytes int64) string {
	if bytes < oneKilobyte {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < oneMegabyte {
		return fmt.Sprintf("%.1f KB", float64(bytes)/oneKilobyte)
	}
	if bytes < oneGigabyte {
		return fmt.Sprintf("%.1f MB", float64(bytes)/oneMegabyte)
	}
	return fmt.Sprintf("%.1f GB", float64(bytes)/oneGigabyte)
}

// ToolStatus describes one external executable found (or not) on the host.
type ToolStatus struct {
	Tool    string
	Path    string
	Version string
	Err     error
}

func (s ToolStatus) Available() bool {
	return s.Err == nil
}
