package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

type ProbePolicy string

const (
	// ProbePolicyDegrade treats an unprobeable input as zero seconds long.
	ProbePolicyDegrade ProbePolicy = "degrade"
	ProbePolicyStrict  ProbePolicy = "strict"
)

// DurationSource reports the length of a media file in seconds.
type DurationSource interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// MediaFile is one user-selected input. Its duration is probed at most once.
type MediaFile struct {
	Path string

	mu       sync.Mutex
	probed   bool
	duration float64
}

func NewMediaFile(path string) *MediaFile {
	return &MediaFile{Path: path}
}

func NewMediaFiles(paths []string) []*MediaFile {
	files := make([]*MediaFile, len(paths))
	for i, p := range paths {
		files[i] = NewMediaFile(p)
	}
	return files
}

// Probe returns the cached duration, probing on first use. A strict failure is
// not cached. A degraded failure is cached as 0 and the *ProbeError is still
// returned once so the caller can log it.
func (m *MediaFile) Probe(ctx context.Context, src DurationSource, policy ProbePolicy) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.probed {
		return m.duration, nil
	}

	d, err := src.Duration(ctx, m.Path)
	if err != nil {
		perr := &ProbeError{Path: m.Path, Err: err}
		if policy == ProbePolicyStrict {
			return 0, perr
		}
		m.duration = 0
		m.probed = true
		return 0, perr
	}
	if d < 0 {
		d = 0
	}

	m.duration = d
	m.probed = true
	return d, nil
}

// Duration returns the probed duration, or 0 before Probe succeeded.
func (m *MediaFile) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *MediaFile) Probed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.probed
}

func (m *MediaFile) Name() string {
	return filepath.Base(m.Path)
}

// TargetProfile is the common encoding every input is normalized to so the
// results can be joined with stream copy.
type TargetProfile struct {
	Width         int    `yaml:"width" json:"width"`
	Height        int    `yaml:"height" json:"height"`
	FPS           int    `yaml:"fps" json:"fps"`
	VideoCodec    string `yaml:"video_codec" json:"video_codec"`
	CRF           int    `yaml:"crf" json:"crf"`
	Preset        string `yaml:"preset" json:"preset"`
	PixFmt        string `yaml:"pix_fmt" json:"pix_fmt"`
	AudioCodec    string `yaml:"audio_codec" json:"audio_codec"`
	AudioRate     int    `yaml:"audio_rate" json:"audio_rate"`
	AudioChannels int    `yaml:"audio_channels" json:"audio_channels"`
	AudioBitrate  string `yaml:"audio_bitrate" json:"audio_bitrate"`
	Container     string `yaml:"container" json:"container"`
}

func DefaultProfile() TargetProfile {
	return TargetProfile{
		Width:         1920,
		Height:        1080,
		FPS:           30,
		VideoCodec:    "libx264",
		CRF:           23,
		Preset:        "medium",
		PixFmt:        "yuv420p",
		AudioCodec:    "aac",
		AudioRate:     48000,
		AudioChannels: 2,
		AudioBitrate:  "192k",
		Container:     "mp4",
	}
}

// VideoFilter scales into the target frame keeping aspect ratio and pads the
// remainder with black bars.
func (p TargetProfile) VideoFilter() string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=black,setsar=1,fps=%d",
		p.Width, p.Height, p.Width, p.Height, p.FPS,
	)
}

func (p TargetProfile) Validate() error {
	var problems []string
	if p.Width <= 0 || p.Height <= 0 {
		problems = append(problems, "resolution must be positive")
	}
	if p.Width%2 != 0 || p.Height%2 != 0 {
		problems = append(problems, "resolution must be even")
	}
	if p.FPS <= 0 {
		problems = append(problems, "fps must be positive")
	}
	if p.VideoCodec == "" || p.AudioCodec == "" {
		problems = append(problems, "codecs must be set")
	}
	if p.AudioRate <= 0 || p.AudioChannels <= 0 {
		problems = append(problems, "audio rate and channels must be positive")
	}
	if p.Container == "" {
		problems = append(problems, "container must be set")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid target profile: %s", strings.Join(problems, "; "))
	}
	return nil
}
