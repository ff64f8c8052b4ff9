// Package vidio reads durations through the Vidio metadata reader. It is an
// alternative to the ffprobe prober and still needs ffprobe on PATH.
package vidio

import (
	"context"
	"fmt"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/bnema/splice/internal/port"
)

type Prober struct{}

func NewProber() *Prober {
	return &Prober{}
}

func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if path == "" {
		return 0, fmt.Errorf("empty path")
	}

	video, err := vidio.NewVideo(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer video.Close()

	d := video.Duration()
	if d <= 0 {
		return 0, fmt.Errorf("no duration reported for %s", path)
	}
	return d, nil
}

var _ port.MediaProber = (*Prober)(nil)
