package port

import (
	"context"

	"github.com/bnema/splice/internal/domain"
)

type MediaProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// MediaConverter drives the external transcoder. Both calls block until the
// subprocess exits and write progress markers to the path named in their
// argument while running.
type MediaConverter interface {
	Normalize(ctx context.Context, job domain.NormalizationJob) error
	Concat(ctx context.Context, plan domain.MergePlan) error
}

type ToolChecker interface {
	CheckTools(ctx context.Context) ([]domain.ToolStatus, error)
}
