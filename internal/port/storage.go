package port

import "github.com/bnema/splice/internal/domain"

type RunStore interface {
	Save(r *domain.Run) error
	Get(id string) (*domain.Run, error)
	List(limit int) ([]*domain.Run, error)
	UpdateProgress(id string, report domain.ProgressReport) error
	UpdateDone(r *domain.Run) error
}

// DurationCache remembers probed durations across runs.
type DurationCache interface {
	Get(key string) (float64, bool, error)
	Put(key string, seconds float64) error
}
