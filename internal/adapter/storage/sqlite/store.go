package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bnema/splice/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/port"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db      *sql.DB
	queries *sqlitedb.Queries
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

// NewStore opens (or creates) splice.db under dataDir and applies migrations.
func NewStore(dataDir string) (*Store, error) {
	registerHook()

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "splice.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// one writer at a time
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		db:      db,
		queries: sqlitedb.New(db),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(r *domain.Run) error {
	inputs, err := json.Marshal(r.Inputs)
	if err != nil {
		return fmt.Errorf("encode inputs: %w", err)
	}
	return s.queries.InsertRun(context.Background(), sqlitedb.InsertRunParams{
		ID:           r.ID,
		Status:       string(r.Status),
		Stage:        string(r.Stage),
		Progress:     r.Progress,
		StatusText:   r.StatusText,
		Inputs:       string(inputs),
		Destination:  r.Destination,
		ExportTarget: r.ExportTarget,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		FinishedAt:   nullTime(r),
	})
}

func (s *Store) Get(id string) (*domain.Run, error) {
	row, err := s.queries.GetRun(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rowToRun(row)
}

// List returns the most recent runs first.
func (s *Store) List(limit int) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.queries.ListRuns(context.Background(), int64(limit))
	if err != nil {
		return nil, err
	}
	runs := make([]*domain.Run, 0, len(rows))
	for _, row := range rows {
		r, err := rowToRun(row)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

func (s *Store) UpdateProgress(id string, report domain.ProgressReport) error {
	n, err := s.queries.UpdateRunProgress(context.Background(), sqlitedb.UpdateRunProgressParams{
		Status:     string(domain.RunStatusRunning),
		Stage:      string(report.Stage),
		Progress:   report.Progress,
		StatusText: report.Status,
		ID:         id,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateDone(r *domain.Run) error {
	n, err := s.queries.UpdateRunDone(context.Background(), sqlitedb.UpdateRunDoneParams{
		Status:       string(r.Status),
		Stage:        string(r.Stage),
		Progress:     r.Progress,
		StatusText:   r.StatusText,
		Destination:  r.Destination,
		ErrorMessage: r.ErrorMessage,
		FinishedAt:   nullTime(r),
		ID:           r.ID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullTime(r *domain.Run) sql.NullTime {
	if r.FinishedAt.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: r.FinishedAt, Valid: true}
}

func rowToRun(row sqlitedb.Run) (*domain.Run, error) {
	var inputs []string
	if err := json.Unmarshal([]byte(row.Inputs), &inputs); err != nil {
		return nil, fmt.Errorf("decode inputs of run %s: %w", row.ID, err)
	}
	r := &domain.Run{
		ID:           row.ID,
		Status:       domain.RunStatus(row.Status),
		Stage:        domain.Stage(row.Stage),
		Progress:     row.Progress,
		StatusText:   row.StatusText,
		Inputs:       inputs,
		Destination:  row.Destination,
		ExportTarget: row.ExportTarget,
		ErrorMessage: row.ErrorMessage,
		CreatedAt:    row.CreatedAt.UTC(),
	}
	if row.FinishedAt.Valid {
		r.FinishedAt = row.FinishedAt.Time.UTC()
	}
	return r, nil
}

var _ port.RunStore = (*Store)(nil)
