package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"github.com/tildaslashalef/pokenest/internal/ulid"
)

// Run is the history entry of one Sync call
type Run struct {
	ID            ulid.ULID
	StartedAt     time.Time
	FinishedAt    *time.Time
	Path          Path
	RemoteCount   int
	CachedCount   int
	RecordsStored int
	State         State
	Error         string
}

// Duration returns how long the run took, or has been running
func (r *Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunRepository persists sync run history
type RunRepository interface {
	// CreateRun records the start of a run
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final state of a run
	FinishRun(ctx context.Context, run *Run) error

	// ListRuns returns the most recent runs first
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
}

// SQLRunRepository implements RunRepository on the sync_runs table
type SQLRunRepository struct {
	db      *sql.DB
	logger  *loggy.Logger
	builder sq.StatementBuilderType
}

// NewSQLRunRepository creates a new SQL run repository
func NewSQLRunRepository(db *sql.DB, logger *loggy.Logger) *SQLRunRepository {
	return &SQLRunRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// CreateRun inserts a new run
func (r *SQLRunRepository) CreateRun(ctx context.Context, run *Run) error {
	query, args, err := r.builder.Insert("sync_runs").
		Columns("id", "started_at", "path", "remote_count", "cached_count", "records_stored", "state", "error").
		Values(run.ID, run.StartedAt, string(run.Path), run.RemoteCount, run.CachedCount, run.RecordsStored, string(run.State), run.Error).
		ToSql()
	if err != nil {
		return fmt.Errorf("building create run query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("executing create run query: %w", err)
	}
	return nil
}

// FinishRun updates a run with its outcome
func (r *SQLRunRepository) FinishRun(ctx context.Context, run *Run) error {
	query, args, err := r.builder.Update("sync_runs").
		Set("finished_at", run.FinishedAt).
		Set("path", string(run.Path)).
		Set("remote_count", run.RemoteCount).
		Set("cached_count", run.CachedCount).
		Set("records_stored", run.RecordsStored).
		Set("state", string(run.State)).
		Set("error", run.Error).
		Where(sq.Eq{"id": run.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building finish run query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("executing finish run query: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run not found: %s", run.ID)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first
func (r *SQLRunRepository) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	q := r.builder.Select("id", "started_at", "finished_at", "path", "remote_count", "cached_count", "records_stored", "state", "error").
		From("sync_runs").
		OrderBy("started_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list runs query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing list runs query: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			run        Run
			finishedAt sql.NullTime
			path       string
			state      string
		)
		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&finishedAt,
			&path,
			&run.RemoteCount,
			&run.CachedCount,
			&run.RecordsStored,
			&state,
			&run.Error,
		); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			run.FinishedAt = &t
		}
		run.Path = Path(path)
		run.State = State(state)
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}
	return runs, nil
}
