package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tildaslashalef/pokenest/internal/loggy"
)

// SQLStore implements Store on the kv_store table
type SQLStore struct {
	db      *sql.DB
	logger  *loggy.Logger
	builder sq.StatementBuilderType
}

// NewSQLStore creates a new SQL-backed store
func NewSQLStore(db *sql.DB, logger *loggy.Logger) *SQLStore {
	return &SQLStore{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// Get retrieves a value by key
func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.builder.Select("value").
		From("kv_store").
		Where(sq.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("building get value query: %w", err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("executing get value query: %w", err)
	}

	return value, true, nil
}

// Set inserts or replaces the value for key
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	query, args, err := s.builder.Insert("kv_store").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building set value query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("executing set value query: %w", err)
	}

	s.logger.Debug("Stored value", "key", key, "bytes", len(value))
	return nil
}

// Remove deletes key; removing a missing key is not an error
func (s *SQLStore) Remove(ctx context.Context, key string) error {
	query, args, err := s.builder.Delete("kv_store").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building remove value query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("executing remove value query: %w", err)
	}

	return nil
}
