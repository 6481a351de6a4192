package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"github.com/tildaslashalef/pokenest/internal/ulid"
)

func TestSQLRunRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")
	defer db.Close()

	repo := NewSQLRunRepository(db, loggy.NewNoopLogger())
	ctx := context.Background()

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	runA := ulid.MustParse("run-01HX0000000000000000000000")
	runB := ulid.MustParse("run-01HX0000000000000000000001")
	finished := started.Add(42 * time.Second)

	t.Run("CreateRun", func(t *testing.T) {
		run := &Run{ID: runA, StartedAt: started, State: StateCheckingRemote}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_runs (id,started_at,path,remote_count,cached_count,records_stored,state,error) VALUES (?,?,?,?,?,?,?,?)")).
			WithArgs("run-01HX0000000000000000000000", started, "", 0, 0, 0, "checking_remote", "").
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.CreateRun(ctx, run))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FinishRun", func(t *testing.T) {
		run := &Run{
			ID:            runA,
			StartedAt:     started,
			FinishedAt:    &finished,
			Path:          PathFetch,
			RemoteCount:   1302,
			CachedCount:   30,
			RecordsStored: 1302,
			State:         StateIdle,
		}

		mock.ExpectExec("UPDATE sync_runs SET finished_at = \\?, path = \\?, remote_count = \\?, cached_count = \\?, records_stored = \\?, state = \\?, error = \\? WHERE id = \\?").
			WithArgs(&finished, "fetch", 1302, 30, 1302, "idle", "", "run-01HX0000000000000000000000").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.FinishRun(ctx, run))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FinishRunNotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE sync_runs SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.FinishRun(ctx, &Run{ID: runB, FinishedAt: &finished})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "run not found: run-01HX0000000000000000000001")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListRuns", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "started_at", "finished_at", "path", "remote_count", "cached_count", "records_stored", "state", "error"}).
			AddRow(runB.String(), started.Add(time.Hour), nil, "", 0, 0, 0, "background_fetching", "").
			AddRow([]byte(runA.String()), started, finished, "cache", 1302, 1302, 1302, "idle", "")

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, started_at, finished_at, path, remote_count, cached_count, records_stored, state, error FROM sync_runs ORDER BY started_at DESC LIMIT 10")).
			WillReturnRows(rows)

		runs, err := repo.ListRuns(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)

		assert.Equal(t, runB, runs[0].ID)
		assert.Equal(t, ulid.PrefixRun, runs[0].ID.Prefix())
		assert.Nil(t, runs[0].FinishedAt)
		assert.Equal(t, StateBackgroundFetching, runs[0].State)

		assert.Equal(t, runA, runs[1].ID)
		require.NotNil(t, runs[1].FinishedAt)
		assert.Equal(t, 42*time.Second, runs[1].Duration())
		assert.Equal(t, PathCache, runs[1].Path)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListRunsBadID", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "started_at", "finished_at", "path", "remote_count", "cached_count", "records_stored", "state", "error"}).
			AddRow("not-a-ulid", started, nil, "", 0, 0, 0, "idle", "")
		mock.ExpectQuery("SELECT (.+) FROM sync_runs").WillReturnRows(rows)

		_, err := repo.ListRuns(ctx, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scanning run row")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListRunsError", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM sync_runs").
			WillReturnError(errors.New("database is locked"))

		_, err := repo.ListRuns(ctx, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "executing list runs query")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
