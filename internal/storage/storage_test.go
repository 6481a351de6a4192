package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/loggy"
)

type entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// failingStore rejects every call
type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error       { return f.err }
func (f failingStore) Remove(context.Context, string) error            { return f.err }

// panickingStore simulates a store that blows up on access
type panickingStore struct{ failingStore }

func (panickingStore) Set(context.Context, string, string) error { panic("storage exploded") }

func newTestSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:      db,
		logger:  loggy.NewNoopLogger(),
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func TestSQLStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")
	defer db.Close()

	store := newTestSQLStore(db)
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store WHERE key = \\? LIMIT 1").
			WithArgs(KeyPokemonCount).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("1302"))

		value, ok, err := store.Get(ctx, KeyPokemonCount)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "1302", value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetMissing", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store WHERE key = ?").
			WithArgs(KeyAbility).
			WillReturnError(sql.ErrNoRows)

		value, ok, err := store.Get(ctx, KeyAbility)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetError", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store").
			WillReturnError(errors.New("disk I/O error"))

		_, _, err := store.Get(ctx, KeyPokedex)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "executing get value query")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SetUpserts", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO kv_store \\(key,value,updated_at\\) VALUES \\(\\?,\\?,\\?\\) ON CONFLICT\\(key\\) DO UPDATE").
			WithArgs(KeyPokemon, "[]", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, store.Set(ctx, KeyPokemon, "[]"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Remove", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM kv_store WHERE key = ?").
			WithArgs(probeKey).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.Remove(ctx, probeKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemoryStoreQuota(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	require.NoError(t, store.Set(ctx, "a", "12345"))
	assert.ErrorIs(t, store.Set(ctx, "b", "123456789"), ErrQuotaExceeded)

	// Replacing a value only counts the difference
	require.NoError(t, store.Set(ctx, "a", "123456789"))
	require.NoError(t, store.Remove(ctx, "a"))
	require.NoError(t, store.Set(ctx, "b", "123456789"))

	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailable(t *testing.T) {
	ctx := context.Background()
	logger := loggy.NewNoopLogger()

	tests := []struct {
		name    string
		adapter *Adapter
		want    bool
	}{
		{"memory", NewAdapter(NewMemoryStore(0), logger), true},
		{"quota too small for probe", NewAdapter(NewMemoryStore(4), logger), false},
		{"failing store", NewAdapter(failingStore{err: errors.New("denied")}, logger), false},
		{"panicking store", NewAdapter(panickingStore{}, logger), false},
		{"nil store", NewAdapter(nil, logger), false},
		{"nil adapter", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.adapter.IsAvailable(ctx))
		})
	}
}

func TestIsAvailableLeavesNoProbe(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	require.True(t, NewAdapter(store, nil).IsAvailable(ctx))

	_, ok, _ := store.Get(ctx, probeKey)
	assert.False(t, ok)
}

func TestLoadAndSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	adapter := NewAdapter(store, loggy.NewNoopLogger())

	items, err := Load[entry](ctx, adapter, KeyPokemon)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	want := []entry{{ID: 1, Name: "フシギダネ"}, {ID: 4, Name: "ヒトカゲ"}}
	require.NoError(t, Save(ctx, adapter, KeyPokemon, want))
	require.NoError(t, adapter.SaveCount(ctx, KeyPokemonCount, 1302))

	got, err := Load[entry](ctx, adapter, KeyPokemon)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	count, ok := adapter.LoadCount(ctx, KeyPokemonCount)
	assert.True(t, ok)
	assert.Equal(t, 1302, count)
}

func TestLoadRejectsCorruptData(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
	}{
		{"invalid json", "[{"},
		{"wrong shape", `{"id": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore(0)
			require.NoError(t, store.Set(ctx, KeyPokemon, tt.value))

			_, err := Load[entry](ctx, NewAdapter(store, nil), KeyPokemon)
			var fe *fetch.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, fetch.ParseError, fe.Type)
			assert.Equal(t, KeyPokemon, fe.Context.URL)
		})
	}
}

func TestLoadCountAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	adapter := NewAdapter(store, nil)

	_, ok := adapter.LoadCount(ctx, KeyAbilityCount)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeyAbilityCount, "many"))
	_, ok = adapter.LoadCount(ctx, KeyAbilityCount)
	assert.False(t, ok)

	_, ok = NewAdapter(failingStore{err: errors.New("denied")}, nil).LoadCount(ctx, KeyAbilityCount)
	assert.False(t, ok)
}

func TestSaveSurfacesQuota(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(NewMemoryStore(8), nil)

	err := Save(ctx, adapter, KeyPokemon, []entry{{ID: 1, Name: "bulbasaur"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, fetch.UnknownError, fetch.From(err).Type)
}
