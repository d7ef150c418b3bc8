package kv

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresure/providerportal/internal/domain/providers"
	"github.com/caresure/providerportal/internal/infrastructure/clients/postgres"
)

func setupPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresStore(postgres.NewClientFromDB(db)), mock
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectQuery(`SELECT "value" FROM "portal_documents"`).
		WithArgs("snapshot").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"version":3}`)))

	got, err := store.Get(context.Background(), "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":3}`), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetMissing(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectQuery(`SELECT "value" FROM "portal_documents"`).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, providers.ErrKeyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSetUpserts(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectExec(`INSERT INTO "portal_documents"`).
		WithArgs("snapshot", []byte(`{}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Set(context.Background(), "snapshot", []byte(`{}`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectExec(`DELETE FROM "portal_documents"`).
		WithArgs("snapshot").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Delete(context.Background(), "snapshot")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreExists(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "portal_documents"`).
		WithArgs("snapshot").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := store.Exists(context.Background(), "snapshot")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
