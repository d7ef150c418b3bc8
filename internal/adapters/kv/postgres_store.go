package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/caresure/providerportal/internal/domain/providers"
	"github.com/caresure/providerportal/internal/infrastructure/clients/postgres"
)

const documentsTable = "portal_documents"

// PostgresStore implements the KVStore interface over a two-column document
// table. Requires:
//
//	CREATE TABLE portal_documents (
//	    key   TEXT PRIMARY KEY,
//	    value BYTEA NOT NULL
//	);
type PostgresStore struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostgresStore creates a Postgres-backed document store
func NewPostgresStore(client *postgres.Client) *PostgresStore {
	return &PostgresStore{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Get retrieves the value stored under key
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.db.From(documentsTable).Prepared(true).
		Select("value").
		Where(goqu.C("key").Eq(key)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var value []byte
	err = s.client.DB().QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, providers.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key using an upsert
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.db.Insert(documentsTable).Prepared(true).
		Rows(goqu.Record{"key": key, "value": value}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{"value": goqu.L("EXCLUDED.value")})).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := s.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.db.Delete(documentsTable).Prepared(true).
		Where(goqu.C("key").Eq(key)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := s.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Exists checks whether a key holds a value
func (s *PostgresStore) Exists(ctx context.Context, key string) (bool, error) {
	query, args, err := s.db.From(documentsTable).Prepared(true).
		Select(goqu.COUNT("*")).
		Where(goqu.C("key").Eq(key)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var count int
	if err := s.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check key %q: %w", key, err)
	}
	return count > 0, nil
}
