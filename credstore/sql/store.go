// Package sqlstore persists the credential pair in a device-local sqlite
// database through bun. Each token lives in a named slot row; the pair is
// written and cleared inside one transaction so readers never observe a
// partial pair.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-shelf/core"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db   *bun.DB
	repo repository.Repository[*tokenSlotRecord]
}

func NewStore(db *bun.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &Store{
		db:   db,
		repo: repository.NewRepository[*tokenSlotRecord](db, tokenSlotHandlers()),
	}, nil
}

// NewStoreFromPersistence builds the store on top of a go-persistence-bun
// client.
func NewStoreFromPersistence(client *persistence.Client) (*Store, error) {
	return NewStoreFromClient(client)
}

// NewStoreFromClient accepts anything exposing the underlying bun DB.
func NewStoreFromClient(candidate any) (*Store, error) {
	db, err := resolveBunDB(candidate)
	if err != nil {
		return nil, err
	}
	return NewStore(db)
}

// Open creates a sqlite-backed store at path, creating the schema when
// missing.
func Open(ctx context.Context, path string) (*Store, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open sqlite db: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	store, err := NewStore(db)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: store is not configured")
	}
	_, err := s.db.NewCreateTable().
		Model((*tokenSlotRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlstore: create credential table: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, cred core.Credential) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: store is not configured")
	}
	now := time.Now().UTC()
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tokenSlotRecord)(nil)).
			Where("slot IN (?, ?)", slotAccess, slotRefresh).
			Exec(ctx); err != nil {
			return fmt.Errorf("sqlstore: clear prior pair: %w", err)
		}
		records := []*tokenSlotRecord{
			newTokenSlotRecord(slotAccess, cred.Access, now),
			newTokenSlotRecord(slotRefresh, cred.Refresh, now),
		}
		for _, record := range records {
			if _, err := s.repo.CreateTx(ctx, tx, record); err != nil {
				return fmt.Errorf("sqlstore: write %s slot: %w", record.Slot, err)
			}
		}
		return nil
	})
}

func (s *Store) Load(ctx context.Context) (core.Credential, bool, error) {
	if s == nil || s.db == nil {
		return core.Credential{}, false, fmt.Errorf("sqlstore: store is not configured")
	}
	var records []*tokenSlotRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("slot IN (?, ?)", slotAccess, slotRefresh).
		Scan(ctx)
	if err != nil {
		return core.Credential{}, false, fmt.Errorf("sqlstore: load pair: %w", err)
	}

	var cred core.Credential
	for _, record := range records {
		switch record.Slot {
		case slotAccess:
			cred.Access = record.Value
		case slotRefresh:
			cred.Refresh = record.Value
		}
	}
	if !cred.Valid() {
		return core.Credential{}, false, nil
	}
	return cred, true, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*tokenSlotRecord)(nil)).
		Where("slot IN (?, ?)", slotAccess, slotRefresh).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlstore: clear pair: %w", err)
	}
	return nil
}

// Close releases the underlying database handle. Only call it on stores
// that own their connection, such as those built by Open.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

var _ core.CredentialStore = (*Store)(nil)
