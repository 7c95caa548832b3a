// Package tokens persists the access/refresh token pair between CLI runs.
//
// Two keys are kept: "access_token" and "refresh_token". SQLiteStore writes
// them to the local metadata table; MemoryStore keeps them for the lifetime
// of the process only.
package tokens

import (
	"context"
	"database/sql"
	"sync"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/dbx"
)

const (
	AccessKey  = "access_token"
	RefreshKey = "refresh_token"
)

// Store is the persisted client state. Empty strings mean "absent".
type Store interface {
	Access(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
	Save(ctx context.Context, pair models.TokenPair) error
	Clear(ctx context.Context) error
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	v, err := NewSQLiteRepository(s.db).Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) Access(ctx context.Context) (string, error) {
	return s.get(ctx, AccessKey)
}

func (s *SQLiteStore) Refresh(ctx context.Context) (string, error) {
	return s.get(ctx, RefreshKey)
}

// Save writes both tokens in one transaction. An empty refresh token
// removes the stored one.
func (s *SQLiteStore) Save(ctx context.Context, pair models.TokenPair) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, AccessKey, []byte(pair.Access)); err != nil {
			return err
		}
		if pair.Refresh == "" {
			return repo.Delete(ctx, RefreshKey)
		}
		return repo.Set(ctx, RefreshKey, []byte(pair.Refresh))
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, AccessKey); err != nil {
			return err
		}
		return repo.Delete(ctx, RefreshKey)
	})
}

type MemoryStore struct {
	mu   sync.RWMutex
	pair models.TokenPair
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Access(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pair.Access, nil
}

func (m *MemoryStore) Refresh(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pair.Refresh, nil
}

func (m *MemoryStore) Save(_ context.Context, pair models.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = pair
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = models.TokenPair{}
	return nil
}
