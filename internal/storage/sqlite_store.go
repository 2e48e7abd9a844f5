package storage

import (
	"database/sql"

	"github.com/julianstephens/lunchwheel/internal/migration"
	"github.com/julianstephens/lunchwheel/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to Provider and exposes the schema helpers
type SQLiteStore struct {
	store *sqlite.Store
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

func (s *SQLiteStore) Init() error           { return s.store.Init() }
func (s *SQLiteStore) Load() error           { return s.store.Load() }
func (s *SQLiteStore) Close() error          { return s.store.Close() }
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }
func (s *SQLiteStore) GetDB() *sql.DB        { return s.store.GetDB() }

func (s *SQLiteStore) Get(key string) (string, bool, error) { return s.store.Get(key) }
func (s *SQLiteStore) Set(key, value string) error          { return s.store.Set(key, value) }
func (s *SQLiteStore) Delete(key string) error              { return s.store.Delete(key) }
func (s *SQLiteStore) Keys() ([]string, error)              { return s.store.Keys() }

func (s *SQLiteStore) Migrate() (int, error)                    { return s.store.Migrate() }
func (s *SQLiteStore) SchemaStatus() (migration.Status, error) { return s.store.SchemaStatus() }
