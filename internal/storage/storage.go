package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/migration"
)

// Migrator is implemented by backends with a versioned schema
type Migrator interface {
	Migrate() (int, error)
	SchemaStatus() (migration.Status, error)
}

// DBProvider is implemented by backends backed by database/sql
type DBProvider interface {
	GetDB() *sql.DB
}

// New picks a backend from the path: ":memory:" keeps state in-process,
// a .json suffix selects the JSON file store, anything else is SQLite.
func New(path string) Provider {
	switch {
	case path == constants.MemoryDBPath:
		return NewMemoryStore()
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		return NewJSONStore(path)
	default:
		return NewSQLiteStore(path)
	}
}

// GetJSON decodes the slot at key into v. It reports false when the key is absent.
func GetJSON(p Provider, key string, v any) (bool, error) {
	raw, ok, err := p.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// PutJSON encodes v and stores it at key
func PutJSON(p Provider, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return p.Set(key, string(data))
}
