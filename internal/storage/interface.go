package storage

// Provider is a flat string key/value store. Every persisted slot is one
// key; values are opaque to the store.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Slots
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)

	// Metadata
	GetConfigPath() string
}
