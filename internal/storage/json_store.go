package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/julianstephens/lunchwheel/internal/constants"
)

type fileFormat struct {
	Version int               `json:"version"`
	Slots   map[string]string `json:"slots"`
}

// JSONStore keeps every slot in one JSON document on disk
type JSONStore struct {
	path  string
	mu    sync.Mutex
	slots map[string]string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	slots := make(map[string]string)
	if err := s.save(slots); err != nil {
		return err
	}
	s.slots = slots
	return nil
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var doc fileFormat
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = doc.Slots
	if s.slots == nil {
		s.slots = make(map[string]string)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes slots to a temp file and renames it over the document. Callers
// swap slots in only after it succeeds, so memory never runs ahead of disk.
func (s *JSONStore) save(slots map[string]string) error {
	data, err := json.MarshalIndent(fileFormat{Version: 1, Slots: slots}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	v, ok := s.slots[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil {
		return fmt.Errorf("storage not loaded")
	}
	next := maps.Clone(s.slots)
	next[key] = value
	if err := s.save(next); err != nil {
		return err
	}
	s.slots = next
	return nil
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.slots[key]; !ok {
		return nil
	}
	next := maps.Clone(s.slots)
	delete(next, key)
	if err := s.save(next); err != nil {
		return err
	}
	s.slots = next
	return nil
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	keys := make([]string, 0, len(s.slots))
	for k := range s.slots {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
