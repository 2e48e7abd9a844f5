// Package appstate maps the application's persisted slots onto typed values.
package appstate

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/errors"
	"github.com/julianstephens/lunchwheel/internal/logger"
	"github.com/julianstephens/lunchwheel/internal/models"
	"github.com/julianstephens/lunchwheel/internal/storage"
	"github.com/julianstephens/lunchwheel/internal/utils"
)

// State is every persisted slot, loaded together at startup
type State struct {
	Categories  []models.Category
	Weekly      models.WeeklyHistory
	FullHistory []models.HistoryItem
	Respins     int
	LastDate    string
}

// Store reads and writes individual slots. Slots are independent: no write
// spans more than one key.
type Store struct {
	provider   storage.Provider
	maxRespins int
	now        func() time.Time
}

// New wraps a loaded provider. now supplies "today" for the last-date default.
func New(p storage.Provider, maxRespins int, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{provider: p, maxRespins: maxRespins, now: now}
}

// Provider returns the underlying key/value store
func (s *Store) Provider() storage.Provider {
	return s.provider
}

// MaxRespins is the daily re-spin allowance
func (s *Store) MaxRespins() int {
	return s.maxRespins
}

// Load reads every slot. Categories are seeded on first run.
func (s *Store) Load() (State, error) {
	var (
		st  State
		err error
	)
	if st.Categories, err = s.LoadCategories(); err != nil {
		return State{}, err
	}
	if st.Weekly, err = s.LoadWeeklyHistory(); err != nil {
		return State{}, err
	}
	if st.FullHistory, err = s.LoadFullHistory(); err != nil {
		return State{}, err
	}
	if st.Respins, err = s.LoadRespins(); err != nil {
		return State{}, err
	}
	if st.LastDate, err = s.LoadLastDate(); err != nil {
		return State{}, err
	}
	return st, nil
}

// LoadCategories returns the category list. When the slot has never been
// written it seeds a General category from the legacy flat item list (or the
// built-in defaults) and persists it immediately.
func (s *Store) LoadCategories() ([]models.Category, error) {
	var cats []models.Category
	ok, err := s.getJSON(constants.KeyCategories, &cats)
	if err != nil {
		return nil, err
	}
	if ok {
		if cats == nil {
			cats = []models.Category{}
		}
		return cats, nil
	}

	items := append([]string(nil), constants.DefaultItems...)
	var legacy []string
	hasLegacy, err := s.getJSON(constants.KeyLegacyItems, &legacy)
	if err != nil {
		return nil, err
	}
	if hasLegacy {
		items = legacy
		if items == nil {
			items = []string{}
		}
	}

	cats = []models.Category{{
		ID:    uuid.NewString(),
		Name:  constants.DefaultCategoryName,
		Items: items,
	}}
	logger.Info("Seeding default category", "items", len(items), "from_legacy", hasLegacy)
	if err := s.SaveCategories(cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *Store) SaveCategories(cats []models.Category) error {
	if cats == nil {
		cats = []models.Category{}
	}
	return s.putJSON(constants.KeyCategories, cats)
}

// LoadWeeklyHistory returns all five weekdays, empty when never written
func (s *Store) LoadWeeklyHistory() (models.WeeklyHistory, error) {
	weekly := models.NewWeeklyHistory()
	if _, err := s.getJSON(constants.KeyWeeklyHistory, &weekly); err != nil {
		return nil, err
	}
	return weekly, nil
}

func (s *Store) SaveWeeklyHistory(w models.WeeklyHistory) error {
	if w == nil {
		w = models.NewWeeklyHistory()
	}
	return s.putJSON(constants.KeyWeeklyHistory, w)
}

// LoadFullHistory returns the acceptance log, newest first
func (s *Store) LoadFullHistory() ([]models.HistoryItem, error) {
	var log []models.HistoryItem
	if _, err := s.getJSON(constants.KeyFullHistory, &log); err != nil {
		return nil, err
	}
	if log == nil {
		log = []models.HistoryItem{}
	}
	return log, nil
}

func (s *Store) SaveFullHistory(log []models.HistoryItem) error {
	if log == nil {
		log = []models.HistoryItem{}
	}
	return s.putJSON(constants.KeyFullHistory, log)
}

// LoadRespins returns the stored budget clamped to [0, max]. Absent or
// unparsable values load as the full allowance.
func (s *Store) LoadRespins() (int, error) {
	raw, ok, err := s.provider.Get(constants.KeyRespins)
	if err != nil {
		return 0, errors.Internal(err, "read %s", constants.KeyRespins)
	}
	if !ok {
		return s.maxRespins, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.Warn("Ignoring unparsable respin budget", "value", raw)
		return s.maxRespins, nil
	}
	return s.clamp(n), nil
}

func (s *Store) SaveRespins(n int) error {
	if err := s.provider.Set(constants.KeyRespins, strconv.Itoa(s.clamp(n))); err != nil {
		return errors.Internal(err, "write %s", constants.KeyRespins)
	}
	return nil
}

// LoadLastDate returns the day stamp of the last budget reset. When the slot
// has never been written it is set to today and persisted, so a later run on
// another date sees the change.
func (s *Store) LoadLastDate() (string, error) {
	raw, ok, err := s.provider.Get(constants.KeyLastDate)
	if err != nil {
		return "", errors.Internal(err, "read %s", constants.KeyLastDate)
	}
	if ok {
		return raw, nil
	}
	today := utils.DayStamp(s.now())
	if err := s.SaveLastDate(today); err != nil {
		return "", err
	}
	return today, nil
}

func (s *Store) SaveLastDate(stamp string) error {
	if err := s.provider.Set(constants.KeyLastDate, stamp); err != nil {
		return errors.Internal(err, "write %s", constants.KeyLastDate)
	}
	return nil
}

// Check decodes every JSON slot without seeding and returns the keys that
// fail to parse.
func (s *Store) Check() ([]string, error) {
	targets := map[string]any{
		constants.KeyCategories:    &[]models.Category{},
		constants.KeyWeeklyHistory: &models.WeeklyHistory{},
		constants.KeyFullHistory:   &[]models.HistoryItem{},
		constants.KeyLegacyItems:   &[]string{},
	}

	var bad []string
	for _, key := range constants.KnownKeys {
		v, ok := targets[key]
		if !ok {
			continue
		}
		if _, err := s.getJSON(key, v); err != nil {
			if !errors.IsKind(err, errors.KindCorrupt) {
				return nil, err
			}
			bad = append(bad, key)
		}
	}
	return bad, nil
}

func (s *Store) clamp(n int) int {
	return max(0, min(n, s.maxRespins))
}

func (s *Store) getJSON(key string, v any) (bool, error) {
	ok, err := storage.GetJSON(s.provider, key, v)
	switch {
	case err != nil && ok:
		return true, errors.Corrupt(err, "stored value for %s is malformed; run '%s debug reset-key %s'", key, constants.AppName, key)
	case err != nil:
		return false, errors.Internal(err, "read %s", key)
	}
	return ok, nil
}

func (s *Store) putJSON(key string, v any) error {
	if err := storage.PutJSON(s.provider, key, v); err != nil {
		return errors.Internal(err, "write %s", key)
	}
	return nil
}
