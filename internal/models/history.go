package models

import (
	"encoding/json"
	"time"
)

// Weekday is one of the five tracked lunch days
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
)

// Weekdays is the display order of the weekly menu
var Weekdays = []Weekday{Mon, Tue, Wed, Thu, Fri}

// WeekdayOf maps a calendar weekday to its tag. Weekends report false.
func WeekdayOf(d time.Weekday) (Weekday, bool) {
	if d < time.Monday || d > time.Friday {
		return "", false
	}
	return Weekdays[d-time.Monday], true
}

// WeeklyHistory holds the accepted lunch for each weekday. Absent days are
// nil. It always encodes with all five keys present.
type WeeklyHistory map[Weekday]*string

// NewWeeklyHistory returns a history with every day empty
func NewWeeklyHistory() WeeklyHistory {
	w := make(WeeklyHistory, len(Weekdays))
	for _, d := range Weekdays {
		w[d] = nil
	}
	return w
}

// Get returns the value stored for a day
func (w WeeklyHistory) Get(d Weekday) (string, bool) {
	v := w[d]
	if v == nil {
		return "", false
	}
	return *v, true
}

// Filled reports whether the day already has an accepted lunch
func (w WeeklyHistory) Filled(d Weekday) bool {
	_, ok := w.Get(d)
	return ok
}

// With returns a copy with day set to value
func (w WeeklyHistory) With(d Weekday, value string) WeeklyHistory {
	out := w.Clone()
	v := value
	out[d] = &v
	return out
}

// Clone deep-copies the history
func (w WeeklyHistory) Clone() WeeklyHistory {
	out := NewWeeklyHistory()
	for _, d := range Weekdays {
		if v, ok := w.Get(d); ok {
			vv := v
			out[d] = &vv
		}
	}
	return out
}

func (w WeeklyHistory) MarshalJSON() ([]byte, error) {
	raw := make(map[Weekday]*string, len(Weekdays))
	for _, d := range Weekdays {
		raw[d] = w[d]
	}
	return json.Marshal(raw)
}

func (w *WeeklyHistory) UnmarshalJSON(data []byte) error {
	var raw map[Weekday]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := NewWeeklyHistory()
	for _, d := range Weekdays {
		if v, ok := raw[d]; ok && v != nil {
			out[d] = v
		}
	}
	*w = out
	return nil
}

// HistoryItem is one accepted lunch in the full log
type HistoryItem struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	ItemName     string    `json:"itemName"`
	CategoryName string    `json:"categoryName"`
}
