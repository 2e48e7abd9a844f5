// Package history builds the weekly menu and the acceptance log views.
package history

import (
	"time"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/models"
)

// Row is one line of the weekly menu
type Row struct {
	Day     models.Weekday
	Value   string
	Filled  bool
	Current bool
}

// WeekRows returns Mon..Fri with the accepted lunch or a placeholder.
// hasToday is false on weekends, when no row is highlighted.
func WeekRows(weekly models.WeeklyHistory, today models.Weekday, hasToday bool) []Row {
	rows := make([]Row, 0, len(models.Weekdays))
	for _, d := range models.Weekdays {
		v, ok := weekly.Get(d)
		if !ok {
			v = constants.EmptyWeekdayPlacehold
		}
		rows = append(rows, Row{
			Day:     d,
			Value:   v,
			Filled:  ok,
			Current: hasToday && d == today,
		})
	}
	return rows
}

// Record returns a copy of weekly with day set to winner
func Record(weekly models.WeeklyHistory, day models.Weekday, winner string) models.WeeklyHistory {
	if weekly == nil {
		weekly = models.NewWeeklyHistory()
	}
	return weekly.With(day, winner)
}

// Prepend returns a new log with item first
func Prepend(log []models.HistoryItem, item models.HistoryItem) []models.HistoryItem {
	out := make([]models.HistoryItem, 0, len(log)+1)
	out = append(out, item)
	return append(out, log...)
}

// Clear returns an empty log
func Clear() []models.HistoryItem {
	return []models.HistoryItem{}
}

// FormatDate renders the short month/day/year form used in the log. The date
// is taken in t's own zone, which is the configured zone it was recorded in.
func FormatDate(t time.Time) string {
	return t.Format(constants.HistoryDateFormat)
}
