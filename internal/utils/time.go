package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// DayStamp returns the calendar day string the re-spin budget is keyed on
func DayStamp(t time.Time) string {
	return t.Format(constants.DayStampFormat)
}

// CurrentWeekday returns the tracked weekday for t, false on weekends
func CurrentWeekday(t time.Time) (models.Weekday, bool) {
	return models.WeekdayOf(t.Weekday())
}

// DayName returns the full English day name, e.g. "Monday"
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
