package constants

import "time"

// SessionState represents the current view of the TUI application
type SessionState int

// Step is the stage of the two-wheel selection flow
type Step string

const (
	AppName           = "lunchwheel"
	Version           = "v0.3.0"
	DefaultConfigDir  = "~/.config/lunchwheel"
	DefaultConfigPath = "~/.config/lunchwheel/config.toml"
	DefaultDBPath     = "~/.config/lunchwheel/lunchwheel.db"
	MemoryDBPath      = ":memory:"

	// DateFormat is the ISO calendar date format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DayStampFormat is the last-spin date stamp, e.g. "Mon Oct 19 2026"
	DayStampFormat = "Mon Jan 02 2006"

	// HistoryDateFormat is the short date shown next to history entries
	HistoryDateFormat = "01/02/2006"

	// Re-spin budget
	MaxRespins = 3

	// Wheel geometry and pacing
	FullCircle            = 360.0
	MinSpinDegrees        = 1800.0 // five full revolutions
	DefaultSpinDuration   = 5 * time.Second
	DefaultTransition     = 1 * time.Second
	SpinFrameInterval     = 50 * time.Millisecond
	DefaultCategoryName   = "General"
	EmptyWeekdayPlacehold = "-"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lunchwheel-"
	BackupFileSuffix = ".db"

	// Instance lock
	LockfileSuffix = ".lock"

	// Flow steps
	StepCategory Step = "CATEGORY"
	StepItem     Step = "ITEM"
)

// Session States. The first NumMainTabs values are the tabbed views.
const (
	StateRoulette SessionState = iota
	StateHistory
	StateManage
	StateConfirmWinner
	StateAddCategory
	StateConfirmDeleteCategory
	StateConfirmClearHistory
)

// NumMainTabs is the number of top-level views reachable with tab
const NumMainTabs = 3

// Persisted slot keys
const (
	KeyCategories    = "lunch-categories"
	KeyWeeklyHistory = "lunch-weekly-history"
	KeyFullHistory   = "lunch-full-history"
	KeyRespins       = "lunch-respins"
	KeyLastDate      = "lunch-last-date"
	KeyLegacyItems   = "lunch-items"
)

// DefaultItems seeds the General category on first run
var DefaultItems = []string{"Burger", "Pizza", "Sushi", "Salad", "Tacos", "Pasta"}

// KnownKeys lists every slot the application reads
var KnownKeys = []string{
	KeyCategories,
	KeyWeeklyHistory,
	KeyFullHistory,
	KeyRespins,
	KeyLastDate,
	KeyLegacyItems,
}
