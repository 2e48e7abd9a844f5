package session

import "github.com/julianstephens/lunchwheel/internal/constants"

type EventKind string

const (
	EventDailyReset        EventKind = "daily-reset"
	EventSpinStarted       EventKind = "spin-started"
	EventSpinFinished      EventKind = "spin-finished"
	EventCategorySelected  EventKind = "category-selected"
	EventConfirm           EventKind = "confirm"
	EventAccepted          EventKind = "accepted"
	EventRespin            EventKind = "respin"
	EventFlowReset         EventKind = "flow-reset"
	EventViewChanged       EventKind = "view-changed"
	EventCategoriesChanged EventKind = "categories-changed"
	EventHistoryCleared    EventKind = "history-cleared"
)

// Event is delivered to observers after a state change has been persisted
type Event struct {
	Kind     EventKind
	Winner   string
	Category string
	Step     constants.Step
	Respins  int
}

type Observer interface {
	StateChanged(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

func (f ObserverFunc) StateChanged(e Event) { f(e) }
