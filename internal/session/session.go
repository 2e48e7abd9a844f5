// Package session drives the two-stage lunch pick: spin for a category,
// spin for an item, then accept or spend a re-spin.
package session

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lunchwheel/internal/appstate"
	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/errors"
	"github.com/julianstephens/lunchwheel/internal/history"
	"github.com/julianstephens/lunchwheel/internal/logger"
	"github.com/julianstephens/lunchwheel/internal/models"
	"github.com/julianstephens/lunchwheel/internal/utils"
	"github.com/julianstephens/lunchwheel/internal/wheel"
)

var (
	ErrLocked    = errors.New("today's lunch is already decided")
	ErrNoRespins = errors.New("no re-spins left today")
	ErrNoWinner  = errors.New("nothing to confirm")
	ErrBusy      = errors.New("finish the current pick first")
)

// View is one of the top-level screens
type View string

const (
	ViewRoulette View = "roulette"
	ViewHistory  View = "history"
	ViewManage   View = "manage"
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Options tunes pacing and limits
type Options struct {
	SpinDuration    time.Duration
	TransitionDelay time.Duration
	RNG             wheel.RNG
}

// Outcome describes what a finished spin changed. On the category stage a
// matched category is not selected immediately: callers wait
// TransitionDelay and then call Transition with Token.
type Outcome struct {
	Winner   string
	Pending  bool
	Category models.Category
	Token    uint64
	Delay    time.Duration
	Confirm  bool
}

// Controller owns the session state and persists every change it makes.
// It is not safe for concurrent use.
type Controller struct {
	store *appstate.Store
	state appstate.State
	clock Clock
	opts  Options
	wheel *wheel.Wheel

	step       constants.Step
	selected   *models.Category
	winner     string
	confirming bool
	view       View
	token      uint64

	observers []Observer
}

// New loads every slot from store and applies the daily reset
func New(store *appstate.Store, clock Clock, opts Options) (*Controller, error) {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	if opts.RNG == nil {
		opts.RNG = wheel.Random()
	}

	st, err := store.Load()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		store: store,
		state: st,
		clock: clock,
		opts:  opts,
		wheel: wheel.New(opts.RNG, opts.SpinDuration),
		step:  constants.StepCategory,
		view:  ViewRoulette,
	}
	if err := c.Evaluate(); err != nil {
		return nil, err
	}
	if c.Locked() {
		c.view = ViewHistory
	}
	return c, nil
}

// Subscribe registers an observer for state changes
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

func (c *Controller) notify(e Event) {
	e.Step = c.step
	e.Respins = c.state.Respins
	for _, o := range c.observers {
		o.StateChanged(e)
	}
}

// Now is the controller clock's current time
func (c *Controller) Now() time.Time {
	return c.clock.Now()
}

// Evaluate resets the re-spin budget the first time it runs on a new calendar day
func (c *Controller) Evaluate() error {
	today := utils.DayStamp(c.clock.Now())
	if c.state.LastDate == today {
		return nil
	}

	logger.Info("New day, resetting re-spins", "previous", c.state.LastDate, "today", today)
	c.state.Respins = c.store.MaxRespins()
	c.state.LastDate = today
	if err := c.store.SaveRespins(c.state.Respins); err != nil {
		return err
	}
	if err := c.store.SaveLastDate(today); err != nil {
		return err
	}
	c.notify(Event{Kind: EventDailyReset})
	return nil
}

// CurrentDay returns today's tracked weekday, false on weekends
func (c *Controller) CurrentDay() (models.Weekday, bool) {
	return utils.CurrentWeekday(c.clock.Now())
}

// Locked reports whether today's weekday already has an accepted lunch
func (c *Controller) Locked() bool {
	day, ok := c.CurrentDay()
	return ok && c.state.Weekly.Filled(day)
}

// WheelItems are the labels on the current stage's wheel
func (c *Controller) WheelItems() []string {
	if c.step == constants.StepItem && c.selected != nil {
		return append([]string(nil), c.selected.Items...)
	}
	if c.step == constants.StepItem {
		return nil
	}
	return models.CategoryNames(c.state.Categories)
}

// StartSpin begins a spin of the current stage's wheel
func (c *Controller) StartSpin() (wheel.Spin, error) {
	if err := c.Evaluate(); err != nil {
		return wheel.Spin{}, err
	}
	if c.Locked() {
		return wheel.Spin{}, ErrLocked
	}
	if c.confirming {
		return wheel.Spin{}, ErrBusy
	}

	spin, err := c.wheel.Start(c.WheelItems())
	if err != nil {
		return wheel.Spin{}, err
	}
	logger.Debug("Spin started", "id", spin.ID, "step", c.step, "items", len(spin.Items))
	c.notify(Event{Kind: EventSpinStarted})
	return spin, nil
}

// CompleteSpin settles the spin with the given id. Stale ids are rejected.
func (c *Controller) CompleteSpin(id uint64) (Outcome, error) {
	winner, err := c.wheel.Finish(id)
	if err != nil {
		return Outcome{}, err
	}
	logger.Info("Spin finished", "step", c.step, "winner", winner)

	if c.step == constants.StepCategory {
		idx := slices.IndexFunc(c.state.Categories, func(cat models.Category) bool { return cat.Name == winner })
		if idx < 0 {
			c.notify(Event{Kind: EventSpinFinished, Winner: winner})
			return Outcome{Winner: winner}, nil
		}
		c.token++
		out := Outcome{
			Winner:   winner,
			Pending:  true,
			Category: c.state.Categories[idx].Clone(),
			Token:    c.token,
			Delay:    c.opts.TransitionDelay,
		}
		c.notify(Event{Kind: EventSpinFinished, Winner: winner, Category: winner})
		return out, nil
	}

	c.winner = winner
	c.confirming = true
	c.notify(Event{Kind: EventConfirm, Winner: winner, Category: c.selectedName()})
	return Outcome{Winner: winner, Confirm: true}, nil
}

// Transition performs the delayed move to the item stage. It is a no-op when
// the flow was reset after the token was issued.
func (c *Controller) Transition(token uint64, categoryID string) (bool, error) {
	if token != c.token || c.step != constants.StepCategory {
		return false, nil
	}
	return true, c.SelectCategory(categoryID)
}

// SelectCategory moves to the item stage for the given category
func (c *Controller) SelectCategory(id string) error {
	idx := slices.IndexFunc(c.state.Categories, func(cat models.Category) bool { return cat.ID == id })
	if idx < 0 {
		return errors.NotFoundf("category %s not found", id)
	}
	cat := c.state.Categories[idx].Clone()
	c.selected = &cat
	c.step = constants.StepItem
	c.token++
	c.wheel.Reset()
	c.notify(Event{Kind: EventCategorySelected, Category: cat.Name})
	return nil
}

// Accept records the pending winner. On a weekday it fills today's slot;
// every acceptance is prepended to the full log.
func (c *Controller) Accept() (models.HistoryItem, error) {
	if err := c.Evaluate(); err != nil {
		return models.HistoryItem{}, err
	}
	if !c.confirming || c.winner == "" {
		return models.HistoryItem{}, ErrNoWinner
	}
	if c.Locked() {
		return models.HistoryItem{}, ErrLocked
	}

	now := c.clock.Now()
	if day, ok := c.CurrentDay(); ok {
		weekly := history.Record(c.state.Weekly, day, c.winner)
		if err := c.store.SaveWeeklyHistory(weekly); err != nil {
			return models.HistoryItem{}, err
		}
		c.state.Weekly = weekly
	}

	item := models.HistoryItem{
		ID:           uuid.NewString(),
		Date:         now,
		ItemName:     c.winner,
		CategoryName: c.selectedName(),
	}
	full := history.Prepend(c.state.FullHistory, item)
	if err := c.store.SaveFullHistory(full); err != nil {
		return models.HistoryItem{}, err
	}
	c.state.FullHistory = full

	logger.Info("Lunch accepted", "item", item.ItemName, "category", item.CategoryName)
	c.resetFlow()
	c.view = ViewHistory
	c.notify(Event{Kind: EventAccepted, Winner: item.ItemName, Category: item.CategoryName})
	return item, nil
}

// SpinAgain spends one re-spin and returns to the category stage
func (c *Controller) SpinAgain() error {
	if err := c.Evaluate(); err != nil {
		return err
	}
	if !c.confirming {
		return ErrNoWinner
	}
	if c.state.Respins <= 0 {
		return ErrNoRespins
	}

	if err := c.store.SaveRespins(c.state.Respins - 1); err != nil {
		return err
	}
	c.state.Respins--
	logger.Info("Re-spin used", "remaining", c.state.Respins)
	c.resetFlow()
	c.notify(Event{Kind: EventRespin})
	return nil
}

// Reset abandons the current pick without touching the budget
func (c *Controller) Reset() {
	c.resetFlow()
	c.notify(Event{Kind: EventFlowReset})
}

func (c *Controller) resetFlow() {
	c.confirming = false
	c.winner = ""
	c.selected = nil
	c.step = constants.StepCategory
	c.token++
	c.wheel.Reset()
}

// SetView switches screens. The roulette is unavailable while locked and
// History is shown in its place.
func (c *Controller) SetView(v View) View {
	if v == ViewRoulette && c.Locked() {
		v = ViewHistory
	}
	if v != c.view {
		c.view = v
		c.notify(Event{Kind: EventViewChanged})
	}
	return c.view
}

// SetCategories persists a new category list. A selected category that no
// longer exists abandons the current pick.
func (c *Controller) SetCategories(cats []models.Category) error {
	if err := c.store.SaveCategories(cats); err != nil {
		return err
	}
	c.state.Categories = models.CloneCategories(cats)

	if c.selected != nil {
		idx := slices.IndexFunc(c.state.Categories, func(cat models.Category) bool { return cat.ID == c.selected.ID })
		if idx < 0 {
			c.resetFlow()
		} else {
			cat := c.state.Categories[idx].Clone()
			c.selected = &cat
		}
	}
	c.notify(Event{Kind: EventCategoriesChanged})
	return nil
}

// ClearHistory empties the full log. The weekly menu is untouched.
func (c *Controller) ClearHistory() error {
	cleared := history.Clear()
	if err := c.store.SaveFullHistory(cleared); err != nil {
		return err
	}
	c.state.FullHistory = cleared
	logger.Info("History cleared")
	c.notify(Event{Kind: EventHistoryCleared})
	return nil
}

func (c *Controller) selectedName() string {
	if c.selected == nil {
		return ""
	}
	return c.selected.Name
}

func (c *Controller) Step() constants.Step { return c.step }
func (c *Controller) Winner() string       { return c.winner }
func (c *Controller) Confirming() bool     { return c.confirming }
func (c *Controller) Respins() int         { return c.state.Respins }
func (c *Controller) MaxRespins() int      { return c.store.MaxRespins() }
func (c *Controller) View() View           { return c.view }
func (c *Controller) Spinning() bool       { return c.wheel.Spinning() }
func (c *Controller) Rotation() float64    { return c.wheel.Rotation() }

// Selected returns the category chosen on the first stage
func (c *Controller) Selected() (models.Category, bool) {
	if c.selected == nil {
		return models.Category{}, false
	}
	return c.selected.Clone(), true
}

// Categories returns a copy of the category list
func (c *Controller) Categories() []models.Category {
	return models.CloneCategories(c.state.Categories)
}

// Weekly returns a copy of the weekly menu
func (c *Controller) Weekly() models.WeeklyHistory {
	return c.state.Weekly.Clone()
}

// FullHistory returns a copy of the acceptance log, newest first
func (c *Controller) FullHistory() []models.HistoryItem {
	return append([]models.HistoryItem(nil), c.state.FullHistory...)
}
