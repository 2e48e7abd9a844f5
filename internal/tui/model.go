// Package tui is the interactive lunch roulette: spin, review the week and
// edit the menu.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/history"
	"github.com/julianstephens/lunchwheel/internal/menu"
	"github.com/julianstephens/lunchwheel/internal/session"
	"github.com/julianstephens/lunchwheel/internal/tui/components/historyview"
	"github.com/julianstephens/lunchwheel/internal/tui/components/manager"
	"github.com/julianstephens/lunchwheel/internal/tui/components/roulette"
	"github.com/julianstephens/lunchwheel/internal/wheel"
)

// spinFrameMsg advances the animation of the spin with the given id
type spinFrameMsg struct {
	ID uint64
}

// transitionMsg moves to the item wheel once the category result has been shown
type transitionMsg struct {
	Token      uint64
	CategoryID string
}

// dayCheckMsg re-evaluates the daily reset while the program stays open
type dayCheckMsg struct{}

const dayCheckInterval = time.Minute

type Model struct {
	ctrl          *session.Controller
	editor        *menu.Editor
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	roulette      roulette.Model
	manager       manager.Model
	historyView   historyview.Model
	form          *huh.Form
	categoryForm  *CategoryFormModel
	formError     string
	pendingDelete manager.DeleteCategoryMsg
	spin          *wheel.Spin
	spinStart     time.Time
	spinRotation  float64
	landed        string
	status        string
	width         int
	height        int
	quitting      bool
	now           func() time.Time
}

func NewModel(ctrl *session.Controller) Model {
	m := Model{
		ctrl:        ctrl,
		editor:      menu.NewEditor(ctrl),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		roulette:    roulette.New(0, 0),
		manager:     manager.New(ctrl.Categories(), 0, 0),
		historyView: historyview.New(nil, nil, 0, 0),
		now:         time.Now,
	}
	m.state = stateForView(ctrl.View())
	m.refresh()
	return m
}

func stateForView(v session.View) constants.SessionState {
	switch v {
	case session.ViewHistory:
		return constants.StateHistory
	case session.ViewManage:
		return constants.StateManage
	default:
		return constants.StateRoulette
	}
}

// refresh copies the controller's data into the list components
func (m *Model) refresh() {
	m.manager.SetCategories(m.ctrl.Categories())
	day, ok := m.ctrl.CurrentDay()
	m.historyView.SetHistory(history.WeekRows(m.ctrl.Weekly(), day, ok), m.ctrl.FullHistory())
}

// capturing reports whether the focused component is taking text input
func (m Model) capturing() bool {
	switch m.state {
	case constants.StateManage:
		return m.manager.Capturing()
	case constants.StateHistory:
		return m.historyView.Capturing()
	case constants.StateAddCategory:
		return true
	}
	return false
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateRoulette:
		if m.ctrl.Step() == constants.StepItem {
			return []key.Binding{m.keys.Spin, m.keys.Back, m.keys.Tab, m.keys.Quit, m.keys.Help}
		}
		return []key.Binding{m.keys.Spin, m.keys.Tab, m.keys.Quit, m.keys.Help}
	case constants.StateConfirmWinner:
		return []key.Binding{m.keys.Accept, m.keys.Again}
	case constants.StateConfirmDeleteCategory, constants.StateConfirmClearHistory:
		return []key.Binding{m.keys.Yes, m.keys.No}
	case constants.StateManage:
		mk := manager.DefaultKeyMap()
		return []key.Binding{mk.Add, mk.Delete, mk.Expand, m.keys.Tab, m.keys.Quit}
	case constants.StateHistory:
		hk := historyview.DefaultKeyMap()
		hk.Clear.SetEnabled(len(m.ctrl.FullHistory()) > 0)
		return []key.Binding{hk.Clear, m.keys.Tab, m.keys.Quit, m.keys.Help}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	switch m.state {
	case constants.StateConfirmWinner, constants.StateConfirmDeleteCategory, constants.StateConfirmClearHistory:
		return [][]key.Binding{m.ShortHelp()}
	}
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return dayCheck()
}

func dayCheck() tea.Cmd {
	return tea.Tick(dayCheckInterval, func(time.Time) tea.Msg { return dayCheckMsg{} })
}

func spinFrame(id uint64) tea.Cmd {
	return tea.Tick(constants.SpinFrameInterval, func(time.Time) tea.Msg { return spinFrameMsg{ID: id} })
}

func transition(out session.Outcome) tea.Cmd {
	msg := transitionMsg{Token: out.Token, CategoryID: out.Category.ID}
	return tea.Tick(out.Delay, func(time.Time) tea.Msg { return msg })
}
