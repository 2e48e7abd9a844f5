package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/errors"
	"github.com/julianstephens/lunchwheel/internal/logger"
	"github.com/julianstephens/lunchwheel/internal/session"
	"github.com/julianstephens/lunchwheel/internal/tui/components/historyview"
	"github.com/julianstephens/lunchwheel/internal/tui/components/manager"
	"github.com/julianstephens/lunchwheel/internal/wheel"
)

var mainViews = []session.View{session.ViewRoulette, session.ViewHistory, session.ViewManage}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.roulette.SetSize(msg.Width-h, msg.Height-v-4)
		m.manager.SetSize(msg.Width-h, msg.Height-v-4)
		m.historyView.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case spinFrameMsg:
		return m.handleSpinFrame(msg)

	case transitionMsg:
		m.landed = ""
		if _, err := m.ctrl.Transition(msg.Token, msg.CategoryID); err != nil {
			m.setError(err)
		}
		return m, nil

	case dayCheckMsg:
		if err := m.ctrl.Evaluate(); err != nil {
			m.setError(err)
		}
		if m.state == constants.StateRoulette && m.ctrl.Locked() {
			m.switchView(session.ViewHistory)
		}
		m.refresh()
		return m, dayCheck()

	case manager.AddCategoryMsg:
		m.categoryForm = &CategoryFormModel{}
		m.form = NewCategoryForm(m.categoryForm)
		m.formError = ""
		m.previousState = m.state
		m.state = constants.StateAddCategory
		return m, m.form.Init()

	case manager.DeleteCategoryMsg:
		m.pendingDelete = msg
		m.previousState = m.state
		m.state = constants.StateConfirmDeleteCategory
		return m, nil

	case manager.AddItemMsg:
		if err := m.editor.AddItem(msg.CategoryID, msg.Name); err != nil {
			m.setError(err)
		}
		m.refresh()
		return m, nil

	case manager.DeleteItemMsg:
		if err := m.editor.DeleteItem(msg.CategoryID, msg.Index); err != nil {
			m.setError(err)
		}
		m.refresh()
		return m, nil

	case historyview.ClearHistoryMsg:
		m.previousState = m.state
		m.state = constants.StateConfirmClearHistory
		return m, nil
	}

	switch m.state {
	case constants.StateAddCategory:
		return m.updateCategoryForm(msg)
	case constants.StateConfirmDeleteCategory:
		return m.updateConfirmDelete(msg)
	case constants.StateConfirmClearHistory:
		return m.updateConfirmClear(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateRoulette:
		return m.updateRoulette(msg)
	case constants.StateConfirmWinner:
		return m.updateConfirmWinner(msg)
	case constants.StateManage:
		m.manager, cmd = m.manager.Update(msg)
	case constants.StateHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return true, tea.Quit
	}
	if m.capturing() || m.state == constants.StateConfirmWinner {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.Tab):
		m.cycleView(1)
		return true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.cycleView(-1)
		return true, nil
	}
	return false, nil
}

func (m *Model) cycleView(step int) {
	current := 0
	for i, v := range mainViews {
		if v == m.ctrl.View() {
			current = i
		}
	}
	next := mainViews[(current+step+len(mainViews))%len(mainViews)]
	if next == session.ViewRoulette && m.ctrl.Locked() {
		next = mainViews[(current+2*step+2*len(mainViews))%len(mainViews)]
	}
	m.switchView(next)
}

func (m *Model) switchView(v session.View) {
	m.status = ""
	m.state = stateForView(m.ctrl.SetView(v))
	m.refresh()
}

func (m *Model) setError(err error) {
	logger.Warn("TUI action failed", "error", err)
	m.status = errors.Format(err)
}

func (m Model) updateRoulette(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.spin != nil || m.landed != "" {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Spin):
		spin, err := m.ctrl.StartSpin()
		if err != nil {
			m.setError(err)
			if errors.Is(err, session.ErrLocked) {
				m.switchView(session.ViewHistory)
			}
			return m, nil
		}
		m.status = ""
		m.spin = &spin
		m.spinStart = m.now()
		m.spinRotation = spin.From
		return m, spinFrame(spin.ID)
	case key.Matches(keyMsg, m.keys.Back):
		if m.ctrl.Step() == constants.StepItem {
			m.ctrl.Reset()
			m.status = ""
		}
	}
	return m, nil
}

func (m Model) handleSpinFrame(msg spinFrameMsg) (tea.Model, tea.Cmd) {
	if m.spin == nil || m.spin.ID != msg.ID {
		return m, nil
	}

	elapsed := m.now().Sub(m.spinStart)
	if elapsed < m.spin.Duration {
		m.spinRotation = m.spin.At(float64(elapsed) / float64(m.spin.Duration))
		return m, spinFrame(msg.ID)
	}

	id := m.spin.ID
	m.spin = nil
	out, err := m.ctrl.CompleteSpin(id)
	if err != nil {
		if !errors.Is(err, wheel.ErrStaleSpin) {
			m.setError(err)
		}
		return m, nil
	}

	switch {
	case out.Pending:
		m.landed = out.Winner
		return m, transition(out)
	case out.Confirm:
		m.ctrl.SetView(session.ViewRoulette)
		m.previousState = m.state
		m.state = constants.StateConfirmWinner
	}
	return m, nil
}

func (m Model) updateConfirmWinner(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Accept):
		item, err := m.ctrl.Accept()
		if err != nil {
			m.setError(err)
			if !m.ctrl.Confirming() {
				m.state = stateForView(m.ctrl.View())
			}
			return m, nil
		}
		m.status = fmt.Sprintf("Saved %s. Enjoy your lunch!", item.ItemName)
		m.state = stateForView(m.ctrl.View())
		m.refresh()
	case key.Matches(keyMsg, m.keys.Again):
		if err := m.ctrl.SpinAgain(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.switchView(session.ViewRoulette)
	}
	return m, nil
}

func (m Model) updateCategoryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if _, err := m.editor.AddCategory(m.categoryForm.Name); err != nil {
			m.formError = fmt.Sprintf("Failed to add category: %v", err)
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.refresh()
		m.state = m.previousState
	case huh.StateAborted:
		m.formError = ""
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		if err := m.editor.DeleteCategory(m.pendingDelete.ID); err != nil {
			m.setError(err)
		} else {
			m.status = fmt.Sprintf("Deleted %s", m.pendingDelete.Name)
		}
		m.pendingDelete = manager.DeleteCategoryMsg{}
		m.refresh()
		m.state = m.previousState
	case key.Matches(keyMsg, m.keys.No):
		m.pendingDelete = manager.DeleteCategoryMsg{}
		m.state = m.previousState
	}
	return m, nil
}

func (m Model) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		if err := m.ctrl.ClearHistory(); err != nil {
			m.setError(err)
		}
		m.refresh()
		m.state = m.previousState
	case key.Matches(keyMsg, m.keys.No):
		m.state = m.previousState
	}
	return m, nil
}
