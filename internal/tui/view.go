package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/session"
	"github.com/julianstephens/lunchwheel/internal/tui/components/roulette"
	"github.com/julianstephens/lunchwheel/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateRoulette:
		content = m.viewRoulette()
	case constants.StateHistory:
		content = docStyle.Render(m.historyView.View())
	case constants.StateManage:
		content = docStyle.Render(m.manager.View())
	case constants.StateConfirmWinner:
		content = m.viewConfirmWinner()
	case constants.StateAddCategory:
		content = m.viewForm()
	case constants.StateConfirmDeleteCategory:
		content = m.viewConfirmDelete()
	case constants.StateConfirmClearHistory:
		content = m.viewConfirmClear()
	}

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	titles := []string{"Roulette", "History", "Manage"}
	for i, title := range titles {
		v := mainViews[i]
		switch {
		case v == m.ctrl.View():
			tabs = append(tabs, activeTabStyle.Render(title))
		case v == session.ViewRoulette && m.ctrl.Locked():
			tabs = append(tabs, disabledTabStyle.Render(title))
		default:
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// frame snapshots the controller for the wheel component
func (m Model) frame() roulette.Frame {
	f := roulette.Frame{
		Items:    m.ctrl.WheelItems(),
		Rotation: m.ctrl.Rotation(),
		Step:     m.ctrl.Step(),
		Landed:   m.landed,
		Respins:  m.ctrl.Respins(),
		Spinning: m.spin != nil,
	}
	if m.spin != nil {
		f.Rotation = m.spinRotation
	}
	// Weekends have no menu slot, so only the budget is shown
	if _, ok := m.ctrl.CurrentDay(); ok {
		f.Today = utils.DayName(m.ctrl.Now())
	}
	if cat, ok := m.ctrl.Selected(); ok {
		f.Category = cat.Name
	}
	return f
}

func (m Model) viewRoulette() string {
	m.roulette.SetFrame(m.frame())
	return m.roulette.View()
}

func (m Model) viewConfirmWinner() string {
	accept := "[a] Accept & Save"
	if _, ok := m.ctrl.CurrentDay(); !ok {
		accept = "[a] Accept (Weekend)"
	}

	again := fmt.Sprintf("[s] Spin Again (%d left)", m.ctrl.Respins())
	if m.ctrl.Respins() <= 0 {
		again = mutedStyle.Render(fmt.Sprintf("Spin Again (%d left)", m.ctrl.Respins()))
	}

	lines := []string{"You got...", "", winnerStyle.Render(m.ctrl.Winner())}
	if cat, ok := m.ctrl.Selected(); ok {
		lines = append(lines, mutedStyle.Render("from "+cat.Name))
	}
	lines = append(lines, "", accept, again)

	return lipgloss.Place(m.width, max(0, m.height-4),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func (m Model) viewForm() string {
	out := m.form.View()
	if m.formError != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(out)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(0, m.height-4),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s and all of its items?", m.pendingDelete.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmClear() string {
	return lipgloss.Place(m.width, max(0, m.height-4),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			warningStyle.Render("Clear the full history? This week's menu is kept."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
