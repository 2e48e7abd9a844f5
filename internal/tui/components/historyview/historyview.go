package historyview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lunchwheel/internal/history"
	"github.com/julianstephens/lunchwheel/internal/models"
)

type ClearHistoryMsg struct{}

const emptyLog = "No history yet."

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dayStyle     = lipgloss.NewStyle().Width(5).Foreground(lipgloss.Color("245"))
	todayStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10b981"))
	blankStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Item struct {
	Entry models.HistoryItem
}

func (i Item) Title() string { return i.Entry.ItemName }

func (i Item) Description() string {
	date := history.FormatDate(i.Entry.Date)
	if i.Entry.CategoryName == "" {
		return date
	}
	return fmt.Sprintf("%s • %s", i.Entry.CategoryName, date)
}

func (i Item) FilterValue() string { return i.Entry.ItemName }

type KeyMap struct {
	Clear key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear history"),
		),
	}
}

// Model shows the weekly menu above the full acceptance log
type Model struct {
	list list.Model
	keys KeyMap
	rows []history.Row
}

func New(rows []history.Row, log []models.HistoryItem, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Clear}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Clear}
	}

	m := Model{list: l, keys: keys}
	m.SetHistory(rows, log)
	return m
}

func (m *Model) SetHistory(rows []history.Row, log []models.HistoryItem) {
	m.rows = rows
	items := make([]list.Item, len(log))
	for i, e := range log {
		items[i] = Item{Entry: e}
	}
	m.list.SetItems(items)
	m.keys.Clear.SetEnabled(len(items) > 0)
}

// Capturing reports whether the log filter is taking key presses
func (m Model) Capturing() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Clear) && len(m.list.Items()) > 0 {
			return m, func() tea.Msg { return ClearHistoryMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("This Week"))
	b.WriteByte('\n')
	for _, row := range m.rows {
		value := row.Value
		switch {
		case row.Current:
			value = todayStyle.Render(value + "  ← today")
		case !row.Filled:
			value = blankStyle.Render(value)
		}
		b.WriteString(dayStyle.Render(string(row.Day)) + value + "\n")
	}
	b.WriteByte('\n')
	b.WriteString(sectionStyle.Render("Full History"))
	b.WriteByte('\n')

	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		b.WriteString("\n  " + emptyLog)
		return b.String()
	}
	b.WriteString(m.list.View())
	return b.String()
}

// SetSize leaves room for the weekly table above the log
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, max(3, height-len(m.rows)-4))
}
