package manager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lunchwheel/internal/menu"
	"github.com/julianstephens/lunchwheel/internal/models"
)

type AddCategoryMsg struct{}

type DeleteCategoryMsg struct {
	ID   string
	Name string
}

type AddItemMsg struct {
	CategoryID string
	Name       string
}

type DeleteItemMsg struct {
	CategoryID string
	Index      int
}

const emptyItems = "No items yet. Add some!"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Item struct {
	Category models.Category
}

func (i Item) Title() string {
	return fmt.Sprintf("%s (%d)", i.Category.Name, len(i.Category.Items))
}

func (i Item) Description() string {
	if len(i.Category.Items) == 0 {
		return emptyItems
	}
	return strings.Join(i.Category.Items, ", ")
}

func (i Item) FilterValue() string { return i.Category.Name }

type KeyMap struct {
	Add        key.Binding
	Delete     key.Binding
	Expand     key.Binding
	Collapse   key.Binding
	Up         key.Binding
	Down       key.Binding
	DeleteItem key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add category"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete category"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit items"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		DeleteItem: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "delete item"),
		),
	}
}

// Model lists categories and, once one is expanded, edits its items inline
type Model struct {
	list       list.Model
	keys       KeyMap
	categories []models.Category
	expanded   string
	cursor     int
	input      textinput.Model
	width      int
}

func New(categories []models.Category, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Categories"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Expand}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Expand}
	}

	ti := textinput.New()
	ti.Placeholder = "Add an item..."
	ti.CharLimit = 64
	ti.Prompt = "+ "

	m := Model{list: l, keys: keys, input: ti, width: width}
	m.SetCategories(categories)
	return m
}

func (m *Model) SetCategories(categories []models.Category) {
	m.categories = models.CloneCategories(categories)
	items := make([]list.Item, len(m.categories))
	for i, c := range m.categories {
		items[i] = Item{Category: c}
	}
	m.list.SetItems(items)

	if m.expanded == "" {
		return
	}
	idx := menu.Find(m.categories, m.expanded)
	if idx < 0 {
		m.collapse()
		return
	}
	m.cursor = max(0, min(m.cursor, len(m.categories[idx].Items)-1))
}

// Expanded returns the category being edited
func (m Model) Expanded() (models.Category, bool) {
	idx := menu.Find(m.categories, m.expanded)
	if idx < 0 {
		return models.Category{}, false
	}
	return m.categories[idx], true
}

// Capturing reports whether key presses are text input rather than commands
func (m Model) Capturing() bool {
	return m.expanded != "" || m.list.FilterState() == list.Filtering
}

func (m *Model) expand(id string) tea.Cmd {
	m.expanded = id
	m.cursor = 0
	m.input.Reset()
	return m.input.Focus()
}

func (m *Model) collapse() {
	m.expanded = ""
	m.cursor = 0
	m.input.Reset()
	m.input.Blur()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.expanded != "" {
		return m.updateItems(msg)
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddCategoryMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteCategoryMsg{ID: i.Category.ID, Name: i.Category.Name} }
			}
		case key.Matches(msg, m.keys.Expand):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, m.expand(i.Category.ID)
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateItems(msg tea.Msg) (Model, tea.Cmd) {
	cat, ok := m.Expanded()
	if !ok {
		m.collapse()
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Collapse):
			m.collapse()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(cat.Items)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.DeleteItem):
			if len(cat.Items) == 0 {
				return m, nil
			}
			index := m.cursor
			return m, func() tea.Msg { return DeleteItemMsg{CategoryID: cat.ID, Index: index} }
		case msg.Type == tea.KeyEnter:
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			m.input.Reset()
			return m, func() tea.Msg { return AddItemMsg{CategoryID: cat.ID, Name: name} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	cat, ok := m.Expanded()
	if !ok {
		if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
			return "\n  No categories yet.\n  Press 'a' to add one."
		}
		return m.list.View()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", cat.Name, len(cat.Items))))
	b.WriteString("\n\n")
	if len(cat.Items) == 0 {
		b.WriteString("  " + emptyItems + "\n")
	}
	for i, item := range cat.Items {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter add • ↑/↓ select • ctrl+x delete • esc back"))
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.list.SetSize(width, height)
	m.input.Width = max(10, width-6)
}
