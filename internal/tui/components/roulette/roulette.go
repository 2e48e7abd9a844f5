package roulette

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/wheel"
)

// Palette colors segments by position, cycling when there are more items
var Palette = []lipgloss.Color{
	"#ef4444", "#f97316", "#f59e0b", "#84cc16", "#10b981",
	"#06b6d4", "#3b82f6", "#8b5cf6", "#d946ef", "#f43f5e",
}

const (
	segmentWidth = 28
	reelRows     = 5
)

var (
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pointerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
)

// Frame is everything the wheel needs to draw one screen
type Frame struct {
	Items    []string
	Rotation float64
	Step     constants.Step
	Category string
	Landed   string
	Today    string
	Respins  int
	Spinning bool
}

type Model struct {
	frame  Frame
	width  int
	height int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m *Model) SetFrame(f Frame) {
	m.frame = f
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Color returns the palette color for segment i
func Color(i int) lipgloss.Color {
	return Palette[i%len(Palette)]
}

// Prompt is the headline for the current stage
func Prompt(step constants.Step, category string) string {
	if step == constants.StepItem {
		return fmt.Sprintf("Now, spinning for %s!", category)
	}
	return "First, pick a category!"
}

// Window returns the segment indexes shown on the reel, top to bottom, and
// the row the pointer sits on.
func Window(n int, rotation float64) ([]int, int) {
	if n <= 0 {
		return nil, 0
	}
	rows := min(n, reelRows)
	current := wheel.Index(n, rotation)
	first := -(rows - 1) / 2

	out := make([]int, 0, rows)
	for k := first; k < first+rows; k++ {
		out = append(out, ((current+k)%n+n)%n)
	}
	return out, -first
}

// Needle draws where the pointer sits inside the current segment
func Needle(n int, rotation float64, width int) string {
	if n <= 0 || width <= 0 {
		return ""
	}
	start, end := wheel.Segment(n, wheel.Index(n, rotation))
	effective := math.Mod(constants.FullCircle-wheel.Normalize(rotation), constants.FullCircle)
	pos := int((effective - start) / (end - start) * float64(width-1))
	pos = max(0, min(pos, width-1))
	return strings.Repeat("─", pos) + "●" + strings.Repeat("─", width-1-pos)
}

func (m Model) View() string {
	f := m.frame
	info := fmt.Sprintf("Re-spins left: %d", f.Respins)
	if f.Today != "" {
		info = fmt.Sprintf("Today is %s  •  %s", f.Today, info)
	}
	lines := []string{
		promptStyle.Render(Prompt(f.Step, f.Category)),
		infoStyle.Render(info),
		"",
	}

	switch {
	case f.Step == constants.StepItem && len(f.Items) == 0:
		lines = append(lines,
			emptyStyle.Render("No items in this category!"),
			"",
			"[b] Go Back",
		)
	case len(f.Items) == 0:
		lines = append(lines, emptyStyle.Render("No categories yet. Add some in Manage."))
	default:
		lines = append(lines, m.reel())
		lines = append(lines, "")
		switch {
		case f.Spinning:
			lines = append(lines,
				pointerStyle.Render(Needle(len(f.Items), f.Rotation, segmentWidth)),
				infoStyle.Render("Spinning..."),
			)
		case f.Landed != "":
			lines = append(lines, promptStyle.Render("Landed on "+f.Landed+"!"))
		case len(f.Items) < 2:
			lines = append(lines, emptyStyle.Render("Add at least two entries to spin."))
		default:
			lines = append(lines, "[space] Spin")
		}
		if f.Step == constants.StepItem && !f.Spinning {
			lines = append(lines, infoStyle.Render("[b] Go Back"))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width <= 0 || m.height <= 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) reel() string {
	items := m.frame.Items
	idx, pointerRow := Window(len(items), m.frame.Rotation)

	rows := make([]string, 0, len(idx))
	for r, i := range idx {
		seg := lipgloss.NewStyle().
			Width(segmentWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("#ffffff")).
			Background(Color(i)).
			Render(truncate(items[i], segmentWidth-2))
		if r == pointerRow {
			rows = append(rows, pointerStyle.Render("▶ ")+seg+pointerStyle.Render(" ◀"))
			continue
		}
		rows = append(rows, "  "+lipgloss.NewStyle().Faint(true).Render(seg)+"  ")
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
