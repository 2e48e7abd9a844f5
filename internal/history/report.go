package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/lunchwheel/internal/models"
)

// Markdown builds the printable report of the weekly menu and the full log
func Markdown(weekly models.WeeklyHistory, log []models.HistoryItem, today models.Weekday, hasToday bool) string {
	var b strings.Builder

	b.WriteString("# Weekly Menu\n\n")
	b.WriteString("| Day | Lunch |\n|---|---|\n")
	for _, row := range WeekRows(weekly, today, hasToday) {
		day := string(row.Day)
		if row.Current {
			day = "**" + day + "** (today)"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", day, escapeCell(row.Value))
	}

	b.WriteString("\n## Full History\n\n")
	if len(log) == 0 {
		b.WriteString("_No history yet._\n")
		return b.String()
	}
	for _, item := range log {
		fmt.Fprintf(&b, "- %s **%s** _%s_\n", FormatDate(item.Date), item.ItemName, item.CategoryName)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Render formats markdown for the terminal. width <= 0 keeps glamour's default wrap.
func Render(markdown string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	return renderer.Render(markdown)
}
