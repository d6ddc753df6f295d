package formatter

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/renato-web/Profluxo/internal/domain"
)

// TaskPreviewLimit is how many task names an entry row shows before
// collapsing the rest into a count.
const TaskPreviewLimit = 3

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDay renders a YYYY-MM-DD day as DD/MM/YYYY. Unparseable input is
// returned as given.
func FormatDay(day string) string {
	t, err := domain.ParseDay(day)
	if err != nil {
		return day
	}
	return t.Format("02/01/2006")
}

// ShortDay renders a YYYY-MM-DD day as DD/MM for chart axes.
func ShortDay(day string) string {
	t, err := domain.ParseDay(day)
	if err != nil {
		return day
	}
	return t.Format("02/01")
}

// DayLabel prefixes today's date with "Hoje".
func DayLabel(day string, now time.Time) string {
	if day == domain.LocalDay(now) {
		return "Hoje, " + FormatDay(day)
	}
	return FormatDay(day)
}

// TaskPreview lists the first few tasks of an entry followed by
// "+N outras" when there are more.
func TaskPreview(tasks []string) string {
	if len(tasks) <= TaskPreviewLimit {
		return strings.Join(tasks, ", ")
	}
	shown := strings.Join(tasks[:TaskPreviewLimit], ", ")
	return shown + Dim(fmt.Sprintf(" +%d outras", len(tasks)-TaskPreviewLimit))
}

// TaskCount renders "N tarefa(s)".
func TaskCount(n int) string {
	if n == 1 {
		return "1 tarefa"
	}
	return fmt.Sprintf("%d tarefas", n)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to at most max runes, ending in an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
