package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/renato-web/Profluxo/internal/analytics"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"

	// maxLabelWidth caps the label column of a bar chart.
	maxLabelWidth = 24
)

// RenderBar renders value as a bar of width cells scaled against total.
// A non-zero value always fills at least one cell.
func RenderBar(value, total, width int, style lipgloss.Style) string {
	if width < 2 {
		width = 2
	}
	filled := 0
	if total > 0 && value > 0 {
		filled = value * width / total
		filled = min(max(filled, 1), width)
	}
	return style.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}

// RenderBarChart draws one horizontal bar per point, scaled to the largest
// value. Points are drawn in the order given.
func RenderBarChart(points []analytics.Point, width int, label func(string) string) string {
	if len(points) == 0 {
		return Dim("Sem dados para o período.") + "\n"
	}
	if label == nil {
		label = func(s string) string { return s }
	}

	peak := 0
	labelWidth := 0
	labels := make([]string, len(points))
	for i, p := range points {
		peak = max(peak, p.Value)
		labels[i] = Truncate(label(p.Name), maxLabelWidth)
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
	}

	var b strings.Builder
	for i, p := range points {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(labels[i]))
		fmt.Fprintf(&b, "%s%s  %s %d\n", labels[i], pad, RenderBar(p.Value, peak, width, SeriesStyle(i)), p.Value)
	}
	return b.String()
}
