package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/renato-web/Profluxo/internal/analytics"
	"github.com/renato-web/Profluxo/internal/domain"
)

const defaultChartWidth = 30

// PeriodLabel returns the dashboard label of a period filter.
func PeriodLabel(p analytics.Period) string {
	if p == analytics.PeriodToday {
		return "Hoje"
	}
	return "Todo o período"
}

// SortLabel returns the table label of a sort order.
func SortLabel(o analytics.SortOrder) string {
	if o == analytics.SortAsc {
		return "Mais antigos"
	}
	return "Mais recentes"
}

// DailyAverage is total tasks divided by the number of distinct days.
func DailyAverage(v analytics.View) float64 {
	if len(v.ByDate) == 0 {
		return 0
	}
	return float64(v.TotalTasks) / float64(len(v.ByDate))
}

// FormatKPIs renders the three headline cards side by side.
func FormatKPIs(v analytics.View) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2).
		MarginRight(1)

	render := func(title, value string, accent lipgloss.Color) string {
		body := Dim(strings.ToUpper(title)) + "\n" +
			lipgloss.NewStyle().Foreground(accent).Bold(true).Render(value)
		return card.BorderLeftForeground(accent).Render(body)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		render("Total de Entregas", fmt.Sprintf("%d", v.TotalTasks), ColorRed),
		render("Média Diária", fmt.Sprintf("%.1f", DailyAverage(v)), ColorYellow),
		render("Colaboradores Ativos", fmt.Sprintf("%d", len(v.ByUser)), ColorBlue),
	)
}

// FormatDashboardHeader renders the title line with the active filters.
func FormatDashboardHeader(v analytics.View) string {
	return Header("Painel de Controle Estratégico") + "\n" +
		Dim(fmt.Sprintf("Período: %s · Ordem: %s · %d registros",
			PeriodLabel(v.Params.Period), SortLabel(v.Params.Order), v.Entries))
}

// FormatCharts renders the daily trend, sector distribution and individual
// ranking as bar charts.
func FormatCharts(v analytics.View, width int) string {
	if width <= 0 {
		width = defaultChartWidth
	}
	var b strings.Builder
	b.WriteString(Header("Evolução Diária") + "\n")
	b.WriteString(RenderBarChart(v.ByDate, width, ShortDay))
	b.WriteString("\n" + Header("Distribuição por Setor") + "\n")
	b.WriteString(RenderBarChart(v.ByRole, width, nil))
	b.WriteString("\n" + Header("Produtividade Individual") + "\n")
	b.WriteString(RenderBarChart(v.ByUser, width, nil))
	return b.String()
}

// FormatEntriesTable renders the detailed records table in the order given.
func FormatEntriesTable(logs []domain.TaskLog, now time.Time) string {
	if len(logs) == 0 {
		return Dim("Nenhum registro encontrado.") + "\n"
	}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			DayLabel(l.Date, now),
			l.User,
			StyleRed.Render(string(l.Role)),
			Bold(fmt.Sprintf("%d Entregas:", l.TaskCount())) + " " + TaskPreview(l.Tasks),
			TruncID(l.ID),
		})
	}
	return RenderTable([]string{"DATA", "COLABORADOR", "FUNÇÃO", "TAREFAS", "ID"}, rows)
}

// FormatDashboard renders the complete dashboard in chart or table layout.
func FormatDashboard(v analytics.View, table bool, now time.Time, width int) string {
	var b strings.Builder
	b.WriteString(FormatDashboardHeader(v) + "\n\n")
	b.WriteString(FormatKPIs(v) + "\n\n")
	if table {
		b.WriteString(Header("Registros Detalhados") + "\n")
		b.WriteString(FormatEntriesTable(v.Table, now))
	} else {
		b.WriteString(FormatCharts(v, width))
	}
	return b.String()
}
