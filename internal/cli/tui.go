package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/renato-web/Profluxo/internal/analytics"
	"github.com/renato-web/Profluxo/internal/cli/formatter"
	"github.com/renato-web/Profluxo/internal/service"
	"github.com/renato-web/Profluxo/internal/summary"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive management dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Controller.Dashboard(analytics.DefaultParams()); err != nil {
				return err
			}
			if !app.interactive() {
				return fmt.Errorf("tui needs a terminal; use `profluxo dashboard` instead")
			}
			p := tea.NewProgram(newDashboardModel(app), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

// refreshedMsg reports the end of a store read.
type refreshedMsg struct{ err error }

// summaryMsg carries the consultant's answer.
type summaryMsg struct{ summary *summary.Summary }

// ── model ────────────────────────────────────────────────────────────────────

type dashboardKeys struct {
	Period  key.Binding
	Sort    key.Binding
	View    key.Binding
	Refresh key.Binding
	Summary key.Binding
	Quit    key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Period:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "hoje/tudo")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "ordem")),
		View:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "gráficos/planilha")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "atualizar")),
		Summary: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "análise IA")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "sair")),
	}
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Period, k.Sort, k.View, k.Refresh, k.Summary, k.Quit}
}

// dashboardModel is the manager's live dashboard. Filters and layout are
// re-derived locally; only refresh and the narrative summary do I/O.
type dashboardModel struct {
	app  *App
	keys dashboardKeys

	params analytics.Params
	layout viewMode
	data   analytics.View
	err    error

	refreshing  bool
	summarizing bool
	summary     *summary.Summary

	spinner spinner.Model
	width   int
}

func newDashboardModel(app *App) *dashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return &dashboardModel{
		app:     app,
		keys:    newDashboardKeys(),
		params:  analytics.DefaultParams(),
		layout:  viewCharts,
		spinner: sp,
		width:   100,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	m.refreshing = true
	m.rebuild()
	return tea.Batch(m.spinner.Tick, m.refresh())
}

func (m *dashboardModel) refresh() tea.Cmd {
	ctrl := m.app.Controller
	return func() tea.Msg {
		return refreshedMsg{err: ctrl.Refresh(context.Background())}
	}
}

func (m *dashboardModel) summarize() tea.Cmd {
	svc := m.app.Summary
	logs := m.data.Filtered
	return func() tea.Msg {
		if svc == nil {
			return summaryMsg{summary: &summary.Summary{Text: summary.FallbackUnavailable, Fallback: true}}
		}
		return summaryMsg{summary: svc.RequestNarrativeSummary(context.Background(), logs)}
	}
}

// rebuild re-derives the view from the controller's last successful read.
func (m *dashboardModel) rebuild() {
	v, err := m.app.Controller.Dashboard(m.params)
	if err != nil {
		m.err = err
		return
	}
	m.data = v
}

func (m *dashboardModel) busy() bool { return m.refreshing || m.summarizing }

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshedMsg:
		m.refreshing = false
		m.err = msg.err
		m.rebuild()
		return m, nil

	case summaryMsg:
		m.summarizing = false
		m.summary = msg.summary
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Period):
		m.params.Period = m.params.Period.Toggle()
		m.rebuild()
	case key.Matches(msg, m.keys.Sort):
		m.params.Order = m.params.Order.Toggle()
		m.rebuild()
	case key.Matches(msg, m.keys.View):
		m.layout = m.layout.toggle()
	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, tea.Batch(m.spinner.Tick, m.refresh())
	case key.Matches(msg, m.keys.Summary):
		if m.summarizing {
			return m, nil
		}
		m.summarizing = true
		return m, tea.Batch(m.spinner.Tick, m.summarize())
	}
	return m, nil
}

func (m *dashboardModel) View() string {
	var b strings.Builder
	now := m.app.Controller.Now()

	b.WriteString(formatter.FormatDashboardHeader(m.data))
	if m.refreshing {
		b.WriteString("  " + m.spinner.View() + formatter.Dim(" atualizando..."))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.renderError() + "\n")
	}

	b.WriteString(formatter.FormatKPIs(m.data) + "\n\n")

	switch {
	case m.summarizing:
		b.WriteString(m.spinner.View() + " " + formatter.Dim("Analisando...") + "\n\n")
	case m.summary != nil:
		body := formatter.RenderMarkdown(m.summary.Text, max(m.width-4, 40), false)
		b.WriteString(formatter.FormatSummary(body, m.summary.Model, m.summary.Fallback) + "\n")
	}

	if m.layout == viewTable {
		b.WriteString(formatter.Header("Registros Detalhados") + "\n")
		b.WriteString(formatter.FormatEntriesTable(m.data.Table, now))
	} else {
		b.WriteString(formatter.FormatCharts(m.data, chartWidth))
	}

	b.WriteString("\n" + m.renderStatusBar())
	return b.String()
}

func (m *dashboardModel) renderError() string {
	if service.NeedsRemediation(m.err) {
		return formatter.FormatRemediation(m.err, m.app.RepairSQL)
	}
	return formatter.StyleRed.Render("Erro de Conexão com Banco de Dados") + "\n" + formatter.Dim(m.err.Error())
}

func (m *dashboardModel) renderStatusBar() string {
	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		hint := b.Help().Key + ": " + b.Help().Desc
		if b.Help().Key == "a" && m.summarizing {
			hint += " (aguarde)"
		}
		hints = append(hints, formatter.Dim(hint))
	}
	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", max(m.width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
