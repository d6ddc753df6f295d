package cli

import (
	"context"
	"io"

	"github.com/renato-web/Profluxo/internal/service"
	"github.com/renato-web/Profluxo/internal/summary"
	"github.com/spf13/cobra"
)

// App holds everything the commands act on.
type App struct {
	Controller *service.Controller
	Summary    summary.Service

	// RepairSQL creates the table and its access policies. It is printed by
	// `schema` and whenever a store error calls for remediation.
	RepairSQL string
	// ApplyRepair executes RepairSQL. It is nil for backends that cannot
	// run DDL from the client.
	ApplyRepair func(ctx context.Context) error

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// dashboard TUI only run when it returns true.
	IsInteractive func() bool
	// In is where typed answers are read from when no form is shown.
	In io.Reader
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "profluxo" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "profluxo",
		Short:         "Registro diário de atividades e painel de produtividade",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newTasksCmd(app),
		newPickCmd(app),
		newToggleCmd(app),
		newDateCmd(app),
		newSubmitCmd(app),
		newLogCmd(app),
		newNewRecordCmd(app),
		newMineCmd(app),
		newDeleteCmd(app),
		newDashboardCmd(app),
		newSummaryCmd(app),
		newTUICmd(app),
		newSchemaCmd(app),
		newHashPasswordCmd(app),
	)

	return root
}
