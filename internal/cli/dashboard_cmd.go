package cli

import (
	"fmt"

	"github.com/renato-web/Profluxo/internal/analytics"
	"github.com/renato-web/Profluxo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const chartWidth = 30

func newDashboardCmd(app *App) *cobra.Command {
	params := analytics.DefaultParams()
	view := viewCharts

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the management dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.Controller
			// Role check before touching the store.
			if _, err := ctrl.Dashboard(params); err != nil {
				return err
			}
			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return app.report(cmd, err)
			}
			v, err := ctrl.Dashboard(params)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(v, view == viewTable, ctrl.Now(), chartWidth))
			return nil
		},
	}

	addDashboardFlags(cmd.Flags(), &params)
	cmd.Flags().Var(viewValue{&view}, "view", "Layout: charts or table")
	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	params := analytics.DefaultParams()

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Ask the virtual consultant for a narrative analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.Controller
			if _, err := ctrl.Dashboard(params); err != nil {
				return err
			}
			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return app.report(cmd, err)
			}
			v, err := ctrl.Dashboard(params)
			if err != nil {
				return err
			}
			if app.Summary == nil {
				return fmt.Errorf("summary: narrative service is not configured")
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Analisando...")
			}
			s := app.Summary.RequestNarrativeSummary(cmd.Context(), v.Filtered)
			stop()

			body := formatter.RenderMarkdown(s.Text, 0, app.interactive())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(body, s.Model, s.Fallback))
			return nil
		},
	}

	cmd.Flags().Var(periodValue{&params.Period}, "period", "Time window: all or today")
	return cmd
}

func newSchemaCmd(app *App) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print, or apply, the SQL that creates the table and its access policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !apply {
				fmt.Fprintln(cmd.OutOrStdout(), app.RepairSQL)
				return nil
			}
			if app.ApplyRepair == nil {
				return fmt.Errorf("schema --apply requires the postgres backend; run the printed SQL in the SQL Editor instead")
			}
			if err := app.ApplyRepair(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Esquema atualizado."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Execute the SQL against the configured postgres database")
	return cmd
}
