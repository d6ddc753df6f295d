package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/renato-web/Profluxo/internal/cli/formatter"
	"github.com/renato-web/Profluxo/internal/service"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the activities of your job title and the current selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Controller.AvailableTasks()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChecklist(tasks, app.Controller.Draft()))
			return nil
		},
	}
}

func newPickCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Select activities with an interactive checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("pick needs a terminal; use `profluxo toggle N` instead")
			}
			ctrl := app.Controller
			tasks, err := ctrl.AvailableTasks()
			if err != nil {
				return err
			}
			current := ctrl.Draft().Tasks
			selected := append([]string(nil), current...)
			if err := taskPickerForm(tasks, &selected).RunWithContext(cmd.Context()); err != nil {
				return err
			}
			for _, t := range selectionToggles(tasks, current, selected) {
				if _, err := ctrl.ToggleTask(t); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChecklist(tasks, ctrl.Draft()))
			return nil
		},
	}
}

// resolveTasks maps each argument to a catalog task, by checklist number or
// exact name. When any argument does not resolve, the arguments are taken
// as the words of a single unquoted task name.
func resolveTasks(tasks []string, args []string) []string {
	picks := make([]string, 0, len(args))
	for _, arg := range args {
		task, ok := resolveTask(tasks, arg)
		if !ok {
			return []string{strings.Join(args, " ")}
		}
		picks = append(picks, task)
	}
	return picks
}

// resolveTask maps a 1-based checklist number or an exact name to a task.
func resolveTask(tasks []string, arg string) (string, bool) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(tasks) {
			return tasks[n-1], true
		}
		return "", false
	}
	return arg, slices.Contains(tasks, arg)
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle TASK|N...",
		Short: "Check or uncheck activities by checklist number or by name",
		Long: `Check or uncheck activities.

Numbers refer to the list printed by "profluxo tasks". Each argument is a
list number or a full activity name; unquoted words are joined into one name:

  profluxo toggle 1 3
  profluxo toggle 2 "Correção de bugs no front-end"
  profluxo toggle Correção de bugs no front-end`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.Controller
			tasks, err := ctrl.AvailableTasks()
			if err != nil {
				return err
			}

			for _, task := range resolveTasks(tasks, args) {
				selected, err := ctrl.ToggleTask(task)
				if err != nil {
					return err
				}
				mark := formatter.Dim("[ ]")
				if selected {
					mark = formatter.StyleGreen.Render("[x]")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, task)
			}
			return nil
		},
	}
}

func newDateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "date [YYYY-MM-DD]",
		Short: "Show or set the date of the record being filled",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.Controller
			if len(args) == 1 {
				if err := ctrl.SetDate(args[0]); err != nil {
					return err
				}
			} else if ctrl.Session() == nil {
				return service.ErrNoSession
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Dim("Data do registro:"),
				formatter.DayLabel(ctrl.Draft().Date, ctrl.Now()))
			return nil
		},
	}
}

func newSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Save the selected activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.report(cmd, app.submit(cmd))
		},
	}
}

func (a *App) submit(cmd *cobra.Command) error {
	ctrl := a.Controller
	entry, err := ctrl.Submit(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.Success("Registro Recebido!"))
	fmt.Fprintln(out, formatter.SubmitConfirmation(len(entry.Tasks)))
	if recent, err := ctrl.RecentOwn(service.DefaultRecentLimit); err == nil {
		fmt.Fprintln(out)
		fmt.Fprint(out, formatter.FormatRecentOwn(recent, ctrl.Now()))
	}
	fmt.Fprintln(out, formatter.Dim("Use `profluxo new` para fazer um novo registro."))
	return nil
}

func newLogCmd(app *App) *cobra.Command {
	var tasks []string
	var date string

	cmd := &cobra.Command{
		Use:   "log --task TASK|N [--task ...] [--date YYYY-MM-DD]",
		Short: "Select activities and submit in one step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.Controller
			if ctrl.Phase() == service.PhaseSubmitted {
				if err := ctrl.NewRecord(); err != nil {
					return err
				}
			}
			available, err := ctrl.AvailableTasks()
			if err != nil {
				return err
			}
			if date != "" {
				if err := ctrl.SetDate(date); err != nil {
					return err
				}
			}
			draft := ctrl.Draft()
			for _, t := range tasks {
				task, ok := resolveTask(available, t)
				if !ok {
					task = t
				}
				if draft.Has(task) {
					continue
				}
				if _, err := ctrl.ToggleTask(task); err != nil {
					return err
				}
				draft = ctrl.Draft()
			}
			return app.report(cmd, app.submit(cmd))
		},
	}

	cmd.Flags().StringArrayVar(&tasks, "task", nil, "Activity name or checklist number (repeatable)")
	cmd.Flags().StringVar(&date, "date", "", "Record date (YYYY-MM-DD, defaults to today)")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newNewRecordCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start another record after submitting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Controller.NewRecord(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Novo registro iniciado. Selecione as atividades com `profluxo tasks`."))
			return nil
		},
	}
}

func newMineCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Show your most recent records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.Controller
			if ctrl.Session() == nil {
				return service.ErrNoSession
			}
			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return app.report(cmd, err)
			}
			recent, err := ctrl.RecentOwn(limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecentOwn(recent, ctrl.Now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultRecentLimit, "Number of records to show")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Permanently delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.Controller
			ctx := cmd.Context()
			if ctrl.Session() == nil {
				return service.ErrNoSession
			}
			if err := ctrl.Refresh(ctx); err != nil {
				return app.report(cmd, err)
			}

			deleted, err := ctrl.DeleteEntry(ctx, args[0], app.confirmer(cmd, yes))
			if err != nil {
				return app.report(cmd, err)
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Exclusão cancelada."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Registro "+args[0]+" excluído."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirmer picks how a destructive action is confirmed.
func (a *App) confirmer(cmd *cobra.Command, yes bool) service.Confirmer {
	switch {
	case yes:
		return service.AlwaysConfirm
	case a.interactive():
		return formConfirmer()
	default:
		return lineConfirmer(a.In, cmd.OutOrStdout())
	}
}
