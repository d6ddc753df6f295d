package cli

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/renato-web/Profluxo/internal/cli/formatter"
	"github.com/renato-web/Profluxo/internal/domain"
	"github.com/renato-web/Profluxo/internal/service"
)

// profluxoHuhTheme returns a huh theme using the formatter palette.
func profluxoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// loginChoice is filled in by loginForm.
type loginChoice struct {
	Role     domain.UserRole
	Name     string
	Password string
}

// loginForm asks "Quem é você?" and then either the roster name or the
// manager password, depending on the role picked.
func loginForm(cat *domain.Catalog, choice *loginChoice) *huh.Form {
	people := make([]huh.Option[string], 0, len(cat.Collaborators))
	for _, c := range cat.Collaborators {
		people = append(people, huh.NewOption(c.Name+" · "+string(c.Job), c.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.UserRole]().
				Title("Quem é você?").
				Options(
					huh.NewOption("Acesso do Colaborador", domain.RoleCollaborator),
					huh.NewOption("Diretoria / Gestão", domain.RoleManager),
				).
				Value(&choice.Role),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Escolher...").
				Options(people...).
				Value(&choice.Name),
		).WithHideFunc(func() bool { return choice.Role != domain.RoleCollaborator }),
		huh.NewGroup(
			huh.NewInput().
				Title("Senha de Acesso").
				EchoMode(huh.EchoModePassword).
				Value(&choice.Password),
		).WithHideFunc(func() bool { return choice.Role != domain.RoleManager }),
	).WithTheme(profluxoHuhTheme()).WithShowHelp(false)
}

// taskPickerForm lets a collaborator check tasks from their job's list,
// starting from the current selection.
func taskPickerForm(tasks []string, selected *[]string) *huh.Form {
	options := make([]huh.Option[string], 0, len(tasks))
	for _, t := range tasks {
		options = append(options, huh.NewOption(t, t))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Selecione as atividades realizadas:").
				Options(options...).
				Value(selected),
		),
	).WithTheme(profluxoHuhTheme()).WithShowHelp(false)
}

// formConfirmer asks through a huh confirm dialog.
func formConfirmer() service.Confirmer {
	return service.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		var ok bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(prompt).
					Affirmative("Excluir").
					Negative("Cancelar").
					Value(&ok),
			),
		).WithTheme(profluxoHuhTheme()).WithShowHelp(false)
		if err := form.RunWithContext(ctx); err != nil {
			return false, err
		}
		return ok, nil
	})
}

// selectionToggles returns the tasks whose membership differs between the
// current draft and the wanted selection, in catalog order.
func selectionToggles(catalog, current, wanted []string) []string {
	in := func(list []string, s string) bool {
		for _, x := range list {
			if x == s {
				return true
			}
		}
		return false
	}
	var flips []string
	for _, t := range catalog {
		if in(current, t) != in(wanted, t) {
			flips = append(flips, t)
		}
	}
	return flips
}
