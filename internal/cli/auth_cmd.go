package cli

import (
	"fmt"
	"strings"

	"github.com/renato-web/Profluxo/internal/cli/formatter"
	"github.com/renato-web/Profluxo/internal/config"
	"github.com/renato-web/Profluxo/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login [manager | collaborator NAME | NAME]",
		Short: "Start a session as a collaborator or as management",
		Long: `Start a session.

  profluxo login                      interactive form
  profluxo login collaborator Renato  log tasks as Renato
  profluxo login Renato               same as above
  profluxo login manager              asks for the management password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl := app.Controller

			if len(args) == 0 {
				if !app.interactive() {
					return fmt.Errorf("login: pass `manager` or a collaborator name")
				}
				var choice loginChoice
				if err := loginForm(ctrl.Catalog(), &choice).RunWithContext(ctx); err != nil {
					return err
				}
				args = []string{string(choice.Role), choice.Name}
				if choice.Role == domain.RoleManager {
					args = []string{"manager"}
					password = choice.Password
				}
			}

			role, err := domain.ParseUserRole(args[0])
			if err != nil {
				// A bare name is a collaborator login.
				role, args = domain.RoleCollaborator, append([]string{"collaborator"}, args...)
			}

			switch role {
			case domain.RoleManager:
				if password == "" {
					fmt.Fprint(cmd.OutOrStdout(), "Senha de Acesso: ")
					line, _ := readPromptLine(app.In)
					fmt.Fprintln(cmd.OutOrStdout())
					password = strings.TrimSpace(line)
				}
				err = ctrl.LoginManager(ctx, password)
			default:
				name := strings.TrimSpace(strings.Join(args[1:], " "))
				if name == "" {
					return fmt.Errorf("login: collaborator name is required")
				}
				err = ctrl.LoginCollaborator(ctx, name)
			}
			if err != nil {
				return err
			}

			sess := ctrl.Session()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Bem-vindo(a), "+sess.Name+"!"))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWhoAmI(sess, ctrl.Draft(), ctrl.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Management password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Controller.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Sessão encerrada."))
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session and draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := app.Controller
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWhoAmI(ctrl.Session(), ctrl.Draft(), ctrl.Now()))
			return nil
		},
	}
}

func newHashPasswordCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [PASSWORD]",
		Short: "Print a bcrypt hash for PROFLUXO_MANAGER_PASSWORD_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, _ := readPromptLine(app.In)
				password = strings.TrimSpace(line)
			}
			if password == "" {
				return fmt.Errorf("hash-password: password is empty")
			}
			hash, err := config.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
