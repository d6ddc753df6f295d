package cli

import (
	"errors"
	"fmt"

	"github.com/renato-web/Profluxo/internal/cli/formatter"
	"github.com/renato-web/Profluxo/internal/repository"
	"github.com/renato-web/Profluxo/internal/service"
	"github.com/spf13/cobra"
)

// report prints remediation guidance for store failures on stderr and
// returns err unchanged so the exit status still reflects it.
func (a *App) report(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	w := cmd.ErrOrStderr()
	switch {
	case service.NeedsRemediation(err):
		fmt.Fprintln(w, formatter.FormatRemediation(err, a.RepairSQL))
	case errors.Is(err, repository.ErrNotConfigured):
		fmt.Fprint(w, formatter.FormatNotConfigured())
	}
	return err
}
