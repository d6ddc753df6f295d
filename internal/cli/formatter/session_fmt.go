package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/renato-web/Profluxo/internal/domain"
)

// SubmitConfirmation is the message shown after a successful submission.
func SubmitConfirmation(count int) string {
	return fmt.Sprintf("Suas %d atividades foram salvas com segurança no banco de dados.", count)
}

// FormatWhoAmI describes the active session and, for collaborators, the draft.
func FormatWhoAmI(sess *domain.Session, draft domain.Draft, now time.Time) string {
	if sess == nil {
		return Dim("Nenhuma sessão ativa. Use `profluxo login` para entrar.") + "\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(sess.Name), RoleBadge(sess.Role))
	fmt.Fprintf(&b, "%s %s\n", Dim("Função:"), sess.Job)
	if sess.IsManager() {
		return b.String()
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Data do registro:"), DayLabel(draft.Date, now))
	status := StyleYellow.Render(fmt.Sprintf("%s selecionada(s)", TaskCount(len(draft.Tasks))))
	if draft.Submitted {
		status = Success("Registro Recebido!")
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Situação:"), status)
	return b.String()
}

// FormatChecklist numbers the catalog tasks and marks the selected ones.
// The numbers are what `profluxo toggle N` accepts.
func FormatChecklist(tasks []string, draft domain.Draft) string {
	var b strings.Builder
	b.WriteString(Header("Selecione as atividades realizadas:") + "\n")
	for i, t := range tasks {
		mark := Dim("[ ]")
		name := t
		if draft.Has(t) {
			mark = StyleGreen.Render("[x]")
			name = Bold(t)
		}
		fmt.Fprintf(&b, "%2d %s %s\n", i+1, mark, name)
	}
	return b.String()
}

// FormatRecentOwn renders "Meus Registros Recentes".
func FormatRecentOwn(logs []domain.TaskLog, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Meus Registros Recentes") + "\n")
	if len(logs) == 0 {
		b.WriteString(Dim("Nenhum registro encontrado.") + "\n")
		return b.String()
	}
	for _, l := range logs {
		fmt.Fprintf(&b, "%s  %s  %s\n", TruncID(l.ID), StyleBlue.Render(DayLabel(l.Date, now)), TaskCount(l.TaskCount()))
		fmt.Fprintf(&b, "    %s\n", TaskPreview(l.Tasks))
	}
	return b.String()
}
