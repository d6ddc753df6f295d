package formatter

import (
	"errors"
	"strings"

	"github.com/renato-web/Profluxo/internal/repository"
)

// FormatRemediation explains a schema or permission failure and shows the
// SQL that fixes it.
func FormatRemediation(err error, repairSQL string) string {
	var b strings.Builder
	switch {
	case errors.Is(err, repository.ErrPermissionDenied):
		b.WriteString(StyleRed.Render("Atualização de Permissões") + "\n")
		b.WriteString("Para usar a função de " + Bold("Excluir") +
			", precisamos atualizar as regras de segurança do seu banco de dados.\n")
	default:
		b.WriteString(StyleRed.Render("Erro de Conexão com Banco de Dados") + "\n")
		b.WriteString("A tabela de registros não existe ou está incompleta.\n")
	}
	b.WriteString(Dim(err.Error()) + "\n\n")
	b.WriteString("Copie o código abaixo e execute no SQL Editor, ou rode " +
		Bold("profluxo schema --apply") + " com o backend postgres.\n\n")
	b.WriteString(Header("Código SQL de Atualização") + "\n")
	b.WriteString(strings.TrimSpace(repairSQL) + "\n")
	return b.String()
}

// FormatNotConfigured is shown when the REST backend has placeholder credentials.
func FormatNotConfigured() string {
	return StyleRed.Render("Ajuste de Segurança Necessário") + "\n" +
		"A chave de conexão inserida parece incorreta.\n" +
		Dim("Defina PROFLUXO_REST_URL e PROFLUXO_REST_KEY no ambiente ou no arquivo .env.") + "\n"
}
