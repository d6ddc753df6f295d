package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWrap = 80

// RenderMarkdown renders the narrative summary for the terminal. When styled
// is false the output carries no ANSI sequences. Rendering failures fall back
// to the raw text.
func RenderMarkdown(md string, width int, styled bool) string {
	if width <= 0 {
		width = defaultWrap
	}
	style := glamour.WithStylePath("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// FormatSummary frames the rendered summary with its title and model.
func FormatSummary(body, model string, fallback bool) string {
	var b strings.Builder
	b.WriteString(Header("Relatório de Inteligência (Consultor Virtual)") + "\n")
	b.WriteString(strings.TrimRight(body, "\n") + "\n")
	if fallback {
		b.WriteString(Dim("(resposta padrão: consultor indisponível)") + "\n")
	} else if model != "" {
		b.WriteString(Dim("modelo: "+model) + "\n")
	}
	return b.String()
}
