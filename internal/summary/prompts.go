package summary

import "fmt"

const systemInstruction = "Você é um Consultor de Produtividade Sênior especialista em análise de KPIs corporativos."

const (
	// FallbackEmpty is shown when the model answers with no text.
	FallbackEmpty = "Não foi possível gerar a análise."
	// FallbackUnavailable is shown when the model cannot be reached.
	FallbackUnavailable = "O Consultor Virtual está indisponível no momento. Por favor, tente novamente mais tarde."
)

const promptTemplate = `Analise os seguintes dados de produtividade de uma equipe (formato JSON simplificado).

Dados:
%s (Amostra recente)

Forneça:
1. Análise de volume de trabalho.
2. Identificação de gargalos por cargo.
3. Uma sugestão estratégica de melhoria.

Responda em Português do Brasil, formato Markdown.`

func buildPrompt(sampleJSON []byte) string {
	return fmt.Sprintf(promptTemplate, sampleJSON)
}
