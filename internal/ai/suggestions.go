package ai

import (
	"context"
	"fmt"
	"strings"
)

// Suggestions is the advisory output of a case analysis call. Contents are
// never authoritative; the wizard replaces them wholesale on each call.
type Suggestions struct {
	Theses         []string `json:"theses"`
	Jurisprudences []string `json:"jurisprudences"`
}

const analysisPromptTemplate = `Analise o caso abaixo e sugira argumentos para a peça.

ÁREA DO DIREITO: %s

FATOS:
%s

Responda exatamente neste formato, uma sugestão por linha iniciada por hífen:
TESES:
- ...
JURISPRUDÊNCIAS:
- ...`

// SuggestTheses asks the generator for thesis and jurisprudence suggestions
// for the given facts. The response is parsed line by line; anything outside
// the two labeled sections is ignored.
func SuggestTheses(ctx context.Context, g TextGenerator, legalArea, facts string) (Suggestions, error) {
	if strings.TrimSpace(facts) == "" {
		return Suggestions{}, fmt.Errorf("facts are required for analysis")
	}

	prompt := fmt.Sprintf(analysisPromptTemplate, legalArea, facts)
	response, err := g.Generate(ctx, prompt)
	if err != nil {
		return Suggestions{}, fmt.Errorf("analysis call failed: %w", err)
	}

	return parseSuggestions(response), nil
}

func parseSuggestions(response string) Suggestions {
	var out Suggestions
	section := ""

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)

		switch {
		case strings.HasPrefix(upper, "TESES"):
			section = "theses"
		case strings.HasPrefix(upper, "JURISPRUD"):
			section = "jurisprudences"
		case strings.HasPrefix(trimmed, "-"):
			item := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
			if item == "" {
				continue
			}
			switch section {
			case "theses":
				out.Theses = append(out.Theses, item)
			case "jurisprudences":
				out.Jurisprudences = append(out.Jurisprudences, item)
			}
		}
	}

	return out
}
