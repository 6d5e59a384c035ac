// Package prompt serializes a wizard state into the natural-language prompt
// consumed by the AI text-generation collaborator. Assembly is deterministic:
// a fixed section order with explicit placeholders for missing data, so the
// downstream model always sees the same document shape. No escaping happens
// here; the consumer is a language model, not a markup renderer.
package prompt

import (
	"fmt"
	"strings"

	"github.com/lexdraft/petition-orchestrator/internal/wizard"
)

// Placeholder rendered for empty fields so every section is always present.
const notInformed = "Não informado"

var sideLabels = map[wizard.Side]string{
	wizard.SidePlaintiff: "autor",
	wizard.SideDefendant: "réu",
}

// Build assembles the generation prompt from the session state.
func Build(s wizard.State) string {
	var sb strings.Builder

	sb.WriteString("Elabore uma peça jurídica completa e formal em português, pronta para protocolo.\n\n")

	sb.WriteString("ÁREA DO DIREITO: ")
	sb.WriteString(orPlaceholder(s.LegalArea))
	sb.WriteString("\nTIPO DE PEÇA: ")
	if s.HasPieceType() {
		sb.WriteString(s.PieceType.Name)
		if s.PieceType.Description != "" {
			sb.WriteString(" (")
			sb.WriteString(s.PieceType.Description)
			sb.WriteString(")")
		}
	} else {
		sb.WriteString(notInformed)
	}
	sb.WriteString("\n\n")

	sb.WriteString("PARTES REPRESENTADAS:\n")
	if len(s.SelectedClients) == 0 {
		sb.WriteString(notInformed + "\n")
	}
	for i, c := range s.SelectedClients {
		label := sideLabels[s.PartySides[c.ID]]
		if label == "" {
			label = sideLabels[wizard.SidePlaintiff]
		}
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, c.Name, label)
	}
	sb.WriteString("\n")

	writeSection(&sb, "DOS FATOS:", s.Facts)
	writeSection(&sb, "PEDIDOS ESPECÍFICOS:", s.SpecificRequests)

	sb.WriteString("DADOS PROCESSUAIS:\n")
	fmt.Fprintf(&sb, "Número do processo: %s\n", orPlaceholder(s.ProcessNumber))
	fmt.Fprintf(&sb, "Vara: %s\n", orPlaceholder(s.CourtDivision))
	fmt.Fprintf(&sb, "Comarca: %s\n", orPlaceholder(s.Jurisdiction))
	fmt.Fprintf(&sb, "Valor da causa: %s\n\n", orPlaceholder(s.CauseValue))

	writeList(&sb, "TÓPICOS A ABORDAR:", s.Topics)
	writeList(&sb, "TESES JURÍDICAS:", s.Theses)
	writeList(&sb, "JURISPRUDÊNCIAS:", s.Jurisprudences)

	sb.WriteString("PARTES ADVERSAS:\n")
	if len(s.AdverseParties) == 0 {
		sb.WriteString(notInformed + "\n")
	}
	for i, p := range s.AdverseParties {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p.Name)
	}

	return sb.String()
}

func writeSection(sb *strings.Builder, title, body string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(orPlaceholder(strings.TrimSpace(body)))
	sb.WriteString("\n\n")
}

func writeList(sb *strings.Builder, title string, items []string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	if len(items) == 0 {
		sb.WriteString(notInformed + "\n")
	}
	for i, item := range items {
		fmt.Fprintf(sb, "%d. %s\n", i+1, item)
	}
	sb.WriteString("\n")
}

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return notInformed
	}
	return v
}
