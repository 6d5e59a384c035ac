package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdraft/petition-orchestrator/internal/wizard"
)

func TestBuild_Deterministic(t *testing.T) {
	s := sampleState()
	assert.Equal(t, Build(s), Build(s))
}

func TestBuild_SectionOrderFixed(t *testing.T) {
	out := Build(sampleState())

	sections := []string{
		"ÁREA DO DIREITO:",
		"TIPO DE PEÇA:",
		"PARTES REPRESENTADAS:",
		"DOS FATOS:",
		"PEDIDOS ESPECÍFICOS:",
		"DADOS PROCESSUAIS:",
		"TÓPICOS A ABORDAR:",
		"TESES JURÍDICAS:",
		"JURISPRUDÊNCIAS:",
		"PARTES ADVERSAS:",
	}

	last := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}
}

func TestBuild_EmptyFieldsRenderPlaceholder(t *testing.T) {
	out := Build(wizard.NewState())

	// Every section must still be present, carrying the placeholder instead
	// of being omitted.
	assert.Contains(t, out, "DOS FATOS:\nNão informado")
	assert.Contains(t, out, "Número do processo: Não informado")
	assert.Contains(t, out, "TESES JURÍDICAS:\nNão informado")
	assert.Contains(t, out, "PARTES ADVERSAS:\nNão informado")
}

func TestBuild_ClientsCarrySides(t *testing.T) {
	s := wizard.ToggleClient(wizard.NewState(), wizard.Client{ID: "a", Name: "Ana Souza"})
	s = wizard.ToggleClient(s, wizard.Client{ID: "b", Name: "Bruno Lima"})
	s = wizard.SetClientSide(s, "b", wizard.SideDefendant)

	out := Build(s)

	assert.Contains(t, out, "1. Ana Souza (autor)")
	assert.Contains(t, out, "2. Bruno Lima (réu)")
}

func TestBuild_NoEscaping(t *testing.T) {
	s := wizard.SetFacts(wizard.NewState(), `o contrato previa <multa> de 10% & "juros"`)
	assert.Contains(t, Build(s), `o contrato previa <multa> de 10% & "juros"`)
}

func sampleState() wizard.State {
	s := wizard.NewState()
	s = wizard.ToggleClient(s, wizard.Client{ID: "c1", Name: "João da Silva"})
	s = wizard.SetLegalArea(s, "Direito do Consumidor")
	s = wizard.SetPieceType(s, wizard.PieceType{Name: "Petição Inicial", Description: "Peça inaugural"})
	s = wizard.SetFacts(s, "O produto apresentou defeito na primeira semana de uso.")
	s = wizard.SetSpecificRequests(s, "Restituição em dobro do valor pago.")
	s = wizard.SetProcessNumber(s, "0001234-56.2026.8.26.0100")
	s = wizard.ToggleTopic(s, "vício do produto")
	s = wizard.ToggleThesis(s, "Inversão do ônus da prova")
	s = wizard.ToggleJurisprudence(s, "STJ, REsp 1.234.567/SP")
	s = wizard.AddAdverseParty(s, wizard.AdverseParty{Name: "Loja Exemplo Ltda"})
	return s
}
