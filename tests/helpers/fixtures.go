package helpers

import (
	"github.com/lexdraft/petition-orchestrator/internal/wizard"
)

// TestUser represents a lawyer login fixture
type TestUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TestClient represents a client fixture
type TestClient struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
}

// Default test fixtures
var (
	DefaultTestUser = TestUser{
		Email:    "advogada@example.com",
		Password: "test-password-123",
	}

	DefaultTestClient = TestClient{
		Name:     "Maria Souza",
		Document: "123.456.789-00",
		Email:    "maria@example.com",
	}
)

// ReadyWizardState returns a wizard state complete enough to start a
// generation session (completeness above the threshold).
func ReadyWizardState() wizard.State {
	s := wizard.NewState()
	s = wizard.ToggleClient(s, wizard.Client{ID: "client-1", Name: DefaultTestClient.Name})
	s = wizard.SetLegalArea(s, "Direito Civil")
	s = wizard.SetPieceType(s, wizard.PieceType{Name: "Petição Inicial", Description: "Peça que inicia o processo"})
	s = wizard.SetFacts(s, "O réu deixou de pagar três parcelas do contrato de locação firmado em 2024.")
	s = wizard.SetProcessNumber(s, "0001234-56.2026.8.26.0100")
	s = wizard.SetJurisdiction(s, "São Paulo/SP")
	s = wizard.ToggleThesis(s, "Inadimplemento contratual")
	s = wizard.ToggleJurisprudence(s, "STJ, REsp 1.234.567/SP")
	return s
}

// SamplePetitionText is raw generator output used by formatter-related tests.
const SamplePetitionText = `EXCELENTÍSSIMO SENHOR DOUTOR JUIZ DE DIREITO DA VARA CÍVEL DA COMARCA DE SÃO PAULO

AÇÃO DE COBRANÇA

I - DOS FATOS

O autor firmou com o réu contrato de locação em janeiro de 2024.

> "A parte que descumprir o contrato responderá por perdas e danos."

II - DO DIREITO

Aplica-se ao caso o artigo 389 do Código Civil.

DOS PEDIDOS

Requer a condenação do réu ao pagamento das parcelas vencidas.`
