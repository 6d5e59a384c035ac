package wizard

// Side tags which side of the dispute a selected client is on.
type Side string

const (
	SidePlaintiff Side = "plaintiff"
	SideDefendant Side = "defendant"
)

// Client is a contact selected into the petition being drafted.
type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AdverseParty is a free-form opposing-party record. Duplicates are
// permitted; the same party may appear in more than one role.
type AdverseParty struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Address  string `json:"address"`
}

// PieceType identifies the kind of legal document being drafted, scoped
// under the selected legal area. The zero value means "not chosen".
type PieceType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// State is the single aggregate driving one petition-drafting session.
// It is mutated exclusively through the action functions in this package,
// every one of which takes the current State and returns the next one.
type State struct {
	CurrentStep int `json:"current_step"`

	SelectedClients []Client        `json:"selected_clients"`
	PartySides      map[string]Side `json:"party_sides"`
	AdverseParties  []AdverseParty  `json:"adverse_parties"`

	LegalArea string    `json:"legal_area"`
	PieceType PieceType `json:"piece_type"`

	Facts            string `json:"facts"`
	SpecificRequests string `json:"specific_requests"`

	Topics         []string `json:"topics"`
	Theses         []string `json:"theses"`
	Jurisprudences []string `json:"jurisprudences"`

	ProcessNumber string `json:"process_number"`
	CourtDivision string `json:"court_division"`
	Jurisdiction  string `json:"jurisdiction"`
	CauseValue    string `json:"cause_value"`

	GeneratedText string `json:"generated_text"`

	// Ephemeral generation-session state, reset at the start of each attempt.
	IsGenerating bool     `json:"is_generating"`
	Progress     int      `json:"progress"`
	Logs         []string `json:"logs"`

	// Advisory AI output, repopulated per analysis call.
	AISuggestedTheses         []string `json:"ai_suggested_theses"`
	AISuggestedJurisprudences []string `json:"ai_suggested_jurisprudences"`
}

// NewState returns the empty session state positioned on the first step.
func NewState() State {
	return State{}
}

// HasPieceType reports whether a piece type has been chosen.
func (s State) HasPieceType() bool {
	return s.PieceType.Name != ""
}
