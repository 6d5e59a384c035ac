package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientRecord is a stored client/contact. Name is canonical: any legacy
// payloads carrying an alternate field are normalized once at ingestion, not
// coalesced throughout business logic.
type ClientRecord struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdversePartyRecord is an opposing party attached to a client's case file.
// No uniqueness is enforced; the same party may be recorded more than once.
type AdversePartyRecord struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Document is a generated petition persisted after a successful generation
// session.
type Document struct {
	ID            uuid.UUID         `json:"id"`
	OwnerID       uuid.UUID         `json:"owner_id"`
	Title         string            `json:"title"`
	LegalArea     string            `json:"legal_area"`
	PieceType     string            `json:"piece_type"`
	RawText       string            `json:"raw_text"`
	FormattedHTML string            `json:"formatted_html"`
	Prompt        string            `json:"prompt"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Template is a reusable petition skeleton authored by the office. The body
// is markdown; previews are rendered server-side.
type Template struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	LegalArea   string    `json:"legal_area"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OfficeConfig is the per-user office letterhead configuration applied to
// exported documents.
type OfficeConfig struct {
	OwnerID    uuid.UUID `json:"owner_id"`
	OfficeName string    `json:"office_name"`
	OABNumber  string    `json:"oab_number"`
	Letterhead string    `json:"letterhead"`
	Footer     string    `json:"footer"`
	City       string    `json:"city"`
	UpdatedAt  time.Time `json:"updated_at"`
}
