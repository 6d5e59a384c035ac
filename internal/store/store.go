package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lexdraft/petition-orchestrator/internal/models"
)

// Store handles all database access for clients, documents, templates and
// office settings.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// NormalizeClientName resolves legacy payloads that carried the client name
// under an alternate key. The canonical field wins when both are present;
// normalization happens once here, at the ingestion boundary.
func NormalizeClientName(name, legacyName string) string {
	if strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(legacyName)
}

// CreateClient inserts a client record and returns its id.
func (s *Store) CreateClient(ctx context.Context, ownerID uuid.UUID, c models.ClientRecord) (uuid.UUID, error) {
	var clientID uuid.UUID

	err := s.pool.QueryRow(ctx,
		`INSERT INTO clients (owner_id, name, document, email, phone, address)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		ownerID, c.Name, c.Document, c.Email, c.Phone, c.Address,
	).Scan(&clientID)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create client: %w", err)
	}

	return clientID, nil
}

// GetClient retrieves one client owned by the user.
func (s *Store) GetClient(ctx context.Context, clientID, ownerID uuid.UUID) (*models.ClientRecord, error) {
	var c models.ClientRecord

	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, document, email, phone, address, created_at, updated_at
		FROM clients
		WHERE id = $1 AND owner_id = $2
	`, clientID, ownerID).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Document, &c.Email, &c.Phone, &c.Address,
		&c.CreatedAt, &c.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("client not found")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &c, nil
}

// ListClients retrieves all clients owned by the user, newest first.
func (s *Store) ListClients(ctx context.Context, ownerID uuid.UUID) ([]*models.ClientRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, name, document, email, phone, address, created_at, updated_at
		FROM clients
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)

	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.ClientRecord
	for rows.Next() {
		var c models.ClientRecord
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Name, &c.Document, &c.Email, &c.Phone, &c.Address,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// UpdateClient updates the mutable fields of a client record.
func (s *Store) UpdateClient(ctx context.Context, clientID, ownerID uuid.UUID, c models.ClientRecord) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE clients
		SET name = $1, document = $2, email = $3, phone = $4, address = $5, updated_at = NOW()
		WHERE id = $6 AND owner_id = $7
	`, c.Name, c.Document, c.Email, c.Phone, c.Address, clientID, ownerID)

	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}

// DeleteClient removes a client record. Adverse parties attached to the
// client are removed by cascade.
func (s *Store) DeleteClient(ctx context.Context, clientID, ownerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM clients WHERE id = $1 AND owner_id = $2`,
		clientID, ownerID,
	)

	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}

// AddAdverseParty attaches an opposing party to a client's case file and
// returns its id. Duplicate entries are allowed.
func (s *Store) AddAdverseParty(ctx context.Context, clientID, ownerID uuid.UUID, p models.AdversePartyRecord) (uuid.UUID, error) {
	var partyID uuid.UUID

	err := s.pool.QueryRow(ctx,
		`INSERT INTO adverse_parties (client_id, owner_id, name, document, address)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		clientID, ownerID, p.Name, p.Document, p.Address,
	).Scan(&partyID)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to add adverse party: %w", err)
	}

	return partyID, nil
}

// ListAdverseParties retrieves the opposing parties recorded for a client,
// oldest first.
func (s *Store) ListAdverseParties(ctx context.Context, clientID, ownerID uuid.UUID) ([]*models.AdversePartyRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, client_id, owner_id, name, document, address, created_at
		FROM adverse_parties
		WHERE client_id = $1 AND owner_id = $2
		ORDER BY created_at
	`, clientID, ownerID)

	if err != nil {
		return nil, fmt.Errorf("failed to query adverse parties: %w", err)
	}
	defer rows.Close()

	var parties []*models.AdversePartyRecord
	for rows.Next() {
		var p models.AdversePartyRecord
		err := rows.Scan(&p.ID, &p.ClientID, &p.OwnerID, &p.Name, &p.Document, &p.Address, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adverse party: %w", err)
		}
		parties = append(parties, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adverse parties: %w", err)
	}

	return parties, nil
}

// DeleteAdverseParty removes one opposing-party record from a client.
func (s *Store) DeleteAdverseParty(ctx context.Context, partyID, clientID, ownerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM adverse_parties WHERE id = $1 AND client_id = $2 AND owner_id = $3`,
		partyID, clientID, ownerID,
	)

	if err != nil {
		return fmt.Errorf("failed to delete adverse party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("adverse party not found")
	}

	return nil
}
