package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lexdraft/petition-orchestrator/internal/models"
)

// SaveDocument persists a generated petition and returns its id.
func (s *Store) SaveDocument(ctx context.Context, doc models.Document) (uuid.UUID, error) {
	var documentID uuid.UUID

	err := s.pool.QueryRow(ctx,
		`INSERT INTO documents (owner_id, title, legal_area, piece_type, raw_text, formatted_html, prompt, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		doc.OwnerID, doc.Title, doc.LegalArea, doc.PieceType,
		doc.RawText, doc.FormattedHTML, doc.Prompt, doc.Metadata,
	).Scan(&documentID)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save document: %w", err)
	}

	return documentID, nil
}

// GetDocument retrieves one document owned by the user.
func (s *Store) GetDocument(ctx context.Context, documentID, ownerID uuid.UUID) (*models.Document, error) {
	var doc models.Document

	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, legal_area, piece_type, raw_text, formatted_html, prompt, metadata, created_at, updated_at
		FROM documents
		WHERE id = $1 AND owner_id = $2
	`, documentID, ownerID).Scan(
		&doc.ID, &doc.OwnerID, &doc.Title, &doc.LegalArea, &doc.PieceType,
		&doc.RawText, &doc.FormattedHTML, &doc.Prompt, &doc.Metadata,
		&doc.CreatedAt, &doc.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("document not found")
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &doc, nil
}

// ListDocuments retrieves document summaries owned by the user, newest
// first. Body fields are omitted; callers fetch a full document by id.
func (s *Store) ListDocuments(ctx context.Context, ownerID uuid.UUID) ([]*models.Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, title, legal_area, piece_type, created_at, updated_at
		FROM documents
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)

	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID, &doc.OwnerID, &doc.Title, &doc.LegalArea, &doc.PieceType,
			&doc.CreatedAt, &doc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// UpdateDocumentText replaces the raw text and formatted markup of a
// document after manual edits in the preview pane.
func (s *Store) UpdateDocumentText(ctx context.Context, documentID, ownerID uuid.UUID, rawText, formattedHTML string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE documents
		SET raw_text = $1, formatted_html = $2, updated_at = NOW()
		WHERE id = $3 AND owner_id = $4
	`, rawText, formattedHTML, documentID, ownerID)

	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document not found")
	}

	return nil
}

// DeleteDocument removes a document.
func (s *Store) DeleteDocument(ctx context.Context, documentID, ownerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE id = $1 AND owner_id = $2`,
		documentID, ownerID,
	)

	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document not found")
	}

	return nil
}
