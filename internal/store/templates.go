package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lexdraft/petition-orchestrator/internal/models"
)

// CreateTemplate inserts a petition template and returns its id.
func (s *Store) CreateTemplate(ctx context.Context, ownerID uuid.UUID, t models.Template) (uuid.UUID, error) {
	var templateID uuid.UUID

	err := s.pool.QueryRow(ctx,
		`INSERT INTO templates (owner_id, name, legal_area, description, body)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		ownerID, t.Name, t.LegalArea, t.Description, t.Body,
	).Scan(&templateID)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create template: %w", err)
	}

	return templateID, nil
}

// GetTemplate retrieves one template owned by the user.
func (s *Store) GetTemplate(ctx context.Context, templateID, ownerID uuid.UUID) (*models.Template, error) {
	var t models.Template

	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, legal_area, description, body, created_at, updated_at
		FROM templates
		WHERE id = $1 AND owner_id = $2
	`, templateID, ownerID).Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.LegalArea, &t.Description, &t.Body,
		&t.CreatedAt, &t.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &t, nil
}

// ListTemplates retrieves all templates owned by the user.
func (s *Store) ListTemplates(ctx context.Context, ownerID uuid.UUID) ([]*models.Template, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, name, legal_area, description, body, created_at, updated_at
		FROM templates
		WHERE owner_id = $1
		ORDER BY name
	`, ownerID)

	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		var t models.Template
		err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Name, &t.LegalArea, &t.Description, &t.Body,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// UpdateTemplate updates the mutable fields of a template.
func (s *Store) UpdateTemplate(ctx context.Context, templateID, ownerID uuid.UUID, t models.Template) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE templates
		SET name = $1, legal_area = $2, description = $3, body = $4, updated_at = NOW()
		WHERE id = $5 AND owner_id = $6
	`, t.Name, t.LegalArea, t.Description, t.Body, templateID, ownerID)

	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template not found")
	}

	return nil
}

// DeleteTemplate removes a template.
func (s *Store) DeleteTemplate(ctx context.Context, templateID, ownerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM templates WHERE id = $1 AND owner_id = $2`,
		templateID, ownerID,
	)

	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template not found")
	}

	return nil
}

// GetOfficeConfig retrieves the office letterhead configuration. Users
// without a saved configuration get the zero value, not an error.
func (s *Store) GetOfficeConfig(ctx context.Context, ownerID uuid.UUID) (*models.OfficeConfig, error) {
	var cfg models.OfficeConfig

	err := s.pool.QueryRow(ctx, `
		SELECT owner_id, office_name, oab_number, letterhead, footer, city, updated_at
		FROM office_configs
		WHERE owner_id = $1
	`, ownerID).Scan(
		&cfg.OwnerID, &cfg.OfficeName, &cfg.OABNumber, &cfg.Letterhead,
		&cfg.Footer, &cfg.City, &cfg.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return &models.OfficeConfig{OwnerID: ownerID}, nil
		}
		return nil, fmt.Errorf("failed to get office config: %w", err)
	}

	return &cfg, nil
}

// UpsertOfficeConfig saves the office letterhead configuration, one row per
// user.
func (s *Store) UpsertOfficeConfig(ctx context.Context, cfg models.OfficeConfig) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO office_configs (owner_id, office_name, oab_number, letterhead, footer, city, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (owner_id)
		DO UPDATE SET office_name = EXCLUDED.office_name,
		              oab_number = EXCLUDED.oab_number,
		              letterhead = EXCLUDED.letterhead,
		              footer = EXCLUDED.footer,
		              city = EXCLUDED.city,
		              updated_at = NOW()
	`, cfg.OwnerID, cfg.OfficeName, cfg.OABNumber, cfg.Letterhead, cfg.Footer, cfg.City)

	if err != nil {
		return fmt.Errorf("failed to save office config: %w", err)
	}

	return nil
}
