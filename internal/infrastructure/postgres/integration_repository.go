package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

var _ repository.IntegrationRepository = (*IntegrationRepo)(nil)

// IntegrationRepo implémentation de IntegrationRepository. La config est
// stockée en JSONB opaque.
type IntegrationRepo struct {
	q Querier
}

// NewIntegrationRepository construit l'adaptateur.
func NewIntegrationRepository(q Querier) *IntegrationRepo {
	return &IntegrationRepo{q: q}
}

// Attach instancie une entrée du catalogue.
func (r *IntegrationRepo) Attach(integration *entity.Integration) error {
	query := `
		INSERT INTO integrations (slug, name, is_connected, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		integration.Slug, integration.Name, integration.IsConnected,
		integration.Config, integration.CreatedAt, integration.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("attach integration: %w", err)
	}
	return nil
}

// GetBySlug retourne une intégration attachée (nil si absente).
func (r *IntegrationRepo) GetBySlug(slug string) (*entity.Integration, error) {
	query := `
		SELECT slug, name, is_connected, config, created_at, updated_at
		FROM integrations WHERE slug = $1`
	var integ entity.Integration
	err := r.q.QueryRow(context.Background(), query, slug).Scan(
		&integ.Slug, &integ.Name, &integ.IsConnected, &integ.Config,
		&integ.CreatedAt, &integ.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get integration: %w", err)
	}
	return &integ, nil
}

// List retourne toutes les intégrations attachées.
func (r *IntegrationRepo) List() ([]*entity.Integration, error) {
	query := `
		SELECT slug, name, is_connected, config, created_at, updated_at
		FROM integrations ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Integration
	for rows.Next() {
		var integ entity.Integration
		if err := rows.Scan(&integ.Slug, &integ.Name, &integ.IsConnected,
			&integ.Config, &integ.CreatedAt, &integ.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan integration: %w", err)
		}
		list = append(list, &integ)
	}
	return list, rows.Err()
}

// SaveConfig remplace la configuration et marque connecté.
func (r *IntegrationRepo) SaveConfig(slug string, config map[string]string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE integrations SET config = $2, is_connected = true, updated_at = now() WHERE slug = $1`,
		slug, config,
	)
	if err != nil {
		return fmt.Errorf("save integration config: %w", err)
	}
	return nil
}

// Disconnect repasse is_connected à false sans toucher la config.
func (r *IntegrationRepo) Disconnect(slug string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE integrations SET is_connected = false, updated_at = now() WHERE slug = $1`,
		slug,
	)
	if err != nil {
		return fmt.Errorf("disconnect integration: %w", err)
	}
	return nil
}
