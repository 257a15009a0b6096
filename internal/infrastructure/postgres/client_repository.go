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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implémentation de ClientRepository (utilisable avec pool ou tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construit l'adaptateur.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, email, status, services, progress, slug, assigned_to, last_contact, cahier_completed, created_at, updated_at`

// Create persiste une nouvelle fiche client.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Email, client.Status, client.Services,
		client.Progress, client.Slug, client.AssignedTo, client.LastContact,
		client.CahierCompleted, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID retourne un client par ID (nil si absent).
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.getBy("id", id)
}

// GetBySlug retourne un client par slug (nil si absent).
func (r *ClientRepo) GetBySlug(slug string) (*entity.Client, error) {
	return r.getBy("slug", slug)
}

func (r *ClientRepo) getBy(column, value string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE ` + column + ` = $1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&c.ID, &c.Name, &c.Email, &c.Status, &c.Services, &c.Progress,
		&c.Slug, &c.AssignedTo, &c.LastContact, &c.CahierCompleted,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List liste les clients filtrés par statut et recherche, avec pagination.
func (r *ClientRepo) List(f repository.ClientFilter) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", len(args), len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Status, &c.Services, &c.Progress,
			&c.Slug, &c.AssignedTo, &c.LastContact, &c.CahierCompleted,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update met à jour la fiche client.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, email = $3, status = $4, services = $5,
			progress = $6, assigned_to = $7, last_contact = $8,
			cahier_completed = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Email, client.Status, client.Services,
		client.Progress, client.AssignedTo, client.LastContact,
		client.CahierCompleted, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete supprime une fiche client par ID.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
