package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implémentation de QuoteRepository.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construit l'adaptateur.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// Create persiste l'en-tête puis chaque ligne. Pas de transaction : le devis
// est une création unitaire du point de vue du dashboard, et une ligne
// orpheline est corrigée au prochain refetch.
func (r *QuoteRepo) Create(quote *entity.Quote, items []*entity.QuoteItem) error {
	query := `
		INSERT INTO quotes (id, client_id, title, subtotal, tax_rate, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.ClientID, quote.Title, quote.Subtotal, quote.TaxRate,
		quote.Total, quote.Status, quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	itemQuery := `
		INSERT INTO quote_items (id, quote_id, position, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range items {
		if _, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.QuoteID, item.Position, item.Description, item.Quantity, item.UnitPrice,
		); err != nil {
			return fmt.Errorf("insert quote item: %w", err)
		}
	}
	return nil
}

// GetByID retourne un devis par ID (nil si absent).
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	query := `
		SELECT id, client_id, title, subtotal, tax_rate, total, status, created_at, updated_at
		FROM quotes WHERE id = $1`
	var q entity.Quote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&q.ID, &q.ClientID, &q.Title, &q.Subtotal, &q.TaxRate, &q.Total,
		&q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &q, nil
}

// GetItemsByQuoteID retourne les lignes du devis dans l'ordre.
func (r *QuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, position, description, quantity, unit_price
		FROM quote_items WHERE quote_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var items []*entity.QuoteItem
	for rows.Next() {
		var item entity.QuoteItem
		if err := rows.Scan(&item.ID, &item.QuoteID, &item.Position,
			&item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// List liste les devis, plus récents en premier.
func (r *QuoteRepo) List(limit, offset int) ([]*entity.Quote, error) {
	query := `
		SELECT id, client_id, title, subtotal, tax_rate, total, status, created_at, updated_at
		FROM quotes ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(&q.ID, &q.ClientID, &q.Title, &q.Subtotal, &q.TaxRate,
			&q.Total, &q.Status, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

// TransitionStatus UPDATE conditionnel : ne touche la ligne que si le statut
// courant fait partie de `from`. RowsAffected == 0 signifie que la transition
// avait déjà eu lieu (garde contre le double-submit).
func (r *QuoteRepo) TransitionStatus(id string, from []string, to string) (bool, error) {
	query := `UPDATE quotes SET status = $2, updated_at = now() WHERE id = $1 AND status = ANY($3)`
	tag, err := r.q.Exec(context.Background(), query, id, to, from)
	if err != nil {
		return false, fmt.Errorf("transition quote status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete supprime le devis et ses lignes.
func (r *QuoteRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM quote_items WHERE quote_id = $1`, id); err != nil {
		return fmt.Errorf("delete quote items: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM quotes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}
