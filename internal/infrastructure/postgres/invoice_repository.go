package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implémentation de InvoiceRepository.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construit l'adaptateur.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, client_id, quote_id, invoice_number, amount, tax_rate, status, due_date, paid_at, created_at, updated_at`

// Create persiste une nouvelle facture. Une contrainte unique sur quote_id
// protège contre une double conversion qui passerait la garde applicative.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.ClientID, invoice.QuoteID, invoice.InvoiceNumber,
		invoice.Amount, invoice.TaxRate, invoice.Status, invoice.DueDate,
		invoice.PaidAt, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyInvoiced
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID retourne une facture par ID (nil si absente).
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.getBy("id", id)
}

// GetByQuoteID retourne la facture issue d'un devis (nil si absente).
func (r *InvoiceRepo) GetByQuoteID(quoteID string) (*entity.Invoice, error) {
	return r.getBy("quote_id", quoteID)
}

func (r *InvoiceRepo) getBy(column, value string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + column + ` = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&inv.ID, &inv.ClientID, &inv.QuoteID, &inv.InvoiceNumber, &inv.Amount,
		&inv.TaxRate, &inv.Status, &inv.DueDate, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// List liste les factures, optionnellement filtrées par statut.
func (r *InvoiceRepo) List(status string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += " WHERE status = $1"
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.QuoteID, &inv.InvoiceNumber,
			&inv.Amount, &inv.TaxRate, &inv.Status, &inv.DueDate, &inv.PaidAt,
			&inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// NextNumber construit le prochain numéro FAC-<année>-NNN en comptant les
// factures de l'année. Suffisant pour une agence mono-tenant ; un trou de
// séquence après suppression est acceptable.
func (r *InvoiceRepo) NextNumber(year int) (string, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM invoices WHERE invoice_number LIKE $1`,
		fmt.Sprintf("FAC-%d-%%", year),
	).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("FAC-%d-%03d", year, count+1), nil
}

// MarkPaid enregistre le paiement (transition pilotée par le webhook).
func (r *InvoiceRepo) MarkPaid(id string, paidAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $2, paid_at = $3, updated_at = now() WHERE id = $1`,
		id, entity.InvoiceStatusPaid, paidAt,
	)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	return nil
}

// MarkOverdue passe la facture en retard (balayage d'échéances).
func (r *InvoiceRepo) MarkOverdue(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`,
		id, entity.InvoiceStatusOverdue, entity.InvoiceStatusPending,
	)
	if err != nil {
		return fmt.Errorf("mark invoice overdue: %w", err)
	}
	return nil
}
