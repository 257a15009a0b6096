package repository

import (
	"time"

	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
)

// InvoiceRepository définit le port de persistance pour Invoice.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByQuoteID(quoteID string) (*entity.Invoice, error)
	List(status string, limit, offset int) ([]*entity.Invoice, error)
	// NextNumber retourne le prochain numéro de facture (FAC-<année>-NNN).
	NextNumber(year int) (string, error)
	MarkPaid(id string, paidAt time.Time) error
	MarkOverdue(id string) error
}
