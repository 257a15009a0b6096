package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'une facture. Le passage à "paid" est déclenché par le webhook
// de la passerelle de paiement, jamais côté dashboard.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice représente une facture générée par conversion d'un devis.
// Le montant et les lignes sont un instantané du devis au moment de la
// conversion, pas une référence vivante.
type Invoice struct {
	ID            string
	ClientID      string
	QuoteID       string // devis d'origine
	InvoiceNumber string // ex. FAC-2024-001
	Amount        decimal.Decimal
	TaxRate       decimal.Decimal
	Status        string // voir InvoiceStatus*
	DueDate       time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
