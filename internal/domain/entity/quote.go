package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'un devis. Seule la conversion fait passer en "invoiced".
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusInvoiced = "invoiced"
)

// Quote représente un devis : lignes ordonnées, sous-total, TVA et total.
// Invariants : Subtotal = Σ(Quantity × UnitPrice) ; Total = Subtotal × (1 + TaxRate/100).
type Quote struct {
	ID        string
	ClientID  string
	Title     string
	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal // pourcentage (20.0 = 20 %)
	Total     decimal.Decimal
	Status    string // voir QuoteStatus*
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuoteItem ligne de devis (ordre préservé via Position).
type QuoteItem struct {
	ID          string
	QuoteID     string
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// LineTotal retourne Quantity × UnitPrice.
func (i QuoteItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
