package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
)

// Types de document rendus en PDF.
const (
	DocumentKindQuote   = "quote"
	DocumentKindInvoice = "invoice"
)

// DocumentLine ligne du tableau de prestations d'un document.
type DocumentLine struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// DocumentData champs calculés d'un devis ou d'une facture, prêts pour le rendu.
type DocumentData struct {
	Kind     string // DocumentKindQuote | DocumentKindInvoice
	Number   string // identifiant affiché (numéro de facture ou ID court de devis)
	Title    string
	Client   *entity.Client
	Lines    []DocumentLine
	Subtotal decimal.Decimal
	TaxRate  decimal.Decimal
	Total    decimal.Decimal
	IssuedAt time.Time
	DueDate  time.Time // zéro pour un devis
}

// DocumentPDFGenerator rend un document A4 paginé en PDF.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc DocumentData) ([]byte, error)
}

// CheckoutProvider demande une session de paiement à la passerelle et
// retourne l'URL de redirection. La confirmation du paiement revient par
// webhook, jamais par ce port.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, invoiceID, invoiceNumber string, amount decimal.Decimal) (string, error)
}

// DocumentStorage archive les PDF générés (disque local ou S3).
type DocumentStorage interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
	Load(ctx context.Context, filename string) ([]byte, error)
}
