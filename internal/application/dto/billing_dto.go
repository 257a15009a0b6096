package dto

import "github.com/shopspring/decimal"

// CreateQuoteRequest body pour POST /api/quotes.
type CreateQuoteRequest struct {
	ClientID string             `json:"client_id"`
	Title    string             `json:"title"`
	TaxRate  decimal.Decimal    `json:"tax_rate"` // pourcentage (20.0 = 20 %)
	Items    []QuoteItemRequest `json:"items"`
}

// QuoteItemRequest ligne de devis (description, quantité, prix unitaire).
type QuoteItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// QuoteResponse devis avec lignes. ClientName est dénormalisé pour affichage
// immédiat ; la cohérence est corrigée au prochain refetch complet.
type QuoteResponse struct {
	ID         string              `json:"id"`
	ClientID   string              `json:"client_id"`
	ClientName string              `json:"client_name,omitempty"`
	Title      string              `json:"title"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	TaxRate    decimal.Decimal     `json:"tax_rate"`
	Total      decimal.Decimal     `json:"total"`
	Status     string              `json:"status"`
	CreatedAt  string              `json:"created_at"`
	Items      []QuoteItemResponse `json:"items"`
}

// QuoteItemResponse ligne de devis en réponse.
type QuoteItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse facture en réponse.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name,omitempty"`
	QuoteID       string          `json:"quote_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Status        string          `json:"status"`
	DueDate       string          `json:"due_date"`
	CreatedAt     string          `json:"created_at"`
}

// CheckoutRequest body pour POST /api/invoices/:id/checkout.
type CheckoutRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CheckoutResponse URL de redirection vers la session de paiement.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// PaymentWebhookRequest body pour POST /api/payments/webhook.
// client_reference_id porte l'identifiant de la facture passé à la création
// de la session de paiement.
type PaymentWebhookRequest struct {
	Type              string `json:"type"`
	ClientReferenceID string `json:"client_reference_id"`
}
