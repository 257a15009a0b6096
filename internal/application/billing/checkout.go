package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

// CheckoutUseCase ouvre une session de paiement pour une facture en attente.
type CheckoutUseCase struct {
	invoiceRepo repository.InvoiceRepository
	provider    CheckoutProvider
}

// NewCheckoutUseCase construit le cas d'usage. provider peut être nil si la
// passerelle n'est pas configurée (checkout désactivé).
func NewCheckoutUseCase(invoiceRepo repository.InvoiceRepository, provider CheckoutProvider) *CheckoutUseCase {
	return &CheckoutUseCase{invoiceRepo: invoiceRepo, provider: provider}
}

// CreateCheckout demande une URL de session à la passerelle pour la facture.
// Le montant par défaut est celui de la facture ; un montant explicite
// (acompte partiel) est accepté s'il est positif. Ne marque jamais la
// facture payée : cette transition arrive par webhook.
func (uc *CheckoutUseCase) CreateCheckout(ctx context.Context, invoiceID string, amount decimal.Decimal) (*dto.CheckoutResponse, error) {
	if uc.provider == nil {
		return nil, domain.ErrCheckoutDisabled
	}
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status == entity.InvoiceStatusPaid {
		return nil, domain.ErrInvalidInput
	}
	if amount.IsZero() {
		amount = invoice.Amount
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	url, err := uc.provider.CreateSession(ctx, invoice.ID, invoice.InvoiceNumber, amount)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{URL: url}, nil
}

// HandlePaymentConfirmed enregistre le paiement signalé par le webhook de la
// passerelle. Idempotent : une facture déjà payée n'est pas modifiée.
func (uc *CheckoutUseCase) HandlePaymentConfirmed(invoiceID string, paidAt time.Time) error {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}
	if invoice.Status == entity.InvoiceStatusPaid {
		return nil
	}
	return uc.invoiceRepo.MarkPaid(invoiceID, paidAt)
}
