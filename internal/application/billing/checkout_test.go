package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
)

// Sans passerelle configurée, le checkout est désactivé.
func TestCreateCheckout_SansPasserelle(t *testing.T) {
	uc := billing.NewCheckoutUseCase(newFakeInvoiceRepo(), nil)

	_, err := uc.CreateCheckout(context.Background(), "f1", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrCheckoutDisabled)
}

// Cas nominal : le montant par défaut est celui de la facture, et l'URL de
// session est renvoyée telle quelle. La facture reste pending : le passage à
// paid n'arrive que par webhook.
func TestCreateCheckout_MontantParDefaut(t *testing.T) {
	invoice := &entity.Invoice{ID: "f1", Amount: dec("1800"), Status: entity.InvoiceStatusPending}
	provider := &fakeCheckoutProvider{url: "https://pay.example.com/s/abc"}
	uc := billing.NewCheckoutUseCase(newFakeInvoiceRepo(invoice), provider)

	out, err := uc.CreateCheckout(context.Background(), "f1", decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/s/abc", out.URL)
	assert.True(t, dec("1800").Equal(provider.lastAmount))
	assert.Equal(t, entity.InvoiceStatusPending, invoice.Status, "la création de session ne paie pas la facture")
}

// Un acompte partiel explicite est accepté s'il est positif.
func TestCreateCheckout_AcomptePartiel(t *testing.T) {
	invoice := &entity.Invoice{ID: "f1", Amount: dec("1800"), Status: entity.InvoiceStatusPending}
	provider := &fakeCheckoutProvider{url: "https://pay.example.com/s/abc"}
	uc := billing.NewCheckoutUseCase(newFakeInvoiceRepo(invoice), provider)

	_, err := uc.CreateCheckout(context.Background(), "f1", dec("900"))
	require.NoError(t, err)
	assert.True(t, dec("900").Equal(provider.lastAmount))

	_, err = uc.CreateCheckout(context.Background(), "f1", dec("-10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Une facture déjà payée ne peut pas rouvrir de session.
func TestCreateCheckout_FactureDejaPayee(t *testing.T) {
	invoice := &entity.Invoice{ID: "f1", Amount: dec("1800"), Status: entity.InvoiceStatusPaid}
	uc := billing.NewCheckoutUseCase(newFakeInvoiceRepo(invoice), &fakeCheckoutProvider{})

	_, err := uc.CreateCheckout(context.Background(), "f1", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Le webhook marque la facture payée ; rejoué, il ne change plus rien.
func TestHandlePaymentConfirmed_Idempotent(t *testing.T) {
	invoice := &entity.Invoice{ID: "f1", Amount: dec("1800"), Status: entity.InvoiceStatusPending}
	uc := billing.NewCheckoutUseCase(newFakeInvoiceRepo(invoice), &fakeCheckoutProvider{})

	first := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, uc.HandlePaymentConfirmed("f1", first))
	assert.Equal(t, entity.InvoiceStatusPaid, invoice.Status)
	require.NotNil(t, invoice.PaidAt)
	assert.Equal(t, first, *invoice.PaidAt)

	// Rejeu : la date de paiement d'origine est conservée.
	require.NoError(t, uc.HandlePaymentConfirmed("f1", first.Add(time.Hour)))
	assert.Equal(t, first, *invoice.PaidAt)

	assert.ErrorIs(t, uc.HandlePaymentConfirmed("absent", first), domain.ErrNotFound)
}
