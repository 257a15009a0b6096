package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Cas nominal : une ligne de 1500 € à 20 % de TVA donne un total de 1800 €,
// en décimal exact (jamais de flottants).
func TestCreateQuote_CalculeTotauxExacts(t *testing.T) {
	client := &entity.Client{ID: "c1", Name: "Boulangerie Dupont"}
	quoteRepo := newFakeQuoteRepo()
	uc := billing.NewQuoteUseCase(quoteRepo, newFakeClientRepo(client))

	out, err := uc.CreateQuote(dto.CreateQuoteRequest{
		ClientID: "c1",
		Title:    "Site vitrine",
		TaxRate:  dec("20"),
		Items: []dto.QuoteItemRequest{
			{Description: "Développement", Quantity: dec("1"), UnitPrice: dec("1500")},
		},
	})
	require.NoError(t, err)

	assert.True(t, dec("1500").Equal(out.Subtotal), "sous-total attendu 1500, obtenu %s", out.Subtotal)
	assert.True(t, dec("1800").Equal(out.Total), "total attendu 1800, obtenu %s", out.Total)
	assert.Equal(t, entity.QuoteStatusDraft, out.Status, "un devis naît en brouillon")
	assert.Equal(t, "Boulangerie Dupont", out.ClientName)
	assert.Equal(t, 1, quoteRepo.createCalls)
}

// Plusieurs lignes : le sous-total est la somme des Quantity × UnitPrice.
func TestCreateQuote_SousTotal_SommeDesLignes(t *testing.T) {
	client := &entity.Client{ID: "c1", Name: "Garage Martin"}
	uc := billing.NewQuoteUseCase(newFakeQuoteRepo(), newFakeClientRepo(client))

	out, err := uc.CreateQuote(dto.CreateQuoteRequest{
		ClientID: "c1",
		Title:    "Refonte + maintenance",
		TaxRate:  dec("10"),
		Items: []dto.QuoteItemRequest{
			{Description: "Refonte", Quantity: dec("1"), UnitPrice: dec("2000")},
			{Description: "Maintenance", Quantity: dec("3"), UnitPrice: dec("150.50")},
		},
	})
	require.NoError(t, err)

	// 2000 + 3 × 150.50 = 2451.50 ; total = 2451.50 × 1.10 = 2696.65
	assert.True(t, dec("2451.50").Equal(out.Subtotal), "sous-total obtenu %s", out.Subtotal)
	assert.True(t, dec("2696.65").Equal(out.Total), "total obtenu %s", out.Total)
}

// L'ordre des lignes saisies est préservé via Position.
func TestCreateQuote_OrdreDesLignesPreserve(t *testing.T) {
	client := &entity.Client{ID: "c1", Name: "Restaurant Le Passage"}
	quoteRepo := newFakeQuoteRepo()
	uc := billing.NewQuoteUseCase(quoteRepo, newFakeClientRepo(client))

	out, err := uc.CreateQuote(dto.CreateQuoteRequest{
		ClientID: "c1",
		TaxRate:  dec("0"),
		Items: []dto.QuoteItemRequest{
			{Description: "Première", Quantity: dec("1"), UnitPrice: dec("100")},
			{Description: "Deuxième", Quantity: dec("1"), UnitPrice: dec("200")},
			{Description: "Troisième", Quantity: dec("1"), UnitPrice: dec("300")},
		},
	})
	require.NoError(t, err)

	items, err := quoteRepo.GetItemsByQuoteID(out.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, i, item.Position)
	}
	assert.Equal(t, "Première", items[0].Description)
	assert.Equal(t, "Troisième", items[2].Description)
}

// Validation court-circuitée : aucun client sélectionné ou aucune ligne →
// ErrInvalidInput sans le moindre appel à la persistance.
func TestCreateQuote_PayloadInvalide_CourtCircuit(t *testing.T) {
	cases := []struct {
		name string
		in   dto.CreateQuoteRequest
	}{
		{
			name: "sans client",
			in: dto.CreateQuoteRequest{
				Items: []dto.QuoteItemRequest{{Description: "x", Quantity: dec("1"), UnitPrice: dec("1")}},
			},
		},
		{
			name: "sans lignes",
			in:   dto.CreateQuoteRequest{ClientID: "c1"},
		},
		{
			name: "ligne sans description",
			in: dto.CreateQuoteRequest{
				ClientID: "c1",
				Items:    []dto.QuoteItemRequest{{Quantity: dec("1"), UnitPrice: dec("1")}},
			},
		},
		{
			name: "quantité nulle",
			in: dto.CreateQuoteRequest{
				ClientID: "c1",
				Items:    []dto.QuoteItemRequest{{Description: "x", Quantity: dec("0"), UnitPrice: dec("1")}},
			},
		},
		{
			name: "prix négatif",
			in: dto.CreateQuoteRequest{
				ClientID: "c1",
				Items:    []dto.QuoteItemRequest{{Description: "x", Quantity: dec("1"), UnitPrice: dec("-5")}},
			},
		},
		{
			name: "TVA négative",
			in: dto.CreateQuoteRequest{
				ClientID: "c1",
				TaxRate:  dec("-1"),
				Items:    []dto.QuoteItemRequest{{Description: "x", Quantity: dec("1"), UnitPrice: dec("1")}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clientRepo := newFakeClientRepo(&entity.Client{ID: "c1", Name: "Client"})
			quoteRepo := newFakeQuoteRepo()
			uc := billing.NewQuoteUseCase(quoteRepo, clientRepo)

			_, err := uc.CreateQuote(tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 0, clientRepo.calls, "la validation doit précéder tout appel repo")
			assert.Equal(t, 0, quoteRepo.createCalls)
		})
	}
}

// Client inconnu → ErrNotFound, rien n'est persisté.
func TestCreateQuote_ClientInconnu(t *testing.T) {
	quoteRepo := newFakeQuoteRepo()
	uc := billing.NewQuoteUseCase(quoteRepo, newFakeClientRepo())

	_, err := uc.CreateQuote(dto.CreateQuoteRequest{
		ClientID: "absent",
		Items:    []dto.QuoteItemRequest{{Description: "x", Quantity: dec("1"), UnitPrice: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, quoteRepo.createCalls)
}

// MarkSent : draft → sent ; un devis déjà facturé renvoie ErrAlreadyInvoiced.
func TestMarkSent_Transitions(t *testing.T) {
	draft := &entity.Quote{ID: "q1", Status: entity.QuoteStatusDraft}
	invoiced := &entity.Quote{ID: "q2", Status: entity.QuoteStatusInvoiced}
	quoteRepo := newFakeQuoteRepo(draft, invoiced)
	uc := billing.NewQuoteUseCase(quoteRepo, newFakeClientRepo())

	require.NoError(t, uc.MarkSent("q1"))
	assert.Equal(t, entity.QuoteStatusSent, draft.Status)

	assert.ErrorIs(t, uc.MarkSent("q2"), domain.ErrAlreadyInvoiced)
	assert.ErrorIs(t, uc.MarkSent("inconnu"), domain.ErrNotFound)
}
