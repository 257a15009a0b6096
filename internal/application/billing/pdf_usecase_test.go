package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/pkg/logger"
)

// fakeGenerator rend des octets fixes ou échoue à la demande.
type fakeGenerator struct {
	lastDoc billing.DocumentData
	err     error
}

func (g *fakeGenerator) GenerateDocumentPDF(_ context.Context, doc billing.DocumentData) ([]byte, error) {
	g.lastDoc = doc
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

// fakeStorage archive en mémoire, ou échoue à la demande.
type fakeStorage struct {
	saved map[string][]byte
	err   error
}

func newFakeStorage() *fakeStorage { return &fakeStorage{saved: map[string][]byte{}} }

func (s *fakeStorage) Save(_ context.Context, filename string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved[filename] = data
	return filename, nil
}

func (s *fakeStorage) Load(_ context.Context, filename string) ([]byte, error) {
	data, ok := s.saved[filename]
	if !ok {
		return nil, errors.New("absent")
	}
	return data, nil
}

func pdfLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "fatal"})
}

func newPDFFixture(gen *fakeGenerator, store *fakeStorage) (*billing.PDFUseCase, *fakeQuoteRepo, *fakeInvoiceRepo) {
	quoteRepo := newFakeQuoteRepo()
	invoiceRepo := newFakeInvoiceRepo()
	clientRepo := newFakeClientRepo(&entity.Client{ID: "c1", Name: "Atelier Verre"})
	uc := billing.NewPDFUseCase(quoteRepo, invoiceRepo, clientRepo, gen, store, "Jannah", pdfLogger())
	return uc, quoteRepo, invoiceRepo
}

// Le PDF de facture sort sous son nom contractuel et part à l'archivage.
func TestInvoicePDF_NomEtArchivage(t *testing.T) {
	gen := &fakeGenerator{}
	store := newFakeStorage()
	uc, _, invoiceRepo := newPDFFixture(gen, store)
	require.NoError(t, invoiceRepo.Create(&entity.Invoice{
		ID: "f1", ClientID: "c1", QuoteID: "q1",
		InvoiceNumber: "FAC-2024-001",
		Amount:        dec("1800"), TaxRate: dec("20"),
		Status: entity.InvoiceStatusPending,
	}))

	data, filename, err := uc.InvoicePDF(context.Background(), "f1")
	require.NoError(t, err)

	assert.Equal(t, "Facture_FAC-2024-001_Jannah.pdf", filename)
	assert.NotEmpty(t, data)
	assert.Contains(t, store.saved, filename, "le PDF doit être archivé sous son nom contractuel")

	// Sous-total dérivé de l'instantané : 1800 / 1.20 = 1500
	assert.True(t, dec("1500").Equal(gen.lastDoc.Subtotal), "sous-total dérivé obtenu %s", gen.lastDoc.Subtotal)
	// Facture sans lignes persistées : ligne synthétique substituée
	require.Len(t, gen.lastDoc.Lines, 1)
	assert.Equal(t, "Prestation globale", gen.lastDoc.Lines[0].Description)
}

// Un échec du moteur de rendu remonte en ErrRender, jamais en panique.
func TestQuotePDF_EchecDeRendu(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("police manquante")}
	uc, quoteRepo, _ := newPDFFixture(gen, newFakeStorage())
	require.NoError(t, quoteRepo.Create(&entity.Quote{
		ID: "q1", ClientID: "c1", Title: "Site vitrine",
		Subtotal: dec("1500"), TaxRate: dec("20"), Total: dec("1800"),
		Status: entity.QuoteStatusDraft,
	}, nil))

	_, _, err := uc.QuotePDF(context.Background(), "q1")
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.Contains(t, err.Error(), "police manquante")
}

// L'archivage est best effort : son échec ne bloque pas le téléchargement.
func TestQuotePDF_ArchivageEchoue_TelechargementIntact(t *testing.T) {
	store := newFakeStorage()
	store.err = errors.New("bucket indisponible")
	uc, quoteRepo, _ := newPDFFixture(&fakeGenerator{}, store)
	require.NoError(t, quoteRepo.Create(&entity.Quote{
		ID: "11112222-3333-4444-5555-666677778888", ClientID: "c1",
		Subtotal: dec("100"), TaxRate: dec("0"), Total: dec("100"),
		Status: entity.QuoteStatusDraft,
	}, nil))

	data, filename, err := uc.QuotePDF(context.Background(), "11112222-3333-4444-5555-666677778888")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "Devis_11112222_Jannah.pdf", filename, "numéro = ID court en majuscules")
}

func TestQuotePDF_DevisInconnu(t *testing.T) {
	uc, _, _ := newPDFFixture(&fakeGenerator{}, newFakeStorage())

	_, _, err := uc.QuotePDF(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
