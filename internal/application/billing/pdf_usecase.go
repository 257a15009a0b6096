package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
	"github.com/jannahweb/jannah-os-api/pkg/logger"
)

// PDFUseCase génère le PDF d'un devis ou d'une facture et l'archive.
type PDFUseCase struct {
	quoteRepo   repository.QuoteRepository
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	generator   DocumentPDFGenerator
	storage     DocumentStorage
	brandTag    string
	log         *logger.Logger
}

// NewPDFUseCase construit le cas d'usage en injectant toutes ses dépendances.
func NewPDFUseCase(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	generator DocumentPDFGenerator,
	storage DocumentStorage,
	brandTag string,
	log *logger.Logger,
) *PDFUseCase {
	return &PDFUseCase{
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		generator:   generator,
		storage:     storage,
		brandTag:    brandTag,
		log:         log,
	}
}

// QuotePDF charge le devis, ses lignes et sa fiche client, puis rend le PDF.
//
// Retourne :
//   - (pdfBytes, filename, nil) si tout se passe bien.
//   - domain.ErrNotFound si le devis n'existe pas.
//   - domain.ErrRender (wrappé) si le rendu échoue — jamais de panique.
func (uc *PDFUseCase) QuotePDF(ctx context.Context, quoteID string) ([]byte, string, error) {
	quote, err := uc.quoteRepo.GetByID(quoteID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: charger devis: %w", err)
	}
	if quote == nil {
		return nil, "", domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(quote.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: charger client: %w", err)
	}
	if client == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.quoteRepo.GetItemsByQuoteID(quoteID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: charger lignes: %w", err)
	}

	lines := make([]DocumentLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, DocumentLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.LineTotal(),
		})
	}

	doc := DocumentData{
		Kind:     DocumentKindQuote,
		Number:   shortID(quote.ID),
		Title:    quote.Title,
		Client:   client,
		Lines:    withSyntheticLine(lines, quote.Subtotal),
		Subtotal: quote.Subtotal,
		TaxRate:  quote.TaxRate,
		Total:    quote.Total,
		IssuedAt: quote.CreatedAt,
	}
	return uc.render(ctx, doc)
}

// InvoicePDF charge la facture et sa fiche client puis rend le PDF. Une
// facture ne porte pas de lignes propres (instantané du devis) : le
// sous-total est recalculé depuis le montant et le taux, et les lignes du
// devis d'origine sont reprises quand elles existent encore.
func (uc *PDFUseCase) InvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: charger facture: %w", err)
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(invoice.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: charger client: %w", err)
	}
	if client == nil {
		return nil, "", domain.ErrNotFound
	}

	// Sous-total dérivé : Amount = Subtotal × (1 + TaxRate/100)
	subtotal := invoice.Amount.Mul(oneHundred).Div(oneHundred.Add(invoice.TaxRate))

	var lines []DocumentLine
	if items, err := uc.quoteRepo.GetItemsByQuoteID(invoice.QuoteID); err == nil {
		for _, item := range items {
			lines = append(lines, DocumentLine{
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Total:       item.LineTotal(),
			})
		}
	}

	doc := DocumentData{
		Kind:     DocumentKindInvoice,
		Number:   invoice.InvoiceNumber,
		Title:    "Facture " + invoice.InvoiceNumber,
		Client:   client,
		Lines:    withSyntheticLine(lines, subtotal),
		Subtotal: subtotal,
		TaxRate:  invoice.TaxRate,
		Total:    invoice.Amount,
		IssuedAt: invoice.CreatedAt,
		DueDate:  invoice.DueDate,
	}
	return uc.render(ctx, doc)
}

// render génère les octets PDF, les archive (best effort) et retourne le nom
// de fichier déterministe.
func (uc *PDFUseCase) render(ctx context.Context, doc DocumentData) ([]byte, string, error) {
	pdfBytes, err := uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	filename := DocumentFilename(doc.Kind, doc.Number, uc.brandTag)

	// L'archivage n'est pas bloquant : le téléchargement direct reste
	// possible même si le stockage est indisponible.
	if uc.storage != nil {
		if _, err := uc.storage.Save(ctx, filename, pdfBytes); err != nil {
			uc.log.Warn().Err(err).Str("filename", filename).Msg("archivage du PDF échoué")
		}
	}
	return pdfBytes, filename, nil
}

// withSyntheticLine substitue une ligne « Prestation globale » quand le
// document n'a aucune ligne (défaut dérivable).
func withSyntheticLine(lines []DocumentLine, subtotal decimal.Decimal) []DocumentLine {
	if len(lines) > 0 {
		return lines
	}
	return []DocumentLine{{
		Description: "Prestation globale",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   subtotal,
		Total:       subtotal,
	}}
}

// shortID tronque un UUID pour l'affichage (8 premiers caractères hex).
func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
