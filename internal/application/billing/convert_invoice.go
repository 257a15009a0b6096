package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

// Échéance par défaut d'une facture après conversion.
const invoiceDueDays = 30

// ConvertUseCase convertit un devis en facture (draft/sent → invoiced),
// transition unique et irréversible.
type ConvertUseCase struct {
	quoteRepo   repository.QuoteRepository
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	notifRepo   repository.NotificationRepository
}

// NewConvertUseCase construit le cas d'usage.
func NewConvertUseCase(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	notifRepo repository.NotificationRepository,
) *ConvertUseCase {
	return &ConvertUseCase{
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		notifRepo:   notifRepo,
	}
}

// ConvertToInvoice crée une facture depuis l'instantané du devis (montant et
// taux figés au moment de la conversion). La transition de statut est un
// UPDATE conditionnel : un double-submit ne peut pas créer deux factures,
// le second appel reçoit ErrAlreadyInvoiced.
func (uc *ConvertUseCase) ConvertToInvoice(quoteID string) (*dto.InvoiceResponse, error) {
	quote, err := uc.quoteRepo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.Status == entity.QuoteStatusInvoiced {
		return nil, domain.ErrAlreadyInvoiced
	}

	moved, err := uc.quoteRepo.TransitionStatus(
		quoteID,
		[]string{entity.QuoteStatusDraft, entity.QuoteStatusSent},
		entity.QuoteStatusInvoiced,
	)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrAlreadyInvoiced
	}

	now := time.Now()
	number, err := uc.invoiceRepo.NextNumber(now.Year())
	if err != nil {
		return nil, err
	}
	invoice := &entity.Invoice{
		ID:            uuid.New().String(),
		ClientID:      quote.ClientID,
		QuoteID:       quote.ID,
		InvoiceNumber: number,
		Amount:        quote.Total,
		TaxRate:       quote.TaxRate,
		Status:        entity.InvoiceStatusPending,
		DueDate:       now.AddDate(0, 0, invoiceDueDays),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}

	// Notification de succès ; son insertion déclenche le NOTIFY qui
	// alimente le fil temps réel du dashboard. Best effort : un échec
	// n'annule pas la conversion.
	_ = uc.notifRepo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		Title:     "Devis converti",
		Message:   fmt.Sprintf("Le devis « %s » est devenu la facture %s", quote.Title, number),
		Type:      entity.NotificationSuccess,
		CreatedAt: now,
	})

	clientName := ""
	if client, _ := uc.clientRepo.GetByID(quote.ClientID); client != nil {
		clientName = client.Name
	}
	return toInvoiceResponse(invoice, clientName), nil
}

// GetInvoice retourne la facture.
func (uc *ConvertUseCase) GetInvoice(id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(invoice.ClientID); client != nil {
		clientName = client.Name
	}
	return toInvoiceResponse(invoice, clientName), nil
}

// ListInvoices liste les factures, optionnellement filtrées par statut.
func (uc *ConvertUseCase) ListInvoices(status string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	switch status {
	case "", entity.InvoiceStatusPending, entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue:
	default:
		return nil, domain.ErrInvalidInput
	}
	invoices, err := uc.invoiceRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		clientName := ""
		if client, _ := uc.clientRepo.GetByID(inv.ClientID); client != nil {
			clientName = client.Name
		}
		out = append(out, toInvoiceResponse(inv, clientName))
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.Invoice, clientName string) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		ClientID:      inv.ClientID,
		ClientName:    clientName,
		QuoteID:       inv.QuoteID,
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount,
		TaxRate:       inv.TaxRate,
		Status:        inv.Status,
		DueDate:       inv.DueDate.Format("2006-01-02"),
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}
}
