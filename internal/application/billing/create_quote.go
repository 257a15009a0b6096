package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

var oneHundred = decimal.NewFromInt(100)

// QuoteUseCase crée et liste les devis.
type QuoteUseCase struct {
	quoteRepo  repository.QuoteRepository
	clientRepo repository.ClientRepository
}

// NewQuoteUseCase construit le cas d'usage.
func NewQuoteUseCase(quoteRepo repository.QuoteRepository, clientRepo repository.ClientRepository) *QuoteUseCase {
	return &QuoteUseCase{quoteRepo: quoteRepo, clientRepo: clientRepo}
}

// CreateQuote valide la demande (client sélectionné, au moins une ligne,
// montants non négatifs), calcule sous-total et total depuis les lignes et
// le taux de TVA, puis persiste en statut draft.
//
// La validation court-circuite avant tout appel réseau : un payload
// invalide ne touche jamais la base.
func (uc *QuoteUseCase) CreateQuote(in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Description == "" || !item.Quantity.IsPositive() || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	subtotal := decimal.Zero
	for _, item := range in.Items {
		subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice))
	}
	// Total = Subtotal × (1 + TaxRate/100), en décimal exact
	total := subtotal.Mul(oneHundred.Add(in.TaxRate)).Div(oneHundred)

	now := time.Now()
	quote := &entity.Quote{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Title:     in.Title,
		Subtotal:  subtotal,
		TaxRate:   in.TaxRate,
		Total:     total,
		Status:    entity.QuoteStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items := make([]*entity.QuoteItem, 0, len(in.Items))
	for i, item := range in.Items {
		items = append(items, &entity.QuoteItem{
			ID:          uuid.New().String(),
			QuoteID:     quote.ID,
			Position:    i,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	if err := uc.quoteRepo.Create(quote, items); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items, client.Name), nil
}

// GetQuote retourne le devis avec ses lignes et le nom du client.
func (uc *QuoteUseCase) GetQuote(id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quoteRepo.GetItemsByQuoteID(id)
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(quote.ClientID); client != nil {
		clientName = client.Name
	}
	return toQuoteResponse(quote, items, clientName), nil
}

// ListQuotes liste les devis (refetch complet côté dashboard, pas de patch incrémental).
func (uc *QuoteUseCase) ListQuotes(page dto.PageRequest) ([]*dto.QuoteResponse, error) {
	page.DefaultPage()
	quotes, err := uc.quoteRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items, err := uc.quoteRepo.GetItemsByQuoteID(q.ID)
		if err != nil {
			return nil, err
		}
		clientName := ""
		if client, _ := uc.clientRepo.GetByID(q.ClientID); client != nil {
			clientName = client.Name
		}
		out = append(out, toQuoteResponse(q, items, clientName))
	}
	return out, nil
}

// MarkSent passe un devis draft en sent (envoi au client).
func (uc *QuoteUseCase) MarkSent(id string) error {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return err
	}
	if quote == nil {
		return domain.ErrNotFound
	}
	moved, err := uc.quoteRepo.TransitionStatus(id, []string{entity.QuoteStatusDraft}, entity.QuoteStatusSent)
	if err != nil {
		return err
	}
	if !moved {
		// Déjà envoyé ou déjà facturé
		if quote.Status == entity.QuoteStatusInvoiced {
			return domain.ErrAlreadyInvoiced
		}
		return nil
	}
	return nil
}

func toQuoteResponse(q *entity.Quote, items []*entity.QuoteItem, clientName string) *dto.QuoteResponse {
	out := &dto.QuoteResponse{
		ID:         q.ID,
		ClientID:   q.ClientID,
		ClientName: clientName,
		Title:      q.Title,
		Subtotal:   q.Subtotal,
		TaxRate:    q.TaxRate,
		Total:      q.Total,
		Status:     q.Status,
		CreatedAt:  q.CreatedAt.Format(time.RFC3339),
		Items:      make([]dto.QuoteItemResponse, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.QuoteItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return out
}
