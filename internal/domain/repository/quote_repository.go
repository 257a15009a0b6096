package repository

import "github.com/jannahweb/jannah-os-api/internal/domain/entity"

// QuoteRepository définit le port de persistance pour Quote et ses lignes.
type QuoteRepository interface {
	// Create persiste l'en-tête et les lignes (ordre = Position).
	Create(quote *entity.Quote, items []*entity.QuoteItem) error
	GetByID(id string) (*entity.Quote, error)
	GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error)
	List(limit, offset int) ([]*entity.Quote, error)
	// TransitionStatus passe le devis de l'un des statuts `from` vers `to`.
	// Retourne false si aucun enregistrement ne correspondait (statut déjà
	// dépassé) — c'est la garde contre la double conversion.
	TransitionStatus(id string, from []string, to string) (bool, error)
	Delete(id string) error
}
