package entity

import "time"

// Statuts d'un client agence. Valeurs affichées telles quelles dans le dashboard.
const (
	ClientStatusNouveau  = "Nouveau"
	ClientStatusEnDev    = "En Développement"
	ClientStatusEnLigne  = "En Ligne"
	ClientStatusEnAttent = "En Attente"
	ClientStatusSuspendu = "Suspendu"
)

// ValidClientStatus indique si s est un statut client connu.
func ValidClientStatus(s string) bool {
	switch s {
	case ClientStatusNouveau, ClientStatusEnDev, ClientStatusEnLigne,
		ClientStatusEnAttent, ClientStatusSuspendu:
		return true
	}
	return false
}

// Client représente un client de l'agence (fiche projet).
type Client struct {
	ID              string
	Name            string
	Email           string
	Status          string   // voir ClientStatus*
	Services        []string // prestations souscrites (site vitrine, SEO, ...)
	Progress        int      // avancement projet 0–100
	Slug            string   // dérivé du nom, URL-safe
	AssignedTo      string
	LastContact     time.Time
	CahierCompleted bool // cahier des charges rempli
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
