package entity

import "time"

// Integration connexion à un service tiers du catalogue.
// Config stocke les identifiants en paires clé/valeur opaques : le backend
// ne les interprète ni ne les valide.
type Integration struct {
	Slug        string // identifiant stable dans le catalogue statique
	Name        string
	IsConnected bool
	Config      map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
