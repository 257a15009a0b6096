// Package integrations porte le catalogue d'intégrations tierces et la
// gestion de leurs configurations (paires clé/valeur opaques).
package integrations

import "github.com/jannahweb/jannah-os-api/internal/application/dto"

// CatalogEntry entrée statique du catalogue. Le schéma de champs pilote le
// formulaire de configuration générique côté dashboard : aucun formulaire
// spécifique par intégration.
type CatalogEntry struct {
	Slug        string
	Name        string
	Category    string
	Description string
	Fields      []dto.IntegrationFieldSchema
}

// Catalog catalogue figé des services connectables. L'ordre est celui de
// l'affichage dans le dashboard.
var Catalog = []CatalogEntry{
	{
		Slug:        "stripe",
		Name:        "Stripe",
		Category:    "Paiement",
		Description: "Encaissement des factures par lien de paiement",
		Fields: []dto.IntegrationFieldSchema{
			{Key: "secret_key", Label: "Clé secrète", Kind: "password", Placeholder: "sk_live_..."},
			{Key: "webhook_secret", Label: "Secret du webhook", Kind: "password", Placeholder: "whsec_..."},
		},
	},
	{
		Slug:        "google-analytics",
		Name:        "Google Analytics",
		Category:    "Mesure",
		Description: "Trafic des sites clients",
		Fields: []dto.IntegrationFieldSchema{
			{Key: "measurement_id", Label: "ID de mesure", Kind: "text", Placeholder: "G-XXXXXXXXXX"},
			{Key: "api_secret", Label: "Secret API", Kind: "password"},
		},
	},
	{
		Slug:        "mailchimp",
		Name:        "Mailchimp",
		Category:    "Emailing",
		Description: "Campagnes et newsletters clients",
		Fields: []dto.IntegrationFieldSchema{
			{Key: "api_key", Label: "Clé API", Kind: "password"},
			{Key: "server_prefix", Label: "Préfixe serveur", Kind: "text", Placeholder: "us21"},
		},
	},
	{
		Slug:        "slack",
		Name:        "Slack",
		Category:    "Communication",
		Description: "Alertes de l'agence dans un canal",
		Fields: []dto.IntegrationFieldSchema{
			{Key: "webhook_url", Label: "URL du webhook entrant", Kind: "url", Placeholder: "https://hooks.slack.com/..."},
		},
	},
	{
		Slug:        "notion",
		Name:        "Notion",
		Category:    "Organisation",
		Description: "Cahiers des charges et documentation projet",
		Fields: []dto.IntegrationFieldSchema{
			{Key: "api_token", Label: "Token d'intégration", Kind: "password", Placeholder: "secret_..."},
			{Key: "database_id", Label: "ID de la base", Kind: "text"},
		},
	},
	{
		Slug:        "ovh",
		Name:        "OVH",
		Category:    "Hébergement",
		Description: "Domaines et hébergements des sites clients",
		Fields: []dto.IntegrationFieldSchema{
			{Key: "application_key", Label: "Application key", Kind: "text"},
			{Key: "application_secret", Label: "Application secret", Kind: "password"},
			{Key: "consumer_key", Label: "Consumer key", Kind: "password"},
		},
	},
}

// FindCatalogEntry retourne l'entrée du catalogue pour un slug, ou nil.
func FindCatalogEntry(slug string) *CatalogEntry {
	for i := range Catalog {
		if Catalog[i].Slug == slug {
			return &Catalog[i]
		}
	}
	return nil
}
