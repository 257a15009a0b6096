package dto

// IntegrationFieldSchema champ de configuration d'une intégration ; pilote
// le rendu générique du formulaire côté dashboard.
type IntegrationFieldSchema struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Kind        string `json:"kind"` // text | password | url
	Placeholder string `json:"placeholder,omitempty"`
}

// IntegrationResponse entrée du catalogue, fusionnée avec l'état de connexion.
type IntegrationResponse struct {
	Slug        string                   `json:"slug"`
	Name        string                   `json:"name"`
	Category    string                   `json:"category"`
	Description string                   `json:"description,omitempty"`
	IsAttached  bool                     `json:"is_attached"`
	IsConnected bool                     `json:"is_connected"`
	Fields      []IntegrationFieldSchema `json:"fields"`
	Config      map[string]string        `json:"config,omitempty"`
}

// SaveIntegrationConfigRequest body pour PUT /api/integrations/:slug/config.
type SaveIntegrationConfigRequest struct {
	Config map[string]string `json:"config"`
}
