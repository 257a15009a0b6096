package repository

import "github.com/jannahweb/jannah-os-api/internal/domain/entity"

// IntegrationRepository définit le port de persistance pour Integration.
type IntegrationRepository interface {
	// Attach instancie une entrée du catalogue (is_connected = false).
	Attach(integration *entity.Integration) error
	GetBySlug(slug string) (*entity.Integration, error)
	List() ([]*entity.Integration, error)
	// SaveConfig remplace la configuration et marque l'intégration connectée.
	SaveConfig(slug string, config map[string]string) error
	// Disconnect conserve la ligne mais repasse is_connected à false.
	Disconnect(slug string) error
}
