package repository

import "github.com/jannahweb/jannah-os-api/internal/domain/entity"

// ClientFilter critères de listing des clients.
type ClientFilter struct {
	Status string // vide = tous
	Search string // sous-chaîne sur nom ou email
	Limit  int
	Offset int
}

// ClientRepository définit le port de persistance pour Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetBySlug(slug string) (*entity.Client, error)
	List(f ClientFilter) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
}
