package repository

import "github.com/jannahweb/jannah-os-api/internal/domain/entity"

// UserRepository définit le port de persistance pour User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
