package entity

import "time"

// Rôles valides pour User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// User représente un membre de l'agence.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, jamais en clair après persistance
	Name         string
	Role         string // admin, manager
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
