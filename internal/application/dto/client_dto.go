package dto

import "time"

// CreateClientRequest body pour POST /api/clients (formulaire d'intake).
type CreateClientRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=200"`
	Email      string   `json:"email" validate:"required,email"`
	Services   []string `json:"services,omitempty"`
	AssignedTo string   `json:"assigned_to,omitempty"`
}

// UpdateClientRequest body pour PUT /api/clients/:id. Pointeurs = champs optionnels.
type UpdateClientRequest struct {
	Name            *string  `json:"name,omitempty"`
	Email           *string  `json:"email,omitempty"`
	Status          *string  `json:"status,omitempty"`
	Services        []string `json:"services,omitempty"`
	Progress        *int     `json:"progress,omitempty"`
	AssignedTo      *string  `json:"assigned_to,omitempty"`
	CahierCompleted *bool    `json:"cahier_completed,omitempty"`
}

// ClientResponse fiche client en réponse.
type ClientResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Status          string    `json:"status"`
	Services        []string  `json:"services"`
	Progress        int       `json:"progress"`
	Slug            string    `json:"slug"`
	AssignedTo      string    `json:"assigned_to,omitempty"`
	LastContact     time.Time `json:"last_contact"`
	CahierCompleted bool      `json:"cahier_completed"`
	CreatedAt       time.Time `json:"created_at"`
}
