package dto

import "time"

// NotificationResponse entrée du fil en réponse.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // success | warning | error | info
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
