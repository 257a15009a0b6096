package entity

import "time"

// Types de notification.
const (
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
	NotificationInfo    = "info"
)

// Notification entrée du fil de notifications (globale à l'agence, sans
// rattachement client). Créée par des triggers côté base, lue/effacée
// par l'utilisateur.
type Notification struct {
	ID        string
	Title     string
	Message   string
	Type      string // voir Notification*
	IsRead    bool
	CreatedAt time.Time
}
