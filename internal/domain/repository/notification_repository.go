package repository

import "github.com/jannahweb/jannah-os-api/internal/domain/entity"

// NotificationRepository définit le port de persistance pour Notification.
// Les mutations déclenchent les triggers NOTIFY côté base ; le fil temps
// réel reçoit donc l'écho de chaque opération.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	List(limit, offset int) ([]*entity.Notification, error)
	MarkRead(id string) error
	MarkAllRead() error
	DeleteAll() error
}
