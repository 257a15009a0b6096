package postgres

import (
	"context"
	"fmt"

	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implémentation de NotificationRepository. Chaque mutation
// déclenche le trigger NOTIFY (voir feed_listener.go) qui renvoie l'écho au
// fil temps réel.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construit l'adaptateur.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste une notification.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, title, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.Title, n.Message, n.Type, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List retourne les notifications, plus récentes en premier.
func (r *NotificationRepo) List(limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, title, message, type, is_read, created_at
		FROM notifications ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marque une notification comme lue.
func (r *NotificationRepo) MarkRead(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marque tout le fil comme lu (opération bulk).
func (r *NotificationRepo) MarkAllRead() error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE is_read = false`)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// DeleteAll vide le fil (action explicite de l'utilisateur).
func (r *NotificationRepo) DeleteAll() error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM notifications`)
	if err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}
