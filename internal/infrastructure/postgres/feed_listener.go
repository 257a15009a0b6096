package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jannahweb/jannah-os-api/internal/application/notifications"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/pkg/logger"
)

// Canal NOTIFY alimenté par le trigger sur la table notifications
// (voir cmd/create-schema).
const notificationChannel = "notifications_feed"

// FeedListener implémente notifications.ChangeFeed via LISTEN/NOTIFY.
// Chaque abonnement monopolise une connexion du pool pendant sa durée de
// vie : LISTEN est attaché à la session PostgreSQL.
type FeedListener struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewFeedListener construit le listener.
func NewFeedListener(pool *pgxpool.Pool, log *logger.Logger) *FeedListener {
	return &FeedListener{pool: pool, log: log}
}

// feedPayload format JSON émis par le trigger : opération + ligne.
type feedPayload struct {
	Op  string `json:"op"` // INSERT | UPDATE | DELETE
	Row struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Message   string    `json:"message"`
		Type      string    `json:"type"`
		IsRead    bool      `json:"is_read"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"row"`
}

// Subscribe acquiert une connexion dédiée, exécute LISTEN et démarre la
// boucle de réception. La souscription vit jusqu'à Unsubscribe ou
// l'annulation du contexte.
func (l *FeedListener) Subscribe(ctx context.Context) (notifications.Subscription, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire feed conn: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notificationChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", notificationChannel, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &feedSubscription{
		events: make(chan notifications.Event, 16),
		cancel: cancel,
	}

	go func() {
		defer conn.Release()
		defer close(sub.events)
		for {
			n, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				// Contexte annulé = teardown normal ; le reste est journalisé.
				if subCtx.Err() == nil {
					l.log.Error().Err(err).Msg("réception NOTIFY interrompue")
				}
				return
			}
			ev, ok := parseFeedPayload(n.Payload)
			if !ok {
				l.log.Warn().Str("payload", n.Payload).Msg("payload NOTIFY illisible, ignoré")
				continue
			}
			select {
			case sub.events <- ev:
			case <-subCtx.Done():
				return
			}
		}
	}()

	return sub, nil
}

// parseFeedPayload traduit le JSON du trigger en événement du fil.
func parseFeedPayload(raw string) (notifications.Event, bool) {
	var p feedPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return notifications.Event{}, false
	}
	switch strings.ToUpper(p.Op) {
	case "INSERT", "UPDATE":
		evType := notifications.EventInsert
		if strings.ToUpper(p.Op) == "UPDATE" {
			evType = notifications.EventUpdate
		}
		return notifications.Event{
			Type: evType,
			ID:   p.Row.ID,
			Notification: &entity.Notification{
				ID:        p.Row.ID,
				Title:     p.Row.Title,
				Message:   p.Row.Message,
				Type:      p.Row.Type,
				IsRead:    p.Row.IsRead,
				CreatedAt: p.Row.CreatedAt,
			},
		}, true
	case "DELETE":
		return notifications.Event{Type: notifications.EventDelete, ID: p.Row.ID}, true
	}
	return notifications.Event{}, false
}

// feedSubscription abonnement actif ; Unsubscribe est idempotent.
type feedSubscription struct {
	events chan notifications.Event
	cancel context.CancelFunc
	once   sync.Once
}

// Events livre les changements dans l'ordre d'arrivée.
func (s *feedSubscription) Events() <-chan notifications.Event {
	return s.events
}

// Unsubscribe libère la connexion d'écoute. Exactement une libération
// effective, quel que soit le nombre d'appels.
func (s *feedSubscription) Unsubscribe() error {
	s.once.Do(s.cancel)
	return nil
}
