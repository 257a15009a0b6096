package http

import (
	"context"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/application/notifications"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/pkg/logger"
)

// FeedFactory construit un fil neuf par connexion websocket : chaque
// dashboard tient son propre état local, synchronisé par le change feed.
type FeedFactory func() *notifications.Feed

// WSHandler pousse le fil de notifications en temps réel sur
// GET /api/notifications/feed (websocket).
type WSHandler struct {
	newFeed FeedFactory
	log     *logger.Logger
}

// NewWSHandler construit le handler websocket.
func NewWSHandler(newFeed FeedFactory, log *logger.Logger) *WSHandler {
	return &WSHandler{newFeed: newFeed, log: log}
}

// wsMessage trame sortante vers le dashboard.
type wsMessage struct {
	Type        string                      `json:"type"` // snapshot | insert | update | delete
	ID          string                      `json:"id,omitempty"`
	Item        *dto.NotificationResponse   `json:"item,omitempty"`
	Items       []*dto.NotificationResponse `json:"items,omitempty"`
	UnreadCount int                         `json:"unread_count"`
}

// wsCommand trame entrante du dashboard.
type wsCommand struct {
	Action string `json:"action"` // mark_read | mark_all_read | clear_all
	ID     string `json:"id,omitempty"`
}

// Upgrade filtre les requêtes non-websocket avant websocket.New.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve gère le cycle de vie d'une connexion : snapshot initial, poussée des
// événements appliqués, commandes de mutation, et teardown de l'abonnement à
// la déconnexion (exactement une libération).
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		feed := h.newFeed()
		defer func() {
			if err := feed.Close(); err != nil {
				h.log.Warn().Err(err).Msg("libération de l'abonnement au feed")
			}
		}()

		// conn est écrit depuis le callback d'événement et depuis ce handler.
		var writeMu sync.Mutex
		send := func(msg wsMessage) {
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.WriteJSON(msg); err != nil {
				cancel()
			}
		}

		feed.OnEvent(func(ev notifications.Event) {
			msg := wsMessage{Type: ev.Type, ID: ev.ID, UnreadCount: feed.UnreadCount()}
			if ev.Notification != nil {
				msg.ID = ev.Notification.ID
				msg.Item = wsNotification(ev.Notification)
			}
			send(msg)
		})

		if err := feed.Start(ctx); err != nil {
			h.log.Warn().Err(err).Msg("fil démarré sans abonnement temps réel")
		}
		send(wsMessage{
			Type:        "snapshot",
			Items:       wsNotifications(feed.Snapshot()),
			UnreadCount: feed.UnreadCount(),
		})

		for {
			var cmd wsCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			var err error
			switch cmd.Action {
			case "mark_read":
				err = feed.MarkAsRead(cmd.ID)
			case "mark_all_read":
				err = feed.MarkAllAsRead()
			case "clear_all":
				err = feed.ClearAll()
			default:
				continue
			}
			if err != nil {
				h.log.Warn().Err(err).Str("action", cmd.Action).Msg("commande du fil échouée")
				// L'état local a déjà été restauré ; on renvoie la vérité
				// courante au dashboard.
				send(wsMessage{
					Type:        "snapshot",
					Items:       wsNotifications(feed.Snapshot()),
					UnreadCount: feed.UnreadCount(),
				})
			}
		}
	})
}

func wsNotification(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func wsNotifications(items []*entity.Notification) []*dto.NotificationResponse {
	out := make([]*dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, wsNotification(n))
	}
	return out
}
