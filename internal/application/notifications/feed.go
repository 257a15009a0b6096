// Package notifications porte le fil de notifications temps réel : un état
// local par consommateur, synchronisé en continu par les événements
// insert/update/delete émis côté base.
package notifications

import (
	"context"
	"sync"

	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
	"github.com/jannahweb/jannah-os-api/pkg/logger"
)

// États du fil pour un consommateur.
const (
	StateUninitialized = "uninitialized"
	StateLoading       = "loading"
	StateSynced        = "synced"
)

// Types d'événements du change feed.
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// Event changement reçu du feed. Pour delete seul ID est renseigné.
type Event struct {
	Type         string
	ID           string
	Notification *entity.Notification
}

// Subscription abonnement actif au change feed.
type Subscription interface {
	// Events livre les changements dans l'ordre d'arrivée.
	Events() <-chan Event
	// Unsubscribe libère l'abonnement. Idempotent : un second appel est sans effet.
	Unsubscribe() error
}

// ChangeFeed port d'abonnement aux changements de la table notifications.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

// Feed état local du fil pour un consommateur (une connexion dashboard).
//
// Machine d'états : Uninitialized → Loading → Synced. Une fois Synced,
// chaque événement est appliqué par un réducteur pur : insert en tête
// (ordre d'arrivée du feed, pas ordre des timestamps), update remplace par
// identité, delete retire par identité.
type Feed struct {
	mu    sync.RWMutex
	state string
	items []*entity.Notification

	repo repository.NotificationRepository
	feed ChangeFeed
	log  *logger.Logger

	sub     Subscription
	closeMu sync.Mutex
	closed  bool

	onEvent func(Event) // optionnel, invoqué après application d'un événement
}

// NewFeed construit un fil non initialisé.
func NewFeed(repo repository.NotificationRepository, feed ChangeFeed, log *logger.Logger) *Feed {
	return &Feed{
		state: StateUninitialized,
		repo:  repo,
		feed:  feed,
		log:   log,
	}
}

// OnEvent enregistre un callback invoqué après chaque événement appliqué
// (poussée websocket vers le dashboard). À appeler avant Start.
func (f *Feed) OnEvent(fn func(Event)) {
	f.onEvent = fn
}

// Start passe en Loading, charge l'ensemble initial puis s'abonne au feed.
// Un échec du chargement initial laisse le fil en Synced dégradé avec un
// ensemble vide : l'erreur est journalisée, jamais bloquante pour la vue.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	f.state = StateLoading
	f.mu.Unlock()

	items, err := f.repo.List(100, 0)
	if err != nil {
		f.log.Error().Err(err).Msg("chargement initial des notifications échoué, fil dégradé")
		items = nil
	}

	f.mu.Lock()
	f.items = items
	f.state = StateSynced
	f.mu.Unlock()

	sub, err := f.feed.Subscribe(ctx)
	if err != nil {
		// Synced dégradé : l'état local vit sans mises à jour poussées.
		f.log.Error().Err(err).Msg("abonnement au change feed échoué")
		return err
	}
	f.sub = sub

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub.Events():
				if !ok {
					return
				}
				f.Apply(ev)
			}
		}
	}()
	return nil
}

// Apply applique un événement à l'état local puis notifie le callback.
func (f *Feed) Apply(ev Event) {
	f.mu.Lock()
	switch ev.Type {
	case EventInsert:
		if ev.Notification != nil {
			f.items = applyInsert(f.items, ev.Notification)
		}
	case EventUpdate:
		if ev.Notification != nil {
			f.items = applyUpdate(f.items, ev.Notification)
		}
	case EventDelete:
		f.items = applyDelete(f.items, ev.ID)
	}
	f.mu.Unlock()

	if f.onEvent != nil {
		f.onEvent(ev)
	}
}

// State retourne l'état courant de la machine.
func (f *Feed) State() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// Snapshot retourne une copie de l'ensemble local (plus récent en premier).
func (f *Feed) Snapshot() []*entity.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*entity.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// UnreadCount compte les notifications non lues de l'état local.
func (f *Feed) UnreadCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, item := range f.items {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// MarkAsRead pousse la mise à jour côté base ; l'état local sera corrigé par
// l'écho update du feed (cohérence éventuelle, pas de mutation optimiste).
func (f *Feed) MarkAsRead(id string) error {
	return f.repo.MarkRead(id)
}

// MarkAllAsRead applique la mutation optimiste immédiatement puis pousse
// l'opération bulk ; en cas d'échec l'état local est restauré.
func (f *Feed) MarkAllAsRead() error {
	f.mu.Lock()
	previous := make([]bool, len(f.items))
	for i, item := range f.items {
		previous[i] = item.IsRead
		item.IsRead = true
	}
	f.mu.Unlock()

	if err := f.repo.MarkAllRead(); err != nil {
		f.mu.Lock()
		for i := range f.items {
			if i < len(previous) {
				f.items[i].IsRead = previous[i]
			}
		}
		f.mu.Unlock()
		return err
	}
	return nil
}

// ClearAll vide l'état local immédiatement puis pousse la suppression bulk ;
// en cas d'échec l'ensemble est restauré.
func (f *Feed) ClearAll() error {
	f.mu.Lock()
	previous := f.items
	f.items = nil
	f.mu.Unlock()

	if err := f.repo.DeleteAll(); err != nil {
		f.mu.Lock()
		f.items = previous
		f.mu.Unlock()
		return err
	}
	return nil
}

// Close libère l'abonnement. Contrat de teardown obligatoire : exactement
// une libération effective, les appels suivants sont sans effet.
func (f *Feed) Close() error {
	f.closeMu.Lock()
	defer f.closeMu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	if f.sub == nil {
		return nil
	}
	return f.sub.Unsubscribe()
}

// ── Réducteurs purs ──────────────────────────────────────────────────────────

// applyInsert insère en tête (ordre d'arrivée). Idempotent sur l'identité :
// un insert déjà vu devient un remplacement.
func applyInsert(items []*entity.Notification, n *entity.Notification) []*entity.Notification {
	for i, item := range items {
		if item.ID == n.ID {
			items[i] = n
			return items
		}
	}
	return append([]*entity.Notification{n}, items...)
}

// applyUpdate remplace par identité ; un update pour un ID inconnu est ignoré.
func applyUpdate(items []*entity.Notification, n *entity.Notification) []*entity.Notification {
	for i, item := range items {
		if item.ID == n.ID {
			items[i] = n
			return items
		}
	}
	return items
}

// applyDelete retire par identité.
func applyDelete(items []*entity.Notification, id string) []*entity.Notification {
	for i, item := range items {
		if item.ID == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
