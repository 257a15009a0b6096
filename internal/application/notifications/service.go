package notifications

import (
	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

// Service expose les opérations HTTP du fil (liste et mutations côté base).
// Les consommateurs temps réel reçoivent l'écho de chaque mutation via leur
// Feed ; ce service ne tient aucun état local.
type Service struct {
	repo repository.NotificationRepository
}

// NewService construit le service.
func NewService(repo repository.NotificationRepository) *Service {
	return &Service{repo: repo}
}

// List retourne le fil persisté, plus récent en premier.
func (s *Service) List(page dto.PageRequest) ([]*dto.NotificationResponse, error) {
	page.DefaultPage()
	list, err := s.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marque une notification comme lue.
func (s *Service) MarkRead(id string) error {
	return s.repo.MarkRead(id)
}

// MarkAllRead marque tout le fil comme lu.
func (s *Service) MarkAllRead() error {
	return s.repo.MarkAllRead()
}

// ClearAll vide le fil.
func (s *Service) ClearAll() error {
	return s.repo.DeleteAll()
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
