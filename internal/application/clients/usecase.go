// Package clients porte les cas d'usage des fiches client de l'agence :
// intake, mise à jour de statut/avancement, cahier des charges, suppression.
package clients

import (
	"time"

	"github.com/google/uuid"

	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
	"github.com/jannahweb/jannah-os-api/pkg/slug"
)

// UseCase cas d'usage des clients.
type UseCase struct {
	repo repository.ClientRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(repo repository.ClientRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crée une fiche client depuis le formulaire d'intake.
// Statut initial "Nouveau", progression 0, slug dérivé du nom.
func (uc *UseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	s := slug.Make(in.Name)
	if existing, _ := uc.repo.GetBySlug(s); existing != nil {
		// Collision de slug : suffixe court pour garder l'unicité URL
		s = s + "-" + uuid.New().String()[:8]
	}
	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		Status:      entity.ClientStatusNouveau,
		Services:    in.Services,
		Progress:    0,
		Slug:        s,
		AssignedTo:  in.AssignedTo,
		LastContact: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update applique une mise à jour partielle (statut, progression, cahier, ...).
func (uc *UseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status != nil {
		if !entity.ValidClientStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		client.Status = *in.Status
	}
	if in.Progress != nil {
		if *in.Progress < 0 || *in.Progress > 100 {
			return nil, domain.ErrInvalidInput
		}
		client.Progress = *in.Progress
	}
	if in.Name != nil && *in.Name != "" {
		client.Name = *in.Name
		// Le slug reste figé après création : il sert d'URL publique.
	}
	if in.Email != nil && *in.Email != "" {
		client.Email = *in.Email
	}
	if in.Services != nil {
		client.Services = in.Services
	}
	if in.AssignedTo != nil {
		client.AssignedTo = *in.AssignedTo
	}
	if in.CahierCompleted != nil {
		client.CahierCompleted = *in.CahierCompleted
	}
	client.LastContact = time.Now()
	client.UpdatedAt = client.LastContact
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID retourne la fiche client.
func (uc *UseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List liste les clients filtrés par statut et recherche.
func (uc *UseCase) List(status, search string, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	if status != "" && !entity.ValidClientStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(repository.ClientFilter{
		Status: status,
		Search: search,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Delete supprime la fiche (action explicite, jamais en cascade).
func (uc *UseCase) Delete(id string) error {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	services := c.Services
	if services == nil {
		services = []string{}
	}
	return &dto.ClientResponse{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Status:          c.Status,
		Services:        services,
		Progress:        c.Progress,
		Slug:            c.Slug,
		AssignedTo:      c.AssignedTo,
		LastContact:     c.LastContact,
		CahierCompleted: c.CahierCompleted,
		CreatedAt:       c.CreatedAt,
	}
}
