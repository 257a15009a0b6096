package integrations

import (
	"time"

	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

// UseCase cas d'usage des intégrations : catalogue fusionné avec l'état de
// connexion, attachement, configuration, déconnexion.
type UseCase struct {
	repo repository.IntegrationRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(repo repository.IntegrationRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List retourne le catalogue complet, chaque entrée enrichie de l'état de
// connexion persisté. Les valeurs de config ne sont renvoyées que pour les
// intégrations attachées.
func (uc *UseCase) List() ([]*dto.IntegrationResponse, error) {
	attached, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]*entity.Integration, len(attached))
	for _, integ := range attached {
		bySlug[integ.Slug] = integ
	}

	out := make([]*dto.IntegrationResponse, 0, len(Catalog))
	for i := range Catalog {
		entry := &Catalog[i]
		resp := &dto.IntegrationResponse{
			Slug:        entry.Slug,
			Name:        entry.Name,
			Category:    entry.Category,
			Description: entry.Description,
			Fields:      entry.Fields,
		}
		if integ, ok := bySlug[entry.Slug]; ok {
			resp.IsAttached = true
			resp.IsConnected = integ.IsConnected
			resp.Config = integ.Config
		}
		out = append(out, resp)
	}
	return out, nil
}

// Attach instancie une entrée du catalogue (non connectée tant qu'aucune
// config n'est enregistrée). Attacher un slug hors catalogue est une erreur ;
// réattacher un slug déjà présent est un duplicata.
func (uc *UseCase) Attach(slug string) (*dto.IntegrationResponse, error) {
	entry := FindCatalogEntry(slug)
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.repo.GetBySlug(slug); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	integ := &entity.Integration{
		Slug:        slug,
		Name:        entry.Name,
		IsConnected: false,
		Config:      map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Attach(integ); err != nil {
		return nil, err
	}
	return &dto.IntegrationResponse{
		Slug:       entry.Slug,
		Name:       entry.Name,
		Category:   entry.Category,
		Fields:     entry.Fields,
		IsAttached: true,
		Config:     integ.Config,
	}, nil
}

// SaveConfig enregistre la configuration (opaque, non validée) et marque
// l'intégration connectée. Les clés inconnues du schéma sont refusées pour
// éviter les fautes de frappe silencieuses.
func (uc *UseCase) SaveConfig(slug string, in dto.SaveIntegrationConfigRequest) error {
	entry := FindCatalogEntry(slug)
	if entry == nil {
		return domain.ErrNotFound
	}
	existing, err := uc.repo.GetBySlug(slug)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	known := make(map[string]bool, len(entry.Fields))
	for _, f := range entry.Fields {
		known[f.Key] = true
	}
	for key := range in.Config {
		if !known[key] {
			return domain.ErrInvalidInput
		}
	}
	return uc.repo.SaveConfig(slug, in.Config)
}

// Disconnect repasse l'intégration en non connectée sans perdre la ligne.
func (uc *UseCase) Disconnect(slug string) error {
	existing, err := uc.repo.GetBySlug(slug)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Disconnect(slug)
}
