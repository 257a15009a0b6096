package integrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/application/integrations"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
)

// fakeIntegrationRepo double en mémoire du port de persistance.
type fakeIntegrationRepo struct {
	attached map[string]*entity.Integration
}

func newFakeIntegrationRepo() *fakeIntegrationRepo {
	return &fakeIntegrationRepo{attached: map[string]*entity.Integration{}}
}

func (r *fakeIntegrationRepo) Attach(integ *entity.Integration) error {
	r.attached[integ.Slug] = integ
	return nil
}

func (r *fakeIntegrationRepo) GetBySlug(slug string) (*entity.Integration, error) {
	return r.attached[slug], nil
}

func (r *fakeIntegrationRepo) List() ([]*entity.Integration, error) {
	out := make([]*entity.Integration, 0, len(r.attached))
	for _, integ := range r.attached {
		out = append(out, integ)
	}
	return out, nil
}

func (r *fakeIntegrationRepo) SaveConfig(slug string, config map[string]string) error {
	integ := r.attached[slug]
	integ.Config = config
	integ.IsConnected = true
	return nil
}

func (r *fakeIntegrationRepo) Disconnect(slug string) error {
	r.attached[slug].IsConnected = false
	return nil
}

// Le listing renvoie tout le catalogue, même sans aucune intégration
// rattachée ; les schémas de champs sont présents pour le rendu générique.
func TestList_CatalogueComplet(t *testing.T) {
	uc := integrations.NewUseCase(newFakeIntegrationRepo())

	list, err := uc.List()
	require.NoError(t, err)
	require.Len(t, list, len(integrations.Catalog))

	for _, entry := range list {
		assert.False(t, entry.IsAttached)
		assert.False(t, entry.IsConnected)
		assert.NotEmpty(t, entry.Fields, "chaque entrée expose son schéma de champs")
	}
}

func TestAttach_PuisList_EtatFusionne(t *testing.T) {
	repo := newFakeIntegrationRepo()
	uc := integrations.NewUseCase(repo)

	out, err := uc.Attach("stripe")
	require.NoError(t, err)
	assert.True(t, out.IsAttached)
	assert.False(t, out.IsConnected, "attachée mais pas encore configurée")

	list, err := uc.List()
	require.NoError(t, err)
	for _, entry := range list {
		if entry.Slug == "stripe" {
			assert.True(t, entry.IsAttached)
		} else {
			assert.False(t, entry.IsAttached)
		}
	}
}

func TestAttach_HorsCatalogue(t *testing.T) {
	uc := integrations.NewUseCase(newFakeIntegrationRepo())

	_, err := uc.Attach("fax-premium")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttach_DejaRattachee(t *testing.T) {
	uc := integrations.NewUseCase(newFakeIntegrationRepo())

	_, err := uc.Attach("slack")
	require.NoError(t, err)

	_, err = uc.Attach("slack")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// La config est opaque mais ses clés doivent appartenir au schéma : une
// faute de frappe est refusée au lieu d'être enregistrée silencieusement.
func TestSaveConfig_ClesDuSchema(t *testing.T) {
	repo := newFakeIntegrationRepo()
	uc := integrations.NewUseCase(repo)
	_, err := uc.Attach("mailchimp")
	require.NoError(t, err)

	err = uc.SaveConfig("mailchimp", dto.SaveIntegrationConfigRequest{
		Config: map[string]string{"api_key": "abc-123", "server_prefix": "us21"},
	})
	require.NoError(t, err)
	assert.True(t, repo.attached["mailchimp"].IsConnected)

	err = uc.SaveConfig("mailchimp", dto.SaveIntegrationConfigRequest{
		Config: map[string]string{"api_kye": "oups"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveConfig_NonRattachee(t *testing.T) {
	uc := integrations.NewUseCase(newFakeIntegrationRepo())

	err := uc.SaveConfig("notion", dto.SaveIntegrationConfigRequest{
		Config: map[string]string{"api_token": "secret_x"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La déconnexion conserve la ligne : l'intégration reste rattachée, prête à
// être reconfigurée.
func TestDisconnect_ConserveLaLigne(t *testing.T) {
	repo := newFakeIntegrationRepo()
	uc := integrations.NewUseCase(repo)
	_, err := uc.Attach("ovh")
	require.NoError(t, err)
	require.NoError(t, uc.SaveConfig("ovh", dto.SaveIntegrationConfigRequest{
		Config: map[string]string{"application_key": "ak"},
	}))

	require.NoError(t, uc.Disconnect("ovh"))
	assert.False(t, repo.attached["ovh"].IsConnected)
	assert.NotNil(t, repo.attached["ovh"], "la ligne survit à la déconnexion")

	assert.ErrorIs(t, uc.Disconnect("jamais-vue"), domain.ErrNotFound)
}
