package clients_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jannahweb/jannah-os-api/internal/application/clients"
	"github.com/jannahweb/jannah-os-api/internal/application/dto"
	"github.com/jannahweb/jannah-os-api/internal/domain"
	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

// fakeClientRepo double en mémoire du port de persistance.
type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*entity.Client{}}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) GetBySlug(slug string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) List(f repository.ClientFilter) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.clients))
	for _, c := range r.clients {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(id string) error {
	delete(r.clients, id)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

// L'intake crée la fiche en statut "Nouveau", progression 0, avec un slug
// dérivé du nom (accents repliés).
func TestCreate_FicheInitiale(t *testing.T) {
	uc := clients.NewUseCase(newFakeClientRepo())

	out, err := uc.Create(dto.CreateClientRequest{
		Name:     "Café de l'Été",
		Email:    "contact@cafedelete.fr",
		Services: []string{"Site vitrine", "SEO"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ClientStatusNouveau, out.Status)
	assert.Equal(t, 0, out.Progress)
	assert.Equal(t, "cafe-de-l-ete", out.Slug)
	assert.False(t, out.CahierCompleted)
}

func TestCreate_ChampsRequis(t *testing.T) {
	uc := clients.NewUseCase(newFakeClientRepo())

	_, err := uc.Create(dto.CreateClientRequest{Name: "", Email: "x@y.fr"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateClientRequest{Name: "Sans Email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Deux clients homonymes : le second slug reçoit un suffixe pour rester
// unique en URL.
func TestCreate_CollisionDeSlug(t *testing.T) {
	uc := clients.NewUseCase(newFakeClientRepo())

	first, err := uc.Create(dto.CreateClientRequest{Name: "Boulangerie Martin", Email: "a@martin.fr"})
	require.NoError(t, err)
	second, err := uc.Create(dto.CreateClientRequest{Name: "Boulangerie Martin", Email: "b@martin.fr"})
	require.NoError(t, err)

	assert.Equal(t, "boulangerie-martin", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "boulangerie-martin-")
}

// Mise à jour partielle : seuls les champs fournis bougent ; le slug reste
// figé même quand le nom change.
func TestUpdate_Partielle_SlugFige(t *testing.T) {
	repo := newFakeClientRepo()
	uc := clients.NewUseCase(repo)
	created, err := uc.Create(dto.CreateClientRequest{Name: "Garage Dupont", Email: "contact@garage.fr"})
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdateClientRequest{
		Name:     strPtr("Garage Dupont & Fils"),
		Status:   strPtr(entity.ClientStatusEnDev),
		Progress: intPtr(40),
	})
	require.NoError(t, err)

	assert.Equal(t, "Garage Dupont & Fils", out.Name)
	assert.Equal(t, entity.ClientStatusEnDev, out.Status)
	assert.Equal(t, 40, out.Progress)
	assert.Equal(t, created.Slug, out.Slug, "le slug sert d'URL publique, il ne doit jamais changer")
	assert.Equal(t, "contact@garage.fr", out.Email, "l'email non fourni reste inchangé")
}

func TestUpdate_ValidationStatutEtProgression(t *testing.T) {
	repo := newFakeClientRepo()
	uc := clients.NewUseCase(repo)
	created, err := uc.Create(dto.CreateClientRequest{Name: "Client", Email: "c@c.fr"})
	require.NoError(t, err)

	_, err = uc.Update(created.ID, dto.UpdateClientRequest{Status: strPtr("Archivé")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(created.ID, dto.UpdateClientRequest{Progress: intPtr(101)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(created.ID, dto.UpdateClientRequest{Progress: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update("absent", dto.UpdateClientRequest{Progress: intPtr(10)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_CahierDesCharges(t *testing.T) {
	uc := clients.NewUseCase(newFakeClientRepo())
	created, err := uc.Create(dto.CreateClientRequest{Name: "Client", Email: "c@c.fr"})
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdateClientRequest{CahierCompleted: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, out.CahierCompleted)
}

func TestList_FiltreStatutInvalide(t *testing.T) {
	uc := clients.NewUseCase(newFakeClientRepo())

	_, err := uc.List("Imaginaire", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	repo := newFakeClientRepo()
	uc := clients.NewUseCase(repo)
	created, err := uc.Create(dto.CreateClientRequest{Name: "Éphémère", Email: "e@e.fr"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.Empty(t, repo.clients)

	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrNotFound)
}
