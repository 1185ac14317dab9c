package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de UserRepository en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
	err   error // si se setea, todas las operaciones fallan con este error
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[string]*entity.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) ListByManager(managerID string) ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.User
	for _, u := range f.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) { return f.GetByEmail(email) }

// strPtr helper para ManagerID.
func strPtr(s string) *string { return &s }

// makeRep construye un sales_rep reportando a managerID.
func makeRep(id, managerID string) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleSalesRep, ManagerID: strPtr(managerID), IsActive: true}
}

// makeManager construye un sales_manager.
func makeManager(id string) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleSalesManager, IsActive: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TeamResolver
// ──────────────────────────────────────────────────────────────────────────────

// El equipo de un manager incluye al manager mismo y a todos sus reportes
// directos, y excluye a cualquier otro usuario.
func TestResolveTeam_IncluyeSelfYReportesDirectos(t *testing.T) {
	repo := newFakeUserRepo(
		makeManager("m1"),
		makeRep("r1", "m1"),
		makeRep("r2", "m1"),
		makeRep("r3", "otro-manager"),
	)
	resolver := access.NewTeamResolver(repo)

	team, err := resolver.ResolveTeam("m1")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"m1", "r1", "r2"}, team,
		"el equipo debe ser self + reportes directos")
	assert.NotContains(t, team, "r3",
		"un rep de otro manager no puede aparecer en el equipo")
}

// La resolución NO recursa: un reporte-de-reporte no entra al equipo.
func TestResolveTeam_NoRecursaEnReportesDeReportes(t *testing.T) {
	repo := newFakeUserRepo(
		makeManager("m1"),
		makeRep("r1", "m1"),
		makeRep("nieto", "r1"), // reporta a r1, no a m1
	)
	resolver := access.NewTeamResolver(repo)

	team, err := resolver.ResolveTeam("m1")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"m1", "r1"}, team)
}

// Manager inexistente: singleton {managerID}; validar existencia es del caller.
func TestResolveTeam_ManagerInexistente_DevuelveSingleton(t *testing.T) {
	resolver := access.NewTeamResolver(newFakeUserRepo())

	team, err := resolver.ResolveTeam("fantasma")
	require.NoError(t, err)

	assert.Equal(t, []string{"fantasma"}, team)
}

// Idempotencia: dos resoluciones sin escrituras intermedias dan el mismo set.
func TestResolveTeam_Idempotente(t *testing.T) {
	repo := newFakeUserRepo(makeManager("m1"), makeRep("r1", "m1"), makeRep("r2", "m1"))
	resolver := access.NewTeamResolver(repo)

	primera, err := resolver.ResolveTeam("m1")
	require.NoError(t, err)
	segunda, err := resolver.ResolveTeam("m1")
	require.NoError(t, err)

	assert.ElementsMatch(t, primera, segunda)
}

// DirectReports excluye al manager mismo.
func TestDirectReports_ExcluyeAlManager(t *testing.T) {
	repo := newFakeUserRepo(makeManager("m1"), makeRep("r1", "m1"))
	resolver := access.NewTeamResolver(repo)

	reports, err := resolver.DirectReports("m1")
	require.NoError(t, err)

	assert.Equal(t, []string{"r1"}, reports)
	assert.NotContains(t, reports, "m1")
}

// Error del repositorio se propaga sin traducir.
func TestResolveTeam_ErrorDeRepositorio_SePropaga(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("db caída")
	resolver := access.NewTeamResolver(repo)

	_, err := resolver.ResolveTeam("m1")
	assert.Error(t, err)
}
