package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

func newCompanyUC(companies *fakeCompanies, sink *fakeAudit) *usecase.CompanyUseCase {
	users := orgUsers()
	engine, _ := orgEngine(users)
	return usecase.NewCompanyUseCase(companies, users, engine, newRecorder(sink))
}

// Escenario A: admin crea con owner_id explícito → el dueño almacenado es ese rep.
func TestCompanyCreate_AdminConDuenoExplicito(t *testing.T) {
	sink := &fakeAudit{}
	uc := newCompanyUC(newFakeCompanies(), sink)

	resp, err := uc.Create(admin(), noMeta(), dto.CreateCompanyRequest{Name: "Acme", OwnerID: "r1"})
	require.NoError(t, err)

	assert.Equal(t, "r1", resp.OwnerID, "el override de admin debe respetarse")

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	e := sink.last()
	assert.Equal(t, entity.ActionCreate, e.Action)
	assert.Equal(t, entity.EntityCompany, e.EntityType)
	assert.Equal(t, "adm", e.PerformedBy)
}

// Escenario B: rep envía owner_id de su manager → el dueño almacenado es el rep.
func TestCompanyCreate_RepIgnoraOwnerEnviado(t *testing.T) {
	uc := newCompanyUC(newFakeCompanies(), &fakeAudit{})

	resp, err := uc.Create(rep(), noMeta(), dto.CreateCompanyRequest{Name: "Acme", OwnerID: "m1"})
	require.NoError(t, err)

	assert.Equal(t, "r1", resp.OwnerID,
		"un rep no puede crear registros pre-asignados a otro usuario")
}

// Admin que asigna a un usuario inexistente recibe NotFound, sin crear nada.
func TestCompanyCreate_DuenoInexistente(t *testing.T) {
	companies := newFakeCompanies()
	uc := newCompanyUC(companies, &fakeAudit{})

	_, err := uc.Create(admin(), noMeta(), dto.CreateCompanyRequest{Name: "Acme", OwnerID: "fantasma"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, companies.items)
}

// Escenario C: manager ajeno intenta editar → access_denied y sin mutación.
func TestCompanyUpdate_ManagerAjenoDenegado(t *testing.T) {
	companies := newFakeCompanies(&entity.Company{ID: "c1", Name: "Original", OwnerID: "r1"})
	sink := &fakeAudit{}
	users := orgUsers()
	engine, _ := orgEngine(users)
	uc := usecase.NewCompanyUseCase(companies, users, engine, newRecorder(sink))

	m2 := identityFor("m2")
	nuevo := "Cambiado"
	_, err := uc.Update(m2, noMeta(), "c1", dto.UpdateCompanyRequest{Name: &nuevo})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.ReasonAccessDenied, domain.DenialReason(err))
	assert.Equal(t, "Original", companies.items["c1"].Name, "no debe haber mutación")

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, sink.count(), "un intento denegado no produce entrada de auditoría")
}

// Reasignación dentro del equipo del manager: permitida y auditada con el
// nombre del nuevo dueño resuelto.
func TestCompanyReassign_DentroDelEquipo(t *testing.T) {
	companies := newFakeCompanies(&entity.Company{ID: "c1", Name: "Acme", OwnerID: "r1"})
	sink := &fakeAudit{}
	uc := newCompanyUC(companies, sink)

	resp, err := uc.Reassign(manager(), noMeta(), "c1", dto.ReassignRequest{NewOwnerID: "r2"})
	require.NoError(t, err)

	assert.Equal(t, "r2", resp.OwnerID)

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	e := sink.last()
	assert.Equal(t, entity.ActionReassign, e.Action)
	assert.Contains(t, e.Details["message"], "Rep Dos",
		"el mensaje debe incluir el nombre resuelto del nuevo dueño")
}

// Reasignación hacia fuera del equipo: team_boundary_violation y dueño intacto.
func TestCompanyReassign_FueraDelEquipoDenegada(t *testing.T) {
	companies := newFakeCompanies(&entity.Company{ID: "c1", Name: "Acme", OwnerID: "r1"})
	uc := newCompanyUC(companies, &fakeAudit{})

	_, err := uc.Reassign(manager(), noMeta(), "c1", dto.ReassignRequest{NewOwnerID: "r3"})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.ReasonTeamBoundaryViolation, domain.DenialReason(err))
	assert.Equal(t, "r1", companies.items["c1"].OwnerID, "el dueño no debe cambiar")
}

// Rep no puede reasignar ni sus propios registros.
func TestCompanyReassign_RepProhibido(t *testing.T) {
	companies := newFakeCompanies(&entity.Company{ID: "c1", Name: "Acme", OwnerID: "r1"})
	uc := newCompanyUC(companies, &fakeAudit{})

	_, err := uc.Reassign(rep(), noMeta(), "c1", dto.ReassignRequest{NewOwnerID: "r2"})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.ReasonReassignmentForbidden, domain.DenialReason(err))
}

// Round-trip del alcance: el listado de un rep devuelve exactamente sus
// registros, nunca más.
func TestCompanyList_AlcancePorRol(t *testing.T) {
	companies := newFakeCompanies(
		&entity.Company{ID: "c1", Name: "De r1", OwnerID: "r1"},
		&entity.Company{ID: "c2", Name: "De r2", OwnerID: "r2"},
		&entity.Company{ID: "c3", Name: "De r3", OwnerID: "r3"},
	)
	uc := newCompanyUC(companies, &fakeAudit{})

	// Rep: solo lo suyo.
	resp, err := uc.List(rep(), repository.CompanyFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "c1", resp.Items[0].ID)

	// Manager m1: su equipo (r1, r2), sin r3.
	resp, err = uc.List(manager(), repository.CompanyFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)

	// Admin: todo.
	resp, err = uc.List(admin(), repository.CompanyFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 3)
}

// GetByID fuera de alcance → denegado, no "no encontrado".
func TestCompanyGetByID_FueraDeAlcance(t *testing.T) {
	companies := newFakeCompanies(&entity.Company{ID: "c3", Name: "De r3", OwnerID: "r3"})
	uc := newCompanyUC(companies, &fakeAudit{})

	_, err := uc.GetByID(rep(), "c3")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Delete conserva los valores anteriores en la entrada de auditoría.
func TestCompanyDelete_AuditaValoresAnteriores(t *testing.T) {
	companies := newFakeCompanies(&entity.Company{ID: "c1", Name: "Acme", Industry: "tech", OwnerID: "r1"})
	sink := &fakeAudit{}
	uc := newCompanyUC(companies, sink)

	require.NoError(t, uc.Delete(rep(), noMeta(), "c1"))
	assert.Empty(t, companies.items)

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	e := sink.last()
	assert.Equal(t, entity.ActionDelete, e.Action)
	old, ok := e.Details["old"].(map[string]any)
	require.True(t, ok, "DELETE debe llevar los valores anteriores")
	assert.Equal(t, "Acme", old["name"])
}
