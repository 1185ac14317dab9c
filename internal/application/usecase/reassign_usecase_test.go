package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Dataset del Escenario E: r1 posee 3 companies, 2 contacts y 1 deal.
func bulkFixtures() (*fakeCompanies, *fakeContacts, *fakeDeals) {
	companies := newFakeCompanies(
		&entity.Company{ID: "c1", OwnerID: "r1"},
		&entity.Company{ID: "c2", OwnerID: "r1"},
		&entity.Company{ID: "c3", OwnerID: "r1"},
	)
	contacts := newFakeContacts(
		&entity.Contact{ID: "p1", OwnerID: "r1"},
		&entity.Contact{ID: "p2", OwnerID: "r1"},
	)
	deals := newFakeDeals(
		&entity.Deal{ID: "d1", Stage: entity.StageLead, OwnerID: "r1"},
	)
	return companies, contacts, deals
}

func newReassignUC(companies *fakeCompanies, contacts *fakeContacts, deals *fakeDeals, sink *fakeAudit) *usecase.ReassignUseCase {
	users := orgUsers()
	engine, _ := orgEngine(users)
	return usecase.NewReassignUseCase(users, companies, contacts, deals, engine, newRecorder(sink))
}

// Escenario E: transferencia dentro del equipo → las 6 entidades cambian de
// dueño y el total reportado es 6.
func TestReassignAll_TransferenciaCompleta(t *testing.T) {
	companies, contacts, deals := bulkFixtures()
	sink := &fakeAudit{}
	uc := newReassignUC(companies, contacts, deals, sink)

	resp, err := uc.ReassignAll(manager(), noMeta(), "r1", "r2")
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Companies)
	assert.Equal(t, 2, resp.Contacts)
	assert.Equal(t, 1, resp.Deals)
	assert.Equal(t, 6, resp.Total)
	assert.Empty(t, resp.Failed)

	for _, c := range companies.items {
		assert.Equal(t, "r2", c.OwnerID)
	}
	for _, c := range contacts.items {
		assert.Equal(t, "r2", c.OwnerID)
	}
	for _, d := range deals.items {
		assert.Equal(t, "r2", d.OwnerID)
	}

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	e := sink.last()
	assert.Equal(t, entity.ActionReassign, e.Action)
	assert.Equal(t, entity.EntityUser, e.EntityType)
	assert.Contains(t, e.Details["message"], "Rep Dos")
}

// Manager con destino fuera de su equipo: denegado, nada se mueve.
func TestReassignAll_DestinoFueraDelEquipo(t *testing.T) {
	companies, contacts, deals := bulkFixtures()
	uc := newReassignUC(companies, contacts, deals, &fakeAudit{})

	_, err := uc.ReassignAll(manager(), noMeta(), "r1", "r3")

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.ReasonTeamBoundaryViolation, domain.DenialReason(err))
	for _, c := range companies.items {
		assert.Equal(t, "r1", c.OwnerID, "ninguna entidad debe moverse")
	}
}

// Admin puede transferir entre equipos.
func TestReassignAll_AdminEntreEquipos(t *testing.T) {
	companies, contacts, deals := bulkFixtures()
	uc := newReassignUC(companies, contacts, deals, &fakeAudit{})

	resp, err := uc.ReassignAll(admin(), noMeta(), "r1", "r3")
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Total)
}

// Rep: siempre denegado.
func TestReassignAll_RepDenegado(t *testing.T) {
	companies, contacts, deals := bulkFixtures()
	uc := newReassignUC(companies, contacts, deals, &fakeAudit{})

	_, err := uc.ReassignAll(rep(), noMeta(), "r1", "r2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Fallo parcial: si una colección falla, las demás se reportan con sus conteos
// y la fallida queda en Failed — nunca éxito silencioso.
func TestReassignAll_FalloParcialReportado(t *testing.T) {
	companies, contacts, deals := bulkFixtures()
	contacts.reassignErr = errors.New("deadlock")
	uc := newReassignUC(companies, contacts, deals, &fakeAudit{})

	resp, err := uc.ReassignAll(manager(), noMeta(), "r1", "r2")
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Companies)
	assert.Equal(t, 0, resp.Contacts)
	assert.Equal(t, 1, resp.Deals)
	assert.Equal(t, []string{entity.EntityContact}, resp.Failed,
		"la colección fallida debe reportarse explícitamente")
}

// Usuario origen inexistente → NotFound antes de autorizar.
func TestReassignAll_OrigenInexistente(t *testing.T) {
	companies, contacts, deals := bulkFixtures()
	uc := newReassignUC(companies, contacts, deals, &fakeAudit{})

	_, err := uc.ReassignAll(admin(), noMeta(), "fantasma", "r2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Origen y destino iguales: entrada inválida.
func TestReassignAll_MismoUsuario(t *testing.T) {
	companies, contacts, deals := bulkFixtures()
	uc := newReassignUC(companies, contacts, deals, &fakeAudit{})

	_, err := uc.ReassignAll(admin(), noMeta(), "r1", "r1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
