package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

func newDealUC(deals *fakeDeals, sink *fakeAudit) *usecase.DealUseCase {
	users := orgUsers()
	engine, _ := orgEngine(users)
	return usecase.NewDealUseCase(deals, users, engine, newRecorder(sink))
}

// La creación registra la etapa inicial como primera entrada del historial.
func TestDealCreate_HistorialInicial(t *testing.T) {
	uc := newDealUC(newFakeDeals(), &fakeAudit{})

	resp, err := uc.Create(rep(), noMeta(), dto.CreateDealRequest{
		Title:  "Venta grande",
		Amount: decimal.NewFromInt(50000),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StageLead, resp.Stage, "etapa por defecto Lead")
	assert.Equal(t, 10, resp.Probability)
	require.Len(t, resp.StageHistory, 1)
	assert.Equal(t, entity.StageLead, resp.StageHistory[0].Stage)
	assert.Equal(t, "r1", resp.StageHistory[0].ChangedBy)
}

// Etapa desconocida al crear → rechazo antes de cualquier mutación.
func TestDealCreate_EtapaInvalida(t *testing.T) {
	deals := newFakeDeals()
	uc := newDealUC(deals, &fakeAudit{})

	_, err := uc.Create(rep(), noMeta(), dto.CreateDealRequest{Title: "X", Stage: "Etapa Inventada"})

	assert.ErrorIs(t, err, domain.ErrInvalidStage)
	assert.Empty(t, deals.items)
}

// Escenario F: Lead → Qualified → Closed Won deja exactamente 3 entradas en
// orden, etapa final Closed Won y probabilidad forzada a 100.
func TestDealChangeStage_HistorialCompletoYProbabilidadForzada(t *testing.T) {
	uc := newDealUC(newFakeDeals(), &fakeAudit{})

	resp, err := uc.Create(rep(), noMeta(), dto.CreateDealRequest{Title: "Venta", Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = uc.ChangeStage(rep(), noMeta(), resp.ID, dto.ChangeStageRequest{Stage: entity.StageQualified})
	require.NoError(t, err)

	final, err := uc.ChangeStage(rep(), noMeta(), resp.ID, dto.ChangeStageRequest{Stage: entity.StageClosedWon})
	require.NoError(t, err)

	assert.Equal(t, entity.StageClosedWon, final.Stage)
	assert.Equal(t, 100, final.Probability, "Closed Won fuerza probabilidad 100")
	require.Len(t, final.StageHistory, 3, "una entrada por cada etapa alcanzada")
	assert.Equal(t, entity.StageLead, final.StageHistory[0].Stage)
	assert.Equal(t, entity.StageQualified, final.StageHistory[1].Stage)
	assert.Equal(t, entity.StageClosedWon, final.StageHistory[2].Stage)
}

// Closed Lost fuerza probabilidad 0.
func TestDealChangeStage_ClosedLostFuerzaCero(t *testing.T) {
	deals := newFakeDeals(&entity.Deal{
		ID: "d1", Title: "Venta", Stage: entity.StageNegotiation, Probability: 75, OwnerID: "r1",
		StageHistory: []entity.StageChange{{Stage: entity.StageNegotiation}},
	})
	uc := newDealUC(deals, &fakeAudit{})

	resp, err := uc.ChangeStage(rep(), noMeta(), "d1", dto.ChangeStageRequest{Stage: entity.StageClosedLost})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Probability)
}

// Transición a la misma etapa: conflicto, sin entrada duplicada en historial.
func TestDealChangeStage_MismaEtapaRechazada(t *testing.T) {
	deals := newFakeDeals(&entity.Deal{
		ID: "d1", Stage: entity.StageLead, OwnerID: "r1",
		StageHistory: []entity.StageChange{{Stage: entity.StageLead}},
	})
	uc := newDealUC(deals, &fakeAudit{})

	_, err := uc.ChangeStage(rep(), noMeta(), "d1", dto.ChangeStageRequest{Stage: entity.StageLead})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, deals.items["d1"].StageHistory, 1)
}

// Escenario D: manager reasigna de r1 (en equipo) a r3 (fuera) →
// team_boundary_violation y dueño intacto.
func TestDealReassign_FueraDelEquipo(t *testing.T) {
	deals := newFakeDeals(&entity.Deal{ID: "d1", Title: "Venta", Stage: entity.StageLead, OwnerID: "r1"})
	uc := newDealUC(deals, &fakeAudit{})

	_, err := uc.Reassign(manager(), noMeta(), "d1", dto.ReassignRequest{NewOwnerID: "r3"})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.ReasonTeamBoundaryViolation, domain.DenialReason(err))
	assert.Equal(t, "r1", deals.items["d1"].OwnerID)
}

// La reasignación no toca el historial de etapas.
func TestDealReassign_NoTocaHistorial(t *testing.T) {
	history := []entity.StageChange{{Stage: entity.StageLead}, {Stage: entity.StageQualified}}
	deals := newFakeDeals(&entity.Deal{
		ID: "d1", Title: "Venta", Stage: entity.StageQualified, OwnerID: "r1",
		StageHistory: history,
	})
	sink := &fakeAudit{}
	uc := newDealUC(deals, sink)

	resp, err := uc.Reassign(manager(), noMeta(), "d1", dto.ReassignRequest{NewOwnerID: "r2"})
	require.NoError(t, err)

	assert.Equal(t, "r2", resp.OwnerID)
	assert.Len(t, resp.StageHistory, 2, "solo se mueve el campo de propiedad")

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, entity.ActionReassign, sink.last().Action)
}

// Update de rep sobre deal ajeno: denegado (propiedad transversal a entidades).
func TestDealUpdate_RepSobreAjeno(t *testing.T) {
	deals := newFakeDeals(&entity.Deal{ID: "d1", Stage: entity.StageLead, OwnerID: "r2"})
	uc := newDealUC(deals, &fakeAudit{})

	titulo := "Nuevo"
	_, err := uc.Update(rep(), noMeta(), "d1", dto.UpdateDealRequest{Title: &titulo})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.ReasonAccessDenied, domain.DenialReason(err))
}

// En etapa cerrada la probabilidad no se edita manualmente.
func TestDealUpdate_ProbabilidadBloqueadaEnCerrada(t *testing.T) {
	deals := newFakeDeals(&entity.Deal{ID: "d1", Stage: entity.StageClosedWon, Probability: 100, OwnerID: "r1"})
	uc := newDealUC(deals, &fakeAudit{})

	p := 50
	resp, err := uc.Update(rep(), noMeta(), "d1", dto.UpdateDealRequest{Probability: &p})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.Probability, "probabilidad forzada en etapa cerrada")
}
