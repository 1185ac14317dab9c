package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// El resumen de pipeline respeta el alcance: un rep solo agrega sus deals.
func TestPipelineSummary_AlcancePorRol(t *testing.T) {
	deals := newFakeDeals(
		&entity.Deal{ID: "d1", Stage: entity.StageLead, Amount: decimal.NewFromInt(100), OwnerID: "r1"},
		&entity.Deal{ID: "d2", Stage: entity.StageLead, Amount: decimal.NewFromInt(200), OwnerID: "r1"},
		&entity.Deal{ID: "d3", Stage: entity.StageClosedWon, Amount: decimal.NewFromInt(999), OwnerID: "r3"},
	)
	users := orgUsers()
	engine, _ := orgEngine(users)
	uc := usecase.NewAnalyticsUseCase(deals, engine)

	resp, err := uc.PipelineSummary(rep())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalDeals)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(300)),
		"el monto de r3 no puede aparecer en el resumen de r1")
	require.Len(t, resp.Stages, 1)
	assert.Equal(t, entity.StageLead, resp.Stages[0].Stage)

	// Admin agrega todo.
	resp, err = uc.PipelineSummary(admin())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalDeals)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1299)))
}
