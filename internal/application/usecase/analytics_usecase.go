package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// AnalyticsUseCase agregados del pipeline dentro del alcance del caller.
// Solo lectura: no autoriza más allá del scope filter.
type AnalyticsUseCase struct {
	deals  repository.DealRepository
	engine *access.Engine
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(deals repository.DealRepository, engine *access.Engine) *AnalyticsUseCase {
	return &AnalyticsUseCase{deals: deals, engine: engine}
}

// PipelineSummary totales por etapa (conteo y monto) de los deals visibles.
func (uc *AnalyticsUseCase) PipelineSummary(caller access.Identity) (*dto.PipelineSummaryResponse, error) {
	scope, err := uc.engine.ScopeFilter(caller)
	if err != nil {
		return nil, err
	}
	totals, err := uc.deals.PipelineSummary(scope)
	if err != nil {
		return nil, err
	}
	resp := &dto.PipelineSummaryResponse{
		Stages:      make([]dto.StageTotalResponse, 0, len(totals)),
		TotalAmount: decimal.Zero,
	}
	for _, t := range totals {
		resp.Stages = append(resp.Stages, dto.StageTotalResponse{
			Stage:  t.Stage,
			Count:  t.Count,
			Amount: t.Amount,
		})
		resp.TotalDeals += t.Count
		resp.TotalAmount = resp.TotalAmount.Add(t.Amount)
	}
	return resp, nil
}
