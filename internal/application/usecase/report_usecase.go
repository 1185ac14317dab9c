package usecase

import (
	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// reportMaxDeals tope de filas del reporte; el detalle completo vive en la API.
const reportMaxDeals = 200

// PipelineReportGenerator puerto del generador de la representación gráfica
// del pipeline (implementado con Maroto en infraestructura).
type PipelineReportGenerator interface {
	GeneratePipelineReport(deals []*entity.Deal, totals []repository.StageTotal, generatedFor string) ([]byte, error)
}

// ReportUseCase genera el reporte PDF del pipeline visible para el caller.
type ReportUseCase struct {
	deals     repository.DealRepository
	users     repository.UserRepository
	engine    *access.Engine
	generator PipelineReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(deals repository.DealRepository, users repository.UserRepository, engine *access.Engine, generator PipelineReportGenerator) *ReportUseCase {
	return &ReportUseCase{deals: deals, users: users, engine: engine, generator: generator}
}

// PipelinePDF genera el PDF con los deals y totales dentro del alcance del
// caller. El alcance se aplica antes del corte de filas.
func (uc *ReportUseCase) PipelinePDF(caller access.Identity) ([]byte, error) {
	scope, err := uc.engine.ScopeFilter(caller)
	if err != nil {
		return nil, err
	}
	deals, err := uc.deals.List(scope, repository.DealFilter{}, reportMaxDeals, 0)
	if err != nil {
		return nil, err
	}
	totals, err := uc.deals.PipelineSummary(scope)
	if err != nil {
		return nil, err
	}
	generatedFor := caller.UserID
	if u, err := uc.users.GetByID(caller.UserID); err == nil && u != nil {
		generatedFor = u.Name
	}
	return uc.generator.GeneratePipelineReport(deals, totals, generatedFor)
}
