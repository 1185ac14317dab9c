package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// DealFilter criterios de búsqueda adicionales al alcance de dueño.
type DealFilter struct {
	Title     string // búsqueda parcial case-insensitive
	Stage     string
	CompanyID string
}

// StageTotal agregado del pipeline por etapa.
type StageTotal struct {
	Stage  string
	Count  int
	Amount decimal.Decimal
}

// DealRepository define el puerto de persistencia para Deal.
type DealRepository interface {
	Create(deal *entity.Deal) error
	GetByID(id string) (*entity.Deal, error)
	Update(deal *entity.Deal) error
	// UpdateStage persiste stage, probability y el historial completo en una sola
	// sentencia, para que nunca exista una entrada de historial sin el cambio de
	// etapa correspondiente.
	UpdateStage(deal *entity.Deal) error
	Delete(id string) error
	List(scope OwnerScope, filter DealFilter, limit, offset int) ([]*entity.Deal, error)
	ReassignOwner(fromOwnerID, toOwnerID string) (int64, error)
	// PipelineSummary totales (conteo y monto) por etapa dentro del alcance.
	PipelineSummary(scope OwnerScope) ([]StageTotal, error)
}
