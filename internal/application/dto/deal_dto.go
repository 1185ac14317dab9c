package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDealRequest entrada para crear una oportunidad. Stage vacío = Lead.
type CreateDealRequest struct {
	Title         string          `json:"title" validate:"required,min=1,max=200"`
	Amount        decimal.Decimal `json:"amount"`
	Stage         string          `json:"stage" validate:"omitempty"`
	CompanyID     string          `json:"company_id" validate:"omitempty,uuid"`
	ContactID     string          `json:"contact_id" validate:"omitempty,uuid"`
	OwnerID       string          `json:"owner_id" validate:"omitempty,uuid"`
	ExpectedClose *time.Time      `json:"expected_close"`
}

// UpdateDealRequest actualización parcial; nil = sin cambio. La etapa se
// cambia por el endpoint dedicado (historial), y el dueño por reasignación.
type UpdateDealRequest struct {
	Title         *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Amount        *decimal.Decimal `json:"amount"`
	Probability   *int             `json:"probability" validate:"omitempty,min=0,max=100"`
	CompanyID     *string          `json:"company_id" validate:"omitempty,uuid"`
	ContactID     *string          `json:"contact_id" validate:"omitempty,uuid"`
	ExpectedClose *time.Time       `json:"expected_close"`
}

// ChangeStageRequest transición de etapa del pipeline.
type ChangeStageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

// StageChangeResponse una entrada del historial de etapas.
type StageChangeResponse struct {
	Stage     string    `json:"stage"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}

// DealResponse salida de una oportunidad con su historial de etapas.
type DealResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Amount        decimal.Decimal       `json:"amount"`
	Stage         string                `json:"stage"`
	Probability   int                   `json:"probability"`
	CompanyID     *string               `json:"company_id,omitempty"`
	ContactID     *string               `json:"contact_id,omitempty"`
	OwnerID       string                `json:"owner_id"`
	ExpectedClose *time.Time            `json:"expected_close,omitempty"`
	StageHistory  []StageChangeResponse `json:"stage_history"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// DealListResponse listado paginado de oportunidades.
type DealListResponse struct {
	Items []DealResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
