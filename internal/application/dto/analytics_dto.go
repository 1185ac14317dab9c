package dto

import "github.com/shopspring/decimal"

// StageTotalResponse agregado de una etapa del pipeline.
type StageTotalResponse struct {
	Stage  string          `json:"stage"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// PipelineSummaryResponse resumen del pipeline dentro del alcance del caller.
type PipelineSummaryResponse struct {
	Stages      []StageTotalResponse `json:"stages"`
	TotalDeals  int                  `json:"total_deals"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
}
