package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas válidas del pipeline de ventas.
const (
	StageLead        = "Lead"
	StageQualified   = "Qualified"
	StageProposal    = "Proposal"
	StageNegotiation = "Negotiation"
	StageClosedWon   = "Closed Won"
	StageClosedLost  = "Closed Lost"
)

// stageProbability probabilidad por defecto asociada a cada etapa.
var stageProbability = map[string]int{
	StageLead:        10,
	StageQualified:   25,
	StageProposal:    50,
	StageNegotiation: 75,
	StageClosedWon:   100,
	StageClosedLost:  0,
}

// ValidStage indica si la etapa pertenece al conjunto canónico.
func ValidStage(stage string) bool {
	_, ok := stageProbability[stage]
	return ok
}

// StageProbability devuelve la probabilidad por defecto de la etapa.
// Closed Won siempre fuerza 100 y Closed Lost siempre fuerza 0.
func StageProbability(stage string) int {
	return stageProbability[stage]
}

// ClosedStage indica si la etapa es terminal (ganada o perdida).
func ClosedStage(stage string) bool {
	return stage == StageClosedWon || stage == StageClosedLost
}

// StageChange una transición de etapa en el historial de un Deal.
// El historial es solo-agregar: nunca se muta ni se trunca.
type StageChange struct {
	Stage     string    `json:"stage"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}

// Deal representa una oportunidad de venta en el pipeline.
// StageHistory es el registro autoritativo de la progresión de etapas,
// independiente del audit log general; se persiste en la misma fila que Stage
// y se escribe junto con el cambio de etapa en una sola sentencia.
type Deal struct {
	ID            string
	Title         string
	Amount        decimal.Decimal
	Stage         string
	Probability   int // 0-100
	CompanyID     *string
	ContactID     *string
	OwnerID       string
	ExpectedClose *time.Time
	StageHistory  []StageChange
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
