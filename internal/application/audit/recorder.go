package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// Recorder registra entradas de auditoría en modo fire-and-forget: la
// respuesta al caller ya se envió cuando la escritura ocurre, y un fallo aquí
// se loguea internamente pero nunca se propaga ni revierte la mutación
// primaria ya confirmada. Disponibilidad sobre completitud: la completitud del
// audit log es un asunto de monitoreo, no una garantía transaccional.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record despacha la escritura de la entrada en una goroutine propia. Completa
// ID y CreatedAt si vienen vacíos. No bloquea, no reintenta y no retorna error.
func (r *Recorder) Record(entry *entity.AuditLogEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	go func() {
		if err := r.repo.Create(entry); err != nil {
			r.log.Error().
				Err(err).
				Str("entity_type", entry.EntityType).
				Str("entity_id", entry.EntityID).
				Str("action", entry.Action).
				Str("performed_by", entry.PerformedBy).
				Msg("fallo al escribir entrada de auditoría")
		}
	}()
}
