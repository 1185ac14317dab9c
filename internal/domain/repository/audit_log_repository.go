package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// AuditFilter criterios de consulta del audit log.
type AuditFilter struct {
	EntityType  string
	EntityID    string
	Action      string
	PerformedBy string
}

// AuditLogRepository define el puerto de persistencia del audit log.
// Solo-agregar: no expone update ni delete.
type AuditLogRepository interface {
	Create(entry *entity.AuditLogEntry) error
	List(filter AuditFilter, limit, offset int) ([]*entity.AuditLogEntry, error)
}
