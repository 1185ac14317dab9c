package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación solo-agregar del puerto AuditLogRepository.
// details se guarda como JSONB.
type AuditLogRepo struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository construye el adaptador de persistencia del audit log.
func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepo {
	return &AuditLogRepo{pool: pool}
}

const auditColumns = "id, entity_type, entity_id, action, performed_by, details, ip_address, user_agent, created_at"

// Create inserta una entrada de auditoría. Nunca hay update ni delete.
func (r *AuditLogRepo) Create(entry *entity.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action, entry.PerformedBy,
		entry.Details, entry.IPAddress, entry.UserAgent, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List consulta entradas de auditoría, más recientes primero.
func (r *AuditLogRepo) List(filter repository.AuditFilter, limit, offset int) ([]*entity.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs`
	var args []any
	where := ""
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		where = appendCond(where, "entity_type = $"+strconv.Itoa(len(args)))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		where = appendCond(where, "entity_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		where = appendCond(where, "action = $"+strconv.Itoa(len(args)))
	}
	if filter.PerformedBy != "" {
		args = append(args, filter.PerformedBy)
		where = appendCond(where, "performed_by = $"+strconv.Itoa(len(args)))
	}
	query += where
	args = append(args, limit, offset)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.PerformedBy,
			&e.Details, &e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
