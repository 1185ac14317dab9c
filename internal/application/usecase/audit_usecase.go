package usecase

import (
	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// AuditUseCase consulta del audit log. Solo admin: el log contiene valores
// anteriores de registros de cualquier equipo.
type AuditUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List lista entradas de auditoría con filtros opcionales.
func (uc *AuditUseCase) List(caller access.Identity, filter repository.AuditFilter, page dto.PageRequest) (*dto.AuditLogListResponse, error) {
	if !caller.IsAdmin() {
		return nil, domain.Denied(domain.ReasonAccessDenied)
	}
	page.DefaultPage()
	list, err := uc.repo.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toAuditResponse(e))
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toAuditResponse(e *entity.AuditLogEntry) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:          e.ID,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		PerformedBy: e.PerformedBy,
		Details:     e.Details,
		IPAddress:   e.IPAddress,
		UserAgent:   e.UserAgent,
		CreatedAt:   e.CreatedAt,
	}
}
