package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// AuditHandler consulta del audit log (solo admin).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Consultar el audit log
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity_type   query  string  false  "company | contact | deal | user"
// @Param        entity_id     query  string  false  "ID de la entidad"
// @Param        action        query  string  false  "CREATE | UPDATE | DELETE | REASSIGN | ..."
// @Param        performed_by  query  string  false  "ID del actor"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.AuditLogListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	filter := repository.AuditFilter{
		EntityType:  c.Query("entity_type"),
		EntityID:    c.Query("entity_id"),
		Action:      c.Query("action"),
		PerformedBy: c.Query("performed_by"),
	}
	out, err := h.uc.List(GetIdentity(c), filter, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
