package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/validate"
)

// DealHandler maneja las peticiones HTTP para Deal (protegido).
type DealHandler struct {
	uc *usecase.DealUseCase
}

// NewDealHandler construye el handler.
func NewDealHandler(uc *usecase.DealUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create godoc
// @Summary      Crear oportunidad
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDealRequest  true  "Datos de la oportunidad"
// @Success      201   {object}  dto.DealResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return invalid(c, err)
	}
	out, err := h.uc.Create(GetIdentity(c), reqMeta(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener oportunidad por ID
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oportunidad"
// @Success      200  {object}  dto.DealResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deals/{id} [get]
func (h *DealHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "oportunidad")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar oportunidades visibles
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        title       query  string  false  "Búsqueda parcial por título"
// @Param        stage       query  string  false  "Etapa exacta"
// @Param        company_id  query  string  false  "Filtrar por empresa"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200         {object}  dto.DealListResponse
// @Router       /api/deals [get]
func (h *DealHandler) List(c *fiber.Ctx) error {
	filter := repository.DealFilter{
		Title:     c.Query("title"),
		Stage:     c.Query("stage"),
		CompanyID: c.Query("company_id"),
	}
	out, err := h.uc.List(GetIdentity(c), filter, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar oportunidad
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la oportunidad"
// @Param        body  body  dto.UpdateDealRequest  true  "Campos a actualizar (la etapa tiene endpoint propio)"
// @Success      200   {object}  dto.DealResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deals/{id} [put]
func (h *DealHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return invalid(c, err)
	}
	out, err := h.uc.Update(GetIdentity(c), reqMeta(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "oportunidad")
	}
	return c.JSON(out)
}

// ChangeStage godoc
// @Summary      Cambiar etapa del pipeline
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la oportunidad"
// @Param        body  body  dto.ChangeStageRequest  true  "Nueva etapa"
// @Success      200   {object}  dto.DealResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/stage [put]
func (h *DealHandler) ChangeStage(c *fiber.Ctx) error {
	var in dto.ChangeStageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return invalid(c, err)
	}
	out, err := h.uc.ChangeStage(GetIdentity(c), reqMeta(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "oportunidad")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar oportunidad
// @Tags         deals
// @Security     Bearer
// @Param        id  path  string  true  "ID de la oportunidad"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deals/{id} [delete]
func (h *DealHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetIdentity(c), reqMeta(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reassign godoc
// @Summary      Reasignar dueño de la oportunidad
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la oportunidad"
// @Param        body  body  dto.ReassignRequest  true  "Nuevo dueño"
// @Success      200   {object}  dto.DealResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/owner [put]
func (h *DealHandler) Reassign(c *fiber.Ctx) error {
	var in dto.ReassignRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return invalid(c, err)
	}
	out, err := h.uc.Reassign(GetIdentity(c), reqMeta(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "oportunidad")
	}
	return c.JSON(out)
}
