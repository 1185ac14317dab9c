package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/usecase"
)

// AnalyticsHandler métricas y reportes del pipeline (protegido). Los resultados
// siempre salen recortados al alcance del caller.
type AnalyticsHandler struct {
	analytics *usecase.AnalyticsUseCase
	reports   *usecase.ReportUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(analytics *usecase.AnalyticsUseCase, reports *usecase.ReportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, reports: reports}
}

// PipelineSummary godoc
// @Summary      Resumen del pipeline por etapa
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PipelineSummaryResponse
// @Router       /api/deals/analytics/pipeline [get]
func (h *AnalyticsHandler) PipelineSummary(c *fiber.Ctx) error {
	out, err := h.analytics.PipelineSummary(GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PipelinePDF godoc
// @Summary      Reporte PDF del pipeline
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/deals/reports/pipeline.pdf [get]
func (h *AnalyticsHandler) PipelinePDF(c *fiber.Ctx) error {
	pdfBytes, err := h.reports.PipelinePDF(GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pipeline.pdf"`)
	return c.Send(pdfBytes)
}
