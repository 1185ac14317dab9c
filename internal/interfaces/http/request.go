package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/audit"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

// reqMeta captura IP y User-Agent del request para la auditoría.
func reqMeta(c *fiber.Ctx) audit.Meta {
	return audit.Meta{IP: c.IP(), UserAgent: c.Get("User-Agent")}
}

// pageFromQuery lee limit/offset del query string con topes de seguridad.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return dto.PageRequest{Limit: limit, Offset: offset}
}
