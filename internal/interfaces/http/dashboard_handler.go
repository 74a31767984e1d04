// Package http capa de transporte de la API sobre Fiber.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appdashboard "github.com/pharaujojr/dashboard-karin/internal/application/dashboard"
	"github.com/pharaujojr/dashboard-karin/internal/application/dto"
	"github.com/pharaujojr/dashboard-karin/internal/domain"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appdashboard.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appdashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard devuelve el reporte completo del período.
// GET /api/dashboard?dataInicio=...&dataFim=...&filial=...&vendedor=...&tipoPeriodo=...&agruparPorMes=...
//
// filial puede repetirse para agregar varias filiales; sin filial se consultan
// todas. Con tipoPeriodo (dia, semana, mes, trimestre, ano) la respuesta
// incluye el bloque comparison contra el período anterior.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	var req dto.DashboardRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "parámetros inválidos: " + err.Error(),
		})
	}

	resp, err := h.uc.GetDashboard(c.Context(), req)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(resp)
}

// GetFiliais lista las filiales disponibles.
// GET /api/filiais
func (h *DashboardHandler) GetFiliais(c *fiber.Ctx) error {
	filiales, err := h.uc.Filiales(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(filiales)
}

// GetVendedores lista todos los vendedores.
// GET /api/vendedores
func (h *DashboardHandler) GetVendedores(c *fiber.Ctx) error {
	vendedores, err := h.uc.Vendedores(c.Context(), "")
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(vendedores)
}

// GetVendedoresPorUnidade lista los vendedores de una filial.
// GET /api/vendedores/por-unidade?filial=...
func (h *DashboardHandler) GetVendedoresPorUnidade(c *fiber.Ctx) error {
	filial := c.Query("filial")
	if filial == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "filial es obligatoria",
		})
	}
	vendedores, err := h.uc.Vendedores(c.Context(), filial)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(vendedores)
}

// responderError traduce errores de dominio a códigos HTTP.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CONFLICT", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
