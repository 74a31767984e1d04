package http

import (
	"github.com/gofiber/fiber/v2"

	appdashboard "github.com/pharaujojr/dashboard-karin/internal/application/dashboard"
	"github.com/pharaujojr/dashboard-karin/internal/application/dto"
)

// PlacarHandler maneja el endpoint del placar del concurso de ventas.
type PlacarHandler struct {
	uc *appdashboard.ConcursoUseCase
}

// NewPlacarHandler construye el handler.
func NewPlacarHandler(uc *appdashboard.ConcursoUseCase) *PlacarHandler {
	return &PlacarHandler{uc: uc}
}

// GetPlacar devuelve el podio y el ranking del concurso.
// GET /api/placar?dataInicio=...&dataFim=...&periodo=...
//
// Sin fechas se usa el período de campaña configurado.
func (h *PlacarHandler) GetPlacar(c *fiber.Ctx) error {
	var req dto.PlacarRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "parámetros inválidos: " + err.Error(),
		})
	}

	resp, err := h.uc.GetPlacar(c.Context(), req)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(resp)
}
