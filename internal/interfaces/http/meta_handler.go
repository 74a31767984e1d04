package http

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pharaujojr/dashboard-karin/internal/application/dto"
	"github.com/pharaujojr/dashboard-karin/internal/application/usecase"
	"github.com/pharaujojr/dashboard-karin/internal/domain"
)

const formatoFecha = "2006-01-02"

// MetaHandler maneja el CRUD de metas de venta por filial.
type MetaHandler struct {
	uc *usecase.MetaUseCase
}

// NewMetaHandler construye el handler.
func NewMetaHandler(uc *usecase.MetaUseCase) *MetaHandler {
	return &MetaHandler{uc: uc}
}

// Crear registra una meta nueva.
// POST /api/metas
func (h *MetaHandler) Crear(c *fiber.Ctx) error {
	var req dto.CrearMetaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "body inválido: " + err.Error(),
		})
	}
	meta, err := h.uc.Crear(c.Context(), req)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(meta)
}

// Actualizar modifica una meta existente.
// PUT /api/metas/:id
func (h *MetaHandler) Actualizar(c *fiber.Ctx) error {
	var req dto.ActualizarMetaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "body inválido: " + err.Error(),
		})
	}
	meta, err := h.uc.Actualizar(c.Context(), c.Params("id"), req)
	if err != nil {
		return responderError(c, err)
	}
	if meta == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "meta no encontrada",
		})
	}
	return c.JSON(meta)
}

// Desactivar marca la meta como inactiva.
// DELETE /api/metas/:id
func (h *MetaHandler) Desactivar(c *fiber.Ctx) error {
	if err := h.uc.Desactivar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListarActivas todas las metas activas.
// GET /api/metas
func (h *MetaHandler) ListarActivas(c *fiber.Ctx) error {
	metas, err := h.uc.ListarActivas(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(metas)
}

// MetaVigente devuelve la meta vigente de una filial en el período.
// GET /api/metas/filial?filial=...&dataInicio=...&dataFim=...
func (h *MetaHandler) MetaVigente(c *fiber.Ctx) error {
	filial := c.Query("filial")
	if filial == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "filial es obligatoria",
		})
	}
	inicio, fim, err := parseRangoQuery(c)
	if err != nil {
		return responderError(c, err)
	}
	valor, err := h.uc.MetaPorFilial(c.Context(), filial, inicio, fim)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MetaVigenteDTO{Filial: filial, ValorMeta: valor})
}

// MetasVigentes mapa filial -> meta vigente para varias filiales; las filiales
// sin meta registrada llevan el valor por defecto.
// GET /api/metas/filiais?filial=...&filial=...&dataInicio=...&dataFim=...
func (h *MetaHandler) MetasVigentes(c *fiber.Ctx) error {
	var req dto.MetaConsultaRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "parámetros inválidos: " + err.Error(),
		})
	}
	if len(req.Filiales) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "filial es obligatoria",
		})
	}
	inicio, fim, err := parseRangoQuery(c)
	if err != nil {
		return responderError(c, err)
	}
	metas, err := h.uc.MetasPorFiliales(c.Context(), req.Filiales, inicio, fim)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(metas)
}

// HistoricoPorFilial metas de una filial, más recientes primero.
// GET /api/metas/filial/:filial/historico
func (h *MetaHandler) HistoricoPorFilial(c *fiber.Ctx) error {
	filial, err := urlDecode(c.Params("filial"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "filial inválida",
		})
	}
	metas, err := h.uc.HistoricoPorFilial(c.Context(), filial)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(metas)
}

// urlDecode los nombres de filial llevan espacios y llegan escapados en la ruta.
func urlDecode(s string) (string, error) {
	return url.PathUnescape(s)
}

// parseRangoQuery fechas obligatorias del query string, inicio <= fim.
func parseRangoQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	inicio, err := time.Parse(formatoFecha, c.Query("dataInicio"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: dataInicio inválida", domain.ErrInvalidInput)
	}
	fim, err := time.Parse(formatoFecha, c.Query("dataFim"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: dataFim inválida", domain.ErrInvalidInput)
	}
	if inicio.After(fim) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: dataInicio posterior a dataFim", domain.ErrInvalidInput)
	}
	return inicio, fim, nil
}
