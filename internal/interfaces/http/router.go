package http

import (
	"github.com/gofiber/fiber/v2"

	appdashboard "github.com/pharaujojr/dashboard-karin/internal/application/dashboard"
	"github.com/pharaujojr/dashboard-karin/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *appdashboard.DashboardUseCase
	ConcursoUC  *appdashboard.ConcursoUseCase
	MetaUC      *usecase.MetaUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Dashboard y catálogos
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetDashboard)
	api.Get("/filiais", dashboardHandler.GetFiliais)
	api.Get("/vendedores", dashboardHandler.GetVendedores)
	api.Get("/vendedores/por-unidade", dashboardHandler.GetVendedoresPorUnidade)

	// Placar del concurso
	placarHandler := NewPlacarHandler(deps.ConcursoUC)
	api.Get("/placar", placarHandler.GetPlacar)

	// Metas
	metas := api.Group("/metas")
	metaHandler := NewMetaHandler(deps.MetaUC)
	metas.Get("/", metaHandler.ListarActivas)
	metas.Post("/", metaHandler.Crear)
	metas.Get("/filial", metaHandler.MetaVigente)
	metas.Get("/filiais", metaHandler.MetasVigentes)
	metas.Get("/filial/:filial/historico", metaHandler.HistoricoPorFilial)
	metas.Put("/:id", metaHandler.Actualizar)
	metas.Delete("/:id", metaHandler.Desactivar)
}
