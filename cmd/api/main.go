package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appdashboard "github.com/pharaujojr/dashboard-karin/internal/application/dashboard"
	"github.com/pharaujojr/dashboard-karin/internal/application/usecase"
	"github.com/pharaujojr/dashboard-karin/internal/infrastructure/postgres"
	httpRouter "github.com/pharaujojr/dashboard-karin/internal/interfaces/http"
	"github.com/pharaujojr/dashboard-karin/pkg/config"
	"github.com/pharaujojr/dashboard-karin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ventasRepo := postgres.NewVentasRepository(pool)
	metaRepo := postgres.NewMetaRepository(pool)

	metaUC := usecase.NewMetaUseCase(metaRepo, cfg.Meta.ValorPadrao)
	dashboardUC := appdashboard.NewDashboardUseCase(ventasRepo, metaUC)
	concursoUC := appdashboard.NewConcursoUseCase(ventasRepo, appdashboard.ConcursoConfig{
		Filiales: cfg.Concurso.Filiales,
		Inicio:   cfg.Concurso.Inicio,
		Fim:      cfg.Concurso.Fim,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		ConcursoUC:  concursoUC,
		MetaUC:      metaUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
