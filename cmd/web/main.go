package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/tu-usuario/estoque-web/internal/application/usecase"
	"github.com/tu-usuario/estoque-web/internal/infrastructure/backend"
	"github.com/tu-usuario/estoque-web/internal/interfaces/web"
	"github.com/tu-usuario/estoque-web/pkg/config"
	"github.com/tu-usuario/estoque-web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api_base_url", cfg.API.BaseURL).
		Msg("iniciando aplicação")

	apiClient := backend.New(cfg.API)
	productUC := usecase.NewProductUseCase(apiClient, log)
	movementUC := usecase.NewMovementUseCase(apiClient, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        web.NewEngine(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(web.AccessLog(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	web.Router(app, web.RouterDeps{
		ProductUC:  productUC,
		MovementUC: movementUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
