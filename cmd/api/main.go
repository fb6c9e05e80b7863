package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/trainmaster-app/trainmaster-api/docs"
	"github.com/trainmaster-app/trainmaster-api/internal/application/auth"
	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
	"github.com/trainmaster-app/trainmaster-api/internal/application/usecase"
	infrapdf "github.com/trainmaster-app/trainmaster-api/internal/infrastructure/pdf"
	"github.com/trainmaster-app/trainmaster-api/internal/infrastructure/postgres"
	"github.com/trainmaster-app/trainmaster-api/internal/infrastructure/webhook"
	httpRouter "github.com/trainmaster-app/trainmaster-api/internal/interfaces/http"
	"github.com/trainmaster-app/trainmaster-api/pkg/config"
	"github.com/trainmaster-app/trainmaster-api/pkg/logger"
)

// @title                      TrainMaster API
// @version                    1.0
// @description                API de gestión de entrenamientos e implantaciones: clientes, compras de horas, sesiones de trabajo y reportes.
// @BasePath                   /
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
// @description                Escriba "Bearer" seguido de un espacio y el token JWT.
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

	customerRepo := postgres.NewCustomerRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	sessionRepo := postgres.NewWorkSessionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	moduleRepo := postgres.NewSystemModuleRepository(pool)
	typeRepo := postgres.NewTrainingTypeRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Integración con el sistema externo (protocolos + notificación de cierre)
	webhookClient := webhook.NewClient(settingsRepo)
	pdfGenerator := infrapdf.NewClosureReportGenerator()

	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	customerUC := usecase.NewCustomerUseCase(customerRepo, purchaseRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	referenceUC := usecase.NewReferenceUseCase(moduleRepo, typeRepo, purchaseRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	purchaseUC := training.NewPurchaseUseCase(
		txRunner, purchaseRepo, sessionRepo, customerRepo, userRepo,
		webhookClient, webhookClient, log,
	)
	sessionUC := training.NewSessionUseCase(sessionRepo, purchaseRepo)
	reportUC := training.NewReportUseCase(purchaseRepo, sessionRepo, settingsRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TrainMaster API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		UserUC:      userUC,
		ReferenceUC: referenceUC,
		SettingsUC:  settingsUC,
		PurchaseUC:  purchaseUC,
		SessionUC:   sessionUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
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
