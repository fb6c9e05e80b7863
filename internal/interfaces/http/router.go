package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trainmaster-app/trainmaster-api/internal/application/auth"
	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
	"github.com/trainmaster-app/trainmaster-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CustomerUC  *usecase.CustomerUseCase
	UserUC      *usecase.UserUseCase
	ReferenceUC *usecase.ReferenceUseCase
	SettingsUC  *usecase.SettingsUseCase
	PurchaseUC  *training.PurchaseUseCase
	SessionUC   *training.SessionUseCase
	ReportUC    *training.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clientes (cualquier usuario autenticado)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", RequireManager(), customerHandler.Delete)

	// Compras de horas
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.ReportUC)
	purchases.Get("/residual-preview", purchaseHandler.ResidualPreview)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", RequireManager(), purchaseHandler.Delete)
	purchases.Get("/:id/summary", purchaseHandler.Summary)
	purchases.Post("/:id/finalize", purchaseHandler.Finalize)
	purchases.Post("/:id/revert", RequireManager(), purchaseHandler.Revert)
	purchases.Put("/:id/commission-paid", RequireManager(), purchaseHandler.SetCommissionPaid)
	purchases.Get("/:id/report.pdf", purchaseHandler.ClosureReportPDF)

	// Sesiones de trabajo
	sessions := protected.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.SessionUC)
	sessions.Post("/", sessionHandler.Create)
	sessions.Get("/", sessionHandler.List)
	sessions.Get("/:id", sessionHandler.GetByID)
	sessions.Put("/:id", sessionHandler.Update)
	sessions.Delete("/:id", sessionHandler.Delete)

	// Datos de referencia (escritura solo MANAGER)
	referenceHandler := NewReferenceHandler(deps.ReferenceUC)
	modules := protected.Group("/modules")
	modules.Get("/", referenceHandler.ListModules)
	modules.Post("/", RequireManager(), referenceHandler.CreateModule)
	modules.Delete("/:id", RequireManager(), referenceHandler.DeleteModule)
	trainingTypes := protected.Group("/training-types")
	trainingTypes.Get("/", referenceHandler.ListTrainingTypes)
	trainingTypes.Post("/", RequireManager(), referenceHandler.CreateTrainingType)
	trainingTypes.Delete("/:id", RequireManager(), referenceHandler.DeleteTrainingType)

	// Usuarios (solo MANAGER)
	users := protected.Group("/users", RequireManager())
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Register)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Configuración (solo MANAGER)
	settings := protected.Group("/settings", RequireManager())
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Update)

	// Reportes (solo MANAGER)
	reports := protected.Group("/reports", RequireManager())
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/profitability", reportHandler.Profitability)
	reports.Get("/commissions", reportHandler.Commissions)
}
