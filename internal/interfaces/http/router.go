package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	ContactUC   *usecase.ContactUseCase
	DealUC      *usecase.DealUseCase
	UserUC      *usecase.UserUseCase
	ReassignUC  *usecase.ReassignUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	ReportUC    *usecase.ReportUseCase
	AuditUC     *usecase.AuditUseCase
	Users       repository.UserRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y cuenta activa). La
	// autorización fina por dueño/equipo la decide el motor de políticas
	// en la capa de aplicación.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ActiveAccount(deps.Users))

	// Companies (protegido)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Put("/:id/owner", companyHandler.Reassign)

	// Contacts (protegido)
	contacts := protected.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/", contactHandler.List)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)
	contacts.Put("/:id/owner", contactHandler.Reassign)

	// Deals (protegido). Las rutas fijas van antes que /:id.
	deals := protected.Group("/deals")
	dealHandler := NewDealHandler(deps.DealUC)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.ReportUC)
	deals.Get("/analytics/pipeline", analyticsHandler.PipelineSummary)
	deals.Get("/reports/pipeline.pdf", analyticsHandler.PipelinePDF)
	deals.Post("/", dealHandler.Create)
	deals.Get("/", dealHandler.List)
	deals.Get("/:id", dealHandler.GetByID)
	deals.Put("/:id", dealHandler.Update)
	deals.Delete("/:id", dealHandler.Delete)
	deals.Put("/:id/stage", dealHandler.ChangeStage)
	deals.Put("/:id/owner", dealHandler.Reassign)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.ReassignUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/password", userHandler.ChangePassword)
	users.Post("/:id/deactivate", userHandler.Deactivate)
	users.Post("/:id/activate", userHandler.Activate)
	users.Post("/:id/reassign-records", userHandler.ReassignRecords)

	// Audit log (solo admin)
	audit := protected.Group("/audit-logs", RequireRole(entity.RoleAdmin))
	auditHandler := NewAuditHandler(deps.AuditUC)
	audit.Get("/", auditHandler.List)
}
