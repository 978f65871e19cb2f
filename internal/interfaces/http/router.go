package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hst-contabilidad/internal/application/access"
	"github.com/jhoicas/hst-contabilidad/internal/application/auth"
	"github.com/jhoicas/hst-contabilidad/internal/application/bookkeeping"
	"github.com/jhoicas/hst-contabilidad/internal/infrastructure/storage"
	"github.com/jhoicas/hst-contabilidad/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	MovementUC  *bookkeeping.MovementUseCase
	InvoiceUC   *bookkeeping.InvoiceUseCase
	PaymentUC   *bookkeeping.PaymentUseCase
	DashboardUC *bookkeeping.DashboardUseCase
	StatementUC *bookkeeping.StatementUseCase
	ShareLinks  access.LinkLookup
	LocalFiles  *storage.LocalStore // nil si los documentos viven en Supabase
	JWTSecret   string
	Location    *time.Location
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	session := AuthMiddleware(deps.JWTSecret)
	canWrite := RequireScope(jwt.ScopeWrite)
	canDelete := RequireScope(jwt.ScopeDelete)

	authHandler := NewAuthHandler(deps.AuthUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, loc)
	movementHandler := NewMovementHandler(deps.MovementUC, loc)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PaymentUC, loc)
	statementHandler := NewStatementHandler(deps.StatementUC, loc)

	api := app.Group("/api")

	// Auth
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/elevate", session, authHandler.Elevate)

	// Visores de solo lectura (enlace compartido)
	viewerGate := ShareTokenMiddleware(deps.ShareLinks)
	viewer := api.Group("/viewer", viewerGate)
	viewer.Get("/dashboard", dashboardHandler.GetReadOnly)
	viewer.Get("/invoices", invoiceHandler.List)
	viewer.Get("/invoices/:id/document", invoiceHandler.Document)
	viewer.Get("/statement.pdf", statementHandler.Download)
	api.Get("/report/:token", viewerGate, dashboardHandler.GetReadOnly)

	// Panel del operador (protegido)
	api.Get("/dashboard", session, dashboardHandler.GetSummary)
	api.Get("/statement.pdf", session, statementHandler.Download)
	api.Get("/clients/suggest", session, invoiceHandler.SuggestClients)

	movements := api.Group("/movements", session)
	movements.Get("/", movementHandler.List)
	movements.Post("/", canWrite, movementHandler.Create)
	movements.Delete("/:id", canDelete, movementHandler.Delete)

	invoices := api.Group("/invoices", session)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", canWrite, invoiceHandler.Create)
	invoices.Patch("/:id/amount", canWrite, invoiceHandler.UpdateAmount)
	invoices.Delete("/:id", canDelete, invoiceHandler.Delete)
	invoices.Get("/:id/document", invoiceHandler.Document)
	invoices.Get("/:id/payments", invoiceHandler.Payments)
	invoices.Post("/:id/payments", canWrite, invoiceHandler.RegisterPayment)

	// Descargas firmadas del almacenamiento local
	if deps.LocalFiles != nil {
		filesHandler := NewFilesHandler(deps.LocalFiles)
		app.Get(storage.FilesRoute+"/*", filesHandler.Get)
	}
}
