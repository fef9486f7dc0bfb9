package routes

import (
	"github.com/gofiber/fiber/v2"

	"invoicing-backend/controllers"
	"invoicing-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Clients
	protected.Post("/client", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Get("/client/:id", controllers.GetClient)
	protected.Put("/client/:id", controllers.UpdateClient)
	protected.Delete("/client/:id", controllers.DeleteClient)
	protected.Get("/client/:id/invoices", controllers.GetClientDependents)

	// Invoices (lifecycle: draft -> sent -> paid/overdue)
	protected.Post("/invoice", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Put("/invoice/:id", controllers.UpdateInvoice)
	protected.Delete("/invoice/:id", controllers.DeleteInvoice)
	protected.Put("/invoice/:id/send", controllers.SendInvoice)
	protected.Put("/invoice/:id/pay", controllers.PayInvoice)
	protected.Post("/invoice/:id/duplicate", controllers.DuplicateInvoice)
	protected.Get("/invoice/:id/pdf", controllers.DownloadInvoicePDF)

	// Dashboard (overdue sweep + metrics + recent items)
	protected.Get("/dashboard", controllers.GetDashboard)
}
