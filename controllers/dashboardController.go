package controllers

import (
	"invoicing-backend/services"
	"invoicing-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard runs the overdue sweep first, then folds the fresh collections
// into the metrics summary and the recent-items views. The sweep lives here,
// on dashboard load, rather than on a timer inside the domain.
func GetDashboard(c *fiber.Ctx) error {
	invoiceSvc, err := invoiceService(c)
	if err != nil {
		return err
	}
	clientSvc, err := clientService(c)
	if err != nil {
		return err
	}

	invoices, err := invoiceSvc.CheckOverdue()
	if err != nil {
		return err
	}
	clients, err := clientSvc.List()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"metrics":         services.CalculateMetrics(invoices, clients),
		"recent_invoices": services.RecentInvoices(invoices, utils.ParseIntDefault(c.Query("invoice_limit"), 0)),
		"recent_clients":  services.RecentClients(clients, utils.ParseIntDefault(c.Query("client_limit"), 0)),
		"message":         "success",
	})
}
