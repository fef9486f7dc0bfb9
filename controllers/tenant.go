package controllers

import (
	"os"
	"strconv"

	"invoicing-backend/database"
	"invoicing-backend/services"
	"invoicing-backend/store"

	"github.com/gofiber/fiber/v2"
)

// tenantStore adapts the request's tenant-pinned DB (the per-request TX when
// TenantTx ran) to the persistence contract the services consume.
func tenantStore(c *fiber.Ctx) (store.Store, error) {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "tenant database unavailable")
	}
	return store.NewGormStore(db), nil
}

func clientService(c *fiber.Ctx) (*services.ClientService, error) {
	st, err := tenantStore(c)
	if err != nil {
		return nil, err
	}
	return services.NewClientService(st), nil
}

func invoiceService(c *fiber.Ctx) (*services.InvoiceService, error) {
	st, err := tenantStore(c)
	if err != nil {
		return nil, err
	}
	seq := services.NewSequencer(st, services.NumberFormat(os.Getenv("INVOICE_NUMBER_FORMAT")))
	return services.NewInvoiceService(st, seq, taxRate()), nil
}

// taxRate reads TAX_RATE_PERCENT; a negative result means "use the default".
func taxRate() float64 {
	if v, err := strconv.ParseFloat(os.Getenv("TAX_RATE_PERCENT"), 64); err == nil && v >= 0 {
		return v
	}
	return -1
}
