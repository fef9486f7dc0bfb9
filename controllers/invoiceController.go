package controllers

import (
	"invoicing-backend/middlewares"
	"invoicing-backend/pdf"
	"invoicing-backend/services"
	"invoicing-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateInvoice(c *fiber.Ctx) error {
	var in services.InvoiceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	svc, err := invoiceService(c)
	if err != nil {
		return err
	}
	invoice, err := svc.Create(in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func GetInvoices(c *fiber.Ctx) error {
	svc, err := invoiceService(c)
	if err != nil {
		return err
	}
	invoices, err := svc.List()
	if err != nil {
		return err
	}
	invoices = services.SearchInvoices(c.Query("q"), invoices)
	invoices = services.FilterByStatus(c.Query("status"), invoices)
	return c.JSON(fiber.Map{
		"invoices": invoices,
		"message":  "success",
	})
}

func GetInvoice(c *fiber.Ctx) error {
	svc, err := invoiceService(c)
	if err != nil {
		return err
	}
	invoice, err := svc.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func UpdateInvoice(c *fiber.Ctx) error {
	var in services.InvoiceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	svc, err := invoiceService(c)
	if err != nil {
		return err
	}
	invoice, err := svc.Update(c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func DeleteInvoice(c *fiber.Ctx) error {
	svc, err := invoiceService(c)
	if err != nil {
		return err
	}
	if err := svc.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func SendInvoice(c *fiber.Ctx) error {
	svc, err := invoiceService(c)
	if err != nil {
		return err
	}
	invoice, err := svc.MarkAsSent(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

// PayInvoice flips the status only; actual payment collection is out of scope.
func PayInvoice(c *fiber.Ctx) error {
	svc, err := invoiceService(c)
	if err != nil {
		return err
	}
	invoice, err := svc.MarkAsPaid(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func DuplicateInvoice(c *fiber.Ctx) error {
	svc, err := invoiceService(c)
	if err != nil {
		return err
	}
	invoice, err := svc.Duplicate(c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func DownloadInvoicePDF(c *fiber.Ctx) error {
	svc, err := invoiceService(c)
	if err != nil {
		return err
	}
	invoice, err := svc.Get(c.Params("id"))
	if err != nil {
		return err
	}
	out, err := pdf.Render(invoice)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not render invoice")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+invoice.InvoiceNumber+`.pdf"`)
	return c.Send(out)
}
