package controllers

import (
	"invoicing-backend/middlewares"
	"invoicing-backend/services"
	"invoicing-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateClient(c *fiber.Ctx) error {
	var in services.ClientInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	svc, err := clientService(c)
	if err != nil {
		return err
	}
	client, err := svc.Create(in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func GetClients(c *fiber.Ctx) error {
	svc, err := clientService(c)
	if err != nil {
		return err
	}
	clients, err := svc.List()
	if err != nil {
		return err
	}
	clients = services.SearchClients(c.Query("q"), clients)
	return c.JSON(fiber.Map{
		"clients": clients,
		"message": "success",
	})
}

func GetClient(c *fiber.Ctx) error {
	svc, err := clientService(c)
	if err != nil {
		return err
	}
	client, err := svc.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(client)
}

func UpdateClient(c *fiber.Ctx) error {
	var in services.ClientInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	svc, err := clientService(c)
	if err != nil {
		return err
	}
	client, err := svc.Update(c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(client)
}

func DeleteClient(c *fiber.Ctx) error {
	svc, err := clientService(c)
	if err != nil {
		return err
	}
	if err := svc.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// GetClientDependents is the advisory pre-delete check: the UI asks before a
// destructive delete and warns when invoices still reference the client.
func GetClientDependents(c *fiber.Ctx) error {
	svc, err := clientService(c)
	if err != nil {
		return err
	}
	has, count, err := svc.HasDependentInvoices(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"has_invoices": has,
		"count":        count,
	})
}
