package controllers

import (
	"strings"
	"time"

	"invoicing-backend/database"
	"invoicing-backend/middlewares"
	"invoicing-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates the user account plus its private tenant schema and runs
// the tenant migrations so the first login already finds its tables.
func Register(c *fiber.Ctx) error {
	var in RegisterInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	if in.Password != in.PasswordConfirm {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	var existing models.User
	database.DB.Where("email = ?", email).First(&existing)
	if existing.Email != "" {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	}

	schemaName := "tenant_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	tx := database.DB.Begin()
	user := models.User{
		Name:       strings.TrimSpace(in.Name),
		Email:      email,
		SchemaName: schemaName,
	}
	user.SetPassword(in.Password)
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, "could not create user")
	}

	if err := database.CreateTenantSchema(schemaName); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "could not create tenant schema")
	}
	if err := database.MigrateTenantSchema(schemaName); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "could not migrate tenant schema")
	}

	tx.Commit()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func Login(c *fiber.Ctx) error {
	var in LoginInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var user models.User
	database.DB.Table("public.users").
		Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).
		First(&user)
	if user.Id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}
	if err := user.ComparePassword(in.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.Id, user.SchemaName)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not issue token")
	}

	// Idempotent; picks up schema changes shipped since the last login.
	if err := database.MigrateTenantSchema(user.SchemaName); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not migrate tenant schema")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}
