package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/pedrohqs/atrio/internal/models"
	"github.com/pedrohqs/atrio/internal/security"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.repos.Users.List()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(users)
}

// CreateUser provisions an account with a server-generated temporary
// password. The password appears once in the response and nowhere else.
func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	var input createUserInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if !models.IsKnownRole(input.Role) {
		return handler.apiError(c, fiber.StatusBadRequest, "error.unknown_role")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	taken, err := handler.repos.Users.ExistsByNormalizedEmail(email)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if taken {
		return handler.apiError(c, fiber.StatusConflict, errEmailTaken)
	}

	temporaryPassword, err := security.TemporaryPassword(12)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	user := models.User{
		Email:              email,
		PasswordHash:       string(passwordHash),
		FullName:           strings.TrimSpace(input.FullName),
		Role:               input.Role,
		Region:             strings.ToLower(strings.TrimSpace(input.Region)),
		IsActive:           true,
		MustChangePassword: true,
	}
	if err := handler.repos.Users.Create(&user); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("users", "insert")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":               user,
		"temporary_password": temporaryPassword,
	})
}

func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	var input updateUserInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if !models.IsKnownRole(input.Role) {
		return handler.apiError(c, fiber.StatusBadRequest, "error.unknown_role")
	}

	if _, err := handler.repos.Users.FindByID(uint(userID)); err != nil {
		return handler.respondServiceError(c, err)
	}

	updates := map[string]any{
		"full_name": strings.TrimSpace(input.FullName),
		"role":      input.Role,
		"region":    strings.ToLower(strings.TrimSpace(input.Region)),
	}
	if err := handler.repos.Users.UpdateByID(uint(userID), updates); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("users", "update")
	updated, err := handler.repos.Users.FindByID(uint(userID))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(updated)
}

// SetUserActive deactivates or reactivates an account. Accounts are never
// hard-deleted; goal history keeps pointing at them.
func (handler *Handler) SetUserActive(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	var input struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	target, err := handler.repos.Users.FindByID(uint(userID))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.repos.Users.SetActive(target.ID, input.IsActive); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("users", "update")
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) ResetUserPassword(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	target, err := handler.repos.Users.FindByID(uint(userID))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	temporaryPassword, err := security.TemporaryPassword(12)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.repos.Users.UpdatePassword(target.ID, string(passwordHash), true); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.log.Info().Uint("user_id", target.ID).Msg("password reset by admin")
	return c.JSON(fiber.Map{"temporary_password": temporaryPassword})
}

// ListSellers supports goal assignment dropdowns for the manager tier.
func (handler *Handler) ListSellers(c *fiber.Ctx) error {
	sellers, err := handler.repos.Users.ListActiveByRole(models.RoleVendedor)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(sellers)
}
