package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pedrohqs/atrio/internal/services"
)

// errBadPayload marks malformed or schema-invalid request bodies before they
// reach domain validation.
var errBadPayload = errors.New("bad payload")

const (
	errInvalidCredentials = "error.invalid_credentials"
	errAccountDisabled    = "error.account_disabled"
	errTooManyAttempts    = "error.too_many_attempts"
	errUnauthorized       = "error.unauthorized"
	errForbidden          = "error.forbidden"
	errNotFound           = "error.not_found"
	errInvalidInput       = "error.invalid_input"
	errEmailTaken         = "error.email_taken"
	errPasswordMismatch   = "error.password_mismatch"
	errWeakPassword       = "error.weak_password"
	errInternal           = "error.internal"
)

// apiError responds with a stable error key plus the localized toast message
// the portal frontend renders as-is.
func (handler *Handler) apiError(c *fiber.Ctx, status int, key string) error {
	language := requestLanguage(c)
	return c.Status(status).JSON(fiber.Map{
		"error":   key,
		"message": handler.i18n.Translate(language, key),
	})
}

// serviceErrorKey maps domain validation errors onto locale keys. Unknown
// errors fall through to the generic internal key.
func serviceErrorKey(err error) (int, string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound, errNotFound
	case errors.Is(err, services.ErrEmptyVisibilityRoles):
		return fiber.StatusBadRequest, "error.empty_visibility"
	case errors.Is(err, services.ErrUnknownVisibilityRole):
		return fiber.StatusBadRequest, "error.unknown_role"
	case errors.Is(err, services.ErrInvalidExternalURL):
		return fiber.StatusBadRequest, "error.invalid_url"
	case errors.Is(err, services.ErrGoalInactive):
		return fiber.StatusConflict, "error.goal_inactive"
	case errors.Is(err, services.ErrGoalNeedsTargetUser):
		return fiber.StatusBadRequest, "error.goal_needs_target_user"
	case errors.Is(err, services.ErrProgressUserMismatch):
		return fiber.StatusForbidden, "error.progress_user_mismatch"
	case errors.Is(err, services.ErrUnknownPeriodType):
		return fiber.StatusBadRequest, "error.unknown_period"
	case errors.Is(err, services.ErrUnknownGoalUnit):
		return fiber.StatusBadRequest, "error.unknown_unit"
	case errors.Is(err, services.ErrInvalidTargetValue):
		return fiber.StatusBadRequest, "error.invalid_target"
	case errors.Is(err, services.ErrNegativeProgressValue):
		return fiber.StatusBadRequest, "error.negative_progress"
	case errors.Is(err, services.ErrEmptyNotification):
		return fiber.StatusBadRequest, errInvalidInput
	case errors.Is(err, services.ErrNotificationHidden), errors.Is(err, services.ErrTicketHidden):
		// Denied resources behave like missing ones so existence never leaks.
		return fiber.StatusNotFound, errNotFound
	case errors.Is(err, services.ErrEmptyTicket):
		return fiber.StatusBadRequest, "error.empty_ticket"
	case errors.Is(err, services.ErrUnknownTicketStatus):
		return fiber.StatusBadRequest, "error.unknown_status"
	default:
		return fiber.StatusInternalServerError, errInternal
	}
}

func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	status, key := serviceErrorKey(err)
	if status == fiber.StatusInternalServerError {
		handler.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return handler.apiError(c, status, key)
}
