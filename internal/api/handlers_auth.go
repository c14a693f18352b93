package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	loginFailureLimit  = 8
	loginFailureWindow = 10 * time.Minute
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginFailureLimit, loginFailureWindow) {
		return handler.apiError(c, fiber.StatusTooManyRequests, errTooManyAttempts)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := handler.repos.Users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handler.loginLimiter.addFailure(limiterKey, now, loginFailureWindow)
			return handler.apiError(c, fiber.StatusUnauthorized, errInvalidCredentials)
		}
		return handler.respondServiceError(c, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		handler.loginLimiter.addFailure(limiterKey, now, loginFailureWindow)
		return handler.apiError(c, fiber.StatusUnauthorized, errInvalidCredentials)
	}
	if !user.IsActive {
		return handler.apiError(c, fiber.StatusUnauthorized, errAccountDisabled)
	}

	handler.loginLimiter.reset(limiterKey)

	token, err := handler.buildToken(user.ID, now)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.log.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("login")
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me re-resolves the session profile; the frontend calls it on every load so
// role and region changes take effect without a new login.
func (handler *Handler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	user := currentUser(c)
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidCredentials)
	}
	if input.NewPassword != input.ConfirmPassword {
		return handler.apiError(c, fiber.StatusBadRequest, errPasswordMismatch)
	}
	if !isStrongPassword(input.NewPassword) {
		return handler.apiError(c, fiber.StatusBadRequest, errWeakPassword)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.repos.Users.UpdatePassword(user.ID, string(passwordHash), false); err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) buildToken(userID uint, now time.Time) (string, error) {
	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(authTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}
