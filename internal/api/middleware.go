package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/pedrohqs/atrio/internal/models"
	"github.com/pedrohqs/atrio/internal/services"
)

const (
	localeContextKey      = "atrio_lang"
	currentUserContextKey = "atrio_user"
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// LanguageMiddleware resolves the response language once per request, from
// the explicit query override first and Accept-Language second.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := strings.TrimSpace(c.Query("lang"))
	if language != "" {
		c.Locals(localeContextKey, handler.i18n.NormalizeLanguage(language))
		return c.Next()
	}
	c.Locals(localeContextKey, handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)))
	return c.Next()
}

func requestLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(localeContextKey).(string); ok && language != "" {
		return language
	}
	return ""
}

// AuthRequired validates the bearer token and reloads the account on every
// request, so role or region changes and deactivation apply immediately.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return handler.apiError(c, fiber.StatusUnauthorized, errUnauthorized)
	}

	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !parsed.Valid {
		return handler.apiError(c, fiber.StatusUnauthorized, errUnauthorized)
	}

	user, err := handler.repos.Users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.apiError(c, fiber.StatusUnauthorized, errUnauthorized)
		}
		return handler.respondServiceError(c, err)
	}
	if !user.IsActive {
		return handler.apiError(c, fiber.StatusUnauthorized, errAccountDisabled)
	}

	c.Locals(currentUserContextKey, &user)
	return c.Next()
}

// AdminOnly gates management routes to the full-access tier.
func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	if !services.HasFullAccess(currentUser(c)) {
		return handler.apiError(c, fiber.StatusForbidden, errForbidden)
	}
	return c.Next()
}

// ManagerOrAdmin additionally admits the gerente tier.
func (handler *Handler) ManagerOrAdmin(c *fiber.Ctx) error {
	user := currentUser(c)
	if !services.HasFullAccess(user) && !services.IsManagerUser(user) {
		return handler.apiError(c, fiber.StatusForbidden, errForbidden)
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(currentUserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
