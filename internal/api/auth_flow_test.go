package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestLoginReturnsTokenAndUser(t *testing.T) {
	app, repos := newTestApp(t)
	createTestUser(t, repos, "vendedor@example.com", "StrongPass1", "vendedor", "sul")

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "vendedor@example.com",
		"password": "StrongPass1",
	})
	defer response.Body.Close()
	requireStatus(t, response, http.StatusOK)

	var payload struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, response, &payload)
	if payload.Token == "" {
		t.Fatal("expected a token")
	}
	if payload.User.Role != "vendedor" {
		t.Fatalf("expected vendedor role, got %q", payload.User.Role)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, repos := newTestApp(t)
	createTestUser(t, repos, "vendedor@example.com", "StrongPass1", "vendedor", "")

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "vendedor@example.com",
		"password": "WrongPass1",
	})
	defer response.Body.Close()
	requireStatus(t, response, http.StatusUnauthorized)
}

func TestLoginNormalizesEmailCase(t *testing.T) {
	app, repos := newTestApp(t)
	createTestUser(t, repos, "mixed@example.com", "StrongPass1", "admin", "")

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "  MIXED@Example.COM ",
		"password": "StrongPass1",
	})
	defer response.Body.Close()
	requireStatus(t, response, http.StatusOK)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	app, repos := newTestApp(t)
	user := createTestUser(t, repos, "gone@example.com", "StrongPass1", "vendedor", "")
	if err := repos.Users.SetActive(user.ID, false); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "gone@example.com",
		"password": "StrongPass1",
	})
	defer response.Body.Close()
	requireStatus(t, response, http.StatusUnauthorized)
}

func TestDeactivationInvalidatesExistingToken(t *testing.T) {
	app, repos := newTestApp(t)
	user := createTestUser(t, repos, "soon-gone@example.com", "StrongPass1", "vendedor", "")
	token := loginToken(t, app, "soon-gone@example.com", "StrongPass1")

	if err := repos.Users.SetActive(user.ID, false); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	response := doJSON(t, app, http.MethodGet, "/api/me", token, nil)
	defer response.Body.Close()
	requireStatus(t, response, http.StatusUnauthorized)
}

func TestMeReflectsFreshRole(t *testing.T) {
	app, repos := newTestApp(t)
	user := createTestUser(t, repos, "promoted@example.com", "StrongPass1", "vendedor", "")
	token := loginToken(t, app, "promoted@example.com", "StrongPass1")

	if err := repos.Users.UpdateByID(user.ID, map[string]any{"role": "gerente"}); err != nil {
		t.Fatalf("promote user: %v", err)
	}

	response := doJSON(t, app, http.MethodGet, "/api/me", token, nil)
	defer response.Body.Close()
	requireStatus(t, response, http.StatusOK)

	var payload struct {
		Role string `json:"role"`
	}
	decodeBody(t, response, &payload)
	if payload.Role != "gerente" {
		t.Fatalf("expected refreshed role gerente, got %q", payload.Role)
	}
}

func TestMeRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	response := doJSON(t, app, http.MethodGet, "/api/me", "", nil)
	defer response.Body.Close()
	requireStatus(t, response, http.StatusUnauthorized)
}

func TestChangePasswordRejectsWeakNewPassword(t *testing.T) {
	app, repos := newTestApp(t)
	createTestUser(t, repos, "weak@example.com", "StrongPass1", "vendedor", "")
	token := loginToken(t, app, "weak@example.com", "StrongPass1")

	response := doJSON(t, app, http.MethodPost, "/api/auth/change-password", token, fiber.Map{
		"current_password": "StrongPass1",
		"new_password":     "short",
		"confirm_password": "short",
	})
	defer response.Body.Close()
	requireStatus(t, response, http.StatusBadRequest)
}

func TestChangePasswordRotatesCredential(t *testing.T) {
	app, repos := newTestApp(t)
	createTestUser(t, repos, "rotate@example.com", "StrongPass1", "vendedor", "")
	token := loginToken(t, app, "rotate@example.com", "StrongPass1")

	response := doJSON(t, app, http.MethodPost, "/api/auth/change-password", token, fiber.Map{
		"current_password": "StrongPass1",
		"new_password":     "FresherPass2",
		"confirm_password": "FresherPass2",
	})
	defer response.Body.Close()
	requireStatus(t, response, http.StatusOK)

	old := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "rotate@example.com",
		"password": "StrongPass1",
	})
	defer old.Body.Close()
	requireStatus(t, old, http.StatusUnauthorized)

	loginToken(t, app, "rotate@example.com", "FresherPass2")
}
