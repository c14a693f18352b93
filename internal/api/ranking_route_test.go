package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRankingOrdersSellersByPercentage(t *testing.T) {
	app, repos := newTestApp(t)
	createTestUser(t, repos, "admin@example.com", "StrongPass1", "admin", "")
	fast := createTestUser(t, repos, "fast@example.com", "StrongPass1", "vendedor", "sul")
	slow := createTestUser(t, repos, "slow@example.com", "StrongPass1", "vendedor", "norte")
	createTestUser(t, repos, "manager@example.com", "StrongPass1", "gerente", "")

	adminToken := loginToken(t, app, "admin@example.com", "StrongPass1")
	fastToken := loginToken(t, app, "fast@example.com", "StrongPass1")
	slowToken := loginToken(t, app, "slow@example.com", "StrongPass1")

	created := doJSON(t, app, http.MethodPost, "/api/goals", adminToken, fiber.Map{
		"title":         "Vendas",
		"target_value":  100,
		"unit":          "currency",
		"period_type":   "monthly",
		"scope":         "team",
		"visible_roles": []string{"vendedor", "gerente"},
	})
	defer created.Body.Close()
	requireStatus(t, created, http.StatusCreated)

	var goal struct {
		ID uint `json:"id"`
	}
	decodeBody(t, created, &goal)

	progressPath := fmt.Sprintf("/api/goals/%d/progress", goal.ID)
	r1 := doJSON(t, app, http.MethodPost, progressPath, fastToken, fiber.Map{"value": 90})
	defer r1.Body.Close()
	requireStatus(t, r1, http.StatusOK)
	r2 := doJSON(t, app, http.MethodPost, progressPath, slowToken, fiber.Map{"value": 40})
	defer r2.Body.Close()
	requireStatus(t, r2, http.StatusOK)

	ranking := doJSON(t, app, http.MethodGet, "/api/ranking", adminToken, nil)
	defer ranking.Body.Close()
	requireStatus(t, ranking, http.StatusOK)

	var entries []struct {
		UserID     uint `json:"user_id"`
		Percentage int  `json:"percentage"`
	}
	decodeBody(t, ranking, &entries)
	if len(entries) != 2 {
		t.Fatalf("expected 2 ranked sellers, got %d", len(entries))
	}
	if entries[0].UserID != fast.ID || entries[0].Percentage != 90 {
		t.Fatalf("expected fast seller first at 90%%, got %+v", entries[0])
	}
	if entries[1].UserID != slow.ID || entries[1].Percentage != 40 {
		t.Fatalf("expected slow seller second at 40%%, got %+v", entries[1])
	}
}

func TestRankingOmitsSellersWithoutProgress(t *testing.T) {
	app, repos := newTestApp(t)
	createTestUser(t, repos, "admin@example.com", "StrongPass1", "admin", "")
	active := createTestUser(t, repos, "active@example.com", "StrongPass1", "vendedor", "")
	createTestUser(t, repos, "idle@example.com", "StrongPass1", "vendedor", "")

	adminToken := loginToken(t, app, "admin@example.com", "StrongPass1")
	activeToken := loginToken(t, app, "active@example.com", "StrongPass1")

	created := doJSON(t, app, http.MethodPost, "/api/goals", adminToken, fiber.Map{
		"title":         "Contatos",
		"target_value":  10,
		"unit":          "count",
		"period_type":   "weekly",
		"scope":         "team",
		"visible_roles": []string{"vendedor"},
	})
	defer created.Body.Close()
	requireStatus(t, created, http.StatusCreated)

	var goal struct {
		ID uint `json:"id"`
	}
	decodeBody(t, created, &goal)

	r := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/goals/%d/progress", goal.ID), activeToken, fiber.Map{"value": 3})
	defer r.Body.Close()
	requireStatus(t, r, http.StatusOK)

	ranking := doJSON(t, app, http.MethodGet, "/api/ranking", adminToken, nil)
	defer ranking.Body.Close()
	requireStatus(t, ranking, http.StatusOK)

	var entries []struct {
		UserID uint `json:"user_id"`
	}
	decodeBody(t, ranking, &entries)
	if len(entries) != 1 || entries[0].UserID != active.ID {
		t.Fatalf("expected only the reporting seller, got %+v", entries)
	}
}
