package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pedrohqs/atrio/internal/models"
	"github.com/pedrohqs/atrio/internal/services"
)

// ListGoals returns visibility-filtered current-period summaries for the
// signed-in viewer.
func (handler *Handler) ListGoals(c *fiber.Ctx) error {
	summaries, err := handler.goals.VisibleSummaries(currentUser(c), handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(summaries)
}

func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	var input goalInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	goal := models.Goal{
		Title:        strings.TrimSpace(input.Title),
		TargetValue:  input.TargetValue,
		Unit:         input.Unit,
		PeriodType:   input.PeriodType,
		Scope:        input.Scope,
		TargetUserID: input.TargetUserID,
		VisibleRoles: input.VisibleRoles,
		IsActive:     true,
		CreatedByID:  currentUser(c).ID,
	}
	if err := services.ValidateGoalInput(goal); err != nil {
		return handler.respondServiceError(c, err)
	}

	if err := handler.repos.Goals.Create(&goal); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("goals", "insert")
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (handler *Handler) UpdateGoal(c *fiber.Ctx) error {
	goalID, err := c.ParamsInt("id")
	if err != nil || goalID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	goal, err := handler.repos.Goals.FindByID(uint(goalID))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	var input goalInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if err := handler.validate.Struct(input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	goal.Title = strings.TrimSpace(input.Title)
	goal.TargetValue = input.TargetValue
	goal.Unit = input.Unit
	goal.PeriodType = input.PeriodType
	goal.Scope = input.Scope
	goal.TargetUserID = input.TargetUserID
	goal.VisibleRoles = input.VisibleRoles
	if err := services.ValidateGoalInput(goal); err != nil {
		return handler.respondServiceError(c, err)
	}

	if err := handler.repos.Goals.Save(&goal); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("goals", "update")
	return c.JSON(goal)
}

// DeactivateGoal soft-deletes: progress history for past periods survives.
func (handler *Handler) DeactivateGoal(c *fiber.Ctx) error {
	goalID, err := c.ParamsInt("id")
	if err != nil || goalID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}
	if _, err := handler.repos.Goals.FindByID(uint(goalID)); err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.repos.Goals.Deactivate(uint(goalID)); err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("goals", "update")
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) GoalTeamProgress(c *fiber.Ctx) error {
	goalID, err := c.ParamsInt("id")
	if err != nil || goalID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	goal, team, err := handler.goals.TeamProgressForGoal(uint(goalID), handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !services.IsVisible(goal.Visibility(), currentUser(c)) {
		return handler.apiError(c, fiber.StatusNotFound, errNotFound)
	}

	return c.JSON(fiber.Map{
		"goal":       goal,
		"total":      team.Total,
		"per_user":   team.PerUser,
		"percentage": services.Percentage(team.Total, goal.TargetValue),
	})
}

// RecordGoalProgress upserts the caller's value for the goal's current
// period. Managers and admins may record on behalf of another user.
func (handler *Handler) RecordGoalProgress(c *fiber.Ctx) error {
	goalID, err := c.ParamsInt("id")
	if err != nil || goalID <= 0 {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	var input progressInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errInvalidInput)
	}

	viewer := currentUser(c)
	subjectID := viewer.ID
	if input.UserID != nil && *input.UserID != viewer.ID {
		if !services.HasFullAccess(viewer) && !services.IsManagerUser(viewer) {
			return handler.apiError(c, fiber.StatusForbidden, errForbidden)
		}
		subjectID = *input.UserID
	}

	window, err := handler.goals.RecordProgress(uint(goalID), subjectID, input.Value, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.hub.Broadcast("goal_progress", "update")
	return c.JSON(fiber.Map{
		"status":       "ok",
		"period_start": window.Start,
		"period_end":   window.End,
	})
}
