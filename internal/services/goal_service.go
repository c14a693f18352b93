package services

import (
	"errors"
	"time"

	"github.com/pedrohqs/atrio/internal/models"
)

var (
	ErrGoalInactive          = errors.New("goal inactive")
	ErrGoalNeedsTargetUser   = errors.New("individual goal needs target user")
	ErrProgressUserMismatch  = errors.New("progress user outside goal scope")
	ErrUnknownPeriodType     = errors.New("unknown period type")
	ErrUnknownGoalUnit       = errors.New("unknown goal unit")
	ErrInvalidTargetValue    = errors.New("invalid target value")
	ErrNegativeProgressValue = errors.New("negative progress value")
)

type GoalStore interface {
	ListActive() ([]models.Goal, error)
	FindByID(goalID uint) (models.Goal, error)
	ListProgress() ([]models.GoalProgress, error)
	ListProgressForGoal(goalID uint) ([]models.GoalProgress, error)
	UpsertProgress(goalID uint, userID uint, value float64, periodStart time.Time, periodEnd time.Time) error
}

type GoalUserReader interface {
	ListActive() ([]models.User, error)
}

type GoalService struct {
	goals GoalStore
	users GoalUserReader
}

func NewGoalService(goals GoalStore, users GoalUserReader) *GoalService {
	return &GoalService{goals: goals, users: users}
}

// GoalSummary is one goal with its viewer-scoped current-period numbers.
type GoalSummary struct {
	Goal       models.Goal `json:"goal"`
	Current    float64     `json:"current"`
	TeamTotal  float64     `json:"team_total"`
	Percentage int         `json:"percentage"`
	Achieved   bool        `json:"achieved"`
}

// ValidateGoalInput checks a goal before it is stored.
func ValidateGoalInput(goal models.Goal) error {
	if !models.IsKnownPeriodType(goal.PeriodType) {
		return ErrUnknownPeriodType
	}
	if !models.IsKnownGoalUnit(goal.Unit) {
		return ErrUnknownGoalUnit
	}
	if goal.TargetValue <= 0 {
		return ErrInvalidTargetValue
	}
	if goal.Scope == models.GoalScopeIndividual && goal.TargetUserID == nil {
		return ErrGoalNeedsTargetUser
	}
	return ValidateVisibilityRoles(goal.VisibleRoles)
}

// VisibleSummaries resolves every active goal the viewer may see into its
// current-period summary. Current is the viewer's own contribution (or the
// target user's for individual goals); TeamTotal covers every contributor.
func (service *GoalService) VisibleSummaries(viewer *models.User, now time.Time) ([]GoalSummary, error) {
	goals, err := service.goals.ListActive()
	if err != nil {
		return nil, err
	}
	goals = FilterVisible(goals, viewer)

	rows, err := service.goals.ListProgress()
	if err != nil {
		return nil, err
	}
	users, err := service.users.ListActive()
	if err != nil {
		return nil, err
	}

	summaries := make([]GoalSummary, 0, len(goals))
	for _, goal := range goals {
		window := WindowFor(goal.PeriodType, now)

		subjectID := viewer.ID
		if goal.Scope == models.GoalScopeIndividual && goal.TargetUserID != nil {
			subjectID = *goal.TargetUserID
		}

		current := ProgressForGoal(goal, rows, window, subjectID)
		team := TeamProgress(goal, rows, window, users)

		reference := current
		if goal.Scope == models.GoalScopeTeam {
			reference = team.Total
		}

		summaries = append(summaries, GoalSummary{
			Goal:       goal,
			Current:    current,
			TeamTotal:  team.Total,
			Percentage: Percentage(reference, goal.TargetValue),
			Achieved:   goal.TargetValue > 0 && reference >= goal.TargetValue,
		})
	}

	return summaries, nil
}

// TeamProgressForGoal resolves per-user contributions for one goal's current
// period.
func (service *GoalService) TeamProgressForGoal(goalID uint, now time.Time) (models.Goal, TeamProgressResult, error) {
	goal, err := service.goals.FindByID(goalID)
	if err != nil {
		return models.Goal{}, TeamProgressResult{}, err
	}

	rows, err := service.goals.ListProgressForGoal(goalID)
	if err != nil {
		return models.Goal{}, TeamProgressResult{}, err
	}
	users, err := service.users.ListActive()
	if err != nil {
		return models.Goal{}, TeamProgressResult{}, err
	}

	window := WindowFor(goal.PeriodType, now)
	return goal, TeamProgress(goal, rows, window, users), nil
}

// RecordProgress stamps the goal's current window onto the value and upserts
// the (goal, user, period) row. Repeating the same update overwrites rather
// than accumulates.
func (service *GoalService) RecordProgress(goalID uint, userID uint, value float64, now time.Time) (PeriodWindow, error) {
	if value < 0 {
		return PeriodWindow{}, ErrNegativeProgressValue
	}

	goal, err := service.goals.FindByID(goalID)
	if err != nil {
		return PeriodWindow{}, err
	}
	if !goal.IsActive {
		return PeriodWindow{}, ErrGoalInactive
	}
	if goal.Scope == models.GoalScopeIndividual {
		if goal.TargetUserID == nil {
			return PeriodWindow{}, ErrGoalNeedsTargetUser
		}
		if *goal.TargetUserID != userID {
			return PeriodWindow{}, ErrProgressUserMismatch
		}
	}

	window := WindowFor(goal.PeriodType, now)
	if err := service.goals.UpsertProgress(goal.ID, userID, value, window.Start, window.End); err != nil {
		return PeriodWindow{}, err
	}
	return window, nil
}

// Leaderboard assembles the seller ranking over every active goal.
func (service *GoalService) Leaderboard(now time.Time) ([]RankingEntry, error) {
	goals, err := service.goals.ListActive()
	if err != nil {
		return nil, err
	}
	rows, err := service.goals.ListProgress()
	if err != nil {
		return nil, err
	}
	users, err := service.users.ListActive()
	if err != nil {
		return nil, err
	}
	return RankSellers(goals, rows, users, now), nil
}
