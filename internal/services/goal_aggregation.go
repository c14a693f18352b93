package services

import (
	"math"
	"sort"

	"github.com/pedrohqs/atrio/internal/models"
)

// UserProgressEntry is one user's share of a team goal for the current period.
type UserProgressEntry struct {
	UserID   uint    `json:"user_id"`
	FullName string  `json:"full_name"`
	Region   string  `json:"region"`
	Value    float64 `json:"value"`
}

// TeamProgressResult aggregates a team goal across every contributor.
type TeamProgressResult struct {
	Total   float64             `json:"total"`
	PerUser []UserProgressEntry `json:"per_user"`
}

// ProgressForGoal sums the current-period values a single user logged for a
// goal. Rows stamped with an older period start are kept in storage but do
// not count here.
func ProgressForGoal(goal models.Goal, rows []models.GoalProgress, window PeriodWindow, userID uint) float64 {
	var total float64
	for _, row := range rows {
		if row.GoalID != goal.ID || row.UserID != userID {
			continue
		}
		if !window.ContainsPeriodStart(row.PeriodStart) {
			continue
		}
		total += row.CurrentValue
	}
	return total
}

// TeamProgress groups current-period values by user and resolves each
// contributor's profile. Rows referencing unknown users are dropped rather
// than failing the aggregate.
func TeamProgress(goal models.Goal, rows []models.GoalProgress, window PeriodWindow, users []models.User) TeamProgressResult {
	usersByID := make(map[uint]models.User, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
	}

	valuesByUser := make(map[uint]float64)
	order := make([]uint, 0)
	for _, row := range rows {
		if row.GoalID != goal.ID {
			continue
		}
		if !window.ContainsPeriodStart(row.PeriodStart) {
			continue
		}
		if _, known := usersByID[row.UserID]; !known {
			continue
		}
		if _, seen := valuesByUser[row.UserID]; !seen {
			order = append(order, row.UserID)
		}
		valuesByUser[row.UserID] += row.CurrentValue
	}

	result := TeamProgressResult{PerUser: make([]UserProgressEntry, 0, len(order))}
	for _, userID := range order {
		user := usersByID[userID]
		value := valuesByUser[userID]
		result.Total += value
		result.PerUser = append(result.PerUser, UserProgressEntry{
			UserID:   user.ID,
			FullName: user.FullName,
			Region:   user.Region,
			Value:    value,
		})
	}

	sort.SliceStable(result.PerUser, func(i, j int) bool {
		return result.PerUser[i].Value > result.PerUser[j].Value
	})

	return result
}

// Percentage converts progress into a whole-number percentage, capped at 100.
// A zero target yields 0 so a misconfigured goal never divides by zero.
func Percentage(current float64, target float64) int {
	if target == 0 {
		return 0
	}
	value := int(math.Round(current / target * 100))
	if value > 100 {
		return 100
	}
	if value < 0 {
		return 0
	}
	return value
}
