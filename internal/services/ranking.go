package services

import (
	"sort"
	"time"

	"github.com/pedrohqs/atrio/internal/models"
)

// RankingEntry is one seller's line on the leaderboard.
type RankingEntry struct {
	UserID        uint    `json:"user_id"`
	FullName      string  `json:"full_name"`
	Region        string  `json:"region"`
	TotalCurrent  float64 `json:"total_current"`
	TotalTarget   float64 `json:"total_target"`
	Percentage    int     `json:"percentage"`
	AchievedGoals int     `json:"achieved_goals"`
}

// RankSellers builds the seller leaderboard. Only base-tier (vendedor) users
// appear; for each one, raw current values and targets are summed across all
// active goals that cover the user, each goal evaluated against its own
// current period window. Goals of different period types are mixed raw,
// matching observed portal behavior. Sellers with zero progress and zero
// achieved goals are left out. Ties keep input order.
func RankSellers(goals []models.Goal, rows []models.GoalProgress, users []models.User, now time.Time) []RankingEntry {
	entries := make([]RankingEntry, 0)

	for _, user := range users {
		if user.Role != models.RoleVendedor || !user.IsActive {
			continue
		}

		entry := RankingEntry{
			UserID:   user.ID,
			FullName: user.FullName,
			Region:   user.Region,
		}

		for _, goal := range goals {
			if !goal.IsActive {
				continue
			}
			if !goalCoversUser(goal, user.ID) {
				continue
			}

			window := WindowFor(goal.PeriodType, now)
			current := ProgressForGoal(goal, rows, window, user.ID)

			entry.TotalCurrent += current
			entry.TotalTarget += goal.TargetValue
			if goal.TargetValue > 0 && current >= goal.TargetValue {
				entry.AchievedGoals++
			}
		}

		if entry.TotalCurrent == 0 && entry.AchievedGoals == 0 {
			continue
		}

		entry.Percentage = Percentage(entry.TotalCurrent, entry.TotalTarget)
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percentage > entries[j].Percentage
	})

	return entries
}

func goalCoversUser(goal models.Goal, userID uint) bool {
	if goal.Scope != models.GoalScopeIndividual {
		return true
	}
	return goal.TargetUserID != nil && *goal.TargetUserID == userID
}
