package models

import "time"

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

const (
	GoalScopeTeam       = "team"
	GoalScopeIndividual = "individual"
)

const (
	UnitCount    = "count"
	UnitCurrency = "currency"
	UnitPercent  = "percent"
	UnitWeight   = "weight"
)

type Goal struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Title        string   `gorm:"not null" json:"title"`
	TargetValue  float64  `gorm:"not null" json:"target_value"`
	Unit         string   `gorm:"not null;default:count" json:"unit"`
	PeriodType   string   `gorm:"not null" json:"period_type"`
	Scope        string   `gorm:"not null;default:team" json:"scope"`
	TargetUserID *uint    `json:"target_user_id,omitempty"`
	VisibleRoles []string `gorm:"serializer:json" json:"visible_roles"`
	IsActive     bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedByID  uint     `gorm:"not null" json:"created_by_id"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (goal Goal) Visibility() VisibilityRule {
	return VisibilityRule{Roles: goal.VisibleRoles}
}

func IsKnownPeriodType(periodType string) bool {
	switch periodType {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	default:
		return false
	}
}

func IsKnownGoalUnit(unit string) bool {
	switch unit {
	case UnitCount, UnitCurrency, UnitPercent, UnitWeight:
		return true
	default:
		return false
	}
}

// GoalProgress holds one user's running value for one goal within one period.
// The (goal, user, period_start) triple is unique; updates inside the same
// period overwrite, a new period start produces a fresh row.
type GoalProgress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GoalID       uint      `gorm:"not null;uniqueIndex:uidx_goal_user_period" json:"goal_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:uidx_goal_user_period" json:"user_id"`
	CurrentValue float64   `gorm:"not null;default:0" json:"current_value"`
	PeriodStart  time.Time `gorm:"type:date;not null;uniqueIndex:uidx_goal_user_period" json:"period_start"`
	PeriodEnd    time.Time `gorm:"type:date;not null" json:"period_end"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (GoalProgress) TableName() string {
	return "goal_progress"
}
