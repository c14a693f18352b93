package db

import (
	"time"

	"github.com/pedrohqs/atrio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

func (repo *GoalRepository) ListActive() ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.Where("is_active = ?", true).Order("created_at DESC, id DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) List() ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.Order("created_at DESC, id DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) FindByID(goalID uint) (models.Goal, error) {
	var goal models.Goal
	if err := repo.database.First(&goal, goalID).Error; err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

func (repo *GoalRepository) Create(goal *models.Goal) error {
	return repo.database.Create(goal).Error
}

func (repo *GoalRepository) Save(goal *models.Goal) error {
	return repo.database.Save(goal).Error
}

// Deactivate soft-deletes a goal so progress history stays queryable.
func (repo *GoalRepository) Deactivate(goalID uint) error {
	return repo.database.Model(&models.Goal{}).Where("id = ?", goalID).Update("is_active", false).Error
}

func (repo *GoalRepository) ListProgress() ([]models.GoalProgress, error) {
	rows := make([]models.GoalProgress, 0)
	if err := repo.database.Order("period_start ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *GoalRepository) ListProgressForGoal(goalID uint) ([]models.GoalProgress, error) {
	rows := make([]models.GoalProgress, 0)
	if err := repo.database.Where("goal_id = ?", goalID).Order("period_start ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertProgress overwrites the current value for the (goal, user, period)
// triple; re-sending the same update stays idempotent instead of accumulating.
func (repo *GoalRepository) UpsertProgress(goalID uint, userID uint, value float64, periodStart time.Time, periodEnd time.Time) error {
	row := models.GoalProgress{
		GoalID:       goalID,
		UserID:       userID,
		CurrentValue: value,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
	}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "goal_id"}, {Name: "user_id"}, {Name: "period_start"}},
		DoUpdates: clause.Assignments(map[string]any{"current_value": value, "period_end": periodEnd}),
	}).Create(&row).Error
}
