package db

import (
	"time"

	"github.com/pedrohqs/atrio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct {
	database *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{database: database}
}

func (repo *NotificationRepository) List() ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	if err := repo.database.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (repo *NotificationRepository) FindByID(notificationID uint) (models.Notification, error) {
	var notification models.Notification
	if err := repo.database.First(&notification, notificationID).Error; err != nil {
		return models.Notification{}, err
	}
	return notification, nil
}

func (repo *NotificationRepository) Create(notification *models.Notification) error {
	return repo.database.Create(notification).Error
}

func (repo *NotificationRepository) DeleteByID(notificationID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id = ?", notificationID).Delete(&models.NotificationRead{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Notification{}, notificationID).Error
	})
}

func (repo *NotificationRepository) MarkRead(notificationID uint, userID uint, now time.Time) error {
	mark := models.NotificationRead{
		NotificationID: notificationID,
		UserID:         userID,
		ReadAt:         now,
	}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "notification_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&mark).Error
}

func (repo *NotificationRepository) ListReadIDsForUser(userID uint) (map[uint]bool, error) {
	marks := make([]models.NotificationRead, 0)
	if err := repo.database.Where("user_id = ?", userID).Find(&marks).Error; err != nil {
		return nil, err
	}

	readIDs := make(map[uint]bool, len(marks))
	for _, mark := range marks {
		readIDs[mark.NotificationID] = true
	}
	return readIDs, nil
}
