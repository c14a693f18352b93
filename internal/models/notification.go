package models

import "time"

type Notification struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Title        string   `gorm:"not null" json:"title"`
	Body         string   `gorm:"not null" json:"body"`
	VisibleRoles []string `gorm:"serializer:json" json:"visible_roles"`
	Regions      []string `gorm:"serializer:json" json:"regions"`
	CreatedByID  uint     `gorm:"not null" json:"created_by_id"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (notification Notification) Visibility() VisibilityRule {
	return VisibilityRule{Roles: notification.VisibleRoles, Regions: notification.Regions}
}

// NotificationRead marks a notification as read by one user.
type NotificationRead struct {
	ID             uint      `gorm:"primaryKey"`
	NotificationID uint      `gorm:"not null;uniqueIndex:uidx_notification_user"`
	UserID         uint      `gorm:"not null;uniqueIndex:uidx_notification_user"`
	ReadAt         time.Time `gorm:"not null"`
}
