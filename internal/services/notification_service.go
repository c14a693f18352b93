package services

import (
	"errors"
	"strings"
	"time"

	"github.com/pedrohqs/atrio/internal/models"
)

var (
	ErrEmptyNotification  = errors.New("empty notification")
	ErrNotificationHidden = errors.New("notification hidden")
)

type NotificationStore interface {
	List() ([]models.Notification, error)
	Create(notification *models.Notification) error
	FindByID(notificationID uint) (models.Notification, error)
	DeleteByID(notificationID uint) error
	MarkRead(notificationID uint, userID uint, now time.Time) error
	ListReadIDsForUser(userID uint) (map[uint]bool, error)
}

type NotificationService struct {
	notifications NotificationStore
}

func NewNotificationService(notifications NotificationStore) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// NotificationView pairs a notification with the viewer's read mark.
type NotificationView struct {
	Notification models.Notification `json:"notification"`
	Read         bool                `json:"read"`
}

// ListForUser returns the visibility-filtered feed, newest first, with per
// viewer read marks. Denied notifications are omitted, never errored.
func (service *NotificationService) ListForUser(user *models.User) ([]NotificationView, error) {
	notifications, err := service.notifications.List()
	if err != nil {
		return nil, err
	}
	readIDs, err := service.notifications.ListReadIDsForUser(user.ID)
	if err != nil {
		return nil, err
	}

	views := make([]NotificationView, 0, len(notifications))
	for _, notification := range notifications {
		if !IsVisible(notification.Visibility(), user) {
			continue
		}
		views = append(views, NotificationView{
			Notification: notification,
			Read:         readIDs[notification.ID],
		})
	}
	return views, nil
}

// UnreadCountForUser counts visible notifications the viewer has not opened.
func (service *NotificationService) UnreadCountForUser(user *models.User) (int, error) {
	views, err := service.ListForUser(user)
	if err != nil {
		return 0, err
	}

	unread := 0
	for _, view := range views {
		if !view.Read {
			unread++
		}
	}
	return unread, nil
}

// Publish validates and stores a notification addressed to a role/region set.
func (service *NotificationService) Publish(notification *models.Notification) error {
	notification.Title = strings.TrimSpace(notification.Title)
	notification.Body = strings.TrimSpace(notification.Body)
	if notification.Title == "" || notification.Body == "" {
		return ErrEmptyNotification
	}
	if err := ValidateVisibilityRoles(notification.VisibleRoles); err != nil {
		return err
	}
	notification.Regions = NormalizeRegions(notification.Regions)
	return service.notifications.Create(notification)
}

// MarkRead records that the viewer opened a notification. Marking a
// notification the viewer cannot see is refused the same way as a missing
// one, so read marks never leak hidden titles.
func (service *NotificationService) MarkRead(user *models.User, notificationID uint, now time.Time) error {
	notification, err := service.notifications.FindByID(notificationID)
	if err != nil {
		return err
	}
	if !IsVisible(notification.Visibility(), user) {
		return ErrNotificationHidden
	}
	return service.notifications.MarkRead(notificationID, user.ID, now)
}

func (service *NotificationService) Delete(notificationID uint) error {
	return service.notifications.DeleteByID(notificationID)
}
