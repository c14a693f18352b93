package services

import (
	"errors"
	"testing"
	"time"

	"github.com/pedrohqs/atrio/internal/models"
	"gorm.io/gorm"
)

type fakeNotificationStore struct {
	notifications []models.Notification
	reads         map[uint]map[uint]bool
	nextID        uint
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{reads: map[uint]map[uint]bool{}, nextID: 1}
}

func (store *fakeNotificationStore) List() ([]models.Notification, error) {
	return store.notifications, nil
}

func (store *fakeNotificationStore) Create(notification *models.Notification) error {
	notification.ID = store.nextID
	store.nextID++
	store.notifications = append(store.notifications, *notification)
	return nil
}

func (store *fakeNotificationStore) FindByID(notificationID uint) (models.Notification, error) {
	for _, notification := range store.notifications {
		if notification.ID == notificationID {
			return notification, nil
		}
	}
	return models.Notification{}, gorm.ErrRecordNotFound
}

func (store *fakeNotificationStore) DeleteByID(notificationID uint) error {
	kept := make([]models.Notification, 0, len(store.notifications))
	for _, notification := range store.notifications {
		if notification.ID != notificationID {
			kept = append(kept, notification)
		}
	}
	store.notifications = kept
	return nil
}

func (store *fakeNotificationStore) MarkRead(notificationID uint, userID uint, now time.Time) error {
	if store.reads[userID] == nil {
		store.reads[userID] = map[uint]bool{}
	}
	store.reads[userID][notificationID] = true
	return nil
}

func (store *fakeNotificationStore) ListReadIDsForUser(userID uint) (map[uint]bool, error) {
	marks := store.reads[userID]
	if marks == nil {
		return map[uint]bool{}, nil
	}
	return marks, nil
}

func TestNotificationListForUserFiltersAndMarksRead(t *testing.T) {
	store := newFakeNotificationStore()
	service := NewNotificationService(store)

	forSellers := &models.Notification{Title: "Campanha de março", Body: "Tabela nova", VisibleRoles: []string{models.RoleVendedor}}
	forManagers := &models.Notification{Title: "Fechamento", Body: "Só gerência", VisibleRoles: []string{models.RoleGerente}}
	regional := &models.Notification{Title: "Feira regional", Body: "Sul apenas", VisibleRoles: []string{models.RoleVendedor}, Regions: []string{"sul"}}
	for _, notification := range []*models.Notification{forSellers, forManagers, regional} {
		if err := service.Publish(notification); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	seller := &models.User{ID: 10, Role: models.RoleVendedor, Region: "norte"}
	views, err := service.ListForUser(seller)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected only the unrestricted seller notification, got %d", len(views))
	}
	if views[0].Read {
		t.Fatal("expected unread mark before opening")
	}

	if err := service.MarkRead(seller, views[0].Notification.ID, time.Now()); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	unread, err := service.UnreadCountForUser(seller)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected no unread left, got %d", unread)
	}
}

func TestNotificationMarkReadRefusesHiddenNotification(t *testing.T) {
	store := newFakeNotificationStore()
	service := NewNotificationService(store)

	hidden := &models.Notification{Title: "Só gerência", Body: "x", VisibleRoles: []string{models.RoleGerente}}
	if err := service.Publish(hidden); err != nil {
		t.Fatalf("publish: %v", err)
	}

	seller := &models.User{ID: 10, Role: models.RoleVendedor}
	if err := service.MarkRead(seller, hidden.ID, time.Now()); !errors.Is(err, ErrNotificationHidden) {
		t.Fatalf("expected ErrNotificationHidden, got %v", err)
	}
}

func TestNotificationPublishValidation(t *testing.T) {
	service := NewNotificationService(newFakeNotificationStore())

	if err := service.Publish(&models.Notification{Title: " ", Body: "x", VisibleRoles: []string{models.RoleVendedor}}); !errors.Is(err, ErrEmptyNotification) {
		t.Fatalf("expected ErrEmptyNotification, got %v", err)
	}
	if err := service.Publish(&models.Notification{Title: "t", Body: "b"}); !errors.Is(err, ErrEmptyVisibilityRoles) {
		t.Fatalf("expected ErrEmptyVisibilityRoles, got %v", err)
	}
	if err := service.Publish(&models.Notification{Title: "t", Body: "b", VisibleRoles: []string{"director"}}); !errors.Is(err, ErrUnknownVisibilityRole) {
		t.Fatalf("expected ErrUnknownVisibilityRole, got %v", err)
	}

	regional := &models.Notification{Title: "t", Body: "b", VisibleRoles: []string{models.RoleVendedor}, Regions: []string{" Sul ", ""}}
	if err := service.Publish(regional); err != nil {
		t.Fatalf("publish regional: %v", err)
	}
	if len(regional.Regions) != 1 || regional.Regions[0] != "sul" {
		t.Fatalf("expected normalized regions, got %#v", regional.Regions)
	}
}
