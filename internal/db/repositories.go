package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Products      *ProductRepository
	Materials     *MaterialRepository
	Notifications *NotificationRepository
	Goals         *GoalRepository
	Tickets       *TicketRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Products:      NewProductRepository(database),
		Materials:     NewMaterialRepository(database),
		Notifications: NewNotificationRepository(database),
		Goals:         NewGoalRepository(database),
		Tickets:       NewTicketRepository(database),
	}
}
