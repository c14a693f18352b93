package models

import "time"

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusClosed     = "closed"
)

type Ticket struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Subject      string `gorm:"not null" json:"subject"`
	Body         string `gorm:"not null" json:"body"`
	Status       string `gorm:"not null;default:open;index" json:"status"`
	OpenedByID   uint   `gorm:"not null;index" json:"opened_by_id"`
	AssignedToID *uint  `json:"assigned_to_id,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TicketMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TicketID  uint      `gorm:"not null;index" json:"ticket_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func IsKnownTicketStatus(status string) bool {
	switch status {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	default:
		return false
	}
}
