package services

import (
	"errors"
	"strings"

	"github.com/pedrohqs/atrio/internal/models"
)

var (
	ErrEmptyTicket         = errors.New("empty ticket")
	ErrTicketHidden        = errors.New("ticket hidden")
	ErrUnknownTicketStatus = errors.New("unknown ticket status")
)

type TicketStore interface {
	List() ([]models.Ticket, error)
	ListByOpener(userID uint) ([]models.Ticket, error)
	FindByID(ticketID uint) (models.Ticket, error)
	Create(ticket *models.Ticket) error
	UpdateByID(ticketID uint, updates map[string]any) error
	ListMessages(ticketID uint) ([]models.TicketMessage, error)
	CreateMessage(message *models.TicketMessage) error
}

type TicketService struct {
	tickets TicketStore
}

func NewTicketService(tickets TicketStore) *TicketService {
	return &TicketService{tickets: tickets}
}

// CanViewTicket gates ticket threads: full-access roles manage everything,
// everyone else only sees what they opened.
func CanViewTicket(user *models.User, ticket models.Ticket) bool {
	if HasFullAccess(user) {
		return true
	}
	return user != nil && ticket.OpenedByID == user.ID
}

func (service *TicketService) ListForUser(user *models.User) ([]models.Ticket, error) {
	if HasFullAccess(user) {
		return service.tickets.List()
	}
	return service.tickets.ListByOpener(user.ID)
}

func (service *TicketService) Open(user *models.User, subject string, body string) (models.Ticket, error) {
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return models.Ticket{}, ErrEmptyTicket
	}

	ticket := models.Ticket{
		Subject:    subject,
		Body:       body,
		Status:     models.TicketStatusOpen,
		OpenedByID: user.ID,
	}
	if err := service.tickets.Create(&ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (service *TicketService) Thread(user *models.User, ticketID uint) (models.Ticket, []models.TicketMessage, error) {
	ticket, err := service.tickets.FindByID(ticketID)
	if err != nil {
		return models.Ticket{}, nil, err
	}
	if !CanViewTicket(user, ticket) {
		return models.Ticket{}, nil, ErrTicketHidden
	}

	messages, err := service.tickets.ListMessages(ticketID)
	if err != nil {
		return models.Ticket{}, nil, err
	}
	return ticket, messages, nil
}

func (service *TicketService) Reply(user *models.User, ticketID uint, body string) (models.TicketMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.TicketMessage{}, ErrEmptyTicket
	}

	ticket, err := service.tickets.FindByID(ticketID)
	if err != nil {
		return models.TicketMessage{}, err
	}
	if !CanViewTicket(user, ticket) {
		return models.TicketMessage{}, ErrTicketHidden
	}

	message := models.TicketMessage{
		TicketID: ticket.ID,
		AuthorID: user.ID,
		Body:     body,
	}
	if err := service.tickets.CreateMessage(&message); err != nil {
		return models.TicketMessage{}, err
	}
	return message, nil
}

// UpdateStatus moves a ticket through open/in_progress/closed and optionally
// reassigns it. Only full-access roles reach this path (enforced at routing).
func (service *TicketService) UpdateStatus(ticketID uint, status string, assignedToID *uint) error {
	if !models.IsKnownTicketStatus(status) {
		return ErrUnknownTicketStatus
	}
	if _, err := service.tickets.FindByID(ticketID); err != nil {
		return err
	}
	return service.tickets.UpdateByID(ticketID, map[string]any{
		"status":         status,
		"assigned_to_id": assignedToID,
	})
}
