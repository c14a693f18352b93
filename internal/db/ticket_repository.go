package db

import (
	"github.com/pedrohqs/atrio/internal/models"
	"gorm.io/gorm"
)

type TicketRepository struct {
	database *gorm.DB
}

func NewTicketRepository(database *gorm.DB) *TicketRepository {
	return &TicketRepository{database: database}
}

func (repo *TicketRepository) List() ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	if err := repo.database.Order("created_at DESC, id DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (repo *TicketRepository) ListByOpener(userID uint) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	if err := repo.database.Where("opened_by_id = ?", userID).Order("created_at DESC, id DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (repo *TicketRepository) FindByID(ticketID uint) (models.Ticket, error) {
	var ticket models.Ticket
	if err := repo.database.First(&ticket, ticketID).Error; err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (repo *TicketRepository) Create(ticket *models.Ticket) error {
	return repo.database.Create(ticket).Error
}

func (repo *TicketRepository) Save(ticket *models.Ticket) error {
	return repo.database.Save(ticket).Error
}

func (repo *TicketRepository) UpdateByID(ticketID uint, updates map[string]any) error {
	return repo.database.Model(&models.Ticket{}).Where("id = ?", ticketID).Updates(updates).Error
}

func (repo *TicketRepository) ListMessages(ticketID uint) ([]models.TicketMessage, error) {
	messages := make([]models.TicketMessage, 0)
	if err := repo.database.Where("ticket_id = ?", ticketID).Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (repo *TicketRepository) CreateMessage(message *models.TicketMessage) error {
	return repo.database.Create(message).Error
}
