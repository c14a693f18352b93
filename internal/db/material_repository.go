package db

import (
	"github.com/pedrohqs/atrio/internal/models"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	database *gorm.DB
}

func NewMaterialRepository(database *gorm.DB) *MaterialRepository {
	return &MaterialRepository{database: database}
}

func (repo *MaterialRepository) List() ([]models.Material, error) {
	materials := make([]models.Material, 0)
	if err := repo.database.Order("created_at DESC, id DESC").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (repo *MaterialRepository) FindByID(materialID uint) (models.Material, error) {
	var material models.Material
	if err := repo.database.First(&material, materialID).Error; err != nil {
		return models.Material{}, err
	}
	return material, nil
}

func (repo *MaterialRepository) Create(material *models.Material) error {
	return repo.database.Create(material).Error
}

func (repo *MaterialRepository) Save(material *models.Material) error {
	return repo.database.Save(material).Error
}

func (repo *MaterialRepository) DeleteByID(materialID uint) error {
	return repo.database.Delete(&models.Material{}, materialID).Error
}
