package db

import (
	"github.com/pedrohqs/atrio/internal/models"
	"gorm.io/gorm"
)

type ProductRepository struct {
	database *gorm.DB
}

func NewProductRepository(database *gorm.DB) *ProductRepository {
	return &ProductRepository{database: database}
}

func (repo *ProductRepository) List() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := repo.database.Order("name ASC, id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (repo *ProductRepository) ListByCategory(category string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := repo.database.Where("category = ?", category).Order("name ASC, id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (repo *ProductRepository) FindByID(productID uint) (models.Product, error) {
	var product models.Product
	if err := repo.database.First(&product, productID).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (repo *ProductRepository) Create(product *models.Product) error {
	return repo.database.Create(product).Error
}

func (repo *ProductRepository) Save(product *models.Product) error {
	return repo.database.Save(product).Error
}

func (repo *ProductRepository) DeleteByID(productID uint) error {
	return repo.database.Delete(&models.Product{}, productID).Error
}
