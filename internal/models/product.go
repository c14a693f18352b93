package models

import "time"

type Product struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"not null" json:"name"`
	Description  string   `json:"description"`
	PriceCents   int64    `gorm:"not null;default:0" json:"price_cents"`
	Category     string   `gorm:"index" json:"category"`
	ImageURL     string   `json:"image_url"`
	VisibleRoles []string `gorm:"serializer:json" json:"visible_roles"`
	Regions      []string `gorm:"serializer:json" json:"regions"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (product Product) Visibility() VisibilityRule {
	return VisibilityRule{Roles: product.VisibleRoles, Regions: product.Regions}
}
