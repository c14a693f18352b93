package models

import "time"

// Material is a piece of sales collateral (price table, catalog PDF, video)
// hosted on external object storage and referenced by URL only.
type Material struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Title        string   `gorm:"not null" json:"title"`
	Description  string   `json:"description"`
	FileURL      string   `gorm:"not null" json:"file_url"`
	StorageKey   string   `gorm:"uniqueIndex;not null" json:"storage_key"`
	ContentType  string   `json:"content_type"`
	VisibleRoles []string `gorm:"serializer:json" json:"visible_roles"`
	Regions      []string `gorm:"serializer:json" json:"regions"`
	CreatedByID  uint     `gorm:"not null" json:"created_by_id"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (material Material) Visibility() VisibilityRule {
	return VisibilityRule{Roles: material.VisibleRoles, Regions: material.Regions}
}
