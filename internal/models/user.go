package models

import "time"

const (
	RoleDev      = "dev"
	RoleAdmin    = "admin"
	RoleGerente  = "gerente"
	RoleVendedor = "vendedor"
)

// KnownRoles lists every role an account may carry, base tier last.
var KnownRoles = []string{RoleDev, RoleAdmin, RoleGerente, RoleVendedor}

type User struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	Email              string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string `gorm:"not null" json:"-"`
	FullName           string `gorm:"not null" json:"full_name"`
	Role               string `gorm:"not null;default:vendedor" json:"role"`
	Region             string `json:"region"`
	IsActive           bool   `gorm:"not null;default:true" json:"is_active"`
	MustChangePassword bool   `gorm:"not null;default:false" json:"must_change_password"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func IsKnownRole(role string) bool {
	for _, known := range KnownRoles {
		if role == known {
			return true
		}
	}
	return false
}
