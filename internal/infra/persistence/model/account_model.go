// Package model contains the GORM persistence models, kept separate from
// the pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type AccountModel struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email string    `gorm:"type:varchar(255);unique;not null"`
	Name  string    `gorm:"type:varchar(100);not null"`
	Photo string    `gorm:"type:varchar(255)"`
	Role  string    `gorm:"type:varchar(20);not null;default:'user'"`

	PasswordHash      string     `gorm:"type:varchar(255);not null"`
	PasswordChangedAt *time.Time

	ResetTokenHash      *string    `gorm:"type:varchar(64);index"`
	ResetTokenExpiresAt *time.Time

	// Active is the soft-delete marker; authentication lookups filter on it.
	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
