package model

import (
	"time"

	"github.com/google/uuid"
)

// TourModel mirrors the 'tours' table.
type TourModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name       string    `gorm:"type:varchar(100);unique;not null"`
	Summary    string    `gorm:"type:text"`
	Price      float64   `gorm:"not null"`
	Difficulty string    `gorm:"type:varchar(20)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (TourModel) TableName() string {
	return "tours"
}
