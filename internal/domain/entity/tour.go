package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tour is a bookable resource. Only the fields the protected endpoints
// need are modeled here; the full catalog schema lives with the catalog
// collaborators.
type Tour struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Summary    string    `json:"summary,omitempty"`
	Price      float64   `json:"price"`
	Difficulty string    `json:"difficulty,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
