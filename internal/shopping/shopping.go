package shopping

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Label     string    `json:"label" db:"label"`
	Checked   bool      `json:"checked" db:"checked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type AddItemRequest struct {
	Label string `json:"label" validate:"required,max=200"`
}
