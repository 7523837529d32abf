package activity

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeCabin    Type = "cabin"
	TypeExternal Type = "external"
	TypeRest     Type = "rest"
	TypeAll      Type = "all"
)

// Activity is a scheduled program activity. Rows with a nil UserID are
// public program content visible to everyone.
type Activity struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      *uuid.UUID `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Time        string     `json:"time" db:"time"`
	TimeLabel   string     `json:"time_label" db:"time_label"`
	Duration    string     `json:"duration" db:"duration"`
	Icon        string     `json:"icon" db:"icon"`
	Type        Type       `json:"type" db:"type"`
	Completed   bool       `json:"completed" db:"completed"`
	Image       string     `json:"image" db:"image"`
	IsLocked    bool       `json:"is_locked" db:"is_locked"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type CreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Time        string `json:"time"`
	TimeLabel   string `json:"timeLabel"`
	Duration    string `json:"duration"`
	Icon        string `json:"icon"`
	Type        Type   `json:"type" validate:"required,oneof=cabin external rest all"`
	Image       string `json:"image"`
}

type ToggleRequest struct {
	Completed bool `json:"completed"`
}
