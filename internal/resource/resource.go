package resource

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeArticle Type = "article"
	TypeVideo   Type = "video"
)

// Resource is a piece of program content (article or video) published to
// all participants.
type Resource struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	Category    string    `json:"category" db:"category"`
	Type        Type      `json:"type" db:"type"`
	URL         *string   `json:"url" db:"url"`
	Content     *string   `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type PublishRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category" validate:"required"`
	Type        Type   `json:"type" validate:"required,oneof=article video"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
	Content     string `json:"content,omitempty"`
}
