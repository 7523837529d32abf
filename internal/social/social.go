package social

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	UserAvatarURL *string   `json:"user_avatar_url" db:"user_avatar_url"`
	Text          string    `json:"text" db:"text"`
	Stats         *string   `json:"stats" db:"stats"`
	Color         string    `json:"color" db:"color"`
	LikesCount    int       `json:"likes_count" db:"likes_count"`
	CommentsCount int       `json:"comments_count" db:"comments_count"`
	IsLiked       bool      `json:"is_liked"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type Comment struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PostID        uuid.UUID `json:"post_id" db:"post_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	UserName      string    `json:"user_name" db:"user_name"`
	UserAvatarURL *string   `json:"user_avatar_url" db:"user_avatar_url"`
	Text          string    `json:"text" db:"text"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type CreatePostRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}
