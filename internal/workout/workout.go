package workout

import (
	"time"

	"github.com/google/uuid"
)

// MaxVideoSize is the upload cap for workout videos.
const MaxVideoSize = 50 * 1024 * 1024

// Recording is a validated workout video posted by a user.
type Recording struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	ActivityID    *uuid.UUID `json:"activity_id" db:"activity_id"`
	VideoURL      string     `json:"video_url" db:"video_url"`
	Caption       *string    `json:"caption" db:"caption"`
	PointsEarned  int        `json:"points_earned" db:"points_earned"`
	LikesCount    int        `json:"likes_count" db:"likes_count"`
	CommentsCount int        `json:"comments_count" db:"comments_count"`
	IsLiked       bool       `json:"is_liked"`
	Nickname      string     `json:"nickname"`
	AvatarURL     *string    `json:"avatar_url"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

type Comment struct {
	ID            uuid.UUID `json:"id" db:"id"`
	WorkoutID     uuid.UUID `json:"workout_id" db:"workout_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	UserName      string    `json:"user_name" db:"user_name"`
	UserAvatarURL *string   `json:"user_avatar_url" db:"user_avatar_url"`
	Text          string    `json:"text" db:"text"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}
