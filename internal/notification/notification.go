package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Sink receives user-visible notifications produced by scoring and medal
// awards. It is injected into the services so the scoring engine never talks
// to a UI layer directly. Delivery is fire-and-forget; implementations must
// not block the caller on transport failures.
type Sink interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, kind string)
}

// AppNotification is a broadcast toast shown in the app until it expires.
type AppNotification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"type"`
	Icon      string    `json:"icon" db:"icon"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

type DeviceToken struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Token    string    `json:"token" db:"token"`
	Platform string    `json:"platform" db:"platform"`
}

type SendRequest struct {
	Title   string `json:"title" validate:"required,max=120"`
	Message string `json:"message" validate:"required,max=500"`
	Type    string `json:"type" validate:"omitempty,oneof=info success urgent"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=android ios"`
}

// IconFor picks the toast icon for a notification type.
func IconFor(kind string) string {
	switch kind {
	case "urgent":
		return "report"
	case "success":
		return "check_circle"
	default:
		return "notifications"
	}
}
