package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/notification"
)

// NotificationService persists broadcast notifications and delivers pushes.
// It implements notification.Sink for the scoring engine.
type NotificationService struct {
	db  *pgxpool.Pool
	fcm *notification.FCMService
}

func NewNotificationService(db *pgxpool.Pool, fcm *notification.FCMService) *NotificationService {
	return &NotificationService{db: db, fcm: fcm}
}

// Notify delivers a per-user notification. It never returns an error to the
// caller: the scoring action that produced it already stands, so failures
// here are logged only. The push leg runs detached from the request context.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message, kind string) {
	_, err := s.db.Exec(ctx, `
		INSERT INTO app_notifications (title, message, type, icon, expires_at)
		VALUES ($1, $2, $3, $4, NOW() + INTERVAL '7 days')
	`, title, message, kind, notification.IconFor(kind))
	if err != nil {
		log.Printf("Notifications: failed to store notification for user %s: %v", userID, err)
	}

	if s.fcm == nil {
		return
	}

	go func() {
		pushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		tokens, err := s.deviceTokens(pushCtx, userID)
		if err != nil {
			log.Printf("Notifications: failed to load device tokens for user %s: %v", userID, err)
			return
		}

		if err := s.fcm.SendPush(pushCtx, tokens, title, message, map[string]any{"type": kind}); err != nil {
			log.Printf("Notifications: push failed for user %s: %v", userID, err)
		}
	}()
}

// Broadcast creates an app-wide notification and pushes it to every device.
func (s *NotificationService) Broadcast(ctx context.Context, req *notification.SendRequest) (*notification.AppNotification, error) {
	kind := req.Type
	if kind == "" {
		kind = "info"
	}

	n := &notification.AppNotification{}
	err := s.db.QueryRow(ctx, `
		INSERT INTO app_notifications (title, message, type, icon, expires_at)
		VALUES ($1, $2, $3, $4, NOW() + INTERVAL '7 days')
		RETURNING id, title, message, type, icon, created_at, expires_at
	`, req.Title, req.Message, kind, notification.IconFor(kind)).Scan(
		&n.ID, &n.Title, &n.Message, &n.Type, &n.Icon, &n.CreatedAt, &n.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if s.fcm != nil {
		go func() {
			pushCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			tokens, err := s.allDeviceTokens(pushCtx)
			if err != nil {
				log.Printf("Notifications: failed to load device tokens: %v", err)
				return
			}

			if err := s.fcm.SendPush(pushCtx, tokens, n.Title, n.Message, map[string]any{"type": n.Type}); err != nil {
				log.Printf("Notifications: broadcast push failed: %v", err)
			}
		}()
	}

	return n, nil
}

// List returns unexpired notifications, newest first.
func (s *NotificationService) List(ctx context.Context) ([]*notification.AppNotification, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, message, type, icon, created_at, expires_at
		FROM app_notifications
		WHERE expires_at > NOW()
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.AppNotification
	for rows.Next() {
		n := &notification.AppNotification{}
		err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Icon, &n.CreatedAt, &n.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM app_notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// DeleteExpired removes notifications past their expiry. Called by the
// cleanup worker.
func (s *NotificationService) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM app_notifications WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RegisterDevice stores an FCM device token for the user.
func (s *NotificationService) RegisterDevice(ctx context.Context, clerkID string, req *notification.RegisterDeviceRequest) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	platform := req.Platform
	if platform == "" {
		platform = "android"
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO device_tokens (user_id, token, platform)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform
	`, userID, req.Token, platform)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	return nil
}

func (s *NotificationService) deviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, token, platform FROM device_tokens WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeviceTokens(rows)
}

func (s *NotificationService) allDeviceTokens(ctx context.Context) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx, `SELECT user_id, token, platform FROM device_tokens`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeviceTokens(rows)
}

func scanDeviceTokens(rows pgx.Rows) ([]notification.DeviceToken, error) {
	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.Platform); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
