package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/activity"
	"estradaLeveAPI/internal/scoring"
	"estradaLeveAPI/utils"
)

type ActivityService struct {
	db      *pgxpool.Pool
	scoring *ScoringService
	social  *SocialService
}

func NewActivityService(db *pgxpool.Pool, scoring *ScoringService, social *SocialService) *ActivityService {
	return &ActivityService{db: db, scoring: scoring, social: social}
}

// List returns the user's own activities plus the public program schedule.
func (s *ActivityService) List(ctx context.Context, clerkID string) ([]*activity.Activity, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, title, description, time, time_label, duration, icon, type, completed, image, is_locked, created_at
		FROM activities
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY time ASC, created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer rows.Close()

	var activities []*activity.Activity
	for rows.Next() {
		a := &activity.Activity{}
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Title, &a.Description, &a.Time, &a.TimeLabel,
			&a.Duration, &a.Icon, &a.Type, &a.Completed, &a.Image, &a.IsLocked, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

func (s *ActivityService) Add(ctx context.Context, clerkID string, req *activity.CreateRequest) (*activity.Activity, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	a := &activity.Activity{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO activities (user_id, title, description, time, time_label, duration, icon, type, completed, image, is_locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, FALSE)
		RETURNING id, user_id, title, description, time, time_label, duration, icon, type, completed, image, is_locked, created_at
	`, userID, req.Title, req.Description, req.Time, req.TimeLabel, req.Duration, req.Icon, req.Type, req.Image).Scan(
		&a.ID, &a.UserID, &a.Title, &a.Description, &a.Time, &a.TimeLabel,
		&a.Duration, &a.Icon, &a.Type, &a.Completed, &a.Image, &a.IsLocked, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return a, nil
}

// Toggle flips an activity's completed state. Points only move when the
// stored state actually changes, so repeating the same request is a no-op.
// Locked activities cannot be toggled.
func (s *ActivityService) Toggle(ctx context.Context, clerkID string, activityID uuid.UUID, completed bool) (*activity.Activity, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	a := &activity.Activity{}
	err = s.db.QueryRow(ctx, `
		UPDATE activities
		SET completed = $3
		WHERE id = $1
		  AND (user_id = $2 OR user_id IS NULL)
		  AND is_locked = FALSE
		  AND completed <> $3
		RETURNING id, user_id, title, description, time, time_label, duration, icon, type, completed, image, is_locked, created_at
	`, activityID, userID, completed).Scan(
		&a.ID, &a.UserID, &a.Title, &a.Description, &a.Time, &a.TimeLabel,
		&a.Duration, &a.Icon, &a.Type, &a.Completed, &a.Image, &a.IsLocked, &a.CreatedAt,
	)
	if err != nil {
		// Nothing changed: the state already matched, the activity is
		// locked, or it is not visible to the user. Return it as stored.
		err = s.db.QueryRow(ctx, `
			SELECT id, user_id, title, description, time, time_label, duration, icon, type, completed, image, is_locked, created_at
			FROM activities
			WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)
		`, activityID, userID).Scan(
			&a.ID, &a.UserID, &a.Title, &a.Description, &a.Time, &a.TimeLabel,
			&a.Duration, &a.Icon, &a.Type, &a.Completed, &a.Image, &a.IsLocked, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("activity not found: %w", err)
		}
		return a, nil
	}

	reason := scoring.ReasonActivityCompleted
	if !completed {
		reason = scoring.ReasonActivityUncompleted
	}
	if _, err := s.scoring.Award(ctx, userID, reason); err != nil {
		log.Printf("Activities: failed to award points for user %s: %v", userID, err)
	}

	if completed {
		s.social.PostEcho(ctx, userID, utils.ActivityEchoText(a.Title), "primary")
	}

	return a, nil
}
