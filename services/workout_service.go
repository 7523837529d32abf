package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/scoring"
	"estradaLeveAPI/internal/workout"
	"estradaLeveAPI/utils"
)

type WorkoutService struct {
	db      *pgxpool.Pool
	scoring *ScoringService
	social  *SocialService
	media   *MediaService
}

func NewWorkoutService(db *pgxpool.Pool, scoring *ScoringService, social *SocialService, media *MediaService) *WorkoutService {
	return &WorkoutService{db: db, scoring: scoring, social: social, media: media}
}

// Recent returns the latest recordings joined to their author's display
// fields, with the caller's like state.
func (s *WorkoutService) Recent(ctx context.Context, clerkID string, limit int) ([]*workout.Recording, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.db.Query(ctx, `
		SELECT
			w.id, w.user_id, w.activity_id, w.video_url, w.caption,
			w.points_earned, w.likes_count, w.comments_count,
			EXISTS(SELECT 1 FROM workout_likes wl WHERE wl.workout_id = w.id AND wl.user_id = $1) AS is_liked,
			COALESCE(us.nickname, '') AS nickname,
			us.avatar_url,
			w.created_at
		FROM workout_recordings w
		LEFT JOIN user_stats us ON us.user_id = w.user_id
		ORDER BY w.created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workout recordings: %w", err)
	}
	defer rows.Close()

	var recordings []*workout.Recording
	for rows.Next() {
		r := &workout.Recording{}
		err := rows.Scan(
			&r.ID, &r.UserID, &r.ActivityID, &r.VideoURL, &r.Caption,
			&r.PointsEarned, &r.LikesCount, &r.CommentsCount,
			&r.IsLiked, &r.Nickname, &r.AvatarURL, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout recording: %w", err)
		}
		recordings = append(recordings, r)
	}

	return recordings, rows.Err()
}

// Upload stores the video, records the workout and awards the upload points.
// Size validation against MaxVideoSize happens in the handler before the
// multipart body is parsed.
func (s *WorkoutService) Upload(ctx context.Context, clerkID string, file multipart.File, caption string, activityID *uuid.UUID) (*workout.Recording, error) {
	if s.media == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}

	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	recordingID := uuid.New()
	videoURL, err := s.media.UploadWorkoutVideo(ctx, file, recordingID)
	if err != nil {
		return nil, err
	}

	var captionPtr *string
	if caption != "" {
		captionPtr = &caption
	}

	r := &workout.Recording{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO workout_recordings (id, user_id, activity_id, video_url, caption, points_earned)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, activity_id, video_url, caption, points_earned, likes_count, comments_count, created_at
	`, recordingID, userID, activityID, videoURL, captionPtr, scoring.Delta(scoring.ReasonWorkoutUploaded)).Scan(
		&r.ID, &r.UserID, &r.ActivityID, &r.VideoURL, &r.Caption,
		&r.PointsEarned, &r.LikesCount, &r.CommentsCount, &r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record workout: %w", err)
	}

	if _, err := s.scoring.Award(ctx, userID, scoring.ReasonWorkoutUploaded); err != nil {
		log.Printf("Workouts: failed to award upload points for user %s: %v", userID, err)
	}

	s.social.PostEcho(ctx, userID, utils.WorkoutEchoText(), "primary")

	return r, nil
}

// ToggleLike likes or unlikes a recording and reports the resulting state.
func (s *WorkoutService) ToggleLike(ctx context.Context, clerkID string, workoutID uuid.UUID) (bool, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return false, fmt.Errorf("user not found: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM workout_likes WHERE workout_id = $1 AND user_id = $2
	`, workoutID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}

	if tag.RowsAffected() > 0 {
		_, err = s.db.Exec(ctx, `
			UPDATE workout_recordings SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1
		`, workoutID)
		if err != nil {
			return false, fmt.Errorf("failed to update like count: %w", err)
		}
		return false, nil
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO workout_likes (workout_id, user_id) VALUES ($1, $2)
		ON CONFLICT (workout_id, user_id) DO NOTHING
	`, workoutID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to like workout: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		UPDATE workout_recordings SET likes_count = likes_count + 1 WHERE id = $1
	`, workoutID)
	if err != nil {
		return false, fmt.Errorf("failed to update like count: %w", err)
	}

	return true, nil
}

func (s *WorkoutService) GetComments(ctx context.Context, workoutID uuid.UUID) ([]*workout.Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, workout_id, user_id, user_name, user_avatar_url, text, created_at
		FROM workout_comments
		WHERE workout_id = $1
		ORDER BY created_at ASC
	`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer rows.Close()

	var comments []*workout.Comment
	for rows.Next() {
		c := &workout.Comment{}
		err := rows.Scan(&c.ID, &c.WorkoutID, &c.UserID, &c.UserName, &c.UserAvatarURL, &c.Text, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (s *WorkoutService) AddComment(ctx context.Context, clerkID string, workoutID uuid.UUID, text string) (*workout.Comment, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	nickname, avatarURL, _, err := s.social.authorInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := &workout.Comment{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO workout_comments (workout_id, user_id, user_name, user_avatar_url, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, workout_id, user_id, user_name, user_avatar_url, text, created_at
	`, workoutID, userID, nickname, avatarURL, text).Scan(
		&c.ID, &c.WorkoutID, &c.UserID, &c.UserName, &c.UserAvatarURL, &c.Text, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		UPDATE workout_recordings SET comments_count = comments_count + 1 WHERE id = $1
	`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment count: %w", err)
	}

	return c, nil
}
