package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/scoring"
	"estradaLeveAPI/internal/social"
)

type SocialService struct {
	db      *pgxpool.Pool
	scoring *ScoringService
}

func NewSocialService(db *pgxpool.Pool, scoring *ScoringService) *SocialService {
	return &SocialService{db: db, scoring: scoring}
}

func (s *SocialService) GetPosts(ctx context.Context, clerkID string) ([]*social.Post, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT
		p.id,
		p.user_id,
		p.name,
		p.user_avatar_url,
		p.text,
		p.stats,
		p.color,
		p.likes_count,
		p.comments_count,
		EXISTS(SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $1) AS is_liked,
		p.created_at
	FROM social_posts p
	ORDER BY p.created_at DESC
	LIMIT 100
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer rows.Close()

	var posts []*social.Post
	for rows.Next() {
		p := &social.Post{}
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.UserAvatarURL,
			&p.Text,
			&p.Stats,
			&p.Color,
			&p.LikesCount,
			&p.CommentsCount,
			&p.IsLiked,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// AddPost publishes a user-authored post and awards the social points.
func (s *SocialService) AddPost(ctx context.Context, clerkID string, text string) (*social.Post, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	nickname, avatarURL, weightStats, err := s.authorInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &social.Post{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO social_posts (user_id, name, user_avatar_url, text, stats, color)
		VALUES ($1, $2, $3, $4, $5, 'primary')
		RETURNING id, user_id, name, user_avatar_url, text, stats, color, likes_count, comments_count, created_at
	`, userID, nickname, avatarURL, text, weightStats).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.UserAvatarURL,
		&p.Text,
		&p.Stats,
		&p.Color,
		&p.LikesCount,
		&p.CommentsCount,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if _, err := s.scoring.Award(ctx, userID, scoring.ReasonSocialPost); err != nil {
		log.Printf("Social: failed to award post points for user %s: %v", userID, err)
	}

	return p, nil
}

// PostEcho inserts an automatic feed post on behalf of a scoring action.
// It is strictly best-effort: failures are logged and never propagated, so
// the triggering action always stands.
func (s *SocialService) PostEcho(ctx context.Context, userID uuid.UUID, text, color string) {
	nickname, avatarURL, _, err := s.authorInfo(ctx, userID)
	if err != nil {
		log.Printf("Social: skipping echo for user %s: %v", userID, err)
		return
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO social_posts (user_id, name, user_avatar_url, text, color)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, nickname, avatarURL, text, color)
	if err != nil {
		log.Printf("Social: failed to create automatic post for user %s: %v", userID, err)
	}
}

// ToggleLike likes or unlikes a post and reports the resulting state.
func (s *SocialService) ToggleLike(ctx context.Context, clerkID string, postID uuid.UUID) (bool, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return false, fmt.Errorf("user not found: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2
	`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}

	if tag.RowsAffected() > 0 {
		_, err = s.db.Exec(ctx, `
			UPDATE social_posts SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1
		`, postID)
		if err != nil {
			return false, fmt.Errorf("failed to update like count: %w", err)
		}
		return false, nil
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to like post: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		UPDATE social_posts SET likes_count = likes_count + 1 WHERE id = $1
	`, postID)
	if err != nil {
		return false, fmt.Errorf("failed to update like count: %w", err)
	}

	return true, nil
}

func (s *SocialService) GetComments(ctx context.Context, postID uuid.UUID) ([]*social.Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, post_id, user_id, user_name, user_avatar_url, text, created_at
		FROM post_comments
		WHERE post_id = $1
		ORDER BY created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer rows.Close()

	var comments []*social.Comment
	for rows.Next() {
		c := &social.Comment{}
		err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.UserName, &c.UserAvatarURL, &c.Text, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (s *SocialService) AddComment(ctx context.Context, clerkID string, postID uuid.UUID, text string) (*social.Comment, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	nickname, avatarURL, _, err := s.authorInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := &social.Comment{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO post_comments (post_id, user_id, user_name, user_avatar_url, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, post_id, user_id, user_name, user_avatar_url, text, created_at
	`, postID, userID, nickname, avatarURL, text).Scan(
		&c.ID, &c.PostID, &c.UserID, &c.UserName, &c.UserAvatarURL, &c.Text, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		UPDATE social_posts SET comments_count = comments_count + 1 WHERE id = $1
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment count: %w", err)
	}

	return c, nil
}

// authorInfo pulls the denormalized display fields stamped onto posts and
// comments.
func (s *SocialService) authorInfo(ctx context.Context, userID uuid.UUID) (string, *string, *string, error) {
	var nickname string
	var avatarURL *string
	var currentWeight *float64

	err := s.db.QueryRow(ctx, `
		SELECT nickname, avatar_url, current_weight FROM user_stats WHERE user_id = $1
	`, userID).Scan(&nickname, &avatarURL, &currentWeight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "Parceiro", nil, nil, nil
		}
		return "", nil, nil, fmt.Errorf("failed to fetch author info: %w", err)
	}

	if nickname == "" {
		nickname = "Parceiro"
	}

	var weightStats *string
	if currentWeight != nil && *currentWeight > 0 {
		v := fmt.Sprintf("%.1fkg", *currentWeight)
		weightStats = &v
	}

	return nickname, avatarURL, weightStats, nil
}
