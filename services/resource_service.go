package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/resource"
	"estradaLeveAPI/internal/scoring"
	"estradaLeveAPI/utils"
)

type ResourceService struct {
	db      *pgxpool.Pool
	scoring *ScoringService
	social  *SocialService
	media   *MediaService
}

func NewResourceService(db *pgxpool.Pool, scoring *ScoringService, social *SocialService, media *MediaService) *ResourceService {
	return &ResourceService{db: db, scoring: scoring, social: social, media: media}
}

// List returns resources, optionally filtered by category.
func (s *ResourceService) List(ctx context.Context, category string) ([]*resource.Resource, error) {
	query := `
		SELECT id, title, description, image, category, type, url, content, created_at
		FROM resources
	`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resources: %w", err)
	}
	defer rows.Close()

	var resources []*resource.Resource
	for rows.Next() {
		r := &resource.Resource{}
		err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.Image, &r.Category, &r.Type, &r.URL, &r.Content, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, r)
	}

	return resources, rows.Err()
}

// Publish creates a resource and awards the publishing points to the author.
func (s *ResourceService) Publish(ctx context.Context, clerkID string, req *resource.PublishRequest) (*resource.Resource, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	var urlPtr, contentPtr *string
	if req.URL != "" {
		urlPtr = &req.URL
	}
	if req.Content != "" {
		contentPtr = &req.Content
	}

	r := &resource.Resource{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO resources (title, description, image, category, type, url, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, description, image, category, type, url, content, created_at
	`, req.Title, req.Description, req.Image, req.Category, req.Type, urlPtr, contentPtr).Scan(
		&r.ID, &r.Title, &r.Description, &r.Image, &r.Category, &r.Type, &r.URL, &r.Content, &r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to publish resource: %w", err)
	}

	if _, err := s.scoring.Award(ctx, userID, scoring.ReasonResourcePublished); err != nil {
		log.Printf("Resources: failed to award publishing points for user %s: %v", userID, err)
	}

	s.social.PostEcho(ctx, userID, utils.ResourceEchoText(r.Title), "secondary")

	return r, nil
}

// UploadFile stores a resource attachment and returns its URL.
func (s *ResourceService) UploadFile(ctx context.Context, file multipart.File, filename string) (string, error) {
	if s.media == nil {
		return "", fmt.Errorf("media storage is not configured")
	}
	return s.media.UploadResourceFile(ctx, file, filename)
}
