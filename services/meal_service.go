package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/meal"
	"estradaLeveAPI/internal/scoring"
	"estradaLeveAPI/utils"
)

type MealService struct {
	db      *pgxpool.Pool
	scoring *ScoringService
	social  *SocialService
}

func NewMealService(db *pgxpool.Pool, scoring *ScoringService, social *SocialService) *MealService {
	return &MealService{db: db, scoring: scoring, social: social}
}

// List returns the user's logged meals together with the public suggestion
// catalog, suggestions first so the app can pin them.
func (s *MealService) List(ctx context.Context, clerkID string) ([]*meal.Meal, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, description, calories, time_prep, tags, image, category, consumed, is_suggestion, created_at
		FROM meals
		WHERE user_id = $1 OR is_suggestion = TRUE
		ORDER BY is_suggestion DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meals: %w", err)
	}
	defer rows.Close()

	var meals []*meal.Meal
	for rows.Next() {
		m := &meal.Meal{}
		err := rows.Scan(
			&m.ID, &m.UserID, &m.Name, &m.Description, &m.Calories, &m.TimePrep,
			&m.Tags, &m.Image, &m.Category, &m.Consumed, &m.IsSuggestion, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, m)
	}

	return meals, rows.Err()
}

// Log records a user meal and awards the logging points.
func (s *MealService) Log(ctx context.Context, clerkID string, req *meal.LogRequest) (*meal.Meal, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	m := &meal.Meal{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO meals (user_id, name, description, calories, time_prep, tags, image, category, consumed, is_suggestion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, FALSE)
		RETURNING id, user_id, name, description, calories, time_prep, tags, image, category, consumed, is_suggestion, created_at
	`, userID, req.Name, req.Description, req.Calories, req.TimePrep, tags, req.Image, req.Category).Scan(
		&m.ID, &m.UserID, &m.Name, &m.Description, &m.Calories, &m.TimePrep,
		&m.Tags, &m.Image, &m.Category, &m.Consumed, &m.IsSuggestion, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to log meal: %w", err)
	}

	if _, err := s.scoring.Award(ctx, userID, scoring.ReasonMealLogged); err != nil {
		log.Printf("Meals: failed to award logging points for user %s: %v", userID, err)
	}

	s.social.PostEcho(ctx, userID, utils.MealEchoText(m.Name), "secondary")

	return m, nil
}

// ToggleConsumed marks a meal eaten or not. Points are awarded only on the
// transition into consumed; unmarking never refunds them.
func (s *MealService) ToggleConsumed(ctx context.Context, clerkID string, mealID uuid.UUID, consumed bool) (*meal.Meal, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	m := &meal.Meal{}
	err = s.db.QueryRow(ctx, `
		UPDATE meals
		SET consumed = $3
		WHERE id = $1 AND user_id = $2 AND consumed <> $3
		RETURNING id, user_id, name, description, calories, time_prep, tags, image, category, consumed, is_suggestion, created_at
	`, mealID, userID, consumed).Scan(
		&m.ID, &m.UserID, &m.Name, &m.Description, &m.Calories, &m.TimePrep,
		&m.Tags, &m.Image, &m.Category, &m.Consumed, &m.IsSuggestion, &m.CreatedAt,
	)
	if err != nil {
		err = s.db.QueryRow(ctx, `
			SELECT id, user_id, name, description, calories, time_prep, tags, image, category, consumed, is_suggestion, created_at
			FROM meals
			WHERE id = $1 AND user_id = $2
		`, mealID, userID).Scan(
			&m.ID, &m.UserID, &m.Name, &m.Description, &m.Calories, &m.TimePrep,
			&m.Tags, &m.Image, &m.Category, &m.Consumed, &m.IsSuggestion, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("meal not found: %w", err)
		}
		return m, nil
	}

	if consumed {
		if _, err := s.scoring.Award(ctx, userID, scoring.ReasonMealConsumed); err != nil {
			log.Printf("Meals: failed to award consumption points for user %s: %v", userID, err)
		}
	}

	return m, nil
}
