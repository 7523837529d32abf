package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/goal"
	"estradaLeveAPI/internal/scoring"
)

type GoalService struct {
	db      *pgxpool.Pool
	scoring *ScoringService
}

func NewGoalService(db *pgxpool.Pool, scoring *ScoringService) *GoalService {
	return &GoalService{db: db, scoring: scoring}
}

// GetDailyGoals returns today's goals for the user, seeding the default set
// on the first read of the day.
func (s *GoalService) GetDailyGoals(ctx context.Context, clerkID string) ([]*goal.DailyGoal, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	today := time.Now().Format("2006-01-02")

	for _, d := range goal.Defaults() {
		_, err := s.db.Exec(ctx, `
			INSERT INTO daily_goals (user_id, date, type, label, target, current, unit, icon, color, completed)
			VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, FALSE)
			ON CONFLICT (user_id, date, type) DO NOTHING
		`, userID, today, d.Type, d.Label, d.Target, d.Unit, d.Icon, d.Color)
		if err != nil {
			return nil, fmt.Errorf("failed to seed daily goal: %w", err)
		}
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, date, type, label, target, current, unit, icon, color, completed
		FROM daily_goals
		WHERE user_id = $1 AND date = $2
		ORDER BY type ASC
	`, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.DailyGoal
	for rows.Next() {
		g := &goal.DailyGoal{}
		err := rows.Scan(
			&g.ID, &g.UserID, &g.Date, &g.Type, &g.Label, &g.Target,
			&g.Current, &g.Unit, &g.Icon, &g.Color, &g.Completed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily goal: %w", err)
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// RegisterProgress adds progress to one of today's goals. Every registration
// earns the base points; crossing the target earns the completion bonus
// exactly once per day.
func (s *GoalService) RegisterProgress(ctx context.Context, clerkID string, goalType goal.Type, amount float64) (*goal.DailyGoal, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if amount <= 0 {
		return nil, fmt.Errorf("progress amount must be positive")
	}

	goals, err := s.GetDailyGoals(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	var target *goal.DailyGoal
	for _, g := range goals {
		if g.Type == goalType {
			target = g
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("unknown goal type: %s", goalType)
	}

	bonusFired := goal.ApplyProgress(target, amount)

	_, err = s.db.Exec(ctx, `
		UPDATE daily_goals
		SET current = $2, completed = $3
		WHERE id = $1
	`, target.ID, target.Current, target.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to update daily goal: %w", err)
	}

	if _, err := s.scoring.Award(ctx, userID, scoring.ReasonGoalProgress); err != nil {
		log.Printf("Goals: failed to award progress points for user %s: %v", userID, err)
	}
	if bonusFired {
		if _, err := s.scoring.Award(ctx, userID, scoring.ReasonGoalCompleted); err != nil {
			log.Printf("Goals: failed to award completion bonus for user %s: %v", userID, err)
		}
	}

	return target, nil
}
