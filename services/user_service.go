package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/stats"
	"estradaLeveAPI/internal/user"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	u := &user.User{
		ID:        uuid.New().String(),
		ClerkID:   req.ClerkID,
		Email:     req.Email,
		Nickname:  req.Nickname,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if req.AvatarURL != "" {
		u.AvatarURL = &req.AvatarURL
	}

	query := `
	INSERT INTO users (id, clerk_id, email, nickname, avatar_url, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (clerk_id) DO UPDATE SET email = $3, updated_at = NOW()
	RETURNING id, clerk_id, email, nickname, avatar_url, is_admin, created_at, updated_at
	`

	err := s.db.QueryRow(
		ctx,
		query,
		u.ID,
		u.ClerkID,
		u.Email,
		u.Nickname,
		u.AvatarURL,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Nickname,
		&u.AvatarURL,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	query := `
	SELECT id, clerk_id, email, nickname, avatar_url, is_admin, created_at, updated_at
	FROM users
	WHERE clerk_id = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, clerkID).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Nickname,
		&u.AvatarURL,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// CompleteOnboarding creates the user_stats row. It runs once per user; a
// second attempt fails rather than resetting the program baseline.
func (s *UserService) CompleteOnboarding(ctx context.Context, clerkID string, req *user.OnboardingRequest) (*stats.UserStats, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	totalDays := req.TotalDays
	if totalDays == 0 {
		totalDays = 90
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
	INSERT INTO user_stats (
		user_id, nickname, avatar_url, points, current_weight, start_weight,
		goal_weight, weight_lost, waist_cm, height, bmi, ideal_weight,
		day, total_days
	)
	VALUES ($1, $2, $3, 0, $4, $4, $5, 0, $6, $7, $8, $9, 1, $10)
	ON CONFLICT (user_id) DO NOTHING
	RETURNING user_id, nickname, avatar_url, points, current_weight, start_weight,
		goal_weight, weight_lost, waist_cm, height, bmi, ideal_weight,
		day, total_days, is_admin, created_at, updated_at
	`

	st := &stats.UserStats{}
	var avatarURL *string
	if req.AvatarURL != "" {
		avatarURL = &req.AvatarURL
	}

	err = tx.QueryRow(
		ctx,
		query,
		userID,
		req.Nickname,
		avatarURL,
		req.Weight,
		req.GoalWeight,
		req.WaistCm,
		req.Height,
		req.BMI,
		req.IdealWeight,
		totalDays,
	).Scan(
		&st.UserID,
		&st.Nickname,
		&st.AvatarURL,
		&st.Points,
		&st.CurrentWeight,
		&st.StartWeight,
		&st.GoalWeight,
		&st.WeightLost,
		&st.WaistCm,
		&st.Height,
		&st.BMI,
		&st.IdealWeight,
		&st.Day,
		&st.TotalDays,
		&st.IsAdmin,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("onboarding already completed")
		}
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	// Keep the users row's display fields in sync with the stats copy.
	_, err = tx.Exec(ctx, `
		UPDATE users SET nickname = $2, avatar_url = COALESCE($3, avatar_url), updated_at = NOW()
		WHERE id = $1
	`, userID, req.Nickname, avatarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to sync user profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit onboarding: %w", err)
	}

	return st, nil
}

func (s *UserService) GetUserStats(ctx context.Context, clerkID string) (*stats.UserStats, error) {
	query := `
	SELECT us.user_id, us.nickname, us.avatar_url, us.points, us.current_weight,
		us.start_weight, us.goal_weight, us.weight_lost, us.waist_cm, us.height,
		us.bmi, us.ideal_weight, us.day, us.total_days, us.is_admin,
		us.created_at, us.updated_at
	FROM user_stats us
	INNER JOIN users u ON u.id = us.user_id
	WHERE u.clerk_id = $1
	`

	st := &stats.UserStats{}
	err := s.db.QueryRow(ctx, query, clerkID).Scan(
		&st.UserID,
		&st.Nickname,
		&st.AvatarURL,
		&st.Points,
		&st.CurrentWeight,
		&st.StartWeight,
		&st.GoalWeight,
		&st.WeightLost,
		&st.WaistCm,
		&st.Height,
		&st.BMI,
		&st.IdealWeight,
		&st.Day,
		&st.TotalDays,
		&st.IsAdmin,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// no stats row yet: the client routes to onboarding
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	return st, nil
}

func (s *UserService) UpdateProfileByClerkID(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	query := `
	UPDATE users
	SET
		nickname = COALESCE(NULLIF($2, ''), nickname),
		avatar_url = COALESCE(NULLIF($3, ''), avatar_url),
		updated_at = NOW()
	WHERE clerk_id = $1
	RETURNING id, clerk_id, email, nickname, avatar_url, is_admin, created_at, updated_at
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, clerkID, req.Nickname, req.AvatarURL).Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Nickname,
		&u.AvatarURL,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Mirror onto the stats row so feed and leaderboard names stay fresh.
	_, err = s.db.Exec(ctx, `
		UPDATE user_stats
		SET nickname = COALESCE(NULLIF($2, ''), nickname),
			avatar_url = COALESCE(NULLIF($3, ''), avatar_url),
			updated_at = NOW()
		WHERE user_id = $1
	`, u.ID, req.Nickname, req.AvatarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to sync stats profile: %w", err)
	}

	return u, nil
}

func (s *UserService) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	query := `DELETE FROM users WHERE clerk_id = $1`

	result, err := s.db.Exec(ctx, query, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// GetAllUsers lists every participant's stats row, newest first. Admin
// surface.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*stats.UserStats, error) {
	query := `
	SELECT user_id, nickname, avatar_url, points, current_weight, start_weight,
		goal_weight, weight_lost, waist_cm, height, bmi, ideal_weight,
		day, total_days, is_admin, created_at, updated_at
	FROM user_stats
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer rows.Close()

	var users []*stats.UserStats
	for rows.Next() {
		st := &stats.UserStats{}
		err := rows.Scan(
			&st.UserID,
			&st.Nickname,
			&st.AvatarURL,
			&st.Points,
			&st.CurrentWeight,
			&st.StartWeight,
			&st.GoalWeight,
			&st.WeightLost,
			&st.WaistCm,
			&st.Height,
			&st.BMI,
			&st.IdealWeight,
			&st.Day,
			&st.TotalDays,
			&st.IsAdmin,
			&st.CreatedAt,
			&st.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user stats: %w", err)
		}
		users = append(users, st)
	}

	return users, rows.Err()
}
