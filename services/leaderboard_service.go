package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/leaderboard"
	"estradaLeveAPI/internal/measurement"
)

// LeaderboardService computes rankings on every read. Nothing here is
// cached or persisted; the stats tables are the single source of truth.
type LeaderboardService struct {
	db *pgxpool.Pool
}

func NewLeaderboardService(db *pgxpool.Pool) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// WinnerRanking builds the combined-score ranking across all participants
// and locates the caller's own position.
func (s *LeaderboardService) WinnerRanking(ctx context.Context, clerkID string) (*leaderboard.WinnerRanking, error) {
	var callerID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&callerID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	// The lateral join picks each user's earliest recorded waist value as
	// the reduction baseline.
	query := `
	SELECT
		us.user_id,
		COALESCE(us.nickname, '') AS nickname,
		us.avatar_url,
		us.points,
		COALESCE(us.start_weight, 0),
		COALESCE(us.current_weight, 0),
		us.waist_cm,
		base.waist_cm AS baseline_waist
	FROM user_stats us
	LEFT JOIN LATERAL (
		SELECT m.waist_cm
		FROM measurements m
		WHERE m.user_id = us.user_id AND m.waist_cm IS NOT NULL
		ORDER BY m.date ASC
		LIMIT 1
	) base ON TRUE
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ranking data: %w", err)
	}
	defer rows.Close()

	var entries []*leaderboard.WinnerEntry
	for rows.Next() {
		e := &leaderboard.WinnerEntry{}
		var startWeight, currentWeight float64
		var currentWaist, baselineWaist *float64

		err := rows.Scan(
			&e.UserID, &e.Nickname, &e.AvatarURL, &e.Points,
			&startWeight, &currentWeight, &currentWaist, &baselineWaist,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranking row: %w", err)
		}

		e.WeightLossPercentage = measurement.WeightLossPercentage(startWeight, currentWeight)
		e.WaistReductionPercentage = measurement.WaistReductionPercentage(baselineWaist, currentWaist)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking rows: %w", err)
	}

	entries = leaderboard.BuildWinnerRanking(entries)

	ranking := &leaderboard.WinnerRanking{
		Entries:    entries,
		TotalUsers: len(entries),
	}
	for _, e := range entries {
		if e.UserID == callerID {
			ranking.UserPosition = e
			break
		}
	}

	return ranking, nil
}

// MostActive returns the top users by raw points.
func (s *LeaderboardService) MostActive(ctx context.Context, limit int) ([]*leaderboard.PointsEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := s.db.Query(ctx, `
		SELECT user_id, COALESCE(nickname, ''), avatar_url, points
		FROM user_stats
		ORDER BY points DESC, user_id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch points ranking: %w", err)
	}
	defer rows.Close()

	var entries []*leaderboard.PointsEntry
	for rows.Next() {
		e := &leaderboard.PointsEntry{}
		if err := rows.Scan(&e.UserID, &e.Nickname, &e.AvatarURL, &e.Points); err != nil {
			return nil, fmt.Errorf("failed to scan points row: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
