package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/measurement"
	"estradaLeveAPI/internal/scoring"
	"estradaLeveAPI/utils"
)

// MeasurementService owns the per-day weight/waist entries and keeps the
// user_stats aggregates in step with them.
type MeasurementService struct {
	db      *pgxpool.Pool
	scoring *ScoringService
	social  *SocialService
}

func NewMeasurementService(db *pgxpool.Pool, scoring *ScoringService, social *SocialService) *MeasurementService {
	return &MeasurementService{db: db, scoring: scoring, social: social}
}

// Record upserts today's entry. Only a brand-new (user, date) row awards
// points; rewriting the same day replaces the values without double credit.
func (s *MeasurementService) Record(ctx context.Context, clerkID string, req *measurement.RecordRequest) (*measurement.Entry, bool, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, false, fmt.Errorf("user not found: %w", err)
	}

	var exists bool
	err = s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM measurements WHERE user_id = $1 AND date = CURRENT_DATE)
	`, userID).Scan(&exists)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check existing measurement: %w", err)
	}

	label := time.Now().Format("02/01")

	entry := &measurement.Entry{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO measurements (user_id, date, weight, waist_cm, label)
		VALUES ($1, CURRENT_DATE, $2, $3, $4)
		ON CONFLICT (user_id, date)
		DO UPDATE SET weight = $2, waist_cm = COALESCE($3, measurements.waist_cm), label = $4
		RETURNING id, user_id, date, weight, waist_cm, label
	`, userID, req.Weight, req.WaistCm, label).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Date,
		&entry.Weight,
		&entry.WaistCm,
		&entry.Label,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to record measurement: %w", err)
	}

	// Keep the aggregate row current; weight_lost is denormalized for the
	// medal predicates.
	_, err = s.db.Exec(ctx, `
		UPDATE user_stats
		SET current_weight = $2,
			weight_lost = GREATEST(ROUND((start_weight - $2)::numeric, 1), 0),
			waist_cm = COALESCE($3, waist_cm),
			updated_at = NOW()
		WHERE user_id = $1
	`, userID, req.Weight, req.WaistCm)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update user stats: %w", err)
	}

	// The entry is already persisted; a failed award must not make the
	// recording look failed.
	isNew := !exists
	if isNew {
		if _, err := s.scoring.Award(ctx, userID, scoring.ReasonMeasurementLogged); err != nil {
			log.Printf("Measurements: failed to award points for user %s: %v", userID, err)
		}
	}

	// Feed echo is cosmetic and best-effort; the measurement stands even if
	// the post fails.
	s.social.PostEcho(ctx, userID, utils.WeightEchoText(req.Weight), "primary")

	return entry, isNew, nil
}

// History returns the user's entries oldest first, the order the progress
// chart wants.
func (s *MeasurementService) History(ctx context.Context, clerkID string) ([]*measurement.Entry, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, date, weight, waist_cm, label
		FROM measurements
		WHERE user_id = $1
		ORDER BY date ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weight history: %w", err)
	}
	defer rows.Close()

	var entries []*measurement.Entry
	for rows.Next() {
		e := &measurement.Entry{}
		err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Weight, &e.WaistCm, &e.Label)
		if err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
