package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/medal"
	"estradaLeveAPI/internal/notification"
	"estradaLeveAPI/internal/scoring"
	"estradaLeveAPI/middleware"
	"estradaLeveAPI/utils"
)

// ScoringService is the single entry point for every point change in the
// system. Points move through an atomic increment, medal evaluation runs
// after each change, and medal or notification failures never undo the
// point write.
type ScoringService struct {
	db   *pgxpool.Pool
	sink notification.Sink
}

func NewScoringService(db *pgxpool.Pool, sink notification.Sink) *ScoringService {
	return &ScoringService{db: db, sink: sink}
}

// Award applies the reason's point delta to the user's total. The update is
// a single atomic statement, so two devices racing never lose an increment;
// the floor at zero absorbs reversals that would go negative.
func (s *ScoringService) Award(ctx context.Context, userID uuid.UUID, reason scoring.Reason) (int, error) {
	delta := scoring.Delta(reason)
	if delta == 0 {
		return 0, fmt.Errorf("unknown scoring reason: %s", reason)
	}

	var newPoints int
	query := `
	UPDATE user_stats
	SET points = GREATEST(points + $2, 0), updated_at = NOW()
	WHERE user_id = $1
	RETURNING points
	`

	err := s.db.QueryRow(ctx, query, userID, delta).Scan(&newPoints)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("user stats not found")
		}
		return 0, fmt.Errorf("failed to apply point delta: %w", err)
	}

	middleware.ObservePointsAwarded(string(reason), delta)

	// Medal evaluation is the sole consumer of point changes. Its failure is
	// logged and swallowed; the points stand regardless.
	if err := s.EvaluateMedals(ctx, userID); err != nil {
		log.Printf("Scoring: medal evaluation failed for user %s: %v", userID, err)
	}

	return newPoints, nil
}

// EvaluateMedals grants, in one pass, every medal the user now qualifies for
// and has not yet earned. Awarding is idempotent: the unique constraint on
// (user_id, medal_id) turns duplicate grants into no-ops.
func (s *ScoringService) EvaluateMedals(ctx context.Context, userID uuid.UUID) error {
	var evalStats medal.EvalStats
	statsQuery := `
	SELECT us.points, us.weight_lost, us.day,
		(SELECT COUNT(*) FROM workout_recordings wr WHERE wr.user_id = us.user_id) AS workout_count
	FROM user_stats us
	WHERE us.user_id = $1
	`
	err := s.db.QueryRow(ctx, statsQuery, userID).Scan(
		&evalStats.Points,
		&evalStats.WeightLost,
		&evalStats.Day,
		&evalStats.WorkoutCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("user stats not found")
		}
		return fmt.Errorf("failed to fetch stats for medal evaluation: %w", err)
	}

	catalog, err := s.medalCatalog(ctx)
	if err != nil {
		return err
	}

	earned, err := s.earnedMedalIDs(ctx, userID)
	if err != nil {
		return err
	}

	for _, m := range medal.Eligible(catalog, earned, evalStats) {
		tag, err := s.db.Exec(ctx, `
			INSERT INTO user_medals (user_id, medal_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, medal_id) DO NOTHING
		`, userID, m.ID)
		if err != nil {
			log.Printf("Scoring: failed to award medal %s to user %s: %v", m.Name, userID, err)
			continue
		}

		// Notify only on the insert that actually happened; a concurrent
		// evaluation that lost the race stays silent.
		if tag.RowsAffected() > 0 {
			middleware.ObserveMedalAwarded()
			s.sink.Notify(ctx, userID, "Medalha Ganhada", utils.MedalToastText(m.Name), "success")
		}
	}

	return nil
}

// GetMedals returns the full catalog annotated with the user's earned state.
func (s *ScoringService) GetMedals(ctx context.Context, clerkID string) ([]*medal.MedalWithStatus, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT
		m.id,
		m.name,
		m.description,
		m.icon,
		m.requirement_type,
		m.requirement_value,
		m.created_at,
		CASE WHEN um.id IS NOT NULL THEN true ELSE false END AS earned,
		um.earned_at
	FROM medals m
	LEFT JOIN user_medals um ON m.id = um.medal_id AND um.user_id = $1
	ORDER BY earned DESC, m.requirement_value ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medals: %w", err)
	}
	defer rows.Close()

	var medals []*medal.MedalWithStatus
	for rows.Next() {
		m := &medal.MedalWithStatus{}
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Description,
			&m.Icon,
			&m.RequirementType,
			&m.RequirementValue,
			&m.CreatedAt,
			&m.Earned,
			&m.EarnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medal: %w", err)
		}
		medals = append(medals, m)
	}

	return medals, rows.Err()
}

func (s *ScoringService) medalCatalog(ctx context.Context) ([]*medal.Medal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, icon, requirement_type, requirement_value, created_at
		FROM medals
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medal catalog: %w", err)
	}
	defer rows.Close()

	var catalog []*medal.Medal
	for rows.Next() {
		m := &medal.Medal{}
		err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Icon, &m.RequirementType, &m.RequirementValue, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medal: %w", err)
		}
		catalog = append(catalog, m)
	}

	return catalog, rows.Err()
}

func (s *ScoringService) earnedMedalIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := s.db.Query(ctx, `SELECT medal_id FROM user_medals WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch earned medals: %w", err)
	}
	defer rows.Close()

	earned := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan earned medal id: %w", err)
		}
		earned[id] = true
	}

	return earned, rows.Err()
}
