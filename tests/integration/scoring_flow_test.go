package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estradaLeveAPI/internal/activity"
	"estradaLeveAPI/internal/goal"
	"estradaLeveAPI/internal/meal"
	"estradaLeveAPI/internal/measurement"
	"estradaLeveAPI/internal/user"
	"estradaLeveAPI/services"
	"estradaLeveAPI/tests/helpers"
)

// recordingSink captures notifications so tests can assert on delivery
// counts without any push transport.
type recordingSink struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingSink) Notify(ctx context.Context, userID uuid.UUID, title, message, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, title)
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func setupUser(t *testing.T, userService *services.UserService) string {
	t.Helper()

	clerkID := "user_test_" + time.Now().Format("20060102150405.000")

	ctx := context.Background()
	_, err := userService.CreateUser(ctx, &user.CreateUserRequest{
		ClerkID:  clerkID,
		Email:    "test.scoring@example.com",
		Nickname: "Parceiro Teste",
	})
	require.NoError(t, err)

	_, err = userService.CompleteOnboarding(ctx, clerkID, &user.OnboardingRequest{
		Nickname:   "Parceiro Teste",
		Weight:     100,
		GoalWeight: 85,
		Height:     1.75,
	})
	require.NoError(t, err)

	return clerkID
}

func currentPoints(t *testing.T, userService *services.UserService, clerkID string) int {
	t.Helper()
	stats, err := userService.GetUserStats(context.Background(), clerkID)
	require.NoError(t, err)
	require.NotNil(t, stats)
	return stats.Points
}

func TestMealLoggingAwardsPoints(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	sink := &recordingSink{}
	scoringService := services.NewScoringService(pool, sink)
	userService := services.NewUserService(pool)
	socialService := services.NewSocialService(pool, scoringService)
	mealService := services.NewMealService(pool, scoringService, socialService)

	clerkID := setupUser(t, userService)
	ctx := context.Background()

	before := currentPoints(t, userService, clerkID)

	logged, err := mealService.Log(ctx, clerkID, &meal.LogRequest{
		Name:     "Salada de frango",
		Calories: 350,
		Category: meal.CategoryLunch,
	})
	require.NoError(t, err)
	assert.Equal(t, before+20, currentPoints(t, userService, clerkID))

	// Marking consumed pays once; unmarking never refunds.
	_, err = mealService.ToggleConsumed(ctx, clerkID, logged.ID, true)
	require.NoError(t, err)
	afterConsume := currentPoints(t, userService, clerkID)
	assert.Equal(t, before+40, afterConsume)

	_, err = mealService.ToggleConsumed(ctx, clerkID, logged.ID, false)
	require.NoError(t, err)
	assert.Equal(t, afterConsume, currentPoints(t, userService, clerkID))

	// Repeating the same consumed state is a no-op.
	_, err = mealService.ToggleConsumed(ctx, clerkID, logged.ID, false)
	require.NoError(t, err)
	assert.Equal(t, afterConsume, currentPoints(t, userService, clerkID))
}

func TestActivityToggleSymmetry(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	sink := &recordingSink{}
	scoringService := services.NewScoringService(pool, sink)
	userService := services.NewUserService(pool)
	socialService := services.NewSocialService(pool, scoringService)
	activityService := services.NewActivityService(pool, scoringService, socialService)

	clerkID := setupUser(t, userService)
	ctx := context.Background()

	a, err := activityService.Add(ctx, clerkID, &activity.CreateRequest{
		Title: "Alongamento na cabine",
		Type:  activity.TypeCabin,
	})
	require.NoError(t, err)

	before := currentPoints(t, userService, clerkID)

	_, err = activityService.Toggle(ctx, clerkID, a.ID, true)
	require.NoError(t, err)
	assert.Equal(t, before+50, currentPoints(t, userService, clerkID))

	// Same state again: no double award.
	_, err = activityService.Toggle(ctx, clerkID, a.ID, true)
	require.NoError(t, err)
	assert.Equal(t, before+50, currentPoints(t, userService, clerkID))

	_, err = activityService.Toggle(ctx, clerkID, a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, before, currentPoints(t, userService, clerkID))
}

func TestGoalCompletionBonusFiresOnce(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	sink := &recordingSink{}
	scoringService := services.NewScoringService(pool, sink)
	userService := services.NewUserService(pool)
	goalService := services.NewGoalService(pool, scoringService)

	clerkID := setupUser(t, userService)
	ctx := context.Background()

	before := currentPoints(t, userService, clerkID)

	// 3L target reached in one registration: +5 progress, +20 bonus.
	g, err := goalService.RegisterProgress(ctx, clerkID, goal.TypeHydration, 3)
	require.NoError(t, err)
	assert.True(t, g.Completed)
	assert.Equal(t, before+25, currentPoints(t, userService, clerkID))

	// Already completed: only the base +5.
	g, err = goalService.RegisterProgress(ctx, clerkID, goal.TypeHydration, 1)
	require.NoError(t, err)
	assert.True(t, g.Completed)
	assert.Equal(t, g.Target, g.Current)
	assert.Equal(t, before+30, currentPoints(t, userService, clerkID))
}

func TestNewDayMeasurementAwardsOnce(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	sink := &recordingSink{}
	scoringService := services.NewScoringService(pool, sink)
	userService := services.NewUserService(pool)
	socialService := services.NewSocialService(pool, scoringService)
	measurementService := services.NewMeasurementService(pool, scoringService, socialService)

	clerkID := setupUser(t, userService)
	ctx := context.Background()

	before := currentPoints(t, userService, clerkID)

	_, isNew, err := measurementService.Record(ctx, clerkID, &measurement.RecordRequest{Weight: 99.5})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, before+20, currentPoints(t, userService, clerkID))

	// Same-day write replaces the entry and awards nothing.
	_, isNew, err = measurementService.Record(ctx, clerkID, &measurement.RecordRequest{Weight: 99.0})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, before+20, currentPoints(t, userService, clerkID))

	history, err := measurementService.History(ctx, clerkID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 99.0, history[0].Weight)
}

func TestMeasurementRecordedWithoutStatsRow(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	sink := &recordingSink{}
	scoringService := services.NewScoringService(pool, sink)
	userService := services.NewUserService(pool)
	socialService := services.NewSocialService(pool, scoringService)
	measurementService := services.NewMeasurementService(pool, scoringService, socialService)

	ctx := context.Background()

	// No onboarding: the user_stats row the award needs does not exist yet.
	clerkID := "user_test_" + time.Now().Format("20060102150405.000")
	_, err := userService.CreateUser(ctx, &user.CreateUserRequest{
		ClerkID:  clerkID,
		Email:    "test.nostats@example.com",
		Nickname: "Parceiro Novo",
	})
	require.NoError(t, err)

	// The entry still lands; the failed award is logged, not surfaced.
	entry, isNew, err := measurementService.Record(ctx, clerkID, &measurement.RecordRequest{Weight: 102.5})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, 102.5, entry.Weight)

	history, err := measurementService.History(ctx, clerkID)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestMedalAwardedOnceWithSingleNotification(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	sink := &recordingSink{}
	scoringService := services.NewScoringService(pool, sink)
	userService := services.NewUserService(pool)
	socialService := services.NewSocialService(pool, scoringService)

	clerkID := setupUser(t, userService)
	ctx := context.Background()

	var medalID uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO medals (name, description, icon, requirement_type, requirement_value)
		VALUES ('Primeiros Passos Teste', 'Ganhe 10 pontos', '🥉', 'points', 10)
		RETURNING id
	`).Scan(&medalID)
	require.NoError(t, err)
	defer pool.Exec(ctx, `DELETE FROM medals WHERE id = $1`, medalID)

	// Crossing the threshold awards the medal and notifies.
	_, err = socialService.AddPost(ctx, clerkID, "bora pra mais um dia")
	require.NoError(t, err)
	notified := sink.count()
	assert.GreaterOrEqual(t, notified, 1)

	var userID uuid.UUID
	err = pool.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	require.NoError(t, err)

	// Re-running the evaluator changes nothing.
	require.NoError(t, scoringService.EvaluateMedals(ctx, userID))
	require.NoError(t, scoringService.EvaluateMedals(ctx, userID))
	assert.Equal(t, notified, sink.count())

	var earned int
	err = pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM user_medals WHERE user_id = $1 AND medal_id = $2
	`, userID, medalID).Scan(&earned)
	require.NoError(t, err)
	assert.Equal(t, 1, earned)
}
