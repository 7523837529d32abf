package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"estradaLeveAPI/internal/level"
	"estradaLeveAPI/middleware"
	"estradaLeveAPI/services"
)

type RankingHandler struct {
	leaderboardService *services.LeaderboardService
	scoringService     *services.ScoringService
	userService        *services.UserService
}

func NewRankingHandler(leaderboardService *services.LeaderboardService, scoringService *services.ScoringService, userService *services.UserService) *RankingHandler {
	return &RankingHandler{
		leaderboardService: leaderboardService,
		scoringService:     scoringService,
		userService:        userService,
	}
}

// Winner returns the combined-score ranking with the caller's position.
func (h *RankingHandler) Winner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	ranking, err := h.leaderboardService.WinnerRanking(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to compute ranking")
		return
	}

	respondWithJSON(w, http.StatusOK, ranking)
}

// MostActive returns the points-only top list.
func (h *RankingHandler) MostActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetClerkID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.leaderboardService.MostActive(ctx, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch ranking")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

// GetMedals returns the full catalog with the caller's earned state.
func (h *RankingHandler) GetMedals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	medals, err := h.scoringService.GetMedals(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch medals")
		return
	}

	respondWithJSON(w, http.StatusOK, medals)
}

// GetLevel classifies the caller's point total into its tier.
func (h *RankingHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	stats, err := h.userService.GetUserStats(ctx, clerkID)
	if err != nil || stats == nil {
		respondWithError(w, http.StatusNotFound, "User stats not found")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"level":    level.Classify(stats.Points),
		"progress": level.Progress(stats.Points),
		"points":   stats.Points,
	})
}
