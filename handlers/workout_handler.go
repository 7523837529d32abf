package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"estradaLeveAPI/internal/workout"
	"estradaLeveAPI/middleware"
	"estradaLeveAPI/services"
	"estradaLeveAPI/utils"
)

type WorkoutHandler struct {
	workoutService *services.WorkoutService
}

func NewWorkoutHandler(workoutService *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
	}
}

func (h *WorkoutHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	recordings, err := h.workoutService.Recent(ctx, clerkID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch workouts")
		return
	}

	respondWithJSON(w, http.StatusOK, recordings)
}

// Upload accepts a multipart form with a "video" file, optional "caption" and
// "activity_id" fields. The request body is capped at the video size limit
// before parsing.
func (h *WorkoutHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, workout.MaxVideoSize)
	if err := r.ParseMultipartForm(workout.MaxVideoSize); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, "Video exceeds the 50MB limit")
		return
	}

	file, _, err := r.FormFile("video")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing video file")
		return
	}
	defer file.Close()

	caption := r.FormValue("caption")

	var activityID *uuid.UUID
	if raw := r.FormValue("activity_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid activity id")
			return
		}
		activityID = &id
	}

	recording, err := h.workoutService.Upload(ctx, clerkID, file, caption, activityID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to upload workout")
		return
	}

	respondWithJSON(w, http.StatusCreated, recording)
}

func (h *WorkoutHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workoutID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid workout id")
		return
	}

	liked, err := h.workoutService.ToggleLike(ctx, clerkID, workoutID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to toggle like")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *WorkoutHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetClerkID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workoutID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid workout id")
		return
	}

	comments, err := h.workoutService.GetComments(ctx, workoutID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	respondWithJSON(w, http.StatusOK, comments)
}

func (h *WorkoutHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workoutID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid workout id")
		return
	}

	var req workout.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.workoutService.AddComment(ctx, clerkID, workoutID, req.Text)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	respondWithJSON(w, http.StatusCreated, c)
}
