package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"estradaLeveAPI/internal/measurement"
	"estradaLeveAPI/middleware"
	"estradaLeveAPI/services"
	"estradaLeveAPI/utils"
)

type MeasurementHandler struct {
	measurementService *services.MeasurementService
}

func NewMeasurementHandler(measurementService *services.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
	}
}

// Record writes today's measurement. The response carries whether this was a
// brand-new day entry (and therefore awarded points) or a same-day update.
func (h *MeasurementHandler) Record(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req measurement.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, isNew, err := h.measurementService.Record(ctx, clerkID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to record measurement")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"entry":  entry,
		"is_new": isNew,
	})
}

func (h *MeasurementHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	entries, err := h.measurementService.History(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch weight history")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
