package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"estradaLeveAPI/internal/resource"
	"estradaLeveAPI/middleware"
	"estradaLeveAPI/services"
	"estradaLeveAPI/utils"
)

const maxResourceFileSize = 20 * 1024 * 1024

type ResourceHandler struct {
	resourceService *services.ResourceService
	userService     *services.UserService
}

func NewResourceHandler(resourceService *services.ResourceService, userService *services.UserService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		userService:     userService,
	}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetClerkID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	resources, err := h.resourceService.List(ctx, r.URL.Query().Get("category"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch resources")
		return
	}

	respondWithJSON(w, http.StatusOK, resources)
}

// Publish is an admin surface: program content pushed to all participants.
func (h *ResourceHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	caller, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil || !caller.IsAdmin {
		respondWithError(w, http.StatusForbidden, "Admin access required")
		return
	}

	var req resource.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.resourceService.Publish(ctx, clerkID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to publish resource")
		return
	}

	respondWithJSON(w, http.StatusCreated, res)
}

func (h *ResourceHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	caller, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil || !caller.IsAdmin {
		respondWithError(w, http.StatusForbidden, "Admin access required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxResourceFileSize)
	if err := r.ParseMultipartForm(maxResourceFileSize); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	url, err := h.resourceService.UploadFile(ctx, file, header.Filename)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"url": url})
}
