package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// MediaService wraps Cloudinary uploads for the media the app stores
// off-database: workout videos, meal photos, resource files and avatars.
type MediaService struct {
	cld *cloudinary.Cloudinary
}

func NewMediaService() (*MediaService, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &MediaService{cld: cld}, nil
}

// UploadWorkoutVideo stores a workout recording and returns its URL.
func (s *MediaService) UploadWorkoutVideo(ctx context.Context, file multipart.File, recordingID uuid.UUID) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     fmt.Sprintf("workouts/%s", recordingID),
		Folder:       "estradaleve/workouts",
		ResourceType: "video",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload workout video: %w", err)
	}
	return res.SecureURL, nil
}

// UploadMealImage stores a meal photo.
func (s *MediaService) UploadMealImage(ctx context.Context, file multipart.File, mealID uuid.UUID) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       fmt.Sprintf("meals/%s", mealID),
		Folder:         "estradaleve/meals",
		ResourceType:   "image",
		Transformation: "c_fill,h_600,w_800,q_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload meal image: %w", err)
	}
	return res.SecureURL, nil
}

// UploadResourceFile stores a resource attachment under a sanitized name.
func (s *MediaService) UploadResourceFile(ctx context.Context, file multipart.File, filename string) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     fmt.Sprintf("resources/%s", SanitizeFilename(filename)),
		Folder:       "estradaleve/resources",
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload resource file: %w", err)
	}
	return res.SecureURL, nil
}

// UploadAvatar stores a profile picture, overwriting any previous one for
// the same user.
func (s *MediaService) UploadAvatar(ctx context.Context, file multipart.File, userID uuid.UUID) (string, error) {
	overwrite := true
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       fmt.Sprintf("avatars/%s", userID),
		Folder:         "estradaleve/avatars",
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Format:         "jpg",
		Transformation: "c_fill,g_face,h_500,w_500",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return res.SecureURL, nil
}

// SanitizeFilename strips path separators and characters Cloudinary public
// IDs cannot carry, leaving a predictable slug.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := b.String()
	if out == "" {
		out = "file"
	}
	return out
}
