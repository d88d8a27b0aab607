package announcement

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/announcement"
	"github.com/absensi-nh/absensi-backend-go/internal/service/file"
)

type AnnouncementServiceImpl struct {
	announcements announcement.AnnouncementRepository
	files         file.FileService
}

func NewAnnouncementService(
	announcements announcement.AnnouncementRepository,
	files file.FileService,
) announcement.AnnouncementService {
	return &AnnouncementServiceImpl{
		announcements: announcements,
		files:         files,
	}
}

// Create implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Create(ctx context.Context, req announcement.CreateRequest) (announcement.Response, error) {
	if err := req.Validate(); err != nil {
		return announcement.Response{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return announcement.Response{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	post := announcement.Announcement{
		ID:      uuid.New().String(),
		Title:   req.Title,
		Content: req.Content,
	}

	if authorID, ok := claims["user_id"].(string); ok && authorID != "" {
		post.AuthorID = &authorID
	}

	if req.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err == nil {
			utc := expiresAt.UTC()
			post.ExpiresAt = &utc
		}
	}

	if req.FileHeader != nil {
		imagePath, err := s.files.UploadAnnouncementImage(ctx, req.File, req.FileHeader.Filename)
		if err != nil {
			return announcement.Response{}, fmt.Errorf("failed to upload announcement image: %w", err)
		}
		post.ImageURL = &imagePath
	}

	created, err := s.announcements.Create(ctx, post)
	if err != nil {
		return announcement.Response{}, fmt.Errorf("failed to create announcement: %w", err)
	}

	return announcement.ToResponse(created), nil
}

// ListVisible implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) ListVisible(ctx context.Context) ([]announcement.Response, error) {
	posts, err := s.announcements.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	responses := make([]announcement.Response, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, announcement.ToResponse(post))
	}
	return responses, nil
}

// Delete implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Delete(ctx context.Context, id string) error {
	return s.announcements.Delete(ctx, id)
}
