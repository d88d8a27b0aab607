package announcement

import (
	"context"
)

// AnnouncementService manages company-wide announcements.
type AnnouncementService interface {
	// Create publishes an announcement, admin only
	Create(ctx context.Context, req CreateRequest) (Response, error)

	// ListVisible lists announcements that have not expired
	ListVisible(ctx context.Context) ([]Response, error)

	// Delete removes an announcement, admin only
	Delete(ctx context.Context, id string) error
}
