package announcement

import (
	"context"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)

	// ListVisible returns announcements that have not expired, newest first
	ListVisible(ctx context.Context) ([]Announcement, error)

	Delete(ctx context.Context, id string) error
}
