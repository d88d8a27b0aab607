package announcement

import "time"

// Announcement is a board post, visible while ExpiresAt is unset or in the
// future. Expiry is filtered at read time; rows are never swept.
type Announcement struct {
	ID        string
	Title     string
	Content   string
	ImageURL  *string
	ExpiresAt *time.Time
	AuthorID  *string
	CreatedAt time.Time
}

// VisibleAt reports whether the announcement should be shown at the instant.
func (a *Announcement) VisibleAt(now time.Time) bool {
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}
