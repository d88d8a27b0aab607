package permit

import (
	"context"
)

// PermitService handles multi-day leave permits (sick, permission).
type PermitService interface {
	// Create files a permit for the authenticated employee
	Create(ctx context.Context, req CreateRequest) (Response, error)

	// List returns the caller's permits, or all permits for admins
	List(ctx context.Context) ([]Response, error)

	// SetStatus approves or rejects a pending permit. Admin only; an
	// approved permit materializes one attendance record per working day
	// in its range.
	SetStatus(ctx context.Context, id string, req SetStatusRequest) (Response, error)
}
