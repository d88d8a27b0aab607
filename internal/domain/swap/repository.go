package swap

import (
	"context"
)

type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// List returns all requests (userID nil) or those where the user is
	// requester or target, newest first.
	List(ctx context.Context, userID *string) ([]Request, error)

	// UpdateStatus moves a pending request to approved/rejected. Returns
	// ErrAlreadyDecided when the row is no longer pending (guarded in SQL).
	UpdateStatus(ctx context.Context, id string, status string) (Request, error)
}
