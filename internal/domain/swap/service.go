package swap

import (
	"context"
)

// SwapService handles piket duty swap requests between employees.
type SwapService interface {
	// Create files a swap request from the authenticated employee
	Create(ctx context.Context, req CreateRequest) (Response, error)

	// List returns requests visible to the caller: admins see everything,
	// employees see requests they filed or are targeted by.
	List(ctx context.Context) ([]Response, error)

	// Respond decides a pending request. Only the target employee or an
	// admin may decide; an approved swap exchanges the two roster entries.
	Respond(ctx context.Context, id string, req RespondRequest) (Response, error)
}
