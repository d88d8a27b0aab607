package permit

import (
	"context"
)

type PermitRepository interface {
	Create(ctx context.Context, p Permit) (Permit, error)
	GetByID(ctx context.Context, id string) (Permit, error)

	// List returns all permits (employeeID nil) or one employee's, newest first
	List(ctx context.Context, employeeID *string) ([]Permit, error)

	// UpdateStatus moves a pending permit to approved/rejected; guarded in SQL
	UpdateStatus(ctx context.Context, id string, status string) (Permit, error)
}
