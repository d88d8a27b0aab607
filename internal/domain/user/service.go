package user

import (
	"context"
)

// EmployeeService manages employee accounts. All operations are admin-only
// except Get on the caller's own ID.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}
