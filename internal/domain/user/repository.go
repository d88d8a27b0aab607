package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByNIK(ctx context.Context, nik string) (User, error)
	List(ctx context.Context) ([]User, error)
	ListEmployees(ctx context.Context) ([]User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, id string, updates UpdateUserParams) (User, error)
	Delete(ctx context.Context, id string) error
}

// UpdateUserParams carries optional column updates; nil means leave unchanged.
type UpdateUserParams struct {
	Username     *string
	Email        *string
	PasswordHash *string
	FullName     *string
	NIK          *string
	Branch       *string
	Position     *string
	PhoneNumber  *string
	PhotoURL     *string
}
