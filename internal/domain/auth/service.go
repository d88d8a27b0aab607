package auth

import (
	"context"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
)

type AuthService interface {
	// Login authenticates by username or NIK and issues an access token
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Me returns the profile of the authenticated user
	Me(ctx context.Context) (user.UserResponse, error)
}
