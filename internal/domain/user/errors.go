package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username or NIK already registered")
	ErrUsernameRequired   = errors.New("username or NIK is required")
	ErrAdminRequired      = errors.New("admin privilege required")
	ErrCannotDeleteAdmin  = errors.New("cannot delete an admin account")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrSelfDeleteRejected = errors.New("cannot delete your own account")
)
