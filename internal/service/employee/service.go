package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
	"github.com/absensi-nh/absensi-backend-go/internal/service/file"
)

const minPasswordLength = 6

type EmployeeServiceImpl struct {
	users user.UserRepository
	files file.FileService
}

func NewEmployeeService(users user.UserRepository, files file.FileService) user.EmployeeService {
	return &EmployeeServiceImpl{
		users: users,
		files: files,
	}
}

// Create implements user.EmployeeService. The NIK doubles as the username
// and the initial password when those are not provided explicitly.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req user.CreateEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	username := req.Username
	if username == "" {
		username = req.NIK
	}
	if username == "" {
		return user.UserResponse{}, user.ErrUsernameRequired
	}

	password := req.Password
	if password == "" {
		password = req.NIK
	}
	if len(password) < minPasswordLength {
		return user.UserResponse{}, user.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	newUser := user.User{
		Username:     &username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         role,
	}
	if req.Email != "" {
		newUser.Email = &req.Email
	}
	if req.NIK != "" {
		nik := req.NIK
		newUser.NIK = &nik
	}
	if req.Branch != "" {
		newUser.Branch = &req.Branch
	}
	if req.Position != "" {
		newUser.Position = &req.Position
	}
	if req.PhoneNumber != "" {
		newUser.PhoneNumber = &req.PhoneNumber
	}

	created, err := s.users.Create(ctx, newUser)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.FileHeader != nil {
		photoPath, err := s.files.UploadProfilePhoto(ctx, created.ID, req.File, req.FileHeader.Filename)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to upload profile photo: %w", err)
		}
		created, err = s.users.Update(ctx, created.ID, user.UpdateUserParams{PhotoURL: &photoPath})
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to save profile photo: %w", err)
		}
	}

	return user.ToResponse(created), nil
}

// List implements user.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	accounts, err := s.users.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, user.ToResponse(account))
	}
	return responses, nil
}

// Get implements user.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(account), nil
}

// Update implements user.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req user.UpdateEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	params := user.UpdateUserParams{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		NIK:         req.NIK,
		Branch:      req.Branch,
		Position:    req.Position,
		PhoneNumber: req.PhoneNumber,
	}

	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return user.UserResponse{}, user.ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		params.PasswordHash = &hashStr
	}

	if req.FileHeader != nil {
		photoPath, err := s.files.UploadProfilePhoto(ctx, id, req.File, req.FileHeader.Filename)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to upload profile photo: %w", err)
		}
		params.PhotoURL = &photoPath
	}

	updated, err := s.users.Update(ctx, id, params)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(updated), nil
}

// Delete implements user.EmployeeService. Admin accounts cannot be removed
// through this path, and admins cannot delete themselves.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}
	callerID, _ := claims["user_id"].(string)

	if callerID == id {
		return user.ErrSelfDeleteRejected
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if target.IsAdmin() {
		return user.ErrCannotDeleteAdmin
	}

	return s.users.Delete(ctx, id)
}
