package user

import (
	"mime/multipart"

	"github.com/absensi-nh/absensi-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	NIK         string `json:"nik"`
	Branch      string `json:"branch"`
	Position    string `json:"position"`
	PhoneNumber string `json:"phone_number"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.Username) && validator.IsEmpty(r.NIK) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username or NIK is required",
		})
	}

	if r.Role != "" && !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be admin or employee",
		})
	}

	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.NIK != "" && !validator.IsValidNIK(r.NIK) {
		errs = append(errs, validator.ValidationError{
			Field:   "nik",
			Message: "NIK must be 16 digits",
		})
	}

	if r.PhoneNumber != "" && !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	FullName    *string `json:"full_name"`
	NIK         *string `json:"nik"`
	Branch      *string `json:"branch"`
	Position    *string `json:"position"`
	PhoneNumber *string `json:"phone_number"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name cannot be empty",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.NIK != nil && *r.NIK != "" && !validator.IsValidNIK(*r.NIK) {
		errs = append(errs, validator.ValidationError{
			Field:   "nik",
			Message: "NIK must be 16 digits",
		})
	}

	if r.PhoneNumber != nil && *r.PhoneNumber != "" && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID          string  `json:"id"`
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	NIK         *string `json:"nik"`
	Branch      *string `json:"branch"`
	Position    *string `json:"position"`
	PhoneNumber *string `json:"phone_number"`
	PhotoURL    *string `json:"photo_url"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		NIK:         u.NIK,
		Branch:      u.Branch,
		Position:    u.Position,
		PhoneNumber: u.PhoneNumber,
		PhotoURL:    u.PhotoURL,
	}
}
