package permit

import "errors"

var (
	ErrPermitNotFound = errors.New("permit request not found")
	ErrAlreadyDecided = errors.New("permit request has already been decided")
	ErrInvalidRange   = errors.New("end date cannot be before start date")
)
