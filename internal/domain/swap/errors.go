package swap

import "errors"

var (
	ErrRequestNotFound = errors.New("shift swap request not found")
	ErrAlreadyDecided  = errors.New("shift swap request has already been decided")
	ErrForbidden       = errors.New("not authorized to decide this swap request")
	ErrSelfSwap        = errors.New("cannot request a swap with yourself")
)
