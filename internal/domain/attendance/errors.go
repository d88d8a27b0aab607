package attendance

import "errors"

// Attendance domain errors
var (
	// State machine conflicts
	ErrSessionAlreadyOpen  = errors.New("previous session is still open, clock out first")
	ErrNoOpenSession       = errors.New("no open session found for today")
	ErrBreakAlreadyStarted = errors.New("break has already started")
	ErrNoActiveBreak       = errors.New("no active break to end")
	ErrSessionStillOpen    = errors.New("a session is still active, clock out before resuming")
	ErrNoSessionToday      = errors.New("no attendance record found for today")

	// General errors
	ErrSessionNotFound  = errors.New("attendance session not found")
	ErrInvalidPermit    = errors.New("permit type must be sick or permission")
	ErrPhotoUploadFail  = errors.New("failed to upload attendance proof, please retry")
	ErrUnauthorized     = errors.New("unauthorized to access this attendance record")
	ErrEmployeeRequired = errors.New("employee identity missing from token")
)
