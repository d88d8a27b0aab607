package response

import (
	"errors"
	"net/http"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/announcement"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/auth"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/permit"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/piket"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/swap"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username or NIK already registered")
	case errors.Is(err, user.ErrUsernameRequired):
		BadRequest(w, "Username or NIK is required", nil)
	case errors.Is(err, user.ErrPasswordTooShort):
		BadRequest(w, "Password must be at least 6 characters", nil)
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Role must be admin or employee", nil)
	case errors.Is(err, user.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrCannotDeleteAdmin):
		Forbidden(w, "Admin accounts cannot be deleted")
	case errors.Is(err, user.ErrSelfDeleteRejected):
		Forbidden(w, "You cannot delete your own account")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSessionAlreadyOpen):
		Conflict(w, "Previous session is still open, clock out first")
	case errors.Is(err, attendance.ErrSessionStillOpen):
		Conflict(w, "A session is still active, clock out before resuming")
	case errors.Is(err, attendance.ErrBreakAlreadyStarted):
		Conflict(w, "Break has already started")
	case errors.Is(err, attendance.ErrNoActiveBreak):
		BadRequest(w, "No active break to end", nil)
	case errors.Is(err, attendance.ErrNoOpenSession):
		BadRequest(w, "No open session found for today", nil)
	case errors.Is(err, attendance.ErrNoSessionToday):
		BadRequest(w, "No attendance record found for today", nil)
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, attendance.ErrInvalidPermit):
		BadRequest(w, "Permit type must be sick or permission", nil)
	case errors.Is(err, attendance.ErrPhotoUploadFail):
		InternalServerError(w, "Failed to upload attendance proof, please retry")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")
	case errors.Is(err, attendance.ErrEmployeeRequired):
		Unauthorized(w, "Employee identity missing from token")

	// Piket domain errors
	case errors.Is(err, piket.ErrScheduleNotFound):
		NotFound(w, "Piket schedule not found")

	// Swap domain errors
	case errors.Is(err, swap.ErrRequestNotFound):
		NotFound(w, "Swap request not found")
	case errors.Is(err, swap.ErrAlreadyDecided):
		Conflict(w, "Swap request has already been decided")
	case errors.Is(err, swap.ErrForbidden):
		Forbidden(w, "Only the target employee or an admin can decide this request")
	case errors.Is(err, swap.ErrSelfSwap):
		BadRequest(w, "Cannot request a swap with yourself", nil)

	// Permit domain errors
	case errors.Is(err, permit.ErrPermitNotFound):
		NotFound(w, "Permit not found")
	case errors.Is(err, permit.ErrAlreadyDecided):
		Conflict(w, "Permit has already been decided")
	case errors.Is(err, permit.ErrInvalidRange):
		BadRequest(w, "Invalid permit date range", nil)

	// Announcement domain errors
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
