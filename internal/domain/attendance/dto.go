package attendance

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/absensi-nh/absensi-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CaptureRequest is the shared payload of every state-changing action:
// an optional photo plus a location, either as free text (already resolved
// by the client) or as raw coordinates to reverse-geocode server-side.
type CaptureRequest struct {
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CaptureRequest) validatePhoto(required bool, errs validator.ValidationErrors) validator.ValidationErrors {
	if r.FileHeader == nil {
		if required {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "attendance proof photo is required",
			})
		}
		return errs
	}

	filename := r.FileHeader.Filename
	idx := strings.LastIndex(filename, ".")
	ext := ""
	if idx >= 0 {
		ext = strings.ToLower(filename[idx:])
	}
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	} else if r.FileHeader.Size > 10<<20 { // 10MB
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "attendance proof photo size must not exceed 10MB",
		})
	}
	return errs
}

func (r *CaptureRequest) validateCoordinates(errs validator.ValidationErrors) validator.ValidationErrors {
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

type ClockInRequest struct {
	CaptureRequest
	ShiftType string `json:"shift_type"` // Regular | Piket; empty means derive from piket schedule
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ShiftType != "" && !validator.IsInSlice(r.ShiftType, []string{ShiftTypeRegular, ShiftTypePiket}) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type must be Regular or Piket",
		})
	}

	errs = r.validatePhoto(true, errs)
	errs = r.validateCoordinates(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreakRequest struct {
	CaptureRequest
}

func (r *BreakRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = r.validatePhoto(true, errs)
	errs = r.validateCoordinates(errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	CaptureRequest
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = r.validatePhoto(true, errs)
	errs = r.validateCoordinates(errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PermitRequest struct {
	CaptureRequest
	Type  string `json:"type"` // sick | permission
	Notes string `json:"notes"`
}

func (r *PermitRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, []string{StatusSick, StatusPermission}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be sick or permission",
		})
	}

	if validator.IsEmpty(r.Notes) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "reason is required",
		})
	}

	// Photo is optional evidence on permits
	errs = r.validatePhoto(false, errs)
	errs = r.validateCoordinates(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	EmployeeID *string
	Month      string // "2006-01"; resolves to the 26th-to-25th payroll window
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Month != "" {
		if _, ok := validator.IsValidMonth(f.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type SessionResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	Date          string `json:"date"`
	SessionNumber int    `json:"session_number"`

	CheckIn         *string `json:"check_in"`
	CheckInPhoto    *string `json:"check_in_photo"`
	CheckInLocation *string `json:"check_in_location"`

	BreakStart         *string `json:"break_start"`
	BreakStartPhoto    *string `json:"break_start_photo"`
	BreakStartLocation *string `json:"break_start_location"`

	BreakEnd         *string `json:"break_end"`
	BreakEndPhoto    *string `json:"break_end_photo"`
	BreakEndLocation *string `json:"break_end_location"`

	CheckOut         *string `json:"check_out"`
	CheckOutPhoto    *string `json:"check_out_photo"`
	CheckOutLocation *string `json:"check_out_location"`

	ShiftLabel string  `json:"shift"`
	ShiftType  string  `json:"shift_type"`
	Status     string  `json:"status"`
	IsOvertime bool    `json:"is_overtime"`
	Notes      *string `json:"notes"`

	PermitExitAt   *string `json:"permit_exit_at"`
	PermitResumeAt *string `json:"permit_resume_at"`

	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeNIK  *string `json:"employee_nik,omitempty"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func ToResponse(s Session) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		Date:          s.Date.Format("2006-01-02"),
		SessionNumber: s.SessionNumber,

		CheckIn:         formatTimePtr(s.CheckIn),
		CheckInPhoto:    s.CheckInPhoto,
		CheckInLocation: s.CheckInLocation,

		BreakStart:         formatTimePtr(s.BreakStart),
		BreakStartPhoto:    s.BreakStartPhoto,
		BreakStartLocation: s.BreakStartLocation,

		BreakEnd:         formatTimePtr(s.BreakEnd),
		BreakEndPhoto:    s.BreakEndPhoto,
		BreakEndLocation: s.BreakEndLocation,

		CheckOut:         formatTimePtr(s.CheckOut),
		CheckOutPhoto:    s.CheckOutPhoto,
		CheckOutLocation: s.CheckOutLocation,

		ShiftLabel: s.ShiftLabel,
		ShiftType:  s.ShiftType,
		Status:     s.Status,
		IsOvertime: s.IsOvertime,
		Notes:      s.Notes,

		PermitExitAt:   formatTimePtr(s.PermitExitAt),
		PermitResumeAt: formatTimePtr(s.PermitResumeAt),

		EmployeeName: s.EmployeeName,
		EmployeeNIK:  s.EmployeeNIK,
	}
}
