package attendance

import (
	"time"
)

// Session statuses. A session carries the status decided at clock-in time;
// historical records are never reclassified.
const (
	StatusPresent    = "present"
	StatusLate       = "late"
	StatusSick       = "sick"
	StatusPermission = "permission"
	StatusAbsent     = "absent"
	StatusOvertime   = "overtime"
)

// Shift types. The deadline model is the unified "Management" shift:
// Piket 08:15, Regular 08:30. Old named shifts may still appear in
// ShiftLabel on historical rows but are never used to derive deadlines.
const (
	ShiftTypeRegular = "Regular"
	ShiftTypePiket   = "Piket"
)

// DefaultShiftLabel is captured on every new session.
const DefaultShiftLabel = "Management"

// A session left open past AutoCloseHour local time on the day after its
// civil date is closed at exactly that cutoff, with an auto-close note.
const (
	AutoCloseHour = 6
	AutoCloseNote = "Auto-closed at 06:00"
)

// AppendAutoCloseNote returns the session notes with the auto-close marker
// appended, or the bare marker when there were no notes.
func AppendAutoCloseNote(notes *string) string {
	if notes == nil || *notes == "" {
		return AutoCloseNote
	}
	return *notes + " (" + AutoCloseNote + ")"
}

// Session is one clock-in-to-clock-out work period. An employee may have
// several sessions on one civil date, numbered 1..N without gaps; at most
// one of them may be open (check-in set, check-out unset).
type Session struct {
	ID            string
	EmployeeID    string
	Date          time.Time // civil date in the business timezone, midnight UTC in storage
	SessionNumber int

	CheckIn         *time.Time
	CheckInPhoto    *string
	CheckInLocation *string

	BreakStart         *time.Time
	BreakStartPhoto    *string
	BreakStartLocation *string

	BreakEnd         *time.Time
	BreakEndPhoto    *string
	BreakEndLocation *string

	CheckOut         *time.Time
	CheckOutPhoto    *string
	CheckOutLocation *string

	ShiftLabel string
	ShiftType  string
	Status     string
	IsOvertime bool
	Notes      *string

	PermitExitAt   *time.Time
	PermitResumeAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields for admin listings
	EmployeeName *string
	EmployeeNIK  *string
}

// IsOpen reports whether the session has been started but not closed.
func (s *Session) IsOpen() bool {
	return s.CheckIn != nil && s.CheckOut == nil
}

// OnBreak reports whether a break is running.
func (s *Session) OnBreak() bool {
	return s.BreakStart != nil && s.BreakEnd == nil
}

// IsPermit reports whether the session records a sick/permission day.
func (s *Session) IsPermit() bool {
	return s.Status == StatusSick || s.Status == StatusPermission
}
