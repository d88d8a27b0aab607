package schedule

import (
	"time"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
)

// Lateness deadlines in seconds since midnight, unified "Management" shift
// model. Old per-named-shift deadlines (Shift 1/2/3) are deliberately not
// modeled; shift labels on historical rows are display-only.
const (
	deadlineRegularSecs = (8*60 + 30) * 60 // 08:30
	deadlinePiketSecs   = (8*60 + 15) * 60 // 08:15

	resumeWindowStartHour = 6  // resumes before 06:00 count as overtime
	resumeWindowEndHour   = 17 // resumes at/after 17:00 count as overtime
)

// Holiday notes stored on overtime sessions
const (
	NoteNationalHoliday = "Hari Libur Nasional"
	NoteWeekend         = "Hari Libur Pekan"
)

// Result is the classification of a clock-in or resume event.
type Result struct {
	Status     string
	IsOvertime bool
	Notes      string
}

// Classifier decides session status from the event instant, the shift type,
// and the holiday calendar. It is pure; all inputs are explicit.
type Classifier struct {
	loc      *time.Location
	holidays map[string]bool
}

func NewClassifier(loc *time.Location, holidays []string) *Classifier {
	set := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		set[h] = true
	}
	return &Classifier{loc: loc, holidays: set}
}

// Location returns the business timezone the classifier operates in.
func (c *Classifier) Location() *time.Location {
	return c.loc
}

// CivilDate formats the instant as a civil date in the business timezone.
func (c *Classifier) CivilDate(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// IsHoliday reports whether the civil date is a public holiday.
func (c *Classifier) IsHoliday(dateLocal string) bool {
	return c.holidays[dateLocal]
}

// IsWorkingDay reports whether the civil date is a Monday-Friday date.
// Public holidays are NOT subtracted here; recap working-day counts ignore
// the holiday calendar on purpose.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ClassifyClockIn decides the status of a clock-in event.
// Weekend or public holiday always classifies as overtime regardless of
// time-of-day; otherwise the shift-type deadline applies with second
// precision (08:30:00 is present, 08:30:01 is late).
func (c *Classifier) ClassifyClockIn(at time.Time, shiftType string) Result {
	local := at.In(c.loc)
	dateLocal := local.Format("2006-01-02")

	if holiday := c.holidays[dateLocal]; holiday || !IsWorkingDay(local) {
		note := NoteWeekend
		if holiday {
			note = NoteNationalHoliday
		}
		return Result{Status: attendance.StatusOvertime, IsOvertime: true, Notes: note}
	}

	deadline := deadlineRegularSecs
	if shiftType == attendance.ShiftTypePiket {
		deadline = deadlinePiketSecs
	}

	secs := local.Hour()*3600 + local.Minute()*60 + local.Second()
	if secs > deadline {
		return Result{Status: attendance.StatusLate}
	}
	return Result{Status: attendance.StatusPresent}
}

// ClassifyResume decides the status of a resume event opening session number
// n. Resumes outside the 06:00-17:00 window, or on a weekend/holiday, are
// overtime sessions.
func (c *Classifier) ClassifyResume(at time.Time, sessionNumber int) Result {
	local := at.In(c.loc)
	dateLocal := local.Format("2006-01-02")
	hour := local.Hour()

	outsideWindow := hour >= resumeWindowEndHour || hour < resumeWindowStartHour
	if outsideWindow || c.holidays[dateLocal] || !IsWorkingDay(local) {
		return Result{
			Status:     attendance.StatusOvertime,
			IsOvertime: true,
			Notes:      overtimeSessionNote(sessionNumber),
		}
	}
	return Result{Status: attendance.StatusPresent, Notes: sessionNote(sessionNumber)}
}
