package report

import (
	"fmt"
	"time"
)

// Window is an inclusive civil-date range in the business timezone.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) StartLocal() string { return w.Start.Format("2006-01-02") }
func (w Window) EndLocal() string   { return w.End.Format("2006-01-02") }

// Contains reports whether the civil date d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// MonthlyWindow resolves the payroll window of a "2006-01" month: the 26th
// of the prior month through the 25th of the target month.
func MonthlyWindow(month string, loc *time.Location) (Window, error) {
	t, err := time.ParseInLocation("2006-01", month, loc)
	if err != nil {
		return Window{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	start := time.Date(t.Year(), t.Month()-1, 26, 0, 0, 0, 0, loc)
	end := time.Date(t.Year(), t.Month(), 25, 0, 0, 0, 0, loc)
	return Window{Start: start, End: end}, nil
}

// MonthlyWindowFor returns the payroll window that contains the given date:
// dates on or after the 26th belong to the next month's window.
func MonthlyWindowFor(date time.Time, loc *time.Location) Window {
	local := date.In(loc)
	year, month := local.Year(), local.Month()
	if local.Day() >= 26 {
		month++
	}
	start := time.Date(year, month-1, 26, 0, 0, 0, 0, loc)
	end := time.Date(year, month, 25, 0, 0, 0, 0, loc)
	return Window{Start: start, End: end}
}

// WeeklyWindow returns the Monday-to-Sunday week containing the date.
func WeeklyWindow(date time.Time, loc *time.Location) Window {
	local := date.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start := day.AddDate(0, 0, -offset)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

// DailyWindow returns the single-day window containing the date.
func DailyWindow(date time.Time, loc *time.Location) Window {
	local := date.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{Start: day, End: day}
}
