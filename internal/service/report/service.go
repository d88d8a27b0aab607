package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/report"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
	"github.com/absensi-nh/absensi-backend-go/internal/service/schedule"
)

type RecapServiceImpl struct {
	sessions   attendance.SessionRepository
	users      user.UserRepository
	classifier *schedule.Classifier
	now        func() time.Time
}

func NewRecapService(
	sessions attendance.SessionRepository,
	users user.UserRepository,
	classifier *schedule.Classifier,
) report.RecapService {
	return &RecapServiceImpl{
		sessions:   sessions,
		users:      users,
		classifier: classifier,
		now:        time.Now,
	}
}

func (s *RecapServiceImpl) resolveWindow(req report.RecapRequest) (report.Window, error) {
	loc := s.classifier.Location()
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return report.Window{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	switch req.Type {
	case report.TypeDaily:
		return report.DailyWindow(date, loc), nil
	case report.TypeWeekly:
		return report.WeeklyWindow(date, loc), nil
	default:
		return report.MonthlyWindow(date.Format("2006-01"), loc)
	}
}

// countWorkingDays counts Monday-Friday dates in the inclusive window.
// Public holidays still count; the denominator follows the calendar only.
func countWorkingDays(w report.Window) int {
	count := 0
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		if schedule.IsWorkingDay(d) {
			count++
		}
	}
	return count
}

// Recap implements report.RecapService.
func (s *RecapServiceImpl) Recap(ctx context.Context, req report.RecapRequest) (report.RecapResponse, error) {
	if err := req.Validate(); err != nil {
		return report.RecapResponse{}, err
	}

	window, err := s.resolveWindow(req)
	if err != nil {
		return report.RecapResponse{}, err
	}

	employees, err := s.users.ListEmployees(ctx)
	if err != nil {
		return report.RecapResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	if req.Search != "" {
		needle := strings.ToLower(req.Search)
		filtered := employees[:0]
		for _, e := range employees {
			nik := ""
			if e.NIK != nil {
				nik = *e.NIK
			}
			if strings.Contains(strings.ToLower(e.FullName), needle) || strings.Contains(nik, needle) {
				filtered = append(filtered, e)
			}
		}
		employees = filtered
	}

	sessions, err := s.sessions.ListByDateRange(ctx, nil, window.StartLocal(), window.EndLocal())
	if err != nil {
		return report.RecapResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	type tally struct {
		present, late, sick, permission int
		dates                           map[string]bool
	}
	tallies := make(map[string]*tally, len(employees))
	for _, e := range employees {
		tallies[e.ID] = &tally{dates: map[string]bool{}}
	}

	for _, session := range sessions {
		t, ok := tallies[session.EmployeeID]
		if !ok {
			continue
		}
		t.dates[session.Date.Format("2006-01-02")] = true
		switch session.Status {
		case attendance.StatusPresent:
			t.present++
		case attendance.StatusLate:
			t.late++
		case attendance.StatusSick:
			t.sick++
		case attendance.StatusPermission:
			t.permission++
		}
	}

	workingDays := countWorkingDays(window)

	// Alpha only accrues on weekdays that have already passed; future dates
	// in the window are not someone's fault yet.
	loc := s.classifier.Location()
	today := s.now().In(loc)
	alphaEnd := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	if window.End.Before(alphaEnd) {
		alphaEnd = window.End
	}

	rows := make([]report.RecapRow, 0, len(employees))
	for _, e := range employees {
		t := tallies[e.ID]

		alpha := 0
		for d := window.Start; !d.After(alphaEnd); d = d.AddDate(0, 0, 1) {
			if schedule.IsWorkingDay(d) && !t.dates[d.Format("2006-01-02")] {
				alpha++
			}
		}

		percentage := 0
		if workingDays > 0 {
			percentage = int(math.Round(float64(t.present+t.late) / float64(workingDays) * 100))
		}

		nik := ""
		if e.NIK != nil {
			nik = *e.NIK
		}
		rows = append(rows, report.RecapRow{
			EmployeeID:   e.ID,
			EmployeeName: e.FullName,
			EmployeeNIK:  nik,
			Present:      t.present,
			Late:         t.late,
			Sick:         t.sick,
			Permission:   t.permission,
			Alpha:        alpha,
			WorkingDays:  workingDays,
			Percentage:   percentage,
		})
	}

	sortRows(rows, req.SortField, req.SortDesc)

	return report.RecapResponse{
		Type:        req.Type,
		PeriodStart: window.StartLocal(),
		PeriodEnd:   window.EndLocal(),
		WorkingDays: workingDays,
		Rows:        rows,
	}, nil
}

// sortRows orders the recap. Descending order applies to the requested field
// only; ties always fall back to name then ID ascending so equal rows keep a
// stable alphabetical order regardless of direction.
func sortRows(rows []report.RecapRow, field string, desc bool) {
	value := func(r report.RecapRow) (int, bool) {
		switch field {
		case report.SortByPresent:
			return r.Present, true
		case report.SortByLate:
			return r.Late, true
		case report.SortBySick:
			return r.Sick, true
		case report.SortByPermission:
			return r.Permission, true
		case report.SortByAlpha:
			return r.Alpha, true
		case report.SortByPercentage:
			return r.Percentage, true
		}
		return 0, false
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if av, ok := value(a); ok {
			bv, _ := value(b)
			if av != bv {
				if desc {
					return av > bv
				}
				return av < bv
			}
		}
		an, bn := strings.ToLower(a.EmployeeName), strings.ToLower(b.EmployeeName)
		if an != bn {
			return an < bn
		}
		return a.EmployeeID < b.EmployeeID
	})
}

// Export implements report.RecapService.
func (s *RecapServiceImpl) Export(ctx context.Context, req report.ExportRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	recap, err := s.Recap(ctx, req.RecapRequest)
	if err != nil {
		return "", err
	}

	if req.Mode == report.ModeDetail {
		return s.renderDetail(ctx, recap)
	}
	return renderSummary(recap)
}
