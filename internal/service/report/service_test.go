package report

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/report"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
	"github.com/absensi-nh/absensi-backend-go/internal/service/schedule"
)

type fakeSessionRepo struct {
	sessions []attendance.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, s attendance.Session) (attendance.Session, error) {
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (attendance.Session, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return attendance.Session{}, attendance.ErrSessionNotFound
}

func (f *fakeSessionRepo) GetOpenSession(_ context.Context, _ string) (attendance.Session, error) {
	return attendance.Session{}, attendance.ErrNoOpenSession
}

func (f *fakeSessionRepo) ListOpenBefore(_ context.Context, _ string) ([]attendance.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) ListByEmployeeAndDate(_ context.Context, employeeID string, dateLocal string) ([]attendance.Session, error) {
	var out []attendance.Session
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.Date.Format("2006-01-02") == dateLocal {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) LockByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string) ([]attendance.Session, error) {
	return f.ListByEmployeeAndDate(ctx, employeeID, dateLocal)
}

func (f *fakeSessionRepo) Update(_ context.Context, _ attendance.Session) error { return nil }

func (f *fakeSessionRepo) ListByDateRange(_ context.Context, employeeID *string, startLocal, endLocal string) ([]attendance.Session, error) {
	var out []attendance.Session
	for _, s := range f.sessions {
		d := s.Date.Format("2006-01-02")
		if d < startLocal || d > endLocal {
			continue
		}
		if employeeID != nil && s.EmployeeID != *employeeID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeSessionRepo) CountByStatusAndDate(_ context.Context, _ string, _ []string) (int, error) {
	return 0, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByNIK(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error) { return f.users, nil }

func (f *fakeUserRepo) ListEmployees(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role == user.RoleEmployee {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ string, _ user.UpdateUserParams) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, _ string) error { return nil }

func strPtr(s string) *string { return &s }

type recapFixture struct {
	svc      *RecapServiceImpl
	sessions *fakeSessionRepo
	loc      *time.Location
}

func newRecap(t *testing.T, nowLocal string, employees ...user.User) *recapFixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	sessions := &fakeSessionRepo{}
	users := &fakeUserRepo{users: employees}
	classifier := schedule.NewClassifier(loc, schedule.Holidays2026)

	svc := NewRecapService(sessions, users, classifier).(*RecapServiceImpl)
	now, err := time.ParseInLocation("2006-01-02 15:04:05", nowLocal, loc)
	require.NoError(t, err)
	svc.now = func() time.Time { return now }

	return &recapFixture{svc: svc, sessions: sessions, loc: loc}
}

func employee(id, name, nik string) user.User {
	return user.User{ID: id, FullName: name, NIK: strPtr(nik), Role: user.RoleEmployee}
}

func (fx *recapFixture) addSession(employeeID, dateLocal, status string) {
	d, _ := time.Parse("2006-01-02", dateLocal)
	fx.sessions.sessions = append(fx.sessions.sessions, attendance.Session{
		ID:            employeeID + "-" + dateLocal + "-" + status,
		EmployeeID:    employeeID,
		Date:          d,
		SessionNumber: 1,
		Status:        status,
	})
}

func TestRecap_MonthlyWindow(t *testing.T) {
	fx := newRecap(t, "2026-03-01 10:00:00", employee("e1", "Andi", "1111"))

	resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
		Type: report.TypeMonthly,
		Date: "2026-02-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-26", resp.PeriodStart)
	assert.Equal(t, "2026-02-25", resp.PeriodEnd)
	// Jan 26-30 has 5 weekdays (26th is a Monday), Jan 31 is Saturday,
	// then four full weeks plus Feb 23-25.
	assert.Equal(t, 23, resp.WorkingDays)
}

func TestRecap_Counters(t *testing.T) {
	fx := newRecap(t, "2026-03-01 10:00:00",
		employee("e1", "Andi", "1111"),
		employee("e2", "Budi", "2222"),
	)

	fx.addSession("e1", "2026-02-02", attendance.StatusPresent)
	fx.addSession("e1", "2026-02-03", attendance.StatusLate)
	fx.addSession("e1", "2026-02-04", attendance.StatusSick)
	fx.addSession("e1", "2026-02-05", attendance.StatusPermission)
	// two sessions on one day both count toward their statuses
	fx.addSession("e1", "2026-02-06", attendance.StatusPresent)
	fx.addSession("e1", "2026-02-06", attendance.StatusPresent)

	resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
		Type: report.TypeMonthly,
		Date: "2026-02-10",
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)

	andi := resp.Rows[0]
	assert.Equal(t, "Andi", andi.EmployeeName)
	assert.Equal(t, 3, andi.Present)
	assert.Equal(t, 1, andi.Late)
	assert.Equal(t, 1, andi.Sick)
	assert.Equal(t, 1, andi.Permission)
	// 23 weekdays in window, 5 dates covered
	assert.Equal(t, 18, andi.Alpha)

	budi := resp.Rows[1]
	assert.Equal(t, 0, budi.Present)
	assert.Equal(t, 23, budi.Alpha)
}

func TestRecap_AlphaExcludesFutureDates(t *testing.T) {
	// mid-window: only weekdays up to today can be alpha
	fx := newRecap(t, "2026-02-03 10:00:00", employee("e1", "Andi", "1111"))

	fx.addSession("e1", "2026-02-02", attendance.StatusPresent)

	resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
		Type: report.TypeMonthly,
		Date: "2026-02-10",
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	// weekdays Jan 26 - Feb 3 inclusive: Jan 26-30 (5) + Feb 2-3 (2) = 7,
	// one covered by the Feb 2 session
	assert.Equal(t, 6, resp.Rows[0].Alpha)
	// denominator still spans the whole window
	assert.Equal(t, 23, resp.Rows[0].WorkingDays)
}

func TestRecap_Percentage(t *testing.T) {
	fx := newRecap(t, "2026-03-01 10:00:00", employee("e1", "Andi", "1111"))

	// 17 attended weekdays of 23 -> 73.9 rounds to 74
	day := time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC)
	added := 0
	for added < 17 {
		if schedule.IsWorkingDay(day) {
			fx.addSession("e1", day.Format("2006-01-02"), attendance.StatusPresent)
			added++
		}
		day = day.AddDate(0, 0, 1)
	}

	resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
		Type: report.TypeMonthly,
		Date: "2026-02-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 74, resp.Rows[0].Percentage)
}

func TestRecap_DailyAndWeeklyWindows(t *testing.T) {
	fx := newRecap(t, "2026-03-05 10:00:00", employee("e1", "Andi", "1111"))

	t.Run("daily", func(t *testing.T) {
		resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
			Type: report.TypeDaily,
			Date: "2026-03-04",
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-03-04", resp.PeriodStart)
		assert.Equal(t, "2026-03-04", resp.PeriodEnd)
		assert.Equal(t, 1, resp.WorkingDays)
	})

	t.Run("weekly spans monday to sunday", func(t *testing.T) {
		resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
			Type: report.TypeWeekly,
			Date: "2026-03-04", // a Wednesday
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", resp.PeriodStart)
		assert.Equal(t, "2026-03-08", resp.PeriodEnd)
		assert.Equal(t, 5, resp.WorkingDays)
	})
}

func TestRecap_SearchAndSort(t *testing.T) {
	fx := newRecap(t, "2026-03-01 10:00:00",
		employee("e1", "Andi", "1111"),
		employee("e2", "Budi", "2222"),
		employee("e3", "Citra", "3333"),
	)

	fx.addSession("e2", "2026-02-02", attendance.StatusLate)
	fx.addSession("e2", "2026-02-03", attendance.StatusLate)
	fx.addSession("e3", "2026-02-02", attendance.StatusLate)

	t.Run("search by name", func(t *testing.T) {
		resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
			Type:   report.TypeMonthly,
			Date:   "2026-02-10",
			Search: "bud",
		})
		require.NoError(t, err)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, "Budi", resp.Rows[0].EmployeeName)
	})

	t.Run("search by nik", func(t *testing.T) {
		resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
			Type:   report.TypeMonthly,
			Date:   "2026-02-10",
			Search: "3333",
		})
		require.NoError(t, err)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, "Citra", resp.Rows[0].EmployeeName)
	})

	t.Run("sort by late descending with name tiebreak", func(t *testing.T) {
		resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
			Type:      report.TypeMonthly,
			Date:      "2026-02-10",
			SortField: report.SortByLate,
			SortDesc:  true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Rows, 3)
		assert.Equal(t, "Budi", resp.Rows[0].EmployeeName)
		assert.Equal(t, "Citra", resp.Rows[1].EmployeeName)
		assert.Equal(t, "Andi", resp.Rows[2].EmployeeName)
	})

	t.Run("descending ties keep the name ascending tiebreak", func(t *testing.T) {
		fx.addSession("e1", "2026-02-04", attendance.StatusLate)
		fx.addSession("e1", "2026-02-05", attendance.StatusLate)

		// Andi and Budi are now tied on 2 lates
		resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
			Type:      report.TypeMonthly,
			Date:      "2026-02-10",
			SortField: report.SortByLate,
			SortDesc:  true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Rows, 3)
		assert.Equal(t, "Andi", resp.Rows[0].EmployeeName)
		assert.Equal(t, "Budi", resp.Rows[1].EmployeeName)
		assert.Equal(t, "Citra", resp.Rows[2].EmployeeName)
	})

	t.Run("default sort is by name", func(t *testing.T) {
		resp, err := fx.svc.Recap(context.Background(), report.RecapRequest{
			Type: report.TypeMonthly,
			Date: "2026-02-10",
		})
		require.NoError(t, err)
		assert.Equal(t, "Andi", resp.Rows[0].EmployeeName)
		assert.Equal(t, "Budi", resp.Rows[1].EmployeeName)
		assert.Equal(t, "Citra", resp.Rows[2].EmployeeName)
	})
}

func TestExport(t *testing.T) {
	fx := newRecap(t, "2026-03-01 10:00:00", employee("e1", "Andi", "1111"))
	fx.addSession("e1", "2026-02-02", attendance.StatusPresent)

	t.Run("summary renders a printable table", func(t *testing.T) {
		html, err := fx.svc.Export(context.Background(), report.ExportRequest{
			RecapRequest: report.RecapRequest{Type: report.TypeMonthly, Date: "2026-02-10"},
			Mode:         report.ModeSummary,
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
		assert.Contains(t, html, "Rekap Absensi (Bulanan)")
		assert.Contains(t, html, "Andi")
		assert.Contains(t, html, "2026-01-26")
	})

	t.Run("detail lists individual sessions", func(t *testing.T) {
		html, err := fx.svc.Export(context.Background(), report.ExportRequest{
			RecapRequest: report.RecapRequest{Type: report.TypeMonthly, Date: "2026-02-10"},
			Mode:         report.ModeDetail,
		})
		require.NoError(t, err)
		assert.Contains(t, html, "Rekap Absensi Detail")
		assert.Contains(t, html, "2026-02-02")
	})

	t.Run("invalid mode is rejected", func(t *testing.T) {
		_, err := fx.svc.Export(context.Background(), report.ExportRequest{
			RecapRequest: report.RecapRequest{Type: report.TypeMonthly, Date: "2026-02-10"},
			Mode:         "csv",
		})
		assert.Error(t, err)
	})
}
