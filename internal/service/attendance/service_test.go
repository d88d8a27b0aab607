package attendance

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/piket"
	"github.com/absensi-nh/absensi-backend-go/internal/service/schedule"
)

// ==================== FAKES ====================

type fakeSessionRepo struct {
	sessions []attendance.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, session attendance.Session) (attendance.Session, error) {
	if session.IsOpen() {
		dateLocal := session.Date.Format("2006-01-02")
		for _, s := range f.sessions {
			if s.EmployeeID == session.EmployeeID && s.Date.Format("2006-01-02") == dateLocal && s.IsOpen() {
				return attendance.Session{}, attendance.ErrSessionAlreadyOpen
			}
		}
	}
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	f.sessions = append(f.sessions, session)
	return session, nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (attendance.Session, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return attendance.Session{}, attendance.ErrSessionNotFound
}

func (f *fakeSessionRepo) GetOpenSession(_ context.Context, employeeID string) (attendance.Session, error) {
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.IsOpen() {
			return s, nil
		}
	}
	return attendance.Session{}, attendance.ErrNoOpenSession
}

func (f *fakeSessionRepo) ListOpenBefore(_ context.Context, dateLocal string) ([]attendance.Session, error) {
	var out []attendance.Session
	for _, s := range f.sessions {
		if s.IsOpen() && s.Date.Format("2006-01-02") < dateLocal {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByEmployeeAndDate(_ context.Context, employeeID string, dateLocal string) ([]attendance.Session, error) {
	var out []attendance.Session
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.Date.Format("2006-01-02") == dateLocal {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionNumber < out[j].SessionNumber })
	return out, nil
}

func (f *fakeSessionRepo) LockByEmployeeAndDate(ctx context.Context, employeeID string, dateLocal string) ([]attendance.Session, error) {
	return f.ListByEmployeeAndDate(ctx, employeeID, dateLocal)
}

func (f *fakeSessionRepo) Update(_ context.Context, session attendance.Session) error {
	for i := range f.sessions {
		if f.sessions[i].ID == session.ID {
			session.UpdatedAt = time.Now()
			f.sessions[i] = session
			return nil
		}
	}
	return attendance.ErrSessionNotFound
}

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
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].SessionNumber < out[j].SessionNumber
	})
	return out, nil
}

func (f *fakeSessionRepo) CountByStatusAndDate(_ context.Context, dateLocal string, statuses []string) (int, error) {
	count := 0
	for _, s := range f.sessions {
		if s.Date.Format("2006-01-02") != dateLocal {
			continue
		}
		for _, status := range statuses {
			if s.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakePiketRepo struct {
	assignments map[string]piket.Schedule // keyed by employeeID + "|" + date
}

func (f *fakePiketRepo) Upsert(_ context.Context, s piket.Schedule) (piket.Schedule, error) {
	if f.assignments == nil {
		f.assignments = map[string]piket.Schedule{}
	}
	f.assignments[s.EmployeeID+"|"+s.Date.Format("2006-01-02")] = s
	return s, nil
}

func (f *fakePiketRepo) ListByMonth(_ context.Context, _ string) ([]piket.Schedule, error) {
	return nil, nil
}

func (f *fakePiketRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, dateLocal string) (piket.Schedule, error) {
	if s, ok := f.assignments[employeeID+"|"+dateLocal]; ok {
		return s, nil
	}
	return piket.Schedule{}, piket.ErrScheduleNotFound
}

func (f *fakePiketRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeFileService struct {
	uploads int
}

func (f *fakeFileService) UploadAttendanceProof(_ context.Context, employeeID string, date time.Time, _ io.Reader, _ string, stage string) (string, error) {
	f.uploads++
	return fmt.Sprintf("attendance/%s/%s-%s.jpg", date.Format("2006-01-02"), employeeID, stage), nil
}

func (f *fakeFileService) UploadProfilePhoto(_ context.Context, employeeID string, _ io.Reader, _ string) (string, error) {
	return "profiles/" + employeeID + "/photo.jpg", nil
}

func (f *fakeFileService) UploadAnnouncementImage(_ context.Context, _ io.Reader, filename string) (string, error) {
	return "announcements/" + filename, nil
}

func (f *fakeFileService) UploadPermitAttachment(_ context.Context, employeeID string, _ io.Reader, filename string) (string, error) {
	return "permits/" + employeeID + "/" + filename, nil
}

func (f *fakeFileService) DeleteFile(_ context.Context, _ string) error { return nil }

func (f *fakeFileService) GetFileURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "/uploads/" + path, nil
}

type fakeGeocoder struct{}

func (fakeGeocoder) ReverseGeocode(_ context.Context, lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

// ==================== HELPERS ====================

const testEmployeeID = "emp-1"

type engineFixture struct {
	svc      *SessionServiceImpl
	repo     *fakeSessionRepo
	piket    *fakePiketRepo
	loc      *time.Location
	ctx      context.Context
	nowValue time.Time
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	repo := &fakeSessionRepo{}
	piketRepo := &fakePiketRepo{}
	classifier := schedule.NewClassifier(loc, schedule.Holidays2026)

	svc := NewSessionService(nil, repo, piketRepo, classifier, &fakeFileService{}, fakeGeocoder{}).(*SessionServiceImpl)

	fx := &engineFixture{
		svc:   svc,
		repo:  repo,
		piket: piketRepo,
		loc:   loc,
		ctx:   authedCtx(t, testEmployeeID, "employee"),
	}
	svc.now = func() time.Time { return fx.nowValue }
	return fx
}

func (fx *engineFixture) setClock(t *testing.T, value string) {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, fx.loc)
	require.NoError(t, err)
	fx.nowValue = ts
}

func authedCtx(t *testing.T, userID, role string) context.Context {
	t.Helper()
	tok, err := jwxjwt.NewBuilder().
		Claim("user_id", userID).
		Claim("role", role).
		Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func photoRequest() attendance.CaptureRequest {
	return attendance.CaptureRequest{
		Location:   "Kantor Pusat",
		FileHeader: &multipart.FileHeader{Filename: "proof.jpg", Size: 1024},
	}
}

// ==================== TESTS ====================

func TestClockIn(t *testing.T) {
	t.Run("first clock-in of the day opens session 1", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 07:02:11")

		resp, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.SessionNumber)
		assert.Equal(t, "2026-03-02", resp.Date)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Equal(t, attendance.ShiftTypeRegular, resp.ShiftType)
		assert.Equal(t, attendance.DefaultShiftLabel, resp.ShiftLabel)
		assert.False(t, resp.IsOvertime)
		require.NotNil(t, resp.CheckIn)
		require.NotNil(t, resp.CheckInPhoto)
		assert.Contains(t, *resp.CheckInPhoto, "clock_in")
		require.NotNil(t, resp.CheckInLocation)
		assert.Equal(t, "Kantor Pusat", *resp.CheckInLocation)
		assert.Nil(t, resp.CheckOut)
	})

	t.Run("piket roster assignment derives Piket shift", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:20:00")

		_, err := fx.piket.Upsert(context.Background(), piket.Schedule{
			EmployeeID: testEmployeeID,
			Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		resp, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		assert.Equal(t, attendance.ShiftTypePiket, resp.ShiftType)
		// 08:20 is past the 08:15 piket deadline
		assert.Equal(t, attendance.StatusLate, resp.Status)
	})

	t.Run("explicit shift type wins over roster", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:20:00")

		resp, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{
			CaptureRequest: photoRequest(),
			ShiftType:      attendance.ShiftTypeRegular,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
	})

	t.Run("rejected while a session is open", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 09:00:00")
		_, err = fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		assert.ErrorIs(t, err, attendance.ErrSessionAlreadyOpen)
	})

	t.Run("clock-in after a clock-out opens the next numbered session", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:10:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 12:00:00")
		_, err = fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 13:00:00")
		resp, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.SessionNumber)
	})

	t.Run("missing photo fails validation", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{
			CaptureRequest: attendance.CaptureRequest{Location: "Kantor"},
		})
		assert.Error(t, err)
	})

	t.Run("coordinates fall back to geocoder", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")

		lat, lon := -6.2088, 106.8456
		req := attendance.ClockInRequest{CaptureRequest: attendance.CaptureRequest{
			Latitude:   &lat,
			Longitude:  &lon,
			FileHeader: &multipart.FileHeader{Filename: "proof.jpg", Size: 1024},
		}}

		resp, err := fx.svc.ClockIn(fx.ctx, req)
		require.NoError(t, err)
		require.NotNil(t, resp.CheckInLocation)
		assert.Equal(t, "-6.2088, 106.8456", *resp.CheckInLocation)
	})
}

func TestBreakFlow(t *testing.T) {
	fx := newEngine(t)
	fx.setClock(t, "2026-03-02 08:00:00")
	_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
	require.NoError(t, err)

	t.Run("break end without start is rejected", func(t *testing.T) {
		_, err := fx.svc.BreakEnd(fx.ctx, attendance.BreakRequest{CaptureRequest: photoRequest()})
		assert.ErrorIs(t, err, attendance.ErrNoActiveBreak)
	})

	t.Run("break start stamps the open session", func(t *testing.T) {
		fx.setClock(t, "2026-03-02 12:00:00")
		resp, err := fx.svc.BreakStart(fx.ctx, attendance.BreakRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)
		require.NotNil(t, resp.BreakStart)
		assert.Nil(t, resp.BreakEnd)
	})

	t.Run("second break start is rejected", func(t *testing.T) {
		fx.setClock(t, "2026-03-02 12:10:00")
		_, err := fx.svc.BreakStart(fx.ctx, attendance.BreakRequest{CaptureRequest: photoRequest()})
		assert.ErrorIs(t, err, attendance.ErrBreakAlreadyStarted)
	})

	t.Run("break end closes the break", func(t *testing.T) {
		fx.setClock(t, "2026-03-02 13:00:00")
		resp, err := fx.svc.BreakEnd(fx.ctx, attendance.BreakRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)
		require.NotNil(t, resp.BreakEnd)
	})

	t.Run("break cannot restart after it ended", func(t *testing.T) {
		fx.setClock(t, "2026-03-02 14:00:00")
		_, err := fx.svc.BreakStart(fx.ctx, attendance.BreakRequest{CaptureRequest: photoRequest()})
		assert.ErrorIs(t, err, attendance.ErrBreakAlreadyStarted)
	})
}

func TestClockOut(t *testing.T) {
	t.Run("without open session is rejected", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 17:00:00")
		_, err := fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
		assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
	})

	t.Run("running break is ended at clock-out", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 12:00:00")
		_, err = fx.svc.BreakStart(fx.ctx, attendance.BreakRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 17:05:00")
		resp, err := fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)
		require.NotNil(t, resp.CheckOut)
		require.NotNil(t, resp.BreakEnd)
		assert.Equal(t, *resp.CheckOut, *resp.BreakEnd)
	})
}

func TestPermit(t *testing.T) {
	t.Run("closes open session under permit status", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 10:30:00")
		resp, err := fx.svc.Permit(fx.ctx, attendance.PermitRequest{
			CaptureRequest: photoRequest(),
			Type:           attendance.StatusSick,
			Notes:          "Demam, izin pulang",
		})
		require.NoError(t, err)

		assert.Equal(t, attendance.StatusSick, resp.Status)
		require.NotNil(t, resp.CheckOut)
		require.NotNil(t, resp.PermitExitAt)
		assert.Equal(t, *resp.CheckOut, *resp.PermitExitAt)
		require.NotNil(t, resp.Notes)
		assert.Equal(t, "Demam, izin pulang", *resp.Notes)
	})

	t.Run("without session records a standalone permit entry", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 09:00:00")

		resp, err := fx.svc.Permit(fx.ctx, attendance.PermitRequest{
			Type:  attendance.StatusPermission,
			Notes: "Urusan keluarga",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.SessionNumber)
		assert.Equal(t, attendance.StatusPermission, resp.Status)
		require.NotNil(t, resp.CheckIn)
		require.NotNil(t, resp.CheckOut)
		assert.Equal(t, *resp.CheckIn, *resp.CheckOut)
		require.NotNil(t, resp.PermitExitAt)
	})

	t.Run("invalid type fails validation", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 09:00:00")
		_, err := fx.svc.Permit(fx.ctx, attendance.PermitRequest{Type: "vacation", Notes: "x"})
		assert.Error(t, err)
	})
}

func TestResume(t *testing.T) {
	t.Run("opens the next numbered session after clock-out", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 12:00:00")
		_, err = fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 13:00:00")
		resp, err := fx.svc.Resume(fx.ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, resp.SessionNumber)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		require.NotNil(t, resp.Notes)
		assert.Equal(t, "Sesi ke-2", *resp.Notes)
	})

	t.Run("evening resume is overtime", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 16:00:00")
		_, err = fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 19:00:00")
		resp, err := fx.svc.Resume(fx.ctx)
		require.NoError(t, err)

		assert.Equal(t, attendance.StatusOvertime, resp.Status)
		assert.True(t, resp.IsOvertime)
		require.NotNil(t, resp.Notes)
		assert.Equal(t, "Overtime (Sesi 2)", *resp.Notes)
	})

	t.Run("rejected while a session is open", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 10:00:00")
		_, err = fx.svc.Resume(fx.ctx)
		assert.ErrorIs(t, err, attendance.ErrSessionStillOpen)
	})

	t.Run("rejected with no session today", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 10:00:00")
		_, err := fx.svc.Resume(fx.ctx)
		assert.ErrorIs(t, err, attendance.ErrNoSessionToday)
	})

	t.Run("resume after permit stamps permit return", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 10:00:00")
		_, err = fx.svc.Permit(fx.ctx, attendance.PermitRequest{
			CaptureRequest: photoRequest(),
			Type:           attendance.StatusPermission,
			Notes:          "Urusan bank",
		})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-02 13:00:00")
		resp, err := fx.svc.Resume(fx.ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, resp.SessionNumber)
		require.NotNil(t, resp.PermitResumeAt)
		// 13:00 is well past the clock-in deadline, so the return is late
		assert.Equal(t, attendance.StatusLate, resp.Status)
	})
}

func TestAutoClose(t *testing.T) {
	t.Run("overnight session stays usable before 06:00", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 20:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-03 02:00:00")
		resp, err := fx.svc.GetToday(fx.ctx)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "2026-03-02", resp.Date)
		assert.Nil(t, resp.CheckOut)
	})

	t.Run("stale session closes at 06:00 the next day", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 20:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-03 08:00:00")
		resp, err := fx.svc.GetToday(fx.ctx)
		require.NoError(t, err)
		assert.Nil(t, resp)

		stale, err := fx.repo.GetByID(context.Background(), fx.repo.sessions[0].ID)
		require.NoError(t, err)
		require.NotNil(t, stale.CheckOut)
		assert.Equal(t, "2026-03-03 06:00:00", stale.CheckOut.In(fx.loc).Format("2006-01-02 15:04:05"))
		require.NotNil(t, stale.Notes)
		assert.Equal(t, attendance.AutoCloseNote, *stale.Notes)
	})

	t.Run("clock-in after auto-close opens a fresh day", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 20:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-03-03 08:10:00")
		resp, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)
		assert.Equal(t, "2026-03-03", resp.Date)
		assert.Equal(t, 1, resp.SessionNumber)
	})
}

func TestGetToday(t *testing.T) {
	t.Run("returns nil with no sessions", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 07:00:00")
		resp, err := fx.svc.GetToday(fx.ctx)
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("returns latest closed session", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)
		fx.setClock(t, "2026-03-02 12:00:00")
		_, err = fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)
		fx.setClock(t, "2026-03-02 13:00:00")
		_, err = fx.svc.Resume(fx.ctx)
		require.NoError(t, err)
		fx.setClock(t, "2026-03-02 17:00:00")
		_, err = fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		resp, err := fx.svc.GetToday(fx.ctx)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 2, resp.SessionNumber)
		require.NotNil(t, resp.CheckOut)
	})
}

func TestHistory(t *testing.T) {
	t.Run("employee cannot query another employee", func(t *testing.T) {
		fx := newEngine(t)
		fx.setClock(t, "2026-03-02 10:00:00")
		other := "emp-2"
		_, err := fx.svc.History(fx.ctx, attendance.HistoryFilter{EmployeeID: &other})
		assert.ErrorIs(t, err, attendance.ErrUnauthorized)
	})

	t.Run("admin queries any employee in the payroll window", func(t *testing.T) {
		fx := newEngine(t)

		// one session inside the 2026-03 window (Feb 26 - Mar 25), one outside
		fx.setClock(t, "2026-02-26 08:00:00")
		_, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)
		fx.setClock(t, "2026-02-26 17:00:00")
		_, err = fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
		require.NoError(t, err)

		fx.setClock(t, "2026-02-25 08:00:00")
		_, err = fx.repo.Create(context.Background(), attendance.Session{
			ID:            "out-of-window",
			EmployeeID:    testEmployeeID,
			Date:          time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC),
			SessionNumber: 1,
			Status:        attendance.StatusPresent,
		})
		require.NoError(t, err)

		adminCtx := authedCtx(t, "admin-1", "admin")
		target := testEmployeeID
		rows, err := fx.svc.History(adminCtx, attendance.HistoryFilter{EmployeeID: &target, Month: "2026-03"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "2026-02-26", rows[0].Date)
	})
}

// Full-day walkthrough: clock in, lunch break, permit exit, return, evening
// overtime, final clock out.
func TestFullDayScenario(t *testing.T) {
	fx := newEngine(t)

	fx.setClock(t, "2026-03-02 07:02:11")
	s1, err := fx.svc.ClockIn(fx.ctx, attendance.ClockInRequest{CaptureRequest: photoRequest()})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, s1.Status)

	fx.setClock(t, "2026-03-02 12:00:00")
	_, err = fx.svc.BreakStart(fx.ctx, attendance.BreakRequest{CaptureRequest: photoRequest()})
	require.NoError(t, err)

	fx.setClock(t, "2026-03-02 13:00:00")
	_, err = fx.svc.BreakEnd(fx.ctx, attendance.BreakRequest{CaptureRequest: photoRequest()})
	require.NoError(t, err)

	fx.setClock(t, "2026-03-02 14:30:00")
	p, err := fx.svc.Permit(fx.ctx, attendance.PermitRequest{
		CaptureRequest: photoRequest(),
		Type:           attendance.StatusPermission,
		Notes:          "Ke dokter",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, p.SessionNumber)
	assert.Equal(t, attendance.StatusPermission, p.Status)

	fx.setClock(t, "2026-03-02 16:00:00")
	s2, err := fx.svc.Resume(fx.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s2.SessionNumber)
	require.NotNil(t, s2.PermitResumeAt)

	fx.setClock(t, "2026-03-02 16:45:00")
	_, err = fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
	require.NoError(t, err)

	fx.setClock(t, "2026-03-02 19:00:00")
	s3, err := fx.svc.Resume(fx.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s3.SessionNumber)
	assert.True(t, s3.IsOvertime)

	fx.setClock(t, "2026-03-02 21:00:00")
	_, err = fx.svc.ClockOut(fx.ctx, attendance.ClockOutRequest{CaptureRequest: photoRequest()})
	require.NoError(t, err)

	rows, err := fx.repo.ListByEmployeeAndDate(context.Background(), testEmployeeID, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i+1, row.SessionNumber)
		assert.False(t, row.IsOpen())
	}
}
