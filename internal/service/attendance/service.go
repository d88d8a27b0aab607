package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/piket"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/report"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/database"
	"github.com/absensi-nh/absensi-backend-go/internal/repository/postgresql"
	"github.com/absensi-nh/absensi-backend-go/internal/service/file"
	"github.com/absensi-nh/absensi-backend-go/internal/service/schedule"
)

// Geocoder resolves raw coordinates to a short address string.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) string
}

type SessionServiceImpl struct {
	db         *database.DB
	sessions   attendance.SessionRepository
	piketRepo  piket.ScheduleRepository
	classifier *schedule.Classifier
	files      file.FileService
	geocoder   Geocoder
	now        func() time.Time
}

func NewSessionService(
	db *database.DB,
	sessions attendance.SessionRepository,
	piketRepo piket.ScheduleRepository,
	classifier *schedule.Classifier,
	files file.FileService,
	geocoder Geocoder,
) attendance.SessionService {
	return &SessionServiceImpl{
		db:         db,
		sessions:   sessions,
		piketRepo:  piketRepo,
		classifier: classifier,
		files:      files,
		geocoder:   geocoder,
		now:        time.Now,
	}
}

func identityFromContext(ctx context.Context) (string, string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", attendance.ErrEmployeeRequired
	}

	role, _ := claims["role"].(string)
	return userID, role, nil
}

// withTx runs fn inside a transaction, carrying the tx through the context so
// repositories pick it up. A nil db runs fn directly; tests use that mode.
func (s *SessionServiceImpl) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// resolveLocation prefers a client-resolved address and falls back to
// server-side reverse geocoding of the raw coordinates.
func (s *SessionServiceImpl) resolveLocation(ctx context.Context, req attendance.CaptureRequest) *string {
	if req.Location != "" {
		loc := req.Location
		return &loc
	}
	if req.Latitude != nil && req.Longitude != nil {
		loc := s.geocoder.ReverseGeocode(ctx, *req.Latitude, *req.Longitude)
		return &loc
	}
	return nil
}

func (s *SessionServiceImpl) uploadProof(ctx context.Context, employeeID string, date time.Time, req attendance.CaptureRequest, stage string) (*string, error) {
	if req.FileHeader == nil {
		return nil, nil
	}
	path, err := s.files.UploadAttendanceProof(ctx, employeeID, date, req.File, req.FileHeader.Filename, stage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrPhotoUploadFail, err)
	}
	return &path, nil
}

// civilMidnight converts a local civil date string to the midnight-UTC value
// sessions store in their Date column.
func civilMidnight(dateLocal string) time.Time {
	d, _ := time.ParseInLocation("2006-01-02", dateLocal, time.UTC)
	return d
}

// activeSession returns the employee's usable open session, lazily closing a
// stale one first. An open session stays usable past midnight until 06:00
// local on the following day; after that it is stamped closed at 06:00 with
// an auto-close note.
func (s *SessionServiceImpl) activeSession(ctx context.Context, employeeID string, nowUTC time.Time) (*attendance.Session, error) {
	open, err := s.sessions.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSession) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	loc := s.classifier.Location()
	d := open.Date
	cutoff := time.Date(d.Year(), d.Month(), d.Day()+1, attendance.AutoCloseHour, 0, 0, 0, loc)

	if nowUTC.Before(cutoff.UTC()) {
		return &open, nil
	}

	cutoffUTC := cutoff.UTC()
	open.CheckOut = &cutoffUTC
	notes := attendance.AppendAutoCloseNote(open.Notes)
	open.Notes = &notes
	if err := s.sessions.Update(ctx, open); err != nil {
		return nil, fmt.Errorf("failed to auto-close stale session: %w", err)
	}
	return nil, nil
}

// shiftTypeFor derives the shift type from the piket roster when the client
// did not choose one explicitly.
func (s *SessionServiceImpl) shiftTypeFor(ctx context.Context, employeeID, dateLocal, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	_, err := s.piketRepo.GetByEmployeeAndDate(ctx, employeeID, dateLocal)
	if err == nil {
		return attendance.ShiftTypePiket, nil
	}
	if errors.Is(err, piket.ErrScheduleNotFound) {
		return attendance.ShiftTypeRegular, nil
	}
	return "", fmt.Errorf("failed to check piket schedule: %w", err)
}

// ClockIn implements attendance.SessionService. Only an open session blocks a
// clock-in; after a clock-out the next one appends the next session number.
func (s *SessionServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	nowUTC := s.now().UTC()
	dateLocal := s.classifier.CivilDate(nowUTC)

	shiftType, err := s.shiftTypeFor(ctx, employeeID, dateLocal, req.ShiftType)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	classified := s.classifier.ClassifyClockIn(nowUTC, shiftType)
	location := s.resolveLocation(ctx, req.CaptureRequest)

	photo, err := s.uploadProof(ctx, employeeID, civilMidnight(dateLocal), req.CaptureRequest, "clock_in")
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	var created attendance.Session
	err = s.withTx(ctx, func(txCtx context.Context) error {
		if active, err := s.activeSession(txCtx, employeeID, nowUTC); err != nil {
			return err
		} else if active != nil {
			return attendance.ErrSessionAlreadyOpen
		}

		today, err := s.sessions.LockByEmployeeAndDate(txCtx, employeeID, dateLocal)
		if err != nil {
			return fmt.Errorf("failed to lock today's sessions: %w", err)
		}

		session := attendance.Session{
			ID:              uuid.New().String(),
			EmployeeID:      employeeID,
			Date:            civilMidnight(dateLocal),
			SessionNumber:   len(today) + 1,
			CheckIn:         &nowUTC,
			CheckInPhoto:    photo,
			CheckInLocation: location,
			ShiftLabel:      attendance.DefaultShiftLabel,
			ShiftType:       shiftType,
			Status:          classified.Status,
			IsOvertime:      classified.IsOvertime,
		}
		if classified.Notes != "" {
			notes := classified.Notes
			session.Notes = &notes
		}

		created, err = s.sessions.Create(txCtx, session)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return attendance.ToResponse(created), nil
}

// stamp locks the active session's day, re-reads the open session under the
// lock, applies mutate, and persists the result.
func (s *SessionServiceImpl) stamp(ctx context.Context, employeeID string, nowUTC time.Time, mutate func(open *attendance.Session) error) (attendance.Session, error) {
	var updated attendance.Session

	err := s.withTx(ctx, func(txCtx context.Context) error {
		active, err := s.activeSession(txCtx, employeeID, nowUTC)
		if err != nil {
			return err
		}
		if active == nil {
			return attendance.ErrNoOpenSession
		}

		dateLocal := active.Date.Format("2006-01-02")
		rows, err := s.sessions.LockByEmployeeAndDate(txCtx, employeeID, dateLocal)
		if err != nil {
			return fmt.Errorf("failed to lock sessions: %w", err)
		}

		var open *attendance.Session
		for i := range rows {
			if rows[i].IsOpen() {
				open = &rows[i]
				break
			}
		}
		if open == nil {
			return attendance.ErrNoOpenSession
		}

		if err := mutate(open); err != nil {
			return err
		}
		if err := s.sessions.Update(txCtx, *open); err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
		updated = *open
		return nil
	})
	return updated, err
}

// BreakStart implements attendance.SessionService. One break per session.
func (s *SessionServiceImpl) BreakStart(ctx context.Context, req attendance.BreakRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	nowUTC := s.now().UTC()
	location := s.resolveLocation(ctx, req.CaptureRequest)
	photo, err := s.uploadProof(ctx, employeeID, civilMidnight(s.classifier.CivilDate(nowUTC)), req.CaptureRequest, "break_start")
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	updated, err := s.stamp(ctx, employeeID, nowUTC, func(open *attendance.Session) error {
		if open.BreakStart != nil {
			return attendance.ErrBreakAlreadyStarted
		}
		open.BreakStart = &nowUTC
		open.BreakStartPhoto = photo
		open.BreakStartLocation = location
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	return attendance.ToResponse(updated), nil
}

// BreakEnd implements attendance.SessionService.
func (s *SessionServiceImpl) BreakEnd(ctx context.Context, req attendance.BreakRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	nowUTC := s.now().UTC()
	location := s.resolveLocation(ctx, req.CaptureRequest)
	photo, err := s.uploadProof(ctx, employeeID, civilMidnight(s.classifier.CivilDate(nowUTC)), req.CaptureRequest, "break_end")
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	updated, err := s.stamp(ctx, employeeID, nowUTC, func(open *attendance.Session) error {
		if !open.OnBreak() {
			return attendance.ErrNoActiveBreak
		}
		open.BreakEnd = &nowUTC
		open.BreakEndPhoto = photo
		open.BreakEndLocation = location
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	return attendance.ToResponse(updated), nil
}

// ClockOut implements attendance.SessionService. A running break is ended at
// the clock-out instant.
func (s *SessionServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	nowUTC := s.now().UTC()
	location := s.resolveLocation(ctx, req.CaptureRequest)
	photo, err := s.uploadProof(ctx, employeeID, civilMidnight(s.classifier.CivilDate(nowUTC)), req.CaptureRequest, "clock_out")
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	updated, err := s.stamp(ctx, employeeID, nowUTC, func(open *attendance.Session) error {
		if open.OnBreak() {
			open.BreakEnd = &nowUTC
		}
		open.CheckOut = &nowUTC
		open.CheckOutPhoto = photo
		open.CheckOutLocation = location
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	return attendance.ToResponse(updated), nil
}

// Permit implements attendance.SessionService. With an open session it stamps
// a permit exit and closes the session under the permit status; with no
// session today it records a standalone sick/permission entry.
func (s *SessionServiceImpl) Permit(ctx context.Context, req attendance.PermitRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	nowUTC := s.now().UTC()
	dateLocal := s.classifier.CivilDate(nowUTC)
	location := s.resolveLocation(ctx, req.CaptureRequest)
	photo, err := s.uploadProof(ctx, employeeID, civilMidnight(dateLocal), req.CaptureRequest, "permit")
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	notes := req.Notes

	var result attendance.Session
	err = s.withTx(ctx, func(txCtx context.Context) error {
		active, err := s.activeSession(txCtx, employeeID, nowUTC)
		if err != nil {
			return err
		}

		if active != nil {
			dateOfActive := active.Date.Format("2006-01-02")
			rows, err := s.sessions.LockByEmployeeAndDate(txCtx, employeeID, dateOfActive)
			if err != nil {
				return fmt.Errorf("failed to lock sessions: %w", err)
			}
			var open *attendance.Session
			for i := range rows {
				if rows[i].IsOpen() {
					open = &rows[i]
					break
				}
			}
			if open == nil {
				return attendance.ErrNoOpenSession
			}

			if open.OnBreak() {
				open.BreakEnd = &nowUTC
			}
			open.PermitExitAt = &nowUTC
			open.CheckOut = &nowUTC
			open.CheckOutPhoto = photo
			open.CheckOutLocation = location
			open.Status = req.Type
			open.Notes = &notes

			if err := s.sessions.Update(txCtx, *open); err != nil {
				return fmt.Errorf("failed to update session: %w", err)
			}
			result = *open
			return nil
		}

		today, err := s.sessions.LockByEmployeeAndDate(txCtx, employeeID, dateLocal)
		if err != nil {
			return fmt.Errorf("failed to lock today's sessions: %w", err)
		}

		// Closed from birth: the permit opens and ends the day in one stamp.
		session := attendance.Session{
			ID:              uuid.New().String(),
			EmployeeID:      employeeID,
			Date:            civilMidnight(dateLocal),
			SessionNumber:   len(today) + 1,
			CheckIn:         &nowUTC,
			CheckOut:        &nowUTC,
			CheckInPhoto:    photo,
			CheckInLocation: location,
			ShiftLabel:      attendance.DefaultShiftLabel,
			ShiftType:       attendance.ShiftTypeRegular,
			Status:          req.Type,
			Notes:           &notes,
			PermitExitAt:    &nowUTC,
		}

		result, err = s.sessions.Create(txCtx, session)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// Resume implements attendance.SessionService. It never reopens a closed
// session; it appends a new one with the next session number.
func (s *SessionServiceImpl) Resume(ctx context.Context) (attendance.SessionResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	nowUTC := s.now().UTC()
	dateLocal := s.classifier.CivilDate(nowUTC)

	var created attendance.Session
	err = s.withTx(ctx, func(txCtx context.Context) error {
		if active, err := s.activeSession(txCtx, employeeID, nowUTC); err != nil {
			return err
		} else if active != nil {
			return attendance.ErrSessionStillOpen
		}

		today, err := s.sessions.LockByEmployeeAndDate(txCtx, employeeID, dateLocal)
		if err != nil {
			return fmt.Errorf("failed to lock today's sessions: %w", err)
		}
		if len(today) == 0 {
			return attendance.ErrNoSessionToday
		}

		latest := today[len(today)-1]
		number := len(today) + 1

		session := attendance.Session{
			ID:            uuid.New().String(),
			EmployeeID:    employeeID,
			Date:          civilMidnight(dateLocal),
			SessionNumber: number,
			CheckIn:       &nowUTC,
			ShiftLabel:    attendance.DefaultShiftLabel,
			ShiftType:     latest.ShiftType,
		}

		if latest.IsPermit() {
			// Returning from a permitted absence counts as a fresh arrival,
			// subject to the normal clock-in deadline.
			classified := s.classifier.ClassifyClockIn(nowUTC, latest.ShiftType)
			session.Status = classified.Status
			session.IsOvertime = classified.IsOvertime
			session.PermitResumeAt = &nowUTC
			notes := classified.Notes
			if notes == "" {
				notes = fmt.Sprintf("Sesi ke-%d", number)
			}
			session.Notes = &notes
		} else {
			classified := s.classifier.ClassifyResume(nowUTC, number)
			session.Status = classified.Status
			session.IsOvertime = classified.IsOvertime
			notes := classified.Notes
			session.Notes = &notes
		}

		created, err = s.sessions.Create(txCtx, session)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return attendance.ToResponse(created), nil
}

// GetToday implements attendance.SessionService.
func (s *SessionServiceImpl) GetToday(ctx context.Context) (*attendance.SessionResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	nowUTC := s.now().UTC()

	active, err := s.activeSession(ctx, employeeID, nowUTC)
	if err != nil {
		return nil, err
	}
	if active != nil {
		resp := attendance.ToResponse(*active)
		return &resp, nil
	}

	dateLocal := s.classifier.CivilDate(nowUTC)
	today, err := s.sessions.ListByEmployeeAndDate(ctx, employeeID, dateLocal)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's sessions: %w", err)
	}
	if len(today) == 0 {
		return nil, nil
	}

	resp := attendance.ToResponse(today[len(today)-1])
	return &resp, nil
}

// History implements attendance.SessionService.
func (s *SessionServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.SessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, role, err := identityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employeeID := userID
	if filter.EmployeeID != nil && *filter.EmployeeID != userID {
		if role != string(user.RoleAdmin) {
			return nil, attendance.ErrUnauthorized
		}
		employeeID = *filter.EmployeeID
	}

	loc := s.classifier.Location()
	var window report.Window
	if filter.Month != "" {
		window, err = report.MonthlyWindow(filter.Month, loc)
		if err != nil {
			return nil, err
		}
	} else {
		window = report.MonthlyWindowFor(s.now().UTC(), loc)
	}

	rows, err := s.sessions.ListByDateRange(ctx, &employeeID, window.StartLocal(), window.EndLocal())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]attendance.SessionResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, attendance.ToResponse(row))
	}
	return responses, nil
}
