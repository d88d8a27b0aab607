package permit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/permit"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/database"
	"github.com/absensi-nh/absensi-backend-go/internal/repository/postgresql"
	"github.com/absensi-nh/absensi-backend-go/internal/service/schedule"
)

type PermitServiceImpl struct {
	db       *database.DB
	permits  permit.PermitRepository
	sessions attendance.SessionRepository
}

func NewPermitService(
	db *database.DB,
	permits permit.PermitRepository,
	sessions attendance.SessionRepository,
) permit.PermitService {
	return &PermitServiceImpl{
		db:       db,
		permits:  permits,
		sessions: sessions,
	}
}

func (s *PermitServiceImpl) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

func callerFromContext(ctx context.Context) (string, string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	return userID, role, nil
}

// sessionStatusFor maps a free-form permit type to the attendance status
// written on materialized records.
func sessionStatusFor(permitType string) string {
	t := strings.ToLower(permitType)
	if strings.Contains(t, "sakit") || strings.Contains(t, "sick") {
		return attendance.StatusSick
	}
	return attendance.StatusPermission
}

// Create implements permit.PermitService.
func (s *PermitServiceImpl) Create(ctx context.Context, req permit.CreateRequest) (permit.Response, error) {
	if err := req.Validate(); err != nil {
		return permit.Response{}, err
	}

	employeeID, _, err := callerFromContext(ctx)
	if err != nil {
		return permit.Response{}, err
	}

	startDate, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	endDate, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)

	created, err := s.permits.Create(ctx, permit.Permit{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Type:       req.Type,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     permit.StatusPending,
	})
	if err != nil {
		return permit.Response{}, fmt.Errorf("failed to create permit: %w", err)
	}

	return permit.ToResponse(created), nil
}

// List implements permit.PermitService.
func (s *PermitServiceImpl) List(ctx context.Context) ([]permit.Response, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var filter *string
	if role != string(user.RoleAdmin) {
		filter = &userID
	}

	permits, err := s.permits.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list permits: %w", err)
	}

	responses := make([]permit.Response, 0, len(permits))
	for _, p := range permits {
		responses = append(responses, permit.ToResponse(p))
	}
	return responses, nil
}

// SetStatus implements permit.PermitService. Approval writes one attendance
// record per weekday in the range so those days do not count as alpha;
// weekdays that already have sessions are left alone.
func (s *PermitServiceImpl) SetStatus(ctx context.Context, id string, req permit.SetStatusRequest) (permit.Response, error) {
	if err := req.Validate(); err != nil {
		return permit.Response{}, err
	}

	existing, err := s.permits.GetByID(ctx, id)
	if err != nil {
		return permit.Response{}, err
	}
	if existing.IsDecided() {
		return permit.Response{}, permit.ErrAlreadyDecided
	}

	var decided permit.Permit
	err = s.withTx(ctx, func(txCtx context.Context) error {
		decided, err = s.permits.UpdateStatus(txCtx, id, req.Status)
		if err != nil {
			return err
		}

		if req.Status != permit.StatusApproved {
			return nil
		}

		status := sessionStatusFor(existing.Type)
		notes := existing.Reason

		for d := existing.StartDate; !d.After(existing.EndDate); d = d.AddDate(0, 0, 1) {
			if !schedule.IsWorkingDay(d) {
				continue
			}

			dateLocal := d.Format("2006-01-02")
			days, err := s.sessions.ListByEmployeeAndDate(txCtx, existing.EmployeeID, dateLocal)
			if err != nil {
				return fmt.Errorf("failed to list sessions for %s: %w", dateLocal, err)
			}
			if len(days) > 0 {
				continue
			}

			noteCopy := notes
			_, err = s.sessions.Create(txCtx, attendance.Session{
				ID:            uuid.New().String(),
				EmployeeID:    existing.EmployeeID,
				Date:          d,
				SessionNumber: 1,
				ShiftLabel:    attendance.DefaultShiftLabel,
				ShiftType:     attendance.ShiftTypeRegular,
				Status:        status,
				Notes:         &noteCopy,
			})
			if err != nil {
				return fmt.Errorf("failed to record permit day %s: %w", dateLocal, err)
			}
		}
		return nil
	})
	if err != nil {
		return permit.Response{}, err
	}

	return permit.ToResponse(decided), nil
}
