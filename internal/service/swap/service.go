package swap

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/piket"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/swap"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/database"
	"github.com/absensi-nh/absensi-backend-go/internal/repository/postgresql"
)

type SwapServiceImpl struct {
	db        *database.DB
	requests  swap.RequestRepository
	schedules piket.ScheduleRepository
	users     user.UserRepository
}

func NewSwapService(
	db *database.DB,
	requests swap.RequestRepository,
	schedules piket.ScheduleRepository,
	users user.UserRepository,
) swap.SwapService {
	return &SwapServiceImpl{
		db:        db,
		requests:  requests,
		schedules: schedules,
		users:     users,
	}
}

func (s *SwapServiceImpl) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
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

// Create implements swap.SwapService. Both duty dates must exist on the
// roster before a swap can be proposed.
func (s *SwapServiceImpl) Create(ctx context.Context, req swap.CreateRequest) (swap.Response, error) {
	if err := req.Validate(); err != nil {
		return swap.Response{}, err
	}

	requesterID, _, err := callerFromContext(ctx)
	if err != nil {
		return swap.Response{}, err
	}
	if requesterID == req.TargetUserID {
		return swap.Response{}, swap.ErrSelfSwap
	}

	if _, err := s.users.GetByID(ctx, req.TargetUserID); err != nil {
		return swap.Response{}, err
	}

	if _, err := s.schedules.GetByEmployeeAndDate(ctx, requesterID, req.RequesterDate); err != nil {
		return swap.Response{}, err
	}
	if _, err := s.schedules.GetByEmployeeAndDate(ctx, req.TargetUserID, req.TargetDate); err != nil {
		return swap.Response{}, err
	}

	requesterDate, _ := time.ParseInLocation("2006-01-02", req.RequesterDate, time.UTC)
	targetDate, _ := time.ParseInLocation("2006-01-02", req.TargetDate, time.UTC)

	created, err := s.requests.Create(ctx, swap.Request{
		ID:            uuid.New().String(),
		RequesterID:   requesterID,
		TargetUserID:  req.TargetUserID,
		RequesterDate: requesterDate,
		TargetDate:    targetDate,
		Reason:        req.Reason,
		Status:        swap.StatusPending,
	})
	if err != nil {
		return swap.Response{}, fmt.Errorf("failed to create swap request: %w", err)
	}

	return swap.ToResponse(created), nil
}

// List implements swap.SwapService.
func (s *SwapServiceImpl) List(ctx context.Context) ([]swap.Response, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var filter *string
	if role != string(user.RoleAdmin) {
		filter = &userID
	}

	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list swap requests: %w", err)
	}

	responses := make([]swap.Response, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, swap.ToResponse(request))
	}
	return responses, nil
}

// Respond implements swap.SwapService. Approval exchanges the two roster
// entries atomically with the status change.
func (s *SwapServiceImpl) Respond(ctx context.Context, id string, req swap.RespondRequest) (swap.Response, error) {
	if err := req.Validate(); err != nil {
		return swap.Response{}, err
	}

	callerID, role, err := callerFromContext(ctx)
	if err != nil {
		return swap.Response{}, err
	}

	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return swap.Response{}, err
	}

	if callerID != request.TargetUserID && role != string(user.RoleAdmin) {
		return swap.Response{}, swap.ErrForbidden
	}
	if request.IsDecided() {
		return swap.Response{}, swap.ErrAlreadyDecided
	}

	var decided swap.Request
	err = s.withTx(ctx, func(txCtx context.Context) error {
		decided, err = s.requests.UpdateStatus(txCtx, id, req.Status)
		if err != nil {
			return err
		}

		if req.Status != swap.StatusApproved {
			return nil
		}

		requesterDate := request.RequesterDate.Format("2006-01-02")
		targetDate := request.TargetDate.Format("2006-01-02")

		requesterDuty, err := s.schedules.GetByEmployeeAndDate(txCtx, request.RequesterID, requesterDate)
		if err != nil {
			return err
		}
		targetDuty, err := s.schedules.GetByEmployeeAndDate(txCtx, request.TargetUserID, targetDate)
		if err != nil {
			return err
		}

		if err := s.schedules.Delete(txCtx, requesterDuty.ID); err != nil {
			return fmt.Errorf("failed to clear requester duty: %w", err)
		}
		if err := s.schedules.Delete(txCtx, targetDuty.ID); err != nil {
			return fmt.Errorf("failed to clear target duty: %w", err)
		}

		if _, err := s.schedules.Upsert(txCtx, piket.Schedule{
			ID:         uuid.New().String(),
			EmployeeID: request.TargetUserID,
			Date:       request.RequesterDate,
			Notes:      requesterDuty.Notes,
		}); err != nil {
			return fmt.Errorf("failed to reassign requester duty: %w", err)
		}
		if _, err := s.schedules.Upsert(txCtx, piket.Schedule{
			ID:         uuid.New().String(),
			EmployeeID: request.RequesterID,
			Date:       request.TargetDate,
			Notes:      targetDuty.Notes,
		}); err != nil {
			return fmt.Errorf("failed to reassign target duty: %w", err)
		}
		return nil
	})
	if err != nil {
		return swap.Response{}, err
	}

	return swap.ToResponse(decided), nil
}
