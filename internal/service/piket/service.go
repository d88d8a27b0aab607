package piket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/piket"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/validator"
)

type ScheduleServiceImpl struct {
	schedules piket.ScheduleRepository
	users     user.UserRepository
}

func NewScheduleService(schedules piket.ScheduleRepository, users user.UserRepository) piket.ScheduleService {
	return &ScheduleServiceImpl{
		schedules: schedules,
		users:     users,
	}
}

// Upsert implements piket.ScheduleService.
func (s *ScheduleServiceImpl) Upsert(ctx context.Context, req piket.UpsertScheduleRequest) (piket.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return piket.ScheduleResponse{}, err
	}

	if _, err := s.users.GetByID(ctx, req.EmployeeID); err != nil {
		return piket.ScheduleResponse{}, err
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, time.UTC)

	schedule := piket.Schedule{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Date:       date,
	}
	if req.Notes != "" {
		notes := req.Notes
		schedule.Notes = &notes
	}

	saved, err := s.schedules.Upsert(ctx, schedule)
	if err != nil {
		return piket.ScheduleResponse{}, fmt.Errorf("failed to save piket schedule: %w", err)
	}
	return piket.ToResponse(saved), nil
}

// ListByMonth implements piket.ScheduleService.
func (s *ScheduleServiceImpl) ListByMonth(ctx context.Context, month string) ([]piket.ScheduleResponse, error) {
	if month != "" {
		if _, ok := validator.IsValidMonth(month); !ok {
			return nil, validator.ValidationErrors{{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			}}
		}
	}

	schedules, err := s.schedules.ListByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list piket schedules: %w", err)
	}

	responses := make([]piket.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		responses = append(responses, piket.ToResponse(schedule))
	}
	return responses, nil
}

// Delete implements piket.ScheduleService.
func (s *ScheduleServiceImpl) Delete(ctx context.Context, id string) error {
	return s.schedules.Delete(ctx, id)
}
