package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/dashboard"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/permit"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/swap"
	"github.com/absensi-nh/absensi-backend-go/internal/domain/user"
	"github.com/absensi-nh/absensi-backend-go/internal/service/schedule"
)

type StatsServiceImpl struct {
	users      user.UserRepository
	sessions   attendance.SessionRepository
	permits    permit.PermitRepository
	swaps      swap.RequestRepository
	classifier *schedule.Classifier
	now        func() time.Time
}

func NewStatsService(
	users user.UserRepository,
	sessions attendance.SessionRepository,
	permits permit.PermitRepository,
	swaps swap.RequestRepository,
	classifier *schedule.Classifier,
) dashboard.StatsService {
	return &StatsServiceImpl{
		users:      users,
		sessions:   sessions,
		permits:    permits,
		swaps:      swaps,
		classifier: classifier,
		now:        time.Now,
	}
}

// Stats implements dashboard.StatsService.
func (s *StatsServiceImpl) Stats(ctx context.Context) (dashboard.Stats, error) {
	employees, err := s.users.ListEmployees(ctx)
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to list employees: %w", err)
	}

	today := s.classifier.CivilDate(s.now().UTC())
	presentToday, err := s.sessions.CountByStatusAndDate(ctx, today, []string{
		attendance.StatusPresent,
		attendance.StatusLate,
		attendance.StatusOvertime,
	})
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to count today's attendance: %w", err)
	}

	permits, err := s.permits.List(ctx, nil)
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to list permits: %w", err)
	}
	pendingPermits := 0
	for _, p := range permits {
		if p.Status == permit.StatusPending {
			pendingPermits++
		}
	}

	swaps, err := s.swaps.List(ctx, nil)
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to list swap requests: %w", err)
	}
	pendingSwaps := 0
	for _, r := range swaps {
		if r.Status == swap.StatusPending {
			pendingSwaps++
		}
	}

	return dashboard.Stats{
		TotalEmployees: len(employees),
		PresentToday:   presentToday,
		PendingPermits: pendingPermits,
		PendingSwaps:   pendingSwaps,
	}, nil
}
