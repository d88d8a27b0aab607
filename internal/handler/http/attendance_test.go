package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
)

type fakeSessionService struct {
	attendance.SessionService
	historyFilter attendance.HistoryFilter
}

func (f *fakeSessionService) History(_ context.Context, filter attendance.HistoryFilter) ([]attendance.SessionResponse, error) {
	f.historyFilter = filter
	return []attendance.SessionResponse{}, nil
}

func TestAttendanceHistory(t *testing.T) {
	t.Run("passes month and user_id query params through", func(t *testing.T) {
		svc := &fakeSessionService{}
		handler := NewAttendanceHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/history?month=2026-03&user_id=emp-2", nil)
		rec := httptest.NewRecorder()

		handler.History(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2026-03", svc.historyFilter.Month)
		require.NotNil(t, svc.historyFilter.EmployeeID)
		assert.Equal(t, "emp-2", *svc.historyFilter.EmployeeID)
	})

	t.Run("omits the employee filter when user_id is absent", func(t *testing.T) {
		svc := &fakeSessionService{}
		handler := NewAttendanceHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/history", nil)
		rec := httptest.NewRecorder()

		handler.History(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, svc.historyFilter.EmployeeID)
	})
}
