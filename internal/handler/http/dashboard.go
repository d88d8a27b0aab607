package http

import (
	"net/http"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/dashboard"
	"github.com/absensi-nh/absensi-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Stats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	statsService dashboard.StatsService
}

func NewDashboardHandler(statsService dashboard.StatsService) DashboardHandler {
	return &dashboardHandlerImpl{
		statsService: statsService,
	}
}

// Stats implements DashboardHandler.
func (h *dashboardHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.statsService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
