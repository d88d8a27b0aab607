package http

import (
	"net/http"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/report"
	"github.com/absensi-nh/absensi-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Recap(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	recapService report.RecapService
}

func NewReportHandler(recapService report.RecapService) ReportHandler {
	return &reportHandlerImpl{
		recapService: recapService,
	}
}

func recapRequestFromQuery(r *http.Request) report.RecapRequest {
	q := r.URL.Query()
	return report.RecapRequest{
		Type:      q.Get("type"),
		Date:      q.Get("date"),
		SortField: q.Get("sort"),
		SortDesc:  q.Get("order") == "desc",
		Search:    q.Get("search"),
	}
}

// Recap implements ReportHandler.
func (h *reportHandlerImpl) Recap(w http.ResponseWriter, r *http.Request) {
	result, err := h.recapService.Recap(r.Context(), recapRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements ReportHandler. The rendered report is served as a
// standalone HTML page rather than wrapped in the JSON envelope.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		RecapRequest: recapRequestFromQuery(r),
		Mode:         r.URL.Query().Get("mode"),
	}

	html, err := h.recapService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
