package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/piket"
	"github.com/absensi-nh/absensi-backend-go/internal/handler/http/response"
)

type PiketHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	ListByMonth(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type piketHandlerImpl struct {
	scheduleService piket.ScheduleService
}

func NewPiketHandler(scheduleService piket.ScheduleService) PiketHandler {
	return &piketHandlerImpl{
		scheduleService: scheduleService,
	}
}

// Upsert implements PiketHandler.
func (h *piketHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req piket.UpsertScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule saved", result)
}

// ListByMonth implements PiketHandler.
func (h *piketHandlerImpl) ListByMonth(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	result, err := h.scheduleService.ListByMonth(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements PiketHandler.
func (h *piketHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule deleted", nil)
}
