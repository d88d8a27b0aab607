package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/swap"
	"github.com/absensi-nh/absensi-backend-go/internal/handler/http/response"
)

type SwapHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Respond(w http.ResponseWriter, r *http.Request)
}

type swapHandlerImpl struct {
	swapService swap.SwapService
}

func NewSwapHandler(swapService swap.SwapService) SwapHandler {
	return &swapHandlerImpl{
		swapService: swapService,
	}
}

// Create implements SwapHandler.
func (h *swapHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req swap.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Swap request created", result)
}

// List implements SwapHandler.
func (h *swapHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.swapService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Respond implements SwapHandler.
func (h *swapHandlerImpl) Respond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req swap.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.swapService.Respond(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Swap request "+result.Status, result)
}
