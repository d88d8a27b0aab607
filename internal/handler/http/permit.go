package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/permit"
	"github.com/absensi-nh/absensi-backend-go/internal/handler/http/response"
)

type PermitHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
}

type permitHandlerImpl struct {
	permitService permit.PermitService
}

func NewPermitHandler(permitService permit.PermitService) PermitHandler {
	return &permitHandlerImpl{
		permitService: permitService,
	}
}

// Create implements PermitHandler.
func (h *permitHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req permit.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.permitService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Permit submitted", result)
}

// List implements PermitHandler.
func (h *permitHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.permitService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetStatus implements PermitHandler.
func (h *permitHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req permit.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.permitService.SetStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Permit "+result.Status, result)
}
