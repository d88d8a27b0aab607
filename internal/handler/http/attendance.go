package http

import (
	"net/http"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/attendance"
	"github.com/absensi-nh/absensi-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	BreakStart(w http.ResponseWriter, r *http.Request)
	BreakEnd(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Permit(w http.ResponseWriter, r *http.Request)
	Resume(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	sessionService attendance.SessionService
}

func NewAttendanceHandler(sessionService attendance.SessionService) AttendanceHandler {
	return &attendanceHandlerImpl{
		sessionService: sessionService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest

	file, fileHeader, closeFile, ok := decodeMultipart(w, r, &req, "photo")
	if !ok {
		return
	}
	defer closeFile()
	req.File = file
	req.FileHeader = fileHeader

	result, err := h.sessionService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// BreakStart implements AttendanceHandler.
func (h *attendanceHandlerImpl) BreakStart(w http.ResponseWriter, r *http.Request) {
	var req attendance.BreakRequest

	file, fileHeader, closeFile, ok := decodeMultipart(w, r, &req, "photo")
	if !ok {
		return
	}
	defer closeFile()
	req.File = file
	req.FileHeader = fileHeader

	result, err := h.sessionService.BreakStart(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// BreakEnd implements AttendanceHandler.
func (h *attendanceHandlerImpl) BreakEnd(w http.ResponseWriter, r *http.Request) {
	var req attendance.BreakRequest

	file, fileHeader, closeFile, ok := decodeMultipart(w, r, &req, "photo")
	if !ok {
		return
	}
	defer closeFile()
	req.File = file
	req.FileHeader = fileHeader

	result, err := h.sessionService.BreakEnd(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest

	file, fileHeader, closeFile, ok := decodeMultipart(w, r, &req, "photo")
	if !ok {
		return
	}
	defer closeFile()
	req.File = file
	req.FileHeader = fileHeader

	result, err := h.sessionService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// Permit implements AttendanceHandler.
func (h *attendanceHandlerImpl) Permit(w http.ResponseWriter, r *http.Request) {
	var req attendance.PermitRequest

	file, fileHeader, closeFile, ok := decodeMultipart(w, r, &req, "photo")
	if !ok {
		return
	}
	defer closeFile()
	req.File = file
	req.FileHeader = fileHeader

	result, err := h.sessionService.Permit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Permit recorded", result)
}

// Resume implements AttendanceHandler.
func (h *attendanceHandlerImpl) Resume(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.Resume(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Session resumed", result)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.GetToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := attendance.HistoryFilter{
		Month: r.URL.Query().Get("month"),
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.EmployeeID = &userID
	}

	result, err := h.sessionService.History(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
