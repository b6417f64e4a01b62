package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	SelfHistory(w http.ResponseWriter, r *http.Request)
	TeamHistory(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Debug("Failed to decode check-in request", "error", err)
		handleDecodeError(w, err)
		return
	}
	req.UserID = principal.UserID

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully at "+result.Location, result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckOutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Debug("Failed to decode check-out request", "error", err)
		handleDecodeError(w, err)
		return
	}
	req.UserID = principal.UserID

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), principal.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SelfHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) SelfHistory(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	filter := attendance.SelfHistoryFilter{
		Page:  validator.AtoiOr(query.Get("page"), 1),
		Limit: validator.AtoiOr(query.Get("limit"), 0),
	}

	result, err := h.attendanceService.GetSelfHistory(r.Context(), principal.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendance, toMeta(result.Pagination))
}

// TeamHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) TeamHistory(w http.ResponseWriter, r *http.Request) {
	principal, err := user.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	filter := attendance.TeamHistoryFilter{
		TeamID: chi.URLParam(r, "teamId"),
		Page:   validator.AtoiOr(query.Get("page"), 1),
		Limit:  validator.AtoiOr(query.Get("limit"), 0),
	}
	if date := query.Get("date"); date != "" {
		filter.Date = &date
	}

	result, err := h.attendanceService.GetTeamHistory(r.Context(), principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendance, toMeta(result.Pagination))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// handleDecodeError reports a missing body or a non-numeric coordinate as
// invalid coordinates, and anything else as a malformed request.
func handleDecodeError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		response.HandleError(w, attendance.Refuse(attendance.ErrInvalidCoordinates, nil))
	case errors.As(err, &typeErr) && (typeErr.Field == "latitude" || typeErr.Field == "longitude"):
		response.HandleError(w, attendance.Refuse(attendance.ErrInvalidCoordinates, nil))
	default:
		response.BadRequest(w, "Invalid request format", nil)
	}
}

func toMeta(p attendance.Pagination) *response.Meta {
	return &response.Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: p.Total,
		TotalPages: p.TotalPages,
	}
}
