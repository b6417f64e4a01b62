package response

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance refusals carry a reason code and, for repeats, the existing time
	var refusal *attendance.RefusalError
	if errors.As(err, &refusal) {
		Refused(w, refusalStatus(refusal), refusal.Code(), refusal.Error(), refusalData(refusal))
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, user.ErrPrincipalMissing):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrUnknownRole):
		Forbidden(w, "Insufficient permissions")

	// Team domain errors
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func refusalStatus(r *attendance.RefusalError) int {
	switch {
	case errors.Is(r, attendance.ErrAlreadyCheckedIn), errors.Is(r, attendance.ErrAlreadyCheckedOut):
		return http.StatusConflict
	case errors.Is(r, attendance.ErrTeamAccessDenied):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func refusalData(r *attendance.RefusalError) interface{} {
	if r.At == nil {
		return nil
	}
	at := r.At.UTC().Format(time.RFC3339)
	switch {
	case errors.Is(r, attendance.ErrAlreadyCheckedIn):
		return map[string]string{"check_in_time": at}
	case errors.Is(r, attendance.ErrAlreadyCheckedOut):
		return map[string]string{"check_out_time": at}
	default:
		return map[string]string{"at": at}
	}
}
