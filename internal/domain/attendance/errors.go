package attendance

import (
	"errors"
	"time"
)

// Attendance domain errors
var (
	// Input
	ErrInvalidCoordinates = errors.New("invalid GPS coordinates, please enable location services")

	// Check-in refusals
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoActiveLocations = errors.New("no office locations configured, contact admin")
	ErrOutsideGeofence   = errors.New("you are not within any office location, please move closer to check in")

	// Check-out refusals
	ErrNotCheckedIn      = errors.New("you have not checked in today, please check in first")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// Read access
	ErrTeamAccessDenied = errors.New("you can only view attendance for your own team")

	// Persistence
	ErrSessionNotFound      = errors.New("attendance session not found")
	ErrSessionAlreadyClosed = errors.New("attendance session already closed")
)

// Reason codes returned to clients.
const (
	CodeInvalidCoordinates = "INVALID_COORDINATES"
	CodeAlreadyCheckedIn   = "ALREADY_CHECKED_IN"
	CodeNoActiveLocations  = "NO_ACTIVE_LOCATIONS"
	CodeOutsideGeofence    = "OUTSIDE_GEOFENCE"
	CodeNotCheckedIn       = "NOT_CHECKED_IN"
	CodeAlreadyCheckedOut  = "ALREADY_CHECKED_OUT"
	CodeTeamAccessDenied   = "TEAM_ACCESS_DENIED"
)

var reasonCodes = map[error]string{
	ErrInvalidCoordinates: CodeInvalidCoordinates,
	ErrAlreadyCheckedIn:   CodeAlreadyCheckedIn,
	ErrNoActiveLocations:  CodeNoActiveLocations,
	ErrOutsideGeofence:    CodeOutsideGeofence,
	ErrNotCheckedIn:       CodeNotCheckedIn,
	ErrAlreadyCheckedOut:  CodeAlreadyCheckedOut,
	ErrTeamAccessDenied:   CodeTeamAccessDenied,
}

// RefusalError is a refused transition or read. At carries the existing
// timestamp (check-in or check-out) when the refusal is about a repeat attempt.
type RefusalError struct {
	Reason error
	At     *time.Time
}

// Refuse wraps reason. at is copied.
func Refuse(reason error, at *time.Time) *RefusalError {
	r := &RefusalError{Reason: reason}
	if at != nil {
		t := *at
		r.At = &t
	}
	return r
}

func (e *RefusalError) Error() string {
	return e.Reason.Error()
}

func (e *RefusalError) Unwrap() error {
	return e.Reason
}

// Code returns the machine-readable reason code.
func (e *RefusalError) Code() string {
	if code, ok := reasonCodes[e.Reason]; ok {
		return code
	}
	return "REFUSED"
}
