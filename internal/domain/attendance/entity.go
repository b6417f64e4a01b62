package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
)

// IsValid reports whether s is one of the defined statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay:
		return true
	default:
		return false
	}
}

// State is the lifecycle position of a user's session for one day.
type State string

const (
	StateNone   State = "NONE"
	StateOpen   State = "OPEN"
	StateClosed State = "CLOSED"
)

// ShiftSummary is free text attached at check-out. It is stored as given.
type ShiftSummary struct {
	WorkDescription *string
	Project         *string
	Notes           *string
}

// Session is one user's attendance for one calendar day. (UserID, Date) is unique.
type Session struct {
	ID     string
	UserID string
	// Date is the calendar day at 00:00 UTC, independent of time of day.
	Date        time.Time
	CheckInTime time.Time
	CheckIn     geo.Point

	CheckOutTime *time.Time
	CheckOut     *geo.Point

	Status  Status
	Summary ShiftSummary

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamSession is a session joined with the member it belongs to.
type TeamSession struct {
	Session
	Member user.User
}

// NewSession opens a session for userID on date. The coordinates must be the
// ones that passed validation.
func NewSession(userID string, date time.Time, at time.Time, point geo.Point, status Status) Session {
	return Session{
		ID:          uuid.Must(uuid.NewV7()).String(),
		UserID:      userID,
		Date:        date,
		CheckInTime: at,
		CheckIn:     point,
		Status:      status,
	}
}

// State derives the lifecycle state. A nil session is StateNone.
func (s *Session) State() State {
	if s == nil || s.ID == "" {
		return StateNone
	}
	if s.CheckOutTime == nil {
		return StateOpen
	}
	return StateClosed
}

// Close performs the OPEN -> CLOSED transition in memory.
// The session is left untouched when the transition is refused.
func (s *Session) Close(at time.Time, point geo.Point, summary ShiftSummary, policy Policy) error {
	switch s.State() {
	case StateNone:
		return Refuse(ErrNotCheckedIn, nil)
	case StateClosed:
		return Refuse(ErrAlreadyCheckedOut, s.CheckOutTime)
	}

	// check_out_time never precedes check_in_time
	if at.Before(s.CheckInTime) {
		at = s.CheckInTime
	}

	s.CheckOutTime = &at
	s.CheckOut = &point
	s.Status = policy.CheckOutStatus(s.CheckInTime, at, s.Status)
	s.Summary = summary
	return nil
}

// HoursWorked is the real-valued duration of a closed session in hours.
// It is zero for open sessions.
func (s *Session) HoursWorked() float64 {
	if s.CheckOutTime == nil {
		return 0
	}
	return HoursBetween(s.CheckInTime, *s.CheckOutTime)
}
