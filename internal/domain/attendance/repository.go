package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance sessions.
type AttendanceRepository interface {
	// CreateIfAbsent inserts s unless a session already exists for
	// (s.UserID, s.Date). The check and the insert are atomic. When a session
	// exists it is returned with created == false.
	CreateIfAbsent(ctx context.Context, s Session) (stored Session, created bool, err error)

	// GetByUserAndDate returns ErrSessionNotFound when the user has no session that day.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Session, error)

	// Close persists the check-out fields of s only if the stored session is
	// still open. Returns ErrSessionAlreadyClosed otherwise.
	Close(ctx context.Context, s Session) (Session, error)

	// ListByUser returns the user's sessions, newest date first, and the total count.
	ListByUser(ctx context.Context, userID string, filter SelfHistoryFilter) ([]Session, int64, error)

	// ListByTeam returns sessions of the team's members, newest date first then
	// member name, and the total count.
	ListByTeam(ctx context.Context, filter TeamHistoryFilter) ([]TeamSession, int64, error)

	// CountOpenBefore counts sessions dated before date that were never closed.
	CountOpenBefore(ctx context.Context, date time.Time) (int64, error)
}
