package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn validates the location and opens today's session
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes today's session and finalizes its status
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// GetToday reports the caller's session state for today
	GetToday(ctx context.Context, userID string) (TodayResponse, error)

	// GetSelfHistory lists the caller's own sessions
	GetSelfHistory(ctx context.Context, userID string, filter SelfHistoryFilter) (ListSessionsResponse, error)

	// GetTeamHistory lists a team's sessions, scoped by the caller's role
	GetTeamHistory(ctx context.Context, caller user.Principal, filter TeamHistoryFilter) (ListTeamSessionsResponse, error)
}
