package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
)

const dateLayout = "2006-01-02"

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	location.LocationRepository
	team.TeamRepository
	policy attendance.Policy
	now    func() time.Time
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if req.UserID == "" {
		return attendance.CheckInResponse{}, user.ErrPrincipalMissing
	}

	point, ok := req.Point()
	if !ok {
		return attendance.CheckInResponse{}, attendance.Refuse(attendance.ErrInvalidCoordinates, nil)
	}

	now := a.now()
	today := a.policy.Today(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, today)
	switch {
	case err == nil:
		return attendance.CheckInResponse{}, attendance.Refuse(attendance.ErrAlreadyCheckedIn, &existing.CheckInTime)
	case !errors.Is(err, attendance.ErrSessionNotFound):
		return attendance.CheckInResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	locations, err := a.LocationRepository.ListActive(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to list active locations: %w", err)
	}

	match, ok, err := geo.Resolve(point, location.Fences(locations))
	if err != nil {
		if errors.Is(err, geo.ErrNoFences) {
			slog.WarnContext(ctx, "Check-in refused, no active locations", "event", "attendance.geo_rejected", "user_id", req.UserID)
			return attendance.CheckInResponse{}, attendance.Refuse(attendance.ErrNoActiveLocations, nil)
		}
		return attendance.CheckInResponse{}, fmt.Errorf("failed to resolve geofence: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "Check-in refused, outside all geofences",
			"event", "attendance.geo_rejected",
			"user_id", req.UserID,
			"latitude", point.Latitude,
			"longitude", point.Longitude,
			"locations", location.Names(locations),
		)
		return attendance.CheckInResponse{}, attendance.Refuse(attendance.ErrOutsideGeofence, nil)
	}

	status := a.policy.CheckInStatus(now)
	stored, created, err := a.AttendanceRepository.CreateIfAbsent(ctx, attendance.NewSession(req.UserID, today, now, point, status))
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	if !created {
		slog.InfoContext(ctx, "Concurrent check-in lost the race", "event", "attendance.checkin_race_lost", "user_id", req.UserID, "attendance_id", stored.ID)
		return attendance.CheckInResponse{}, attendance.Refuse(attendance.ErrAlreadyCheckedIn, &stored.CheckInTime)
	}

	slog.InfoContext(ctx, "Checked in",
		"event", "attendance.check_in",
		"user_id", req.UserID,
		"attendance_id", stored.ID,
		"status", stored.Status,
		"location", match.Fence.Name,
		"distance_meters", match.DistanceMeters,
	)

	return attendance.CheckInResponse{
		Attendance:     a.toSessionResponse(stored),
		Location:       match.Fence.Name,
		DistanceMeters: match.DistanceMeters,
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if req.UserID == "" {
		return attendance.CheckOutResponse{}, user.ErrPrincipalMissing
	}
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	point, ok := req.Point()
	if !ok {
		return attendance.CheckOutResponse{}, attendance.Refuse(attendance.ErrInvalidCoordinates, nil)
	}

	now := a.now()
	today := a.policy.Today(now)

	session, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil && !errors.Is(err, attendance.ErrSessionNotFound) {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	// Only coordinate validity is checked here; the geofence applies to check-in.
	if err := session.Close(now, point, req.Summary(), a.policy); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	closed, err := a.AttendanceRepository.Close(ctx, session)
	if err != nil {
		if !errors.Is(err, attendance.ErrSessionAlreadyClosed) {
			return attendance.CheckOutResponse{}, fmt.Errorf("failed to close attendance: %w", err)
		}
		current, reloadErr := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, today)
		if reloadErr != nil {
			return attendance.CheckOutResponse{}, fmt.Errorf("failed to reload closed attendance: %w", reloadErr)
		}
		return attendance.CheckOutResponse{}, attendance.Refuse(attendance.ErrAlreadyCheckedOut, current.CheckOutTime)
	}

	hours := attendance.FormatHours(closed.HoursWorked())

	slog.InfoContext(ctx, "Checked out",
		"event", "attendance.check_out",
		"user_id", req.UserID,
		"attendance_id", closed.ID,
		"status", closed.Status,
		"hours_worked", hours,
	)

	return attendance.CheckOutResponse{
		Attendance:  a.toSessionResponse(closed),
		HoursWorked: hours,
	}, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	if userID == "" {
		return attendance.TodayResponse{}, user.ErrPrincipalMissing
	}

	today := a.policy.Today(a.now())
	resp := attendance.TodayResponse{Date: today.Format(dateLayout)}

	session, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil && !errors.Is(err, attendance.ErrSessionNotFound) {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	resp.State = session.State()
	switch resp.State {
	case attendance.StateNone:
		resp.CanCheckIn = true
	case attendance.StateOpen:
		resp.CanCheckOut = true
	}
	if resp.State != attendance.StateNone {
		s := a.toSessionResponse(session)
		resp.Attendance = &s
	}

	return resp, nil
}

// GetSelfHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSelfHistory(ctx context.Context, userID string, filter attendance.SelfHistoryFilter) (attendance.ListSessionsResponse, error) {
	if userID == "" {
		return attendance.ListSessionsResponse{}, user.ErrPrincipalMissing
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	sessions, total, err := a.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListSessionsResponse{}, fmt.Errorf("failed to list own attendance: %w", err)
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, a.toSessionResponse(s))
	}

	return attendance.ListSessionsResponse{
		Attendance: responses,
		Pagination: attendance.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// GetTeamHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTeamHistory(ctx context.Context, caller user.Principal, filter attendance.TeamHistoryFilter) (attendance.ListTeamSessionsResponse, error) {
	if caller.UserID == "" {
		return attendance.ListTeamSessionsResponse{}, user.ErrPrincipalMissing
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListTeamSessionsResponse{}, err
	}

	if err := a.authorizeTeamRead(ctx, caller, filter.TeamID); err != nil {
		return attendance.ListTeamSessionsResponse{}, err
	}

	sessions, total, err := a.AttendanceRepository.ListByTeam(ctx, filter)
	if err != nil {
		return attendance.ListTeamSessionsResponse{}, fmt.Errorf("failed to list team attendance: %w", err)
	}

	responses := make([]attendance.TeamSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, attendance.TeamSessionResponse{
			SessionResponse: a.toSessionResponse(s.Session),
			UserID:          s.Member.ID,
			FullName:        s.Member.FullName,
			MobileNumber:    s.Member.MobileNumber,
		})
	}

	return attendance.ListTeamSessionsResponse{
		Attendance: responses,
		Pagination: attendance.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// authorizeTeamRead decides whether caller may read teamID's attendance.
// An unknown team is a refusal for a lead and an empty result for an admin.
func (a *AttendanceServiceImpl) authorizeTeamRead(ctx context.Context, caller user.Principal, teamID string) error {
	switch caller.Role {
	case user.RoleAdmin:
		return nil
	case user.RoleLead:
		t, err := a.TeamRepository.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, team.ErrTeamNotFound) {
				return attendance.Refuse(attendance.ErrTeamAccessDenied, nil)
			}
			return fmt.Errorf("failed to get team: %w", err)
		}
		if !t.IsLedBy(caller.UserID) {
			return attendance.Refuse(attendance.ErrTeamAccessDenied, nil)
		}
		return nil
	case user.RoleEmployee:
		return user.ErrInsufficientPermissions
	default:
		return fmt.Errorf("%w: %q", user.ErrUnknownRole, caller.Role)
	}
}

// toSessionResponse converts a Session to its response, rendering times in the policy time zone.
func (a *AttendanceServiceImpl) toSessionResponse(s attendance.Session) attendance.SessionResponse {
	resp := attendance.SessionResponse{
		ID:               s.ID,
		Date:             s.Date.Format(dateLayout),
		CheckInTime:      a.formatTime(s.CheckInTime),
		CheckInLatitude:  s.CheckIn.Latitude,
		CheckInLongitude: s.CheckIn.Longitude,
		Status:           s.Status,
		WorkDescription:  s.Summary.WorkDescription,
		Project:          s.Summary.Project,
		Notes:            s.Summary.Notes,
	}
	if s.CheckOutTime != nil {
		out := a.formatTime(*s.CheckOutTime)
		resp.CheckOutTime = &out
	}
	if s.CheckOut != nil {
		lat, lon := s.CheckOut.Latitude, s.CheckOut.Longitude
		resp.CheckOutLatitude = &lat
		resp.CheckOutLongitude = &lon
	}
	return resp
}

func (a *AttendanceServiceImpl) formatTime(t time.Time) string {
	loc := a.policy.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(time.RFC3339)
}

// NewAttendanceService builds the service. now defaults to time.Now when nil.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	locationRepo location.LocationRepository,
	teamRepo team.TeamRepository,
	policy attendance.Policy,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		LocationRepository:   locationRepo,
		TeamRepository:       teamRepo,
		policy:               policy,
		now:                  now,
	}
}
