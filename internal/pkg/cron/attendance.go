package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

const JobStaleSessionSweep = "stale_open_session_sweep"

// AttendanceJobs holds the periodic attendance maintenance jobs.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	policy         attendance.Policy
	now            func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, policy attendance.Policy, now func() time.Time) *AttendanceJobs {
	if now == nil {
		now = time.Now
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		policy:         policy,
		now:            now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, sweepInterval time.Duration) {
	scheduler.AddJob(JobStaleSessionSweep, sweepInterval, j.SweepStaleSessions)
}

// SweepStaleSessions reports sessions from earlier days that were never
// checked out. It does not modify them; closing is an administrative action.
func (j *AttendanceJobs) SweepStaleSessions(ctx context.Context) error {
	today := j.policy.Today(j.now())

	count, err := j.attendanceRepo.CountOpenBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to count stale sessions: %w", err)
	}

	if count == 0 {
		slog.Debug("Cron: No stale open sessions", "before", today.Format("2006-01-02"))
		return nil
	}

	slog.Warn("Cron: Found open sessions from previous days",
		"event", "attendance.stale_open_sessions",
		"count", count,
		"before", today.Format("2006-01-02"),
	)
	return nil
}
