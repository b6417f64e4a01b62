package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type sessionKey struct {
	userID string
	date   string
}

// memoryAttendanceRepository enforces (user, date) uniqueness under a mutex,
// standing in for the database constraint.
type memoryAttendanceRepository struct {
	mu       sync.Mutex
	sessions map[sessionKey]attendance.Session
	members  map[string]user.User
}

func newMemoryAttendanceRepository(members ...user.User) *memoryAttendanceRepository {
	r := &memoryAttendanceRepository{
		sessions: map[sessionKey]attendance.Session{},
		members:  map[string]user.User{},
	}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func keyOf(userID string, date time.Time) sessionKey {
	return sessionKey{userID: userID, date: date.Format("2006-01-02")}
}

func (r *memoryAttendanceRepository) CreateIfAbsent(_ context.Context, s attendance.Session) (attendance.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(s.UserID, s.Date)
	if existing, ok := r.sessions[k]; ok {
		return existing, false, nil
	}
	s.CreatedAt = s.CheckInTime
	s.UpdatedAt = s.CheckInTime
	r.sessions[k] = s
	return s, true, nil
}

func (r *memoryAttendanceRepository) GetByUserAndDate(_ context.Context, userID string, date time.Time) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[keyOf(userID, date)]
	if !ok {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	return s, nil
}

func (r *memoryAttendanceRepository) Close(_ context.Context, s attendance.Session) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(s.UserID, s.Date)
	stored, ok := r.sessions[k]
	if !ok || stored.ID != s.ID || stored.CheckOutTime != nil {
		return attendance.Session{}, attendance.ErrSessionAlreadyClosed
	}
	stored.CheckOutTime = s.CheckOutTime
	stored.CheckOut = s.CheckOut
	stored.Status = s.Status
	stored.Summary = s.Summary
	r.sessions[k] = stored
	return stored, nil
}

func (r *memoryAttendanceRepository) ListByUser(_ context.Context, userID string, filter attendance.SelfHistoryFilter) ([]attendance.Session, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []attendance.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return page(all, filter.Page, filter.Limit), int64(len(all)), nil
}

func (r *memoryAttendanceRepository) ListByTeam(_ context.Context, filter attendance.TeamHistoryFilter) ([]attendance.TeamSession, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []attendance.TeamSession
	for _, s := range r.sessions {
		m, ok := r.members[s.UserID]
		if !ok || m.TeamID == nil || *m.TeamID != filter.TeamID {
			continue
		}
		if filter.Day != nil && !filter.Day.Equal(s.Date) {
			continue
		}
		all = append(all, attendance.TeamSession{Session: s, Member: m})
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].Member.FullName < all[j].Member.FullName
	})
	return page(all, filter.Page, filter.Limit), int64(len(all)), nil
}

func (r *memoryAttendanceRepository) CountOpenBefore(_ context.Context, date time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, s := range r.sessions {
		if s.Date.Before(date) && s.CheckOutTime == nil {
			n++
		}
	}
	return n, nil
}

func (r *memoryAttendanceRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func page[T any](items []T, pageNum, limit int) []T {
	start := attendance.Offset(pageNum, limit)
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type staticLocationRepository struct {
	locations []location.OfficeLocation
	err       error
}

func (r staticLocationRepository) ListActive(context.Context) ([]location.OfficeLocation, error) {
	return r.locations, r.err
}

type staticTeamRepository map[string]team.Team

func (r staticTeamRepository) GetByID(_ context.Context, id string) (team.Team, error) {
	t, ok := r[id]
	if !ok {
		return team.Team{}, team.ErrTeamNotFound
	}
	return t, nil
}
