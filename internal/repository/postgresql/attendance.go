package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const sessionColumns = `
	a.id, a.user_id, a.date, a.check_in_time, a.check_in_lat, a.check_in_long,
	a.check_out_time, a.check_out_lat, a.check_out_long,
	a.status, a.work_description, a.project, a.notes,
	a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func scanSession(row pgx.Row, extra ...any) (attendance.Session, error) {
	var (
		s                         attendance.Session
		checkOutLat, checkOutLong *float64
	)
	dest := []any{
		&s.ID, &s.UserID, &s.Date, &s.CheckInTime, &s.CheckIn.Latitude, &s.CheckIn.Longitude,
		&s.CheckOutTime, &checkOutLat, &checkOutLong,
		&s.Status, &s.Summary.WorkDescription, &s.Summary.Project, &s.Summary.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return attendance.Session{}, err
	}
	if checkOutLat != nil && checkOutLong != nil {
		s.CheckOut = &geo.Point{Latitude: *checkOutLat, Longitude: *checkOutLong}
	}
	s.Date = s.Date.UTC()
	return s, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, s attendance.Session) (attendance.Session, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance AS a (
			id, user_id, date, check_in_time, check_in_lat, check_in_long, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING ` + sessionColumns

	stored, err := scanSession(q.QueryRow(ctx, query,
		s.ID,
		s.UserID,
		s.Date,
		s.CheckInTime,
		s.CheckIn.Latitude,
		s.CheckIn.Longitude,
		s.Status,
	))
	if err == nil {
		return stored, true, nil
	}

	var pgErr *pgconn.PgError
	if !errors.Is(err, pgx.ErrNoRows) && !(errors.As(err, &pgErr) && pgErr.Code == uniqueViolation) {
		return attendance.Session{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	// Another request holds the (user, date) slot.
	existing, err := a.GetByUserAndDate(ctx, s.UserID, s.Date)
	if err != nil {
		return attendance.Session{}, false, fmt.Errorf("failed to load existing attendance: %w", err)
	}
	return existing, false, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + sessionColumns + `
		FROM attendance a
		WHERE a.user_id = $1 AND a.date = $2
	`

	s, err := scanSession(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return s, nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepository) Close(ctx context.Context, s attendance.Session) (attendance.Session, error) {
	if s.CheckOutTime == nil || s.CheckOut == nil {
		return attendance.Session{}, fmt.Errorf("close attendance %s: check-out fields are not set", s.ID)
	}

	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance AS a SET
			check_out_time = $2,
			check_out_lat = $3,
			check_out_long = $4,
			status = $5,
			work_description = $6,
			project = $7,
			notes = $8,
			updated_at = NOW()
		WHERE a.id = $1 AND a.check_out_time IS NULL
		RETURNING ` + sessionColumns

	closed, err := scanSession(q.QueryRow(ctx, query,
		s.ID,
		*s.CheckOutTime,
		s.CheckOut.Latitude,
		s.CheckOut.Longitude,
		s.Status,
		s.Summary.WorkDescription,
		s.Summary.Project,
		s.Summary.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionAlreadyClosed
		}
		return attendance.Session{}, fmt.Errorf("failed to close attendance: %w", err)
	}

	return closed, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.SelfHistoryFilter) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, a.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance a WHERE a.user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	query := `SELECT ` + sessionColumns + `
		FROM attendance a
		WHERE a.user_id = $1
		ORDER BY a.date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, filter.Limit, attendance.Offset(filter.Page, filter.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	sessions := make([]attendance.Session, 0, filter.Limit)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return sessions, total, nil
}

// ListByTeam implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByTeam(ctx context.Context, filter attendance.TeamHistoryFilter) ([]attendance.TeamSession, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "u.team_id = $1"
	args := []interface{}{filter.TeamID}
	argIdx := 2

	if filter.Day != nil {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Day)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance a JOIN users u ON u.id = a.user_id WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count team attendance: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s,
			u.id, u.full_name, u.mobile_number, u.role, u.team_id, u.is_active
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date DESC, u.full_name ASC, a.id ASC
		LIMIT $%d OFFSET $%d
	`, sessionColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, attendance.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query team attendance: %w", err)
	}
	defer rows.Close()

	sessions := make([]attendance.TeamSession, 0, filter.Limit)
	for rows.Next() {
		var ts attendance.TeamSession
		m := &ts.Member
		s, err := scanSession(rows, &m.ID, &m.FullName, &m.MobileNumber, &m.Role, &m.TeamID, &m.IsActive)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan team attendance: %w", err)
		}
		ts.Session = s
		sessions = append(sessions, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate team attendance: %w", err)
	}

	return sessions, total, nil
}

// CountOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountOpenBefore(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance
		WHERE date < $1 AND check_out_time IS NULL
	`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open attendance: %w", err)
	}

	return count, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
