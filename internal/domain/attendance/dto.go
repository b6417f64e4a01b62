package attendance

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

const (
	DefaultSelfLimit = 30
	DefaultTeamLimit = 50
	MaxLimit         = 100
	MaxPage          = 1_000_000

	maxWorkDescriptionLength = 2000
	maxProjectLength         = 200
	maxNotesLength           = 1000
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	UserID    string   `json:"-"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Point returns the submitted coordinates and whether they are present and valid.
func (r CheckInRequest) Point() (geo.Point, bool) {
	return pointOf(r.Latitude, r.Longitude)
}

type CheckOutRequest struct {
	UserID          string   `json:"-"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	WorkDescription *string  `json:"work_description,omitempty"`
	Project         *string  `json:"project,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// Point returns the submitted coordinates and whether they are present and valid.
func (r CheckOutRequest) Point() (geo.Point, bool) {
	return pointOf(r.Latitude, r.Longitude)
}

// Summary returns the shift summary fields.
func (r CheckOutRequest) Summary() ShiftSummary {
	return ShiftSummary{
		WorkDescription: r.WorkDescription,
		Project:         r.Project,
		Notes:           r.Notes,
	}
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkDescription != nil && utf8.RuneCountInString(*r.WorkDescription) > maxWorkDescriptionLength {
		errs = append(errs, validator.ValidationError{
			Field:   "work_description",
			Message: "work_description must not exceed 2000 characters",
		})
	}

	if r.Project != nil && utf8.RuneCountInString(*r.Project) > maxProjectLength {
		errs = append(errs, validator.ValidationError{
			Field:   "project",
			Message: "project must not exceed 200 characters",
		})
	}

	if r.Notes != nil && utf8.RuneCountInString(*r.Notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func pointOf(lat, lon *float64) (geo.Point, bool) {
	if lat == nil || lon == nil {
		return geo.Point{}, false
	}
	p := geo.Point{Latitude: *lat, Longitude: *lon}
	return p, p.IsValid()
}

type SessionResponse struct {
	ID                string   `json:"id"`
	Date              string   `json:"date"`
	CheckInTime       string   `json:"check_in_time"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	CheckInLatitude   float64  `json:"check_in_latitude"`
	CheckInLongitude  float64  `json:"check_in_longitude"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	Status            Status   `json:"status"`
	WorkDescription   *string  `json:"work_description,omitempty"`
	Project           *string  `json:"project,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

type CheckInResponse struct {
	Attendance     SessionResponse `json:"attendance"`
	Location       string          `json:"location"`
	DistanceMeters int             `json:"distance_meters"`
}

type CheckOutResponse struct {
	Attendance  SessionResponse `json:"attendance"`
	HoursWorked string          `json:"hours_worked"`
}

type TodayResponse struct {
	Date        string           `json:"date"`
	State       State            `json:"state"`
	Attendance  *SessionResponse `json:"attendance,omitempty"`
	CanCheckIn  bool             `json:"can_check_in"`
	CanCheckOut bool             `json:"can_check_out"`
}

// ========================================
// HISTORY DTOs
// ========================================

type SelfHistoryFilter struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Validate applies defaults and clamps page and limit into range.
func (f *SelfHistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validatePage(f.Page)...)
	f.Page, f.Limit = clampPage(f.Page, f.Limit, DefaultSelfLimit)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TeamHistoryFilter narrows team history. Date is an optional YYYY-MM-DD day.
type TeamHistoryFilter struct {
	TeamID string     `json:"team_id"`
	Date   *string    `json:"date,omitempty"`
	Day    *time.Time `json:"-"`
	Page   int        `json:"page"`
	Limit  int        `json:"limit"`
}

func (f *TeamHistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.TeamID) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "team_id is required",
		})
	} else if _, err := uuid.Parse(f.TeamID); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "team_id must be a valid UUID",
		})
	}

	f.Day = nil
	if f.Date != nil && *f.Date != "" {
		day, valid := validator.IsValidDate(*f.Date)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else {
			f.Day = &day
		}
	}

	errs = append(errs, validatePage(f.Page)...)
	f.Page, f.Limit = clampPage(f.Page, f.Limit, DefaultTeamLimit)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validatePage bounds page so the row offset cannot overflow.
func validatePage(page int) validator.ValidationErrors {
	if page > MaxPage {
		return validator.ValidationErrors{{
			Field:   "page",
			Message: fmt.Sprintf("page must not exceed %d", MaxPage),
		}}
	}
	return nil
}

// clampPage treats a zero limit as unset.
func clampPage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the row offset of a page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination computes total pages for total rows at limit per page.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

type ListSessionsResponse struct {
	Attendance []SessionResponse `json:"attendance"`
	Pagination Pagination        `json:"pagination"`
}

type TeamSessionResponse struct {
	SessionResponse
	UserID       string  `json:"user_id"`
	FullName     string  `json:"full_name"`
	MobileNumber *string `json:"mobile_number,omitempty"`
}

type ListTeamSessionsResponse struct {
	Attendance []TeamSessionResponse `json:"attendance"`
	Pagination Pagination            `json:"pagination"`
}
