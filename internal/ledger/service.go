package ledger

import (
	"context"
	"time"

	"github.com/rems1212/Employee-Canteen/internal/model"
)

// LeaveLimits are the fixed annual quotas per leave category. LeaveNone has
// no quota and never appears in a balance.
var LeaveLimits = map[model.LeaveType]int{
	model.LeavePersonal: 10,
	model.LeaveSick:     7,
	model.LeaveCasual:   7,
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// RecordInput is one attendance submission.
type RecordInput struct {
	EmployeeID uint
	Date       time.Time
	Status     model.AttendanceStatus
	LeaveType  model.LeaveType
}

// RollCallEntry is one row of the daily roll call projection.
type RollCallEntry struct {
	EmployeeID uint                   `json:"id"`
	Name       string                 `json:"name"`
	Category   model.EmployeeCategory `json:"category"`
	Attendance model.AttendanceStatus `json:"attendance"`
	LeaveType  model.LeaveType        `json:"leaveType"`
}

// UseCase is the public surface of the attendance ledger and the leave
// balance calculator.
type UseCase interface {
	RecordAttendance(ctx context.Context, in RecordInput) (*model.Attendance, error)
	EmployeeAttendance(ctx context.Context, employeeID uint, year int) ([]model.Attendance, error)
	DailyRollCall(ctx context.Context, date time.Time) ([]RollCallEntry, error)
	LeaveBalances(ctx context.Context, employeeID uint) (map[model.LeaveType]int, error)
}

// Service implements the attendance ledger over a Repository.
type Service struct {
	repo  Repository
	clock Clock
}

// NewService creates an attendance ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: realClock{}}
}

// NewServiceWithClock creates a service with an explicit clock.
func NewServiceWithClock(repo Repository, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// NormalizeDay truncates a timestamp to its calendar day in UTC. Lookups
// match whole days, so every stored date goes through this.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RecordAttendance validates and stores one daily status. Writing the same
// (employee, day) twice overwrites status and leave type in place, so
// retries are harmless. A present record always stores LeaveNone no matter
// what leave type was submitted.
func (s *Service) RecordAttendance(ctx context.Context, in RecordInput) (*model.Attendance, error) {
	if in.EmployeeID == 0 {
		return nil, ErrInvalidEmployee
	}
	if in.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	leaveType := in.LeaveType
	if leaveType == "" {
		leaveType = model.LeaveNone
	}
	if !leaveType.Valid() {
		return nil, ErrInvalidLeaveType
	}
	if in.Status == model.StatusPresent {
		leaveType = model.LeaveNone
	}

	rec := &model.Attendance{
		EmployeeID: in.EmployeeID,
		Date:       NormalizeDay(in.Date),
		Status:     in.Status,
		LeaveType:  leaveType,
	}

	return s.repo.UpsertAttendance(ctx, rec)
}

// EmployeeAttendance returns the employee's records, optionally restricted
// to one calendar year. The window is [Jan 1 00:00, Jan 1 of year+1), which
// with midnight-normalized dates covers through Dec 31 23:59:59.999.
func (s *Service) EmployeeAttendance(ctx context.Context, employeeID uint, year int) ([]model.Attendance, error) {
	if employeeID == 0 {
		return nil, ErrInvalidEmployee
	}

	var from, to time.Time
	if year != 0 {
		from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	return s.repo.ListByEmployee(ctx, employeeID, from, to)
}

// DailyRollCall joins every employee against the attendance record for the
// given day. An employee with no record reports absent with leave type
// "none". A zero date means today.
func (s *Service) DailyRollCall(ctx context.Context, date time.Time) ([]RollCallEntry, error) {
	if date.IsZero() {
		date = s.clock.Now()
	}
	day := NormalizeDay(date)

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[uint]model.Attendance, len(records))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = rec
	}

	entries := make([]RollCallEntry, 0, len(employees))
	for _, emp := range employees {
		entry := RollCallEntry{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			Category:   emp.Category,
			Attendance: model.StatusAbsent,
			LeaveType:  model.LeaveNone,
		}
		if rec, ok := byEmployee[emp.ID]; ok {
			entry.Attendance = rec.Status
			entry.LeaveType = rec.LeaveType
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// LeaveBalances recomputes the remaining leave per category from the ledger.
// remaining = limit - taken, not clamped at zero; enforcement of the limit is
// the write path caller's concern. Only the quota categories are reported.
func (s *Service) LeaveBalances(ctx context.Context, employeeID uint) (map[model.LeaveType]int, error) {
	if employeeID == 0 {
		return nil, ErrInvalidEmployee
	}

	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEmployeeNotFound
	}

	taken, err := s.repo.CountAbsences(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	balances := make(map[model.LeaveType]int, len(LeaveLimits))
	for leaveType, limit := range LeaveLimits {
		balances[leaveType] = limit - taken[leaveType]
	}

	return balances, nil
}
