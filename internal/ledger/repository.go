package ledger

import (
	"context"
	"time"

	"github.com/rems1212/Employee-Canteen/internal/model"
)

// Repository is the persistence surface the attendance ledger needs.
// Implementations must make UpsertAttendance atomic per (employee, date).
type Repository interface {
	// UpsertAttendance stores the record, overwriting status and leave type
	// if a row for (EmployeeID, Date) already exists, and returns the row
	// as stored.
	UpsertAttendance(ctx context.Context, rec *model.Attendance) (*model.Attendance, error)

	// ListByEmployee returns the employee's records with date in [from, to).
	// Zero from/to means no bound on that side.
	ListByEmployee(ctx context.Context, employeeID uint, from, to time.Time) ([]model.Attendance, error)

	// ListByDay returns every record whose date falls on the given calendar day.
	ListByDay(ctx context.Context, day time.Time) ([]model.Attendance, error)

	// ListEmployees returns all employees across canteens.
	ListEmployees(ctx context.Context) ([]model.Employee, error)

	// EmployeeExists reports whether an employee row with the id exists.
	EmployeeExists(ctx context.Context, employeeID uint) (bool, error)

	// CountAbsences returns, per leave type, how many absent records the
	// employee has. Records without a category count under LeaveNone.
	CountAbsences(ctx context.Context, employeeID uint) (map[model.LeaveType]int, error)
}
