package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rems1212/Employee-Canteen/internal/model"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeRepo struct {
	employees map[uint]model.Employee
	records   map[string]model.Attendance
	sequence  uint
}

func newFakeRepo(employees ...model.Employee) *fakeRepo {
	r := &fakeRepo{
		employees: make(map[uint]model.Employee),
		records:   make(map[string]model.Attendance),
	}
	for _, emp := range employees {
		r.employees[emp.ID] = emp
	}
	return r
}

func recordKey(employeeID uint, day time.Time) string {
	return fmt.Sprintf("%d|%s", employeeID, day.Format("2006-01-02"))
}

func (r *fakeRepo) UpsertAttendance(_ context.Context, rec *model.Attendance) (*model.Attendance, error) {
	key := recordKey(rec.EmployeeID, rec.Date)
	if existing, ok := r.records[key]; ok {
		existing.Status = rec.Status
		existing.LeaveType = rec.LeaveType
		r.records[key] = existing
		stored := existing
		return &stored, nil
	}
	r.sequence++
	clone := *rec
	clone.ID = r.sequence
	r.records[key] = clone
	stored := clone
	return &stored, nil
}

func (r *fakeRepo) ListByEmployee(_ context.Context, employeeID uint, from, to time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, rec := range r.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if !from.IsZero() && rec.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !rec.Date.Before(to) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRepo) ListByDay(_ context.Context, day time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, rec := range r.records {
		if rec.Date.Equal(day) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListEmployees(_ context.Context) ([]model.Employee, error) {
	var out []model.Employee
	for id := uint(1); id <= uint(len(r.employees))+100; id++ {
		if emp, ok := r.employees[id]; ok {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (r *fakeRepo) EmployeeExists(_ context.Context, employeeID uint) (bool, error) {
	_, ok := r.employees[employeeID]
	return ok, nil
}

func (r *fakeRepo) CountAbsences(_ context.Context, employeeID uint) (map[model.LeaveType]int, error) {
	taken := make(map[model.LeaveType]int)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == model.StatusAbsent {
			taken[rec.LeaveType]++
		}
	}
	return taken, nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestRecordAttendanceValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		in      RecordInput
		wantErr error
	}{
		{
			name:    "missing employee",
			in:      RecordInput{Date: day(2024, time.March, 1), Status: model.StatusPresent},
			wantErr: ErrInvalidEmployee,
		},
		{
			name:    "missing date",
			in:      RecordInput{EmployeeID: 1, Status: model.StatusPresent},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "bad status",
			in:      RecordInput{EmployeeID: 1, Date: day(2024, time.March, 1), Status: "late"},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "bad leave type",
			in:      RecordInput{EmployeeID: 1, Date: day(2024, time.March, 1), Status: model.StatusAbsent, LeaveType: "vacation"},
			wantErr: ErrInvalidLeaveType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordAttendance(ctx, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RecordAttendance() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordAttendanceOverwrites(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	d := day(2024, time.March, 4)

	first, err := svc.RecordAttendance(ctx, RecordInput{
		EmployeeID: 7, Date: d, Status: model.StatusPresent,
	})
	if err != nil {
		t.Fatalf("first RecordAttendance() error = %v", err)
	}

	second, err := svc.RecordAttendance(ctx, RecordInput{
		EmployeeID: 7, Date: d, Status: model.StatusAbsent, LeaveType: model.LeaveSick,
	})
	if err != nil {
		t.Fatalf("second RecordAttendance() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("overwrite created a new row: id %d != %d", second.ID, first.ID)
	}

	records, err := svc.EmployeeAttendance(ctx, 7, 0)
	if err != nil {
		t.Fatalf("EmployeeAttendance() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records for the day, want exactly 1", len(records))
	}
	if records[0].Status != model.StatusAbsent || records[0].LeaveType != model.LeaveSick {
		t.Errorf("stored record = %s/%s, want absent/sick", records[0].Status, records[0].LeaveType)
	}
}

func TestRecordAttendancePresentForcesNoneLeaveType(t *testing.T) {
	svc := NewService(newFakeRepo())

	rec, err := svc.RecordAttendance(context.Background(), RecordInput{
		EmployeeID: 1,
		Date:       day(2024, time.May, 10),
		Status:     model.StatusPresent,
		LeaveType:  model.LeaveCasual,
	})
	if err != nil {
		t.Fatalf("RecordAttendance() error = %v", err)
	}
	if rec.LeaveType != model.LeaveNone {
		t.Errorf("present record stored leave type %q, want none", rec.LeaveType)
	}
}

func TestRecordAttendanceNormalizesTimeOfDay(t *testing.T) {
	svc := NewService(newFakeRepo())

	at := time.Date(2024, time.May, 10, 17, 42, 13, 500, time.UTC)
	rec, err := svc.RecordAttendance(context.Background(), RecordInput{
		EmployeeID: 1, Date: at, Status: model.StatusAbsent, LeaveType: model.LeavePersonal,
	})
	if err != nil {
		t.Fatalf("RecordAttendance() error = %v", err)
	}
	if !rec.Date.Equal(day(2024, time.May, 10)) {
		t.Errorf("stored date = %v, want midnight of the same day", rec.Date)
	}
}

func TestEmployeeAttendanceYearFilter(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	for _, d := range []time.Time{
		day(2023, time.December, 31),
		day(2024, time.January, 1),
		day(2024, time.December, 31),
		day(2025, time.January, 1),
	} {
		if _, err := svc.RecordAttendance(ctx, RecordInput{
			EmployeeID: 3, Date: d, Status: model.StatusPresent,
		}); err != nil {
			t.Fatalf("RecordAttendance(%v) error = %v", d, err)
		}
	}

	records, err := svc.EmployeeAttendance(ctx, 3, 2024)
	if err != nil {
		t.Fatalf("EmployeeAttendance() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("year filter returned %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.Date.Year() != 2024 {
			t.Errorf("record dated %v leaked into year 2024", rec.Date)
		}
	}

	all, err := svc.EmployeeAttendance(ctx, 3, 0)
	if err != nil {
		t.Fatalf("EmployeeAttendance() error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("unfiltered query returned %d records, want 4", len(all))
	}

	if _, err := svc.EmployeeAttendance(ctx, 0, 2024); !errors.Is(err, ErrInvalidEmployee) {
		t.Fatalf("EmployeeAttendance(0) error = %v, want ErrInvalidEmployee", err)
	}
}

func TestDailyRollCallDefaultsToAbsent(t *testing.T) {
	repo := newFakeRepo(
		model.Employee{ID: 1, Name: "Asha", Category: model.CategoryCook},
		model.Employee{ID: 2, Name: "Binod", Category: model.CategorySweeper},
		model.Employee{ID: 3, Name: "Chitra", Category: model.CategorySupervisor},
	)
	svc := NewService(repo)
	ctx := context.Background()
	d := day(2024, time.June, 5)

	if _, err := svc.RecordAttendance(ctx, RecordInput{
		EmployeeID: 1, Date: d, Status: model.StatusPresent,
	}); err != nil {
		t.Fatalf("RecordAttendance() error = %v", err)
	}
	if _, err := svc.RecordAttendance(ctx, RecordInput{
		EmployeeID: 2, Date: d, Status: model.StatusAbsent, LeaveType: model.LeaveCasual,
	}); err != nil {
		t.Fatalf("RecordAttendance() error = %v", err)
	}

	entries, err := svc.DailyRollCall(ctx, d)
	if err != nil {
		t.Fatalf("DailyRollCall() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("roll call has %d entries, want one per employee (3)", len(entries))
	}

	byID := make(map[uint]RollCallEntry)
	for _, entry := range entries {
		byID[entry.EmployeeID] = entry
	}

	if got := byID[1]; got.Attendance != model.StatusPresent || got.LeaveType != model.LeaveNone {
		t.Errorf("employee 1 = %s/%s, want present/none", got.Attendance, got.LeaveType)
	}
	if got := byID[2]; got.Attendance != model.StatusAbsent || got.LeaveType != model.LeaveCasual {
		t.Errorf("employee 2 = %s/%s, want absent/casual", got.Attendance, got.LeaveType)
	}
	// No record for employee 3: reported absent by default, not unknown
	if got := byID[3]; got.Attendance != model.StatusAbsent || got.LeaveType != model.LeaveNone {
		t.Errorf("employee 3 = %s/%s, want absent/none", got.Attendance, got.LeaveType)
	}
}

func TestDailyRollCallDefaultsToToday(t *testing.T) {
	repo := newFakeRepo(model.Employee{ID: 1, Name: "Asha", Category: model.CategoryCook})
	clock := &stubClock{now: time.Date(2024, time.June, 5, 14, 30, 0, 0, time.UTC)}
	svc := NewServiceWithClock(repo, clock)
	ctx := context.Background()

	if _, err := svc.RecordAttendance(ctx, RecordInput{
		EmployeeID: 1, Date: day(2024, time.June, 5), Status: model.StatusPresent,
	}); err != nil {
		t.Fatalf("RecordAttendance() error = %v", err)
	}

	entries, err := svc.DailyRollCall(ctx, time.Time{})
	if err != nil {
		t.Fatalf("DailyRollCall() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Attendance != model.StatusPresent {
		t.Fatalf("roll call for the clock's day did not pick up today's record: %+v", entries)
	}
}

func TestLeaveBalancesArithmetic(t *testing.T) {
	repo := newFakeRepo(model.Employee{ID: 5, Name: "Asha"})
	svc := NewService(repo)
	ctx := context.Background()

	absences := []struct {
		d         time.Time
		leaveType model.LeaveType
	}{
		{day(2024, time.January, 10), model.LeavePersonal},
		{day(2024, time.January, 11), model.LeavePersonal},
		{day(2024, time.February, 2), model.LeaveSick},
		{day(2024, time.March, 15), model.LeaveCasual},
		{day(2024, time.April, 1), model.LeaveNone},
	}
	for _, a := range absences {
		if _, err := svc.RecordAttendance(ctx, RecordInput{
			EmployeeID: 5, Date: a.d, Status: model.StatusAbsent, LeaveType: a.leaveType,
		}); err != nil {
			t.Fatalf("RecordAttendance() error = %v", err)
		}
	}
	// Present days never affect balances
	if _, err := svc.RecordAttendance(ctx, RecordInput{
		EmployeeID: 5, Date: day(2024, time.April, 2), Status: model.StatusPresent,
	}); err != nil {
		t.Fatalf("RecordAttendance() error = %v", err)
	}

	balances, err := svc.LeaveBalances(ctx, 5)
	if err != nil {
		t.Fatalf("LeaveBalances() error = %v", err)
	}

	want := map[model.LeaveType]int{
		model.LeavePersonal: 8,
		model.LeaveSick:     6,
		model.LeaveCasual:   6,
	}
	if len(balances) != len(want) {
		t.Fatalf("balances report %d categories (%v), want only the 3 quota categories", len(balances), balances)
	}
	for leaveType, remaining := range want {
		if balances[leaveType] != remaining {
			t.Errorf("%s balance = %d, want %d", leaveType, balances[leaveType], remaining)
		}
	}
	if _, ok := balances[model.LeaveNone]; ok {
		t.Error("balance for leave type none must not be reported")
	}
}

func TestLeaveBalancesGoNegativeBeyondLimit(t *testing.T) {
	repo := newFakeRepo(model.Employee{ID: 9, Name: "Binod"})
	svc := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := svc.RecordAttendance(ctx, RecordInput{
			EmployeeID: 9,
			Date:       day(2024, time.January, 1).AddDate(0, 0, i),
			Status:     model.StatusAbsent,
			LeaveType:  model.LeavePersonal,
		}); err != nil {
			t.Fatalf("RecordAttendance() error = %v", err)
		}
	}

	balances, err := svc.LeaveBalances(ctx, 9)
	if err != nil {
		t.Fatalf("LeaveBalances() error = %v", err)
	}
	if balances[model.LeavePersonal] != 0 {
		t.Fatalf("personal balance after 10 absences = %d, want 0", balances[model.LeavePersonal])
	}

	// The write path is advisory: an 11th absence is accepted and the
	// computed balance goes negative.
	if _, err := svc.RecordAttendance(ctx, RecordInput{
		EmployeeID: 9,
		Date:       day(2024, time.January, 20),
		Status:     model.StatusAbsent,
		LeaveType:  model.LeavePersonal,
	}); err != nil {
		t.Fatalf("11th RecordAttendance() error = %v", err)
	}

	balances, err = svc.LeaveBalances(ctx, 9)
	if err != nil {
		t.Fatalf("LeaveBalances() error = %v", err)
	}
	if balances[model.LeavePersonal] != -1 {
		t.Errorf("personal balance after 11 absences = %d, want -1", balances[model.LeavePersonal])
	}
}

func TestLeaveBalancesUnknownEmployee(t *testing.T) {
	svc := NewService(newFakeRepo())

	if _, err := svc.LeaveBalances(context.Background(), 42); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("LeaveBalances() error = %v, want ErrEmployeeNotFound", err)
	}
	if _, err := svc.LeaveBalances(context.Background(), 0); !errors.Is(err, ErrInvalidEmployee) {
		t.Fatalf("LeaveBalances(0) error = %v, want ErrInvalidEmployee", err)
	}
}
