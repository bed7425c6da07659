package ledger

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rems1212/Employee-Canteen/internal/model"
)

// GormRepository implements Repository on a gorm connection.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm-backed attendance repository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// UpsertAttendance relies on the (employee_id, date) unique index: a conflict
// updates status and leave type in place instead of inserting a second row.
func (r *GormRepository) UpsertAttendance(ctx context.Context, rec *model.Attendance) (*model.Attendance, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "leave_type", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller gets the stored row (the conflict path does not
	// backfill the existing primary key into rec).
	var stored model.Attendance
	err = r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", rec.EmployeeID, rec.Date).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GormRepository) ListByEmployee(ctx context.Context, employeeID uint, from, to time.Time) ([]model.Attendance, error) {
	query := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date < ?", to)
	}

	var records []model.Attendance
	if err := query.Order("date asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormRepository) ListByDay(ctx context.Context, day time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", day, day.Add(24*time.Hour)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormRepository) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := r.db.WithContext(ctx).Order("name asc").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *GormRepository) EmployeeExists(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) CountAbsences(ctx context.Context, employeeID uint) (map[model.LeaveType]int, error) {
	var rows []struct {
		LeaveType model.LeaveType
		Count     int
	}
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Select("leave_type, count(*) as count").
		Where("employee_id = ? AND status = ?", employeeID, model.StatusAbsent).
		Group("leave_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	taken := make(map[model.LeaveType]int, len(rows))
	for _, row := range rows {
		leaveType := row.LeaveType
		if leaveType == "" {
			leaveType = model.LeaveNone
		}
		taken[leaveType] = row.Count
	}
	return taken, nil
}
