package model

import (
	"time"
)

// Attendance is the single daily status of one employee. The composite
// unique index on (employee_id, date) is the write-path serialization
// point: a second submission for the same day updates the row in place
// instead of inserting a duplicate.
type Attendance struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	EmployeeID uint             `json:"employeeId" gorm:"not null;uniqueIndex:idx_employee_date"`
	Date       time.Time        `json:"date" gorm:"type:date;not null;uniqueIndex:idx_employee_date"`
	Status     AttendanceStatus `json:"status" gorm:"type:varchar(10);not null"`
	LeaveType  LeaveType        `json:"leaveType" gorm:"type:varchar(10);not null;default:'none'"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
