package model

import (
	"time"
)

// Employee represents a canteen staff member
type Employee struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"type:varchar(100);index;not null"`
	Email       string           `json:"email" gorm:"type:varchar(100)"`
	Phone       string           `json:"phone" gorm:"type:varchar(20)"`
	Address     string           `json:"address" gorm:"type:text"`
	Category    EmployeeCategory `json:"category" gorm:"type:varchar(30);index"`
	Salary      float64          `json:"salary"`
	JoiningDate time.Time        `json:"joiningDate" gorm:"autoCreateTime"`
	// ManagerID links the employee to the manager account that created it.
	// Only set when a manager registers the employee.
	ManagerID *uint     `json:"managerId,omitempty" gorm:"index"`
	Canteen   Canteen   `json:"canteen" gorm:"type:varchar(20);index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
