package model

import (
	"time"
)

// User represents an application account stored in the database
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	Role      Role      `json:"role" gorm:"type:varchar(20);default:'user'"`
	Canteen   Canteen   `json:"canteen" gorm:"type:varchar(20);index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
