package model

import (
	"time"
)

// Customer represents a canteen customer
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);index"`
	Email     string    `json:"email" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Address   string    `json:"address" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}
