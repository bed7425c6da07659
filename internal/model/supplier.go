package model

import (
	"time"
)

// Supplier represents a vendor the canteen buys from
type Supplier struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);index;not null"`
	Email     string    `json:"email" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(20)"`
	Address   string    `json:"address" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}
