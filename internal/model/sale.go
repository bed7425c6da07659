package model

import (
	"time"
)

// Sale represents one sale transaction with its line items
type Sale struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	CustomerID  *uint      `json:"customerId,omitempty" gorm:"index"`
	Customer    *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:ID"`
	Items       []SaleItem `json:"items" gorm:"foreignKey:SaleID"`
	TotalAmount float64    `json:"totalAmount"`
	SaleDate    time.Time  `json:"saleDate" gorm:"index;autoCreateTime"`
	Canteen     Canteen    `json:"canteen" gorm:"type:varchar(20);index;not null"`
}

// SaleItem is a line entry of a sale
type SaleItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	SaleID   uint    `json:"saleId" gorm:"index;not null"`
	ItemName string  `json:"itemName" gorm:"type:varchar(100)"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
