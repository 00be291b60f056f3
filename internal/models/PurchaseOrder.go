package models

import (
	"time"

	"gorm.io/gorm"
)

type PurchaseOrder struct {
	gorm.Model
	Supplier string    `json:"supplier" gorm:"not null"`
	Date     time.Time `json:"date" gorm:"not null"`
	Total    float64   `json:"total" gorm:"not null"`
}
