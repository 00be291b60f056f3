package models

import "gorm.io/gorm"

type Vehicle struct {
	gorm.Model
	Make       string `json:"make" gorm:"not null"`
	ModelName  string `json:"model" gorm:"column:model;not null"`
	Year       int    `json:"year" gorm:"not null"`
	Plate      string `json:"plate" gorm:"uniqueIndex;not null"` // stored uppercase
	Odometer   int    `json:"odometer"`
	CustomerID uint   `json:"customer_id" gorm:"index;not null"`

	WorkOrders []WorkOrder `json:"work_orders,omitempty" gorm:"foreignKey:VehicleID"`
}
