package models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Name  string `json:"name" gorm:"not null"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	Vehicles []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:CustomerID"`
}
