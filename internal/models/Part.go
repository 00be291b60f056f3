package models

import "gorm.io/gorm"

type Part struct {
	gorm.Model
	Name        string  `json:"name" gorm:"not null"`
	PartNumber  string  `json:"part_number" gorm:"index"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" gorm:"not null;default:0"`
	Price       float64 `json:"price" gorm:"not null;default:0"`
}
