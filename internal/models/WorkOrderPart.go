package models

import "time"

// WorkOrderPart records one consumption of a part by a work order. Repeated
// consumption of the same part on the same order produces one row per call;
// rows are never merged.
type WorkOrderPart struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	WorkOrderID uint `json:"work_order_id" gorm:"index;not null"`
	PartID      uint `json:"part_id" gorm:"index;not null"`
	Quantity    int  `json:"quantity" gorm:"not null"`

	Part *Part `json:"part,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
