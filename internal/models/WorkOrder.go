package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type WorkOrderStatus string

const (
	StatusPending    WorkOrderStatus = "Pending"
	StatusInProgress WorkOrderStatus = "InProgress"
	StatusCompleted  WorkOrderStatus = "Completed"
	StatusCancelled  WorkOrderStatus = "Cancelled"
)

// ValidStatus reports whether s is one of the four recognized order statuses.
func ValidStatus(s WorkOrderStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// allowedTransitions is only consulted in strict mode. Completed and
// Cancelled are terminal.
var allowedTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to WorkOrderStatus) bool {
	if from == to {
		return true
	}
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ChecklistKeys is the fixed set of reception checklist items.
var ChecklistKeys = []string{
	"lights", "brakes", "tires", "battery", "fluids", "suspension", "wipers",
}

// DamageZoneKeys is the fixed set of body zones on the damage diagram.
var DamageZoneKeys = []string{
	"front_bumper", "hood", "windshield", "roof",
	"left_side", "right_side", "trunk", "rear_bumper",
}

func KnownChecklistKey(key string) bool {
	for _, k := range ChecklistKeys {
		if k == key {
			return true
		}
	}
	return false
}

func KnownDamageZone(key string) bool {
	for _, k := range DamageZoneKeys {
		if k == key {
			return true
		}
	}
	return false
}

type ChecklistItem struct {
	Checked bool   `json:"checked"`
	Note    string `json:"note"`
}

type ChecklistMap map[string]ChecklistItem

func (m ChecklistMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *ChecklistMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

type DamageZone struct {
	Marked      bool   `json:"marked"`
	Description string `json:"description"`
}

type DamageZoneMap map[string]DamageZone

func (m DamageZoneMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *DamageZoneMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value, dest interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	case nil:
		return nil
	}
	return errors.New("unsupported column type for JSON scan")
}

// WorkOrder is a repair ticket for one vehicle. Folio is the human-facing
// ticket number derived from Sequence; both carry unique indexes so that
// concurrent creations fall back to a retry instead of duplicating a folio.
type WorkOrder struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Folio    string `json:"folio" gorm:"uniqueIndex;not null"`
	Sequence uint   `json:"-" gorm:"uniqueIndex;not null"`

	VehicleID     uint            `json:"vehicle_id" gorm:"index;not null"`
	ReportedFault string          `json:"reported_fault" gorm:"type:text;not null"`
	Checklist     ChecklistMap    `json:"checklist" gorm:"type:jsonb"`
	DamageZones   DamageZoneMap   `json:"damage_zones" gorm:"type:jsonb"`
	PerformedWork string          `json:"performed_work" gorm:"type:text"`
	LaborCost     float64         `json:"labor_cost" gorm:"not null;default:0"`
	Status        WorkOrderStatus `json:"status" gorm:"type:varchar(16);index;not null;default:'Pending'"`

	CommittedDelivery *time.Time `json:"committed_delivery"`
	ActualDelivery    *time.Time `json:"actual_delivery"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parts []WorkOrderPart `json:"parts,omitempty" gorm:"foreignKey:WorkOrderID"`
}
