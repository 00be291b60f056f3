package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"workshop_manager/internal/models"
)

const (
	workOrdersPerPage = 20

	// folioAttempts bounds the unique-constraint retry when two creations
	// race for the same sequence number.
	folioAttempts = 3
)

type WorkOrderService struct {
	db *gorm.DB

	// strict enforces the transition table (Completed/Cancelled terminal).
	// Off by default: the workshop historically allowed reopening orders.
	strict bool
}

func NewWorkOrderService(db *gorm.DB, strict bool) *WorkOrderService {
	return &WorkOrderService{db: db, strict: strict}
}

type PartRequest struct {
	PartID   uint `json:"part_id"`
	Quantity int  `json:"quantity"`
}

// SkippedPart reports one consumption request that failed validation during
// bulk creation. Other requests proceed regardless.
type SkippedPart struct {
	PartID uint   `json:"part_id"`
	Reason string `json:"reason"`
}

type CreateWorkOrderInput struct {
	VehicleID         uint                   `json:"vehicle_id"`
	ReportedFault     string                 `json:"reported_fault"`
	Checklist         models.ChecklistMap    `json:"checklist"`
	DamageZones       models.DamageZoneMap   `json:"damage_zones"`
	LaborCost         float64                `json:"labor_cost"`
	Status            models.WorkOrderStatus `json:"status"`             // Pending (default) or InProgress
	CommittedDelivery string                 `json:"committed_delivery"` // optional, 2006-01-02
	Parts             []PartRequest          `json:"parts"`
}

type WorkOrderLine struct {
	PartID     uint            `json:"part_id"`
	Name       string          `json:"name"`
	PartNumber string          `json:"part_number"`
	UnitPrice  float64         `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

type WorkOrderDetail struct {
	Order     models.WorkOrder `json:"order"`
	Lines     []WorkOrderLine  `json:"lines"`
	PartsCost decimal.Decimal  `json:"parts_cost"`
	LaborCost decimal.Decimal  `json:"labor_cost"`
	TotalCost decimal.Decimal  `json:"total_cost"`
}

type WorkOrderCounters struct {
	Pending        int64 `json:"pending"`
	InProgress     int64 `json:"in_progress"`
	CompletedToday int64 `json:"completed_today"`
	Open           int64 `json:"open"`
}

type WorkOrderList struct {
	Orders     []models.WorkOrder `json:"data"`
	Pagination Pagination         `json:"pagination"`
	Counters   WorkOrderCounters  `json:"counters"`
}

// Create opens a work order, assigns the next folio and applies any
// creation-time part consumptions. Each consumption request is validated on
// its own: a failing pair lands in the skipped list while the rest (and the
// order itself) still commit. The whole operation is one transaction, so a
// retry after a folio collision never leaves a half-consumed order behind.
func (s *WorkOrderService) Create(ctx context.Context, in CreateWorkOrderInput) (*models.WorkOrder, []SkippedPart, error) {
	if in.VehicleID == 0 {
		return nil, nil, fmt.Errorf("%w: vehicle_id is required", ErrValidation)
	}
	if in.ReportedFault == "" {
		return nil, nil, fmt.Errorf("%w: reported_fault is required", ErrValidation)
	}
	if in.LaborCost < 0 {
		return nil, nil, fmt.Errorf("%w: labor_cost cannot be negative", ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if status != models.StatusPending && status != models.StatusInProgress {
		return nil, nil, fmt.Errorf("%w: new orders start as Pending or InProgress", ErrValidation)
	}

	for key := range in.Checklist {
		if !models.KnownChecklistKey(key) {
			return nil, nil, fmt.Errorf("%w: unknown checklist item %q", ErrValidation, key)
		}
	}
	for key := range in.DamageZones {
		if !models.KnownDamageZone(key) {
			return nil, nil, fmt.Errorf("%w: unknown damage zone %q", ErrValidation, key)
		}
	}

	var committed *time.Time
	if in.CommittedDelivery != "" {
		parsed, err := time.Parse("2006-01-02", in.CommittedDelivery)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: committed_delivery must be YYYY-MM-DD", ErrValidation)
		}
		committed = &parsed
	}

	var (
		order   models.WorkOrder
		skipped []SkippedPart
	)
	for attempt := 0; attempt < folioAttempts; attempt++ {
		order = models.WorkOrder{
			VehicleID:         in.VehicleID,
			ReportedFault:     in.ReportedFault,
			Checklist:         in.Checklist,
			DamageZones:       in.DamageZones,
			LaborCost:         in.LaborCost,
			Status:            status,
			CommittedDelivery: committed,
		}
		skipped = nil

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var vehicle models.Vehicle
			if err := tx.First(&vehicle, in.VehicleID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("vehicle %d: %w", in.VehicleID, ErrNotFound)
				}
				return err
			}

			var maxSeq int64
			if err := tx.Model(&models.WorkOrder{}).
				Select("COALESCE(MAX(sequence), 0)").
				Scan(&maxSeq).Error; err != nil {
				return err
			}
			order.Sequence = uint(maxSeq) + 1
			order.Folio = FormatFolio(order.Sequence)

			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			for _, req := range in.Parts {
				if skip := consumeInto(tx, &order, req); skip != nil {
					skipped = append(skipped, *skip)
				}
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue // lost the folio race, try again
			}
			return nil, nil, err
		}

		logrus.WithFields(logrus.Fields{
			"folio":   order.Folio,
			"vehicle": order.VehicleID,
			"status":  order.Status,
			"skipped": len(skipped),
		}).Info("work order created")
		return &order, skipped, nil
	}
	return nil, nil, fmt.Errorf("could not allocate a folio after %d attempts", folioAttempts)
}

// FormatFolio renders a sequence number as a fixed-width ticket tag.
func FormatFolio(seq uint) string {
	return fmt.Sprintf("OT-%06d", seq)
}

// ConsumePart takes quantity units of a part out of stock for an InProgress
// order. Inventory is untouched when any precondition fails.
func (s *WorkOrderService) ConsumePart(ctx context.Context, orderID, partID uint, quantity int) (*models.WorkOrderPart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var row *models.WorkOrderPart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.WorkOrder
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.Status != models.StatusInProgress {
			return ErrInvalidState
		}

		var part models.Part
		if err := tx.First(&part, partID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("part %d: %w", partID, ErrNotFound)
			}
			return err
		}
		if part.Quantity < quantity {
			return fmt.Errorf("%w: %s has %d on hand, %d requested",
				ErrInsufficientStock, part.Name, part.Quantity, quantity)
		}

		return applyConsumption(tx, order.ID, &part, quantity, &row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// consumeInto validates and applies one creation-time consumption request.
// A non-nil return describes why the request was skipped.
func consumeInto(tx *gorm.DB, order *models.WorkOrder, req PartRequest) *SkippedPart {
	if req.Quantity <= 0 {
		return &SkippedPart{PartID: req.PartID, Reason: "quantity must be positive"}
	}
	if order.Status != models.StatusInProgress {
		return &SkippedPart{PartID: req.PartID, Reason: "order is not in progress"}
	}

	var part models.Part
	if err := tx.First(&part, req.PartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SkippedPart{PartID: req.PartID, Reason: "part not found"}
		}
		return &SkippedPart{PartID: req.PartID, Reason: "lookup failed: " + err.Error()}
	}
	if part.Quantity < req.Quantity {
		return &SkippedPart{
			PartID: req.PartID,
			Reason: fmt.Sprintf("insufficient stock: %d on hand, %d requested", part.Quantity, req.Quantity),
		}
	}

	var row *models.WorkOrderPart
	if err := applyConsumption(tx, order.ID, &part, req.Quantity, &row); err != nil {
		return &SkippedPart{PartID: req.PartID, Reason: err.Error()}
	}
	order.Parts = append(order.Parts, *row)
	return nil
}

// applyConsumption decrements stock with a guarded update and records the
// association row. The quantity >= ? guard keeps stock from going negative
// even if another transaction got there first.
func applyConsumption(tx *gorm.DB, orderID uint, part *models.Part, quantity int, out **models.WorkOrderPart) error {
	res := tx.Model(&models.Part{}).
		Where("id = ? AND quantity >= ?", part.ID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrInsufficientStock, part.Name)
	}

	row := models.WorkOrderPart{
		WorkOrderID: orderID,
		PartID:      part.ID,
		Quantity:    quantity,
	}
	if err := tx.Create(&row).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"order":    orderID,
		"part":     part.ID,
		"consumed": quantity,
	}).Info("part consumed")

	*out = &row
	return nil
}

// SetStatus overwrites the order status. Unknown values are rejected; in
// strict mode the transition table applies as well. Entering Completed
// stamps the actual delivery date the first time.
func (s *WorkOrderService) SetStatus(ctx context.Context, orderID uint, status models.WorkOrderStatus) (*models.WorkOrder, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var order models.WorkOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if s.strict && !models.CanTransition(order.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
		}

		previous := order.Status
		order.Status = status
		if status == models.StatusCompleted && order.ActualDelivery == nil {
			now := time.Now()
			order.ActualDelivery = &now
		}

		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"folio": order.Folio,
			"from":  previous,
			"to":    status,
		}).Info("work order status changed")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *WorkOrderService) UpdatePerformedWork(ctx context.Context, orderID uint, text string) (*models.WorkOrder, error) {
	var order models.WorkOrder
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	order.PerformedWork = text
	if err := s.db.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Detail loads an order with its consumed parts and the cost rollup
// (labor + parts at current unit prices).
func (s *WorkOrderService) Detail(ctx context.Context, orderID uint) (*WorkOrderDetail, error) {
	db := s.db.WithContext(ctx)

	var order models.WorkOrder
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rows []struct {
		PartID     uint
		Name       string
		PartNumber string
		Price      float64
		Quantity   int
	}
	if err := db.Table("work_order_parts").
		Select("work_order_parts.part_id, parts.name, parts.part_number, parts.price, work_order_parts.quantity").
		Joins("JOIN parts ON parts.id = work_order_parts.part_id").
		Where("work_order_parts.work_order_id = ?", orderID).
		Order("work_order_parts.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	detail := WorkOrderDetail{
		Order:     order,
		LaborCost: decimal.NewFromFloat(order.LaborCost),
		PartsCost: decimal.Zero,
	}
	for _, r := range rows {
		lineTotal := decimal.NewFromFloat(r.Price).Mul(decimal.NewFromInt(int64(r.Quantity)))
		detail.Lines = append(detail.Lines, WorkOrderLine{
			PartID:     r.PartID,
			Name:       r.Name,
			PartNumber: r.PartNumber,
			UnitPrice:  r.Price,
			Quantity:   r.Quantity,
			LineTotal:  lineTotal,
		})
		detail.PartsCost = detail.PartsCost.Add(lineTotal)
	}
	detail.TotalCost = detail.PartsCost.Add(detail.LaborCost)

	return &detail, nil
}

// List pages through work orders, newest first. Search matches the vehicle
// plate or the owning customer's name.
func (s *WorkOrderService) List(ctx context.Context, search string, status models.WorkOrderStatus, page int) (*WorkOrderList, error) {
	db := s.db.WithContext(ctx)

	q := db.Model(&models.WorkOrder{})
	if status != "" && status != "all" {
		if !models.ValidStatus(status) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		q = q.Where("work_orders.status = ?", status)
	}
	if search != "" {
		pat := likePattern(search)
		q = q.
			Joins("JOIN vehicles ON vehicles.id = work_orders.vehicle_id").
			Joins("JOIN customers ON customers.id = vehicles.customer_id").
			Where(`LOWER(vehicles.plate) LIKE ? ESCAPE '\' OR LOWER(customers.name) LIKE ? ESCAPE '\'`, pat, pat)
	}

	var orders []models.WorkOrder
	pagination, err := paginate(q, "work_orders.created_at DESC", page, workOrdersPerPage, &orders)
	if err != nil {
		return nil, err
	}

	counters, err := s.counters(ctx)
	if err != nil {
		return nil, err
	}

	return &WorkOrderList{Orders: orders, Pagination: pagination, Counters: *counters}, nil
}

func (s *WorkOrderService) counters(ctx context.Context) (*WorkOrderCounters, error) {
	db := s.db.WithContext(ctx)

	var counters WorkOrderCounters
	if err := db.Model(&models.WorkOrder{}).
		Where("status = ?", models.StatusPending).
		Count(&counters.Pending).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.WorkOrder{}).
		Where("status = ?", models.StatusInProgress).
		Count(&counters.InProgress).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&models.WorkOrder{}).
		Where("status = ? AND actual_delivery >= ?", models.StatusCompleted, startOfDay).
		Count(&counters.CompletedToday).Error; err != nil {
		return nil, err
	}

	counters.Open = counters.Pending + counters.InProgress
	return &counters, nil
}
