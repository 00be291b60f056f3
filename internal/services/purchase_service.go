package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"workshop_manager/internal/models"
)

const purchasesPerPage = 15

type PurchaseService struct {
	db *gorm.DB
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

type ReceivePurchaseInput struct {
	Supplier string  `json:"supplier"`
	Total    float64 `json:"total"`
	Date     string  `json:"date"` // optional, 2006-01-02; defaults to today
	PartID   *uint   `json:"part_id"`
	Quantity *int    `json:"quantity"`
}

type PurchaseCounters struct {
	Total int64 `json:"total"`
}

type PurchaseList struct {
	Purchases  []models.PurchaseOrder `json:"data"`
	Pagination Pagination             `json:"pagination"`
	Counters   PurchaseCounters       `json:"counters"`
}

// Receive always records the purchase order. When a part and quantity are
// supplied the part's stock is incremented in the same transaction; a bad
// part reference or quantity is reported as a warning and does not undo the
// purchase record.
func (s *PurchaseService) Receive(ctx context.Context, in ReceivePurchaseInput) (*models.PurchaseOrder, []string, error) {
	if in.Supplier == "" {
		return nil, nil, fmt.Errorf("%w: supplier is required", ErrValidation)
	}
	if in.Total < 0 {
		return nil, nil, fmt.Errorf("%w: total cannot be negative", ErrValidation)
	}

	// Default to today's local midnight; Truncate would round against the
	// UTC epoch and shift the date in zones ahead of UTC.
	now := time.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if in.Date != "" {
		parsed, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		date = parsed
	}

	order := models.PurchaseOrder{
		Supplier: in.Supplier,
		Date:     date,
		Total:    in.Total,
	}

	var warnings []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if in.PartID == nil && in.Quantity == nil {
			return nil
		}
		if in.PartID == nil || in.Quantity == nil {
			warnings = append(warnings, "both part_id and quantity are needed to receive stock")
			return nil
		}
		if *in.Quantity <= 0 {
			warnings = append(warnings, "invalid quantity, stock not updated")
			return nil
		}

		var part models.Part
		if err := tx.First(&part, *in.PartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				warnings = append(warnings, fmt.Sprintf("part %d not found, stock not updated", *in.PartID))
				return nil
			}
			return err
		}

		if err := tx.Model(&part).
			Update("quantity", gorm.Expr("quantity + ?", *in.Quantity)).Error; err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"purchase_order": order.ID,
			"part":           part.ID,
			"received":       *in.Quantity,
		}).Info("stock received")
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, warnings, nil
}

func (s *PurchaseService) List(ctx context.Context, search string, page int) (*PurchaseList, error) {
	db := s.db.WithContext(ctx)

	q := db.Model(&models.PurchaseOrder{})
	if search != "" {
		q = q.Where(`LOWER(supplier) LIKE ? ESCAPE '\'`, likePattern(search))
	}

	var purchases []models.PurchaseOrder
	pagination, err := paginate(q, "date DESC, id DESC", page, purchasesPerPage, &purchases)
	if err != nil {
		return nil, err
	}

	var counters PurchaseCounters
	if err := db.Model(&models.PurchaseOrder{}).Count(&counters.Total).Error; err != nil {
		return nil, err
	}

	return &PurchaseList{Purchases: purchases, Pagination: pagination, Counters: counters}, nil
}
