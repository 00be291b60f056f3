package services

import (
	"context"

	"gorm.io/gorm"

	"workshop_manager/internal/models"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardCounts are the global counters shown on every screen: open work
// orders by status plus the number of parts at critical stock.
type DashboardCounts struct {
	Pending       int64 `json:"pending"`
	InProgress    int64 `json:"in_progress"`
	CriticalStock int64 `json:"critical_stock"`
}

func (s *DashboardService) Counts(ctx context.Context) (*DashboardCounts, error) {
	db := s.db.WithContext(ctx)

	var counts DashboardCounts
	if err := db.Model(&models.WorkOrder{}).
		Where("status = ?", models.StatusPending).
		Count(&counts.Pending).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.WorkOrder{}).
		Where("status = ?", models.StatusInProgress).
		Count(&counts.InProgress).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Part{}).
		Where("quantity <= ?", CriticalStockMax).
		Count(&counts.CriticalStock).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
