package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"workshop_manager/internal/models"
)

const partsPerPage = 25

// Stock buckets used by the parts filter and the dashboards.
const (
	LowStockMax      = 20
	CriticalStockMax = 5
)

type StockFilter string

const (
	StockFilterAll      StockFilter = "all"
	StockFilterLow      StockFilter = "low"
	StockFilterCritical StockFilter = "critical"
	StockFilterInStock  StockFilter = "in_stock"
)

type PartService struct {
	db *gorm.DB
}

func NewPartService(db *gorm.DB) *PartService {
	return &PartService{db: db}
}

type CreatePartInput struct {
	Name        string  `json:"name"`
	PartNumber  string  `json:"part_number"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type UpdatePartInput struct {
	Name        *string  `json:"name"`
	PartNumber  *string  `json:"part_number"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
}

type PartCounters struct {
	Total      int64           `json:"total"`
	Low        int64           `json:"low"`
	Critical   int64           `json:"critical"`
	StockValue decimal.Decimal `json:"stock_value"`
}

type PartList struct {
	Parts      []models.Part `json:"data"`
	Pagination Pagination    `json:"pagination"`
	Counters   PartCounters  `json:"counters"`
}

func (s *PartService) Create(ctx context.Context, in CreatePartInput) (*models.Part, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	part := models.Part{
		Name:        in.Name,
		PartNumber:  in.PartNumber,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
	}
	if err := s.db.WithContext(ctx).Create(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (s *PartService) Update(ctx context.Context, id uint, in UpdatePartInput) (*models.Part, error) {
	var part models.Part
	if err := s.db.WithContext(ctx).First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		part.Name = *in.Name
	}
	if in.PartNumber != nil {
		part.PartNumber = *in.PartNumber
	}
	if in.Description != nil {
		part.Description = *in.Description
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
		}
		part.Quantity = *in.Quantity
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		part.Price = *in.Price
	}

	if err := s.db.WithContext(ctx).Save(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (s *PartService) Get(ctx context.Context, id uint) (*models.Part, error) {
	var part models.Part
	if err := s.db.WithContext(ctx).First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

// List pages through the parts catalog, parts with the least stock first.
func (s *PartService) List(ctx context.Context, search string, filter StockFilter, page int) (*PartList, error) {
	db := s.db.WithContext(ctx)

	q := db.Model(&models.Part{})
	if search != "" {
		pat := likePattern(search)
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(part_number) LIKE ? ESCAPE '\'`, pat, pat)
	}

	switch filter {
	case StockFilterLow:
		q = q.Where("quantity <= ? AND quantity > 0", LowStockMax)
	case StockFilterCritical:
		q = q.Where("quantity <= ?", CriticalStockMax)
	case StockFilterInStock:
		q = q.Where("quantity > 0")
	}

	var parts []models.Part
	pagination, err := paginate(q, "quantity ASC", page, partsPerPage, &parts)
	if err != nil {
		return nil, err
	}

	counters, err := s.counters(ctx)
	if err != nil {
		return nil, err
	}

	return &PartList{Parts: parts, Pagination: pagination, Counters: *counters}, nil
}

func (s *PartService) counters(ctx context.Context) (*PartCounters, error) {
	db := s.db.WithContext(ctx)

	var counters PartCounters
	if err := db.Model(&models.Part{}).Count(&counters.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Part{}).
		Where("quantity <= ? AND quantity > 0", LowStockMax).
		Count(&counters.Low).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Part{}).
		Where("quantity <= ?", CriticalStockMax).
		Count(&counters.Critical).Error; err != nil {
		return nil, err
	}

	// Stock value is summed with decimals so the dashboard figure does not
	// drift with float rounding.
	var rows []struct {
		Quantity int
		Price    float64
	}
	if err := db.Model(&models.Part{}).Select("quantity, price").Find(&rows).Error; err != nil {
		return nil, err
	}
	value := decimal.Zero
	for _, r := range rows {
		value = value.Add(decimal.NewFromFloat(r.Price).Mul(decimal.NewFromInt(int64(r.Quantity))))
	}
	counters.StockValue = value

	return &counters, nil
}
