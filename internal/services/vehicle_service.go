package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"workshop_manager/internal/models"
)

const vehiclesPerPage = 20

type VehicleService struct {
	db *gorm.DB
}

func NewVehicleService(db *gorm.DB) *VehicleService {
	return &VehicleService{db: db}
}

type CreateVehicleInput struct {
	Make       string `json:"make"`
	ModelName  string `json:"model"`
	Year       int    `json:"year"`
	Plate      string `json:"plate"`
	Odometer   int    `json:"odometer"`
	CustomerID uint   `json:"customer_id"`
}

type UpdateVehicleInput struct {
	Make       *string `json:"make"`
	ModelName  *string `json:"model"`
	Year       *int    `json:"year"`
	Plate      *string `json:"plate"`
	Odometer   *int    `json:"odometer"`
	CustomerID *uint   `json:"customer_id"`
}

type VehicleCounters struct {
	Total int64 `json:"total"`
}

type VehicleList struct {
	Vehicles   []models.Vehicle `json:"data"`
	Pagination Pagination       `json:"pagination"`
	Counters   VehicleCounters  `json:"counters"`
}

// NormalizePlate uppercases and trims a plate so that uniqueness is
// case-insensitive.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func (s *VehicleService) Create(ctx context.Context, in CreateVehicleInput) (*models.Vehicle, error) {
	if in.Make == "" || in.ModelName == "" || in.Plate == "" || in.CustomerID == 0 {
		return nil, fmt.Errorf("%w: make, model, plate and customer_id are required", ErrValidation)
	}
	if in.Year <= 0 {
		return nil, fmt.Errorf("%w: year must be positive", ErrValidation)
	}
	if in.Odometer < 0 {
		return nil, fmt.Errorf("%w: odometer cannot be negative", ErrValidation)
	}

	plate := NormalizePlate(in.Plate)

	vehicle := models.Vehicle{
		Make:       in.Make,
		ModelName:  in.ModelName,
		Year:       in.Year,
		Plate:      plate,
		Odometer:   in.Odometer,
		CustomerID: in.CustomerID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.Customer
		if err := tx.First(&owner, in.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("customer %d: %w", in.CustomerID, ErrNotFound)
			}
			return err
		}

		if err := plateAvailable(tx, plate, 0); err != nil {
			return err
		}

		if err := tx.Create(&vehicle).Error; err != nil {
			// Unique index catches creations racing past the check above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicatePlate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id uint, in UpdateVehicleInput) (*models.Vehicle, error) {
	var vehicle models.Vehicle

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vehicle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if in.Make != nil {
			vehicle.Make = *in.Make
		}
		if in.ModelName != nil {
			vehicle.ModelName = *in.ModelName
		}
		if in.Year != nil {
			if *in.Year <= 0 {
				return fmt.Errorf("%w: year must be positive", ErrValidation)
			}
			vehicle.Year = *in.Year
		}
		if in.Odometer != nil {
			if *in.Odometer < 0 {
				return fmt.Errorf("%w: odometer cannot be negative", ErrValidation)
			}
			vehicle.Odometer = *in.Odometer
		}
		if in.CustomerID != nil {
			var owner models.Customer
			if err := tx.First(&owner, *in.CustomerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("customer %d: %w", *in.CustomerID, ErrNotFound)
				}
				return err
			}
			vehicle.CustomerID = *in.CustomerID
		}
		if in.Plate != nil {
			plate := NormalizePlate(*in.Plate)
			if plate == "" {
				return fmt.Errorf("%w: plate cannot be empty", ErrValidation)
			}
			if plate != vehicle.Plate {
				if err := plateAvailable(tx, plate, vehicle.ID); err != nil {
					return err
				}
				vehicle.Plate = plate
			}
		}

		if err := tx.Save(&vehicle).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicatePlate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Delete removes a vehicle permanently. The delete is unscoped: a
// soft-deleted row would keep holding the plate's unique index, so the
// plate could never be registered again.
func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	var vehicle models.Vehicle
	if err := s.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Unscoped().Delete(&vehicle).Error
}

func (s *VehicleService) List(ctx context.Context, search string, customerID uint, page int) (*VehicleList, error) {
	db := s.db.WithContext(ctx)

	q := db.Model(&models.Vehicle{})
	if search != "" {
		pat := likePattern(search)
		q = q.Where(
			`LOWER(plate) LIKE ? ESCAPE '\' OR LOWER(make) LIKE ? ESCAPE '\' OR LOWER(model) LIKE ? ESCAPE '\'`,
			pat, pat, pat,
		)
	}
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}

	var vehicles []models.Vehicle
	pagination, err := paginate(q, "plate ASC", page, vehiclesPerPage, &vehicles)
	if err != nil {
		return nil, err
	}

	var counters VehicleCounters
	if err := db.Model(&models.Vehicle{}).Count(&counters.Total).Error; err != nil {
		return nil, err
	}

	return &VehicleList{Vehicles: vehicles, Pagination: pagination, Counters: counters}, nil
}

func plateAvailable(tx *gorm.DB, plate string, excludeID uint) error {
	var existing models.Vehicle
	q := tx.Where("plate = ?", plate)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&existing).Error; err == nil {
		return ErrDuplicatePlate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
