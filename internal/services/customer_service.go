package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"workshop_manager/internal/models"
)

const customersPerPage = 20

type CustomerFilter string

const (
	CustomerFilterAll             CustomerFilter = "all"
	CustomerFilterWithVehicles    CustomerFilter = "with_vehicles"
	CustomerFilterWithoutVehicles CustomerFilter = "without_vehicles"
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

type CustomerInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type CustomerCounters struct {
	Total           int64 `json:"total"`
	WithVehicles    int64 `json:"with_vehicles"`
	WithoutVehicles int64 `json:"without_vehicles"`
}

type CustomerList struct {
	Customers  []models.Customer `json:"data"`
	Pagination Pagination        `json:"pagination"`
	Counters   CustomerCounters  `json:"counters"`
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	customer := models.Customer{Name: *in.Name}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}

	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, in CustomerInput) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}

	if err := s.db.WithContext(ctx).Save(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Delete removes a customer. Customers that still own vehicles cannot be
// removed.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var vehicles int64
		if err := tx.Model(&models.Vehicle{}).
			Where("customer_id = ?", id).
			Count(&vehicles).Error; err != nil {
			return err
		}
		if vehicles > 0 {
			return ErrHasVehicles
		}

		return tx.Delete(&customer).Error
	})
}

func (s *CustomerService) List(ctx context.Context, search string, filter CustomerFilter, page int) (*CustomerList, error) {
	db := s.db.WithContext(ctx)

	q := db.Model(&models.Customer{})
	if search != "" {
		pat := likePattern(search)
		q = q.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`,
			pat, pat, pat,
		)
	}

	const ownsVehicle = "EXISTS (SELECT 1 FROM vehicles WHERE vehicles.customer_id = customers.id AND vehicles.deleted_at IS NULL)"
	switch filter {
	case CustomerFilterWithVehicles:
		q = q.Where(ownsVehicle)
	case CustomerFilterWithoutVehicles:
		q = q.Where("NOT " + ownsVehicle)
	}

	var customers []models.Customer
	pagination, err := paginate(q, "name ASC", page, customersPerPage, &customers)
	if err != nil {
		return nil, err
	}

	var counters CustomerCounters
	if err := db.Model(&models.Customer{}).Count(&counters.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Customer{}).Where(ownsVehicle).Count(&counters.WithVehicles).Error; err != nil {
		return nil, err
	}
	counters.WithoutVehicles = counters.Total - counters.WithVehicles

	return &CustomerList{Customers: customers, Pagination: pagination, Counters: counters}, nil
}

// Vehicles returns the vehicles owned by one customer, used to populate
// dependent form fields.
func (s *CustomerService) Vehicles(ctx context.Context, customerID uint) ([]models.Vehicle, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var vehicles []models.Vehicle
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("plate ASC").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}
