package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"workshop_manager/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Vehicle{},
		&models.Part{},
		&models.PurchaseOrder{},
		&models.WorkOrder{},
		&models.WorkOrderPart{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer := models.Customer{Name: name}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return &customer
}

func seedVehicle(t *testing.T, db *gorm.DB, customerID uint, plate string) *models.Vehicle {
	t.Helper()
	vehicle := models.Vehicle{
		Make:       "Nissan",
		ModelName:  "Tsuru",
		Year:       2014,
		Plate:      plate,
		CustomerID: customerID,
	}
	if err := db.Create(&vehicle).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return &vehicle
}

func seedPart(t *testing.T, db *gorm.DB, name string, quantity int, price float64) *models.Part {
	t.Helper()
	part := models.Part{Name: name, Quantity: quantity, Price: price}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("seed part: %v", err)
	}
	return &part
}

func partQuantity(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var part models.Part
	if err := db.First(&part, id).Error; err != nil {
		t.Fatalf("reload part: %v", err)
	}
	return part.Quantity
}
