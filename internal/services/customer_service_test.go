package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"workshop_manager/internal/models"
)

func TestCustomerCreateRequiresName(t *testing.T) {
	svc := NewCustomerService(newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, CustomerInput{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}

	name := "Pedro Salas"
	phone := "555-0101"
	customer, err := svc.Create(ctx, CustomerInput{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if customer.ID == 0 || customer.Name != name {
		t.Fatalf("unexpected customer %+v", customer)
	}
}

func TestCustomerDeleteGuardedByVehicles(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)
	ctx := context.Background()

	owner := seedCustomer(t, db, "Marta Díaz")
	seedVehicle(t, db, owner.ID, "JKL4455")

	if err := svc.Delete(ctx, owner.ID); !errors.Is(err, ErrHasVehicles) {
		t.Fatalf("got %v, want ErrHasVehicles", err)
	}

	// Still resolvable after the rejected delete.
	var still models.Customer
	if err := db.First(&still, owner.ID).Error; err != nil {
		t.Fatalf("customer vanished after rejected delete: %v", err)
	}

	empty := seedCustomer(t, db, "Sin Autos")
	if err := svc.Delete(ctx, empty.ID); err != nil {
		t.Fatalf("delete childless customer: %v", err)
	}
	if err := db.First(&still, empty.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected customer to be unresolvable, got %v", err)
	}

	if err := svc.Delete(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCustomerListFiltersAndSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)
	ctx := context.Background()

	withCar := seedCustomer(t, db, "Carla Núñez")
	seedVehicle(t, db, withCar.ID, "CAR0001")
	seedCustomer(t, db, "Bruno Paz")

	all, err := svc.List(ctx, "", CustomerFilterAll, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Counters.Total != 2 || all.Counters.WithVehicles != 1 || all.Counters.WithoutVehicles != 1 {
		t.Fatalf("unexpected counters: %+v", all.Counters)
	}
	// Deterministic order by name.
	if len(all.Customers) != 2 || all.Customers[0].Name != "Bruno Paz" {
		t.Fatalf("expected name-sorted page, got %+v", all.Customers)
	}

	withVehicles, err := svc.List(ctx, "", CustomerFilterWithVehicles, 1)
	if err != nil {
		t.Fatalf("list with vehicles: %v", err)
	}
	if len(withVehicles.Customers) != 1 || withVehicles.Customers[0].ID != withCar.ID {
		t.Fatalf("with_vehicles filter returned %+v", withVehicles.Customers)
	}

	without, err := svc.List(ctx, "", CustomerFilterWithoutVehicles, 1)
	if err != nil {
		t.Fatalf("list without vehicles: %v", err)
	}
	if len(without.Customers) != 1 || without.Customers[0].Name != "Bruno Paz" {
		t.Fatalf("without_vehicles filter returned %+v", without.Customers)
	}

	search, err := svc.List(ctx, "carla", CustomerFilterAll, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(search.Customers) != 1 || search.Customers[0].ID != withCar.ID {
		t.Fatalf("search returned %+v", search.Customers)
	}
}

func TestCustomerVehiclesLookup(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(db)
	ctx := context.Background()

	owner := seedCustomer(t, db, "Marta Díaz")
	seedVehicle(t, db, owner.ID, "BBB0002")
	seedVehicle(t, db, owner.ID, "AAA0001")

	vehicles, err := svc.Vehicles(ctx, owner.ID)
	if err != nil {
		t.Fatalf("vehicles: %v", err)
	}
	if len(vehicles) != 2 || vehicles[0].Plate != "AAA0001" {
		t.Fatalf("expected plate-sorted vehicles, got %+v", vehicles)
	}

	if _, err := svc.Vehicles(ctx, 4242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
