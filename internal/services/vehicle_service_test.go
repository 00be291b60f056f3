package services

import (
	"context"
	"errors"
	"testing"
)

func TestVehicleCreateNormalizesPlate(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicleService(db)
	ctx := context.Background()

	owner := seedCustomer(t, db, "Elena Vega")

	vehicle, err := svc.Create(ctx, CreateVehicleInput{
		Make:       "Toyota",
		ModelName:  "Hilux",
		Year:       2019,
		Plate:      " abc123 ",
		CustomerID: owner.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if vehicle.Plate != "ABC123" {
		t.Fatalf("plate = %q, want ABC123", vehicle.Plate)
	}
}

func TestVehicleCreateRejectsDuplicatePlate(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicleService(db)
	ctx := context.Background()

	owner := seedCustomer(t, db, "Elena Vega")
	seedVehicle(t, db, owner.ID, "DUP777")

	// Case-insensitive: the incoming plate is uppercased before the check.
	_, err := svc.Create(ctx, CreateVehicleInput{
		Make:       "Honda",
		ModelName:  "Civic",
		Year:       2021,
		Plate:      "dup777",
		CustomerID: owner.ID,
	})
	if !errors.Is(err, ErrDuplicatePlate) {
		t.Fatalf("got %v, want ErrDuplicatePlate", err)
	}
}

func TestVehicleCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicleService(db)
	ctx := context.Background()

	owner := seedCustomer(t, db, "Elena Vega")

	if _, err := svc.Create(ctx, CreateVehicleInput{Make: "Kia", CustomerID: owner.ID}); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, CreateVehicleInput{
		Make: "Kia", ModelName: "Rio", Year: 0, Plate: "KIA001", CustomerID: owner.ID,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation for year", err)
	}
	if _, err := svc.Create(ctx, CreateVehicleInput{
		Make: "Kia", ModelName: "Rio", Year: 2020, Plate: "KIA001", CustomerID: 999,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for unknown customer", err)
	}
}

func TestVehicleUpdatePlateConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicleService(db)
	ctx := context.Background()

	owner := seedCustomer(t, db, "Elena Vega")
	seedVehicle(t, db, owner.ID, "AAA0001")
	second := seedVehicle(t, db, owner.ID, "BBB0002")

	taken := "aaa0001"
	if _, err := svc.Update(ctx, second.ID, UpdateVehicleInput{Plate: &taken}); !errors.Is(err, ErrDuplicatePlate) {
		t.Fatalf("got %v, want ErrDuplicatePlate", err)
	}

	fresh := "ccc0003"
	updated, err := svc.Update(ctx, second.ID, UpdateVehicleInput{Plate: &fresh})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Plate != "CCC0003" {
		t.Fatalf("plate = %q, want CCC0003", updated.Plate)
	}
}

func TestVehicleDeleteFreesPlate(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicleService(db)
	ctx := context.Background()

	owner := seedCustomer(t, db, "Elena Vega")
	gone := seedVehicle(t, db, owner.ID, "REUSE01")

	if err := svc.Delete(ctx, gone.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	again, err := svc.Create(ctx, CreateVehicleInput{
		Make:       "Mazda",
		ModelName:  "3",
		Year:       2022,
		Plate:      "reuse01",
		CustomerID: owner.ID,
	})
	if err != nil {
		t.Fatalf("re-create with freed plate: %v", err)
	}
	if again.Plate != "REUSE01" {
		t.Fatalf("plate = %q, want REUSE01", again.Plate)
	}
}

func TestVehicleListSearchAndFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicleService(db)
	ctx := context.Background()

	elena := seedCustomer(t, db, "Elena Vega")
	ivan := seedCustomer(t, db, "Iván Soto")
	seedVehicle(t, db, elena.ID, "AAA0001")
	target := seedVehicle(t, db, ivan.ID, "ZZZ0009")

	byCustomer, err := svc.List(ctx, "", ivan.ID, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byCustomer.Vehicles) != 1 || byCustomer.Vehicles[0].ID != target.ID {
		t.Fatalf("customer filter returned %+v", byCustomer.Vehicles)
	}

	bySearch, err := svc.List(ctx, "zzz", 0, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(bySearch.Vehicles) != 1 || bySearch.Vehicles[0].ID != target.ID {
		t.Fatalf("search returned %+v", bySearch.Vehicles)
	}
	if bySearch.Counters.Total != 2 {
		t.Fatalf("total = %d, want 2", bySearch.Counters.Total)
	}
}
