package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPartCreateValidation(t *testing.T) {
	svc := NewPartService(newTestDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreatePartInput{Quantity: 1, Price: 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation for missing name", err)
	}
	if _, err := svc.Create(ctx, CreatePartInput{Name: "Bolt", Quantity: -1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation for negative quantity", err)
	}
	if _, err := svc.Create(ctx, CreatePartInput{Name: "Bolt", Price: -0.5}); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation for negative price", err)
	}

	part, err := svc.Create(ctx, CreatePartInput{Name: "Bolt", PartNumber: "B-100", Quantity: 40, Price: 0.75})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if part.ID == 0 {
		t.Fatalf("part not persisted: %+v", part)
	}
}

func TestPartUpdateRejectsNegatives(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartService(db)
	ctx := context.Background()

	part := seedPart(t, db, "Gasket", 12, 3.20)

	bad := -4
	if _, err := svc.Update(ctx, part.ID, UpdatePartInput{Quantity: &bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}

	if _, err := svc.Update(ctx, 777, UpdatePartInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPartListBucketsAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartService(db)
	ctx := context.Background()

	seedPart(t, db, "Washer", 0, 0.10)    // critical (and out of stock)
	seedPart(t, db, "Fuse", 4, 1.50)      // critical
	seedPart(t, db, "Hose", 15, 7.00)     // low
	seedPart(t, db, "Filter", 60, 12.00)  // in stock

	all, err := svc.List(ctx, "", StockFilterAll, 1)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all.Parts) != 4 {
		t.Fatalf("expected 4 parts, got %d", len(all.Parts))
	}
	// Least stock first.
	if all.Parts[0].Name != "Washer" || all.Parts[3].Name != "Filter" {
		t.Fatalf("unexpected order: %+v", all.Parts)
	}

	low, err := svc.List(ctx, "", StockFilterLow, 1)
	if err != nil {
		t.Fatalf("list low: %v", err)
	}
	// Low excludes zero stock, includes everything up to the threshold.
	if len(low.Parts) != 2 {
		t.Fatalf("low bucket returned %+v", low.Parts)
	}

	critical, err := svc.List(ctx, "", StockFilterCritical, 1)
	if err != nil {
		t.Fatalf("list critical: %v", err)
	}
	if len(critical.Parts) != 2 {
		t.Fatalf("critical bucket returned %+v", critical.Parts)
	}

	inStock, err := svc.List(ctx, "", StockFilterInStock, 1)
	if err != nil {
		t.Fatalf("list in stock: %v", err)
	}
	if len(inStock.Parts) != 3 {
		t.Fatalf("in_stock bucket returned %+v", inStock.Parts)
	}

	if all.Counters.Total != 4 || all.Counters.Low != 2 || all.Counters.Critical != 2 {
		t.Fatalf("unexpected counters: %+v", all.Counters)
	}
	// 0*0.10 + 4*1.50 + 15*7.00 + 60*12.00
	want := decimal.NewFromFloat(831)
	if !all.Counters.StockValue.Equal(want) {
		t.Fatalf("stock value = %s, want %s", all.Counters.StockValue, want)
	}
}

func TestPartListSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartService(db)
	ctx := context.Background()

	target := seedPart(t, db, "Timing belt", 9, 22)
	seedPart(t, db, "Brake fluid", 30, 6)

	found, err := svc.List(ctx, "timing", StockFilterAll, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found.Parts) != 1 || found.Parts[0].ID != target.ID {
		t.Fatalf("search returned %+v", found.Parts)
	}
}

func TestPartListSearchMatchesWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)
	svc := NewPartService(db)
	ctx := context.Background()

	target := seedPart(t, db, "Grease 5%", 9, 3)
	seedPart(t, db, "Brake fluid", 30, 6)

	found, err := svc.List(ctx, "%", StockFilterAll, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found.Parts) != 1 || found.Parts[0].ID != target.ID {
		t.Fatalf("%% should only match the part containing it, got %+v", found.Parts)
	}

	// An underscore is a literal character, not a single-char wildcard.
	none, err := svc.List(ctx, "gr_ase", StockFilterAll, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(none.Parts) != 0 {
		t.Fatalf("underscore matched as a wildcard: %+v", none.Parts)
	}
}
