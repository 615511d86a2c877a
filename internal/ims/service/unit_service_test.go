package service

import (
	"context"
	"testing"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/testutil"
)

func TestUnitCreate(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	unit, err := svc.Unit.Create(ctx, &CreateUnitInput{Value: "Nm / rad"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if unit.Code != "nm-/-rad" {
		t.Errorf("Expected generated code, got %q", unit.Code)
	}

	_, err = svc.Unit.Create(ctx, &CreateUnitInput{Value: "NM / RAD"})
	duplicate, ok := err.(*apperr.DuplicateRecordError)
	if !ok {
		t.Fatalf("Expected DuplicateRecordError, got %v", err)
	}
	if duplicate.Detail != "Duplicate unit found" {
		t.Errorf("Unexpected detail: %q", duplicate.Detail)
	}
}

func TestUnitDelete(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	used := testutil.SeedUnit(t, db, "mm")
	testutil.SeedCatalogueCategory(t, db, "lenses", true, nil, entity.PropertyDefinitionList{
		{ID: entity.NewID(), Name: "Diameter", Type: entity.PropertyTypeNumber, UnitID: &used.ID, Unit: &used.Value},
	})

	err := svc.Unit.Delete(ctx, used.ID)
	gated, ok := err.(*apperr.PartOfCatalogueCategoryError)
	if !ok {
		t.Fatalf("Expected PartOfCatalogueCategoryError, got %v", err)
	}
	if gated.Detail != "The unit with ID "+used.ID+" is a part of a Catalogue category" {
		t.Errorf("Unexpected detail: %q", gated.Detail)
	}

	unused := testutil.SeedUnit(t, db, "kg")
	if err := svc.Unit.Delete(ctx, unused.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.Unit.Delete(ctx, unused.ID)
	if _, ok := err.(*apperr.MissingRecordError); !ok {
		t.Fatalf("Expected MissingRecordError, got %v", err)
	}
}

func TestUsageStatusCreate(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	status, err := svc.UsageStatus.Create(ctx, &CreateUsageStatusInput{Value: "In Use"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if status.Code != "in-use" {
		t.Errorf("Expected generated code, got %q", status.Code)
	}

	_, err = svc.UsageStatus.Create(ctx, &CreateUsageStatusInput{Value: "in use"})
	duplicate, ok := err.(*apperr.DuplicateRecordError)
	if !ok {
		t.Fatalf("Expected DuplicateRecordError, got %v", err)
	}
	if duplicate.Detail != "Duplicate usage status found" {
		t.Errorf("Unexpected detail: %q", duplicate.Detail)
	}
}

func TestUsageStatusDelete(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	used := testutil.SeedUsageStatus(t, db, "In Use", "in-use")
	category := testutil.SeedCatalogueCategory(t, db, "cameras", true, nil, nil)
	manufacturer := testutil.SeedManufacturer(t, db, "Acme Optics", "acme-optics")
	catalogueItem, err := svc.CatalogueItem.Create(ctx, &CreateCatalogueItemInput{
		CatalogueCategoryID: category.ID,
		ManufacturerID:      manufacturer.ID,
		Name:                "Camera Mk1",
	})
	if err != nil {
		t.Fatalf("seed catalogue item: %v", err)
	}
	system := testutil.SeedSystem(t, db, "lab", nil)
	if _, err := svc.Item.Create(ctx, &CreateItemInput{
		CatalogueItemID: catalogueItem.ID,
		SystemID:        system.ID,
		UsageStatusID:   used.ID,
	}); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	err = svc.UsageStatus.Delete(ctx, used.ID)
	gated, ok := err.(*apperr.PartOfItemError)
	if !ok {
		t.Fatalf("Expected PartOfItemError, got %v", err)
	}
	if gated.Detail != "The usage status with ID "+used.ID+" is a part of an Item" {
		t.Errorf("Unexpected detail: %q", gated.Detail)
	}

	unused := testutil.SeedUsageStatus(t, db, "Scrapped", "scrapped")
	if err := svc.UsageStatus.Delete(ctx, unused.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.UsageStatus.Delete(ctx, unused.ID)
	if _, ok := err.(*apperr.MissingRecordError); !ok {
		t.Fatalf("Expected MissingRecordError, got %v", err)
	}
}
