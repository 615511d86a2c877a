package service

import (
	"context"
	"testing"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/testutil"
	"gorm.io/gorm"
)

type itemFixture struct {
	catalogueItem *entity.CatalogueItem
	system        *entity.System
	status        *entity.UsageStatus
	sizeProperty  string
	noteProperty  string
}

func seedItemFixture(t *testing.T, svc *Services, db *gorm.DB) itemFixture {
	t.Helper()
	ctx := context.Background()

	sizeID := entity.NewID()
	noteID := entity.NewID()
	category := testutil.SeedCatalogueCategory(t, db, "cameras", true, nil, entity.PropertyDefinitionList{
		{ID: sizeID, Name: "Sensor Size", Type: entity.PropertyTypeNumber, Mandatory: true},
		{ID: noteID, Name: "Coating", Type: entity.PropertyTypeString},
	})
	manufacturer := testutil.SeedManufacturer(t, db, "Acme Optics", "acme-optics")

	catalogueItem, err := svc.CatalogueItem.Create(ctx, &CreateCatalogueItemInput{
		CatalogueCategoryID: category.ID,
		ManufacturerID:      manufacturer.ID,
		Name:                "Camera Mk1",
		Properties: []SuppliedProperty{
			{ID: sizeID, Value: entity.NumberValue(35)},
			{ID: noteID, Value: entity.StringValue("anti-reflective")},
		},
	})
	if err != nil {
		t.Fatalf("seed catalogue item: %v", err)
	}

	return itemFixture{
		catalogueItem: catalogueItem,
		system:        testutil.SeedSystem(t, db, "lab", nil),
		status:        testutil.SeedUsageStatus(t, db, "In Use", "in-use"),
		sizeProperty:  sizeID,
		noteProperty:  noteID,
	}
}

func TestItemCreateInheritsProperties(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()
	fx := seedItemFixture(t, svc, db)

	// With no properties supplied, the item inherits everything from
	// its catalogue item.
	item, err := svc.Item.Create(ctx, &CreateItemInput{
		CatalogueItemID: fx.catalogueItem.ID,
		SystemID:        fx.system.ID,
		UsageStatusID:   fx.status.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.UsageStatus != "In Use" {
		t.Errorf("Expected denormalized usage status, got %q", item.UsageStatus)
	}
	if len(item.Properties) != 2 {
		t.Fatalf("Expected 2 inherited properties, got %d", len(item.Properties))
	}
	if !item.Properties[0].Value.Equal(entity.NumberValue(35)) {
		t.Errorf("Expected inherited sensor size, got %+v", item.Properties[0].Value)
	}

	// A supplied property overrides the inherited value; the rest stay.
	overridden, err := svc.Item.Create(ctx, &CreateItemInput{
		CatalogueItemID: fx.catalogueItem.ID,
		SystemID:        fx.system.ID,
		UsageStatusID:   fx.status.ID,
		Properties: []SuppliedProperty{
			{ID: fx.noteProperty, Value: entity.StringValue("none")},
		},
	})
	if err != nil {
		t.Fatalf("create with override: %v", err)
	}
	if !overridden.Properties[0].Value.Equal(entity.NumberValue(35)) {
		t.Errorf("Expected inherited sensor size, got %+v", overridden.Properties[0].Value)
	}
	if !overridden.Properties[1].Value.Equal(entity.StringValue("none")) {
		t.Errorf("Expected overridden coating, got %+v", overridden.Properties[1].Value)
	}

	// Overriding a mandatory property with null is rejected.
	_, err = svc.Item.Create(ctx, &CreateItemInput{
		CatalogueItemID: fx.catalogueItem.ID,
		SystemID:        fx.system.ID,
		UsageStatusID:   fx.status.ID,
		Properties: []SuppliedProperty{
			{ID: fx.sizeProperty, Value: entity.NullValue()},
		},
	})
	if _, ok := err.(*apperr.MissingMandatoryPropertyError); !ok {
		t.Fatalf("Expected MissingMandatoryPropertyError, got %v", err)
	}
}

func TestItemCreateMissingReferences(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()
	fx := seedItemFixture(t, svc, db)
	missingID := entity.NewID()

	cases := []struct {
		name  string
		input CreateItemInput
		label string
	}{
		{"catalogue item", CreateItemInput{CatalogueItemID: missingID, SystemID: fx.system.ID, UsageStatusID: fx.status.ID}, "catalogue item"},
		{"system", CreateItemInput{CatalogueItemID: fx.catalogueItem.ID, SystemID: missingID, UsageStatusID: fx.status.ID}, "system"},
		{"usage status", CreateItemInput{CatalogueItemID: fx.catalogueItem.ID, SystemID: fx.system.ID, UsageStatusID: missingID}, "usage status"},
	}
	for _, tc := range cases {
		_, err := svc.Item.Create(ctx, &tc.input)
		missing, ok := err.(*apperr.MissingRecordError)
		if !ok {
			t.Fatalf("%s: expected MissingRecordError, got %v", tc.name, err)
		}
		if missing.Entity != tc.label {
			t.Errorf("%s: expected entity label %q, got %q", tc.name, tc.label, missing.Entity)
		}
	}
}

func TestItemUpdate(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()
	fx := seedItemFixture(t, svc, db)

	item, err := svc.Item.Create(ctx, &CreateItemInput{
		CatalogueItemID: fx.catalogueItem.ID,
		SystemID:        fx.system.ID,
		UsageStatusID:   fx.status.ID,
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	// The owning catalogue item is immutable.
	otherID := entity.NewID()
	_, err = svc.Item.Update(ctx, item.ID, &UpdateItemInput{CatalogueItemID: &otherID})
	invalid, ok := err.(*apperr.InvalidActionError)
	if !ok {
		t.Fatalf("Expected InvalidActionError, got %v", err)
	}
	if invalid.Detail != "Cannot change the catalogue item the item belongs to" {
		t.Errorf("Unexpected detail: %q", invalid.Detail)
	}

	// Re-sending the same catalogue item id is a no-op, not an error.
	if _, err := svc.Item.Update(ctx, item.ID, &UpdateItemInput{CatalogueItemID: &fx.catalogueItem.ID}); err != nil {
		t.Errorf("Expected unchanged catalogue item id to be accepted: %v", err)
	}

	// Moving between systems.
	otherSystem := testutil.SeedSystem(t, db, "storage", nil)
	moved, err := svc.Item.Update(ctx, item.ID, &UpdateItemInput{SystemID: &otherSystem.ID})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.SystemID != otherSystem.ID {
		t.Errorf("Expected system %s, got %s", otherSystem.ID, moved.SystemID)
	}

	// Usage status changes refresh the denormalized value.
	scrapped := testutil.SeedUsageStatus(t, db, "Scrapped", "scrapped")
	updated, err := svc.Item.Update(ctx, item.ID, &UpdateItemInput{UsageStatusID: &scrapped.ID})
	if err != nil {
		t.Fatalf("usage status change: %v", err)
	}
	if updated.UsageStatus != "Scrapped" {
		t.Errorf("Expected refreshed usage status, got %q", updated.UsageStatus)
	}

	// Property updates re-merge against the catalogue item.
	reproped, err := svc.Item.Update(ctx, item.ID, &UpdateItemInput{
		Properties: &[]SuppliedProperty{{ID: fx.noteProperty, Value: entity.StringValue("matte")}},
	})
	if err != nil {
		t.Fatalf("property update: %v", err)
	}
	if !reproped.Properties[0].Value.Equal(entity.NumberValue(35)) {
		t.Errorf("Expected inherited sensor size after update, got %+v", reproped.Properties[0].Value)
	}
	if !reproped.Properties[1].Value.Equal(entity.StringValue("matte")) {
		t.Errorf("Expected new coating, got %+v", reproped.Properties[1].Value)
	}
}

func TestItemDelete(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()
	fx := seedItemFixture(t, svc, db)

	item, err := svc.Item.Create(ctx, &CreateItemInput{
		CatalogueItemID: fx.catalogueItem.ID,
		SystemID:        fx.system.ID,
		UsageStatusID:   fx.status.ID,
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	if err := svc.Item.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.Item.Delete(ctx, item.ID)
	if _, ok := err.(*apperr.MissingRecordError); !ok {
		t.Fatalf("Expected MissingRecordError, got %v", err)
	}
}
