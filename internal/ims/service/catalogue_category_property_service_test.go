package service

import (
	"context"
	"testing"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
	"github.com/labforge/ims/internal/ims/testutil"
	"gorm.io/gorm"
)

type propertyFixture struct {
	category      *entity.CatalogueCategory
	catalogueItem *entity.CatalogueItem
	item          *entity.Item
	existingID    string
}

// seedPropertyFixture builds a leaf category with one string property
// plus a catalogue item and an item beneath it, so propagation has
// something to reach.
func seedPropertyFixture(t *testing.T, svc *Services, db *gorm.DB) propertyFixture {
	t.Helper()
	ctx := context.Background()

	existingID := entity.NewID()
	category := testutil.SeedCatalogueCategory(t, db, "lenses", true, nil, entity.PropertyDefinitionList{
		{ID: existingID, Name: "Coating", Type: entity.PropertyTypeString},
	})
	manufacturer := testutil.SeedManufacturer(t, db, "Acme Optics", "acme-optics")

	catalogueItem, err := svc.CatalogueItem.Create(ctx, &CreateCatalogueItemInput{
		CatalogueCategoryID: category.ID,
		ManufacturerID:      manufacturer.ID,
		Name:                "Lens 50mm",
		Properties:          []SuppliedProperty{{ID: existingID, Value: entity.StringValue("matte")}},
	})
	if err != nil {
		t.Fatalf("seed catalogue item: %v", err)
	}
	system := testutil.SeedSystem(t, db, "lab", nil)
	status := testutil.SeedUsageStatus(t, db, "In Use", "in-use")
	item, err := svc.Item.Create(ctx, &CreateItemInput{
		CatalogueItemID: catalogueItem.ID,
		SystemID:        system.ID,
		UsageStatusID:   status.ID,
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	return propertyFixture{category: category, catalogueItem: catalogueItem, item: item, existingID: existingID}
}

func TestCataloguePropertyCreatePropagates(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()
	fx := seedPropertyFixture(t, svc, db)
	repos := repository.NewRepositories(db)

	unit := testutil.SeedUnit(t, db, "mm")
	definition, err := svc.CatalogueCategoryProperty.Create(ctx, fx.category.ID, &CreateCataloguePropertyInput{
		PropertyDefinitionInput: PropertyDefinitionInput{
			Name:      "Focal Length",
			Type:      entity.PropertyTypeNumber,
			UnitID:    &unit.ID,
			Mandatory: true,
		},
		DefaultValue: entity.NumberValue(50),
	})
	if err != nil {
		t.Fatalf("create property: %v", err)
	}
	if definition.Unit == nil || *definition.Unit != "mm" {
		t.Errorf("Expected resolved unit name, got %+v", definition.Unit)
	}

	category, err := repos.CatalogueCategory.FindByID(ctx, fx.category.ID)
	if err != nil {
		t.Fatalf("reload category: %v", err)
	}
	if len(category.Properties) != 2 {
		t.Fatalf("Expected 2 definitions on category, got %d", len(category.Properties))
	}

	catalogueItem, err := repos.CatalogueItem.FindByID(ctx, fx.catalogueItem.ID)
	if err != nil {
		t.Fatalf("reload catalogue item: %v", err)
	}
	if len(catalogueItem.Properties) != 2 {
		t.Fatalf("Expected seeded property on catalogue item, got %d properties", len(catalogueItem.Properties))
	}
	seeded := catalogueItem.Properties[1]
	if seeded.ID != definition.ID || !seeded.Value.Equal(entity.NumberValue(50)) {
		t.Errorf("Unexpected seeded catalogue item property: %+v", seeded)
	}

	item, err := repos.Item.FindByID(ctx, fx.item.ID)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if len(item.Properties) != 2 || !item.Properties[1].Value.Equal(entity.NumberValue(50)) {
		t.Errorf("Expected seeded property on item, got %+v", item.Properties)
	}
}

func TestCataloguePropertyCreateGates(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()
	fx := seedPropertyFixture(t, svc, db)

	_, err := svc.CatalogueCategoryProperty.Create(ctx, fx.category.ID, &CreateCataloguePropertyInput{
		PropertyDefinitionInput: PropertyDefinitionInput{Name: "Weight", Type: entity.PropertyTypeNumber, Mandatory: true},
	})
	invalid, ok := err.(*apperr.InvalidActionError)
	if !ok {
		t.Fatalf("Expected InvalidActionError, got %v", err)
	}
	if invalid.Detail != "Cannot add a mandatory property without a default value" {
		t.Errorf("Unexpected detail: %q", invalid.Detail)
	}

	// Non-leaf categories cannot carry properties.
	nonLeaf := testutil.SeedCatalogueCategory(t, db, "optics", false, nil, nil)
	_, err = svc.CatalogueCategoryProperty.Create(ctx, nonLeaf.ID, &CreateCataloguePropertyInput{
		PropertyDefinitionInput: PropertyDefinitionInput{Name: "Weight", Type: entity.PropertyTypeNumber},
	})
	invalid, ok = err.(*apperr.InvalidActionError)
	if !ok {
		t.Fatalf("Expected InvalidActionError, got %v", err)
	}
	if invalid.Detail != "Cannot add a property to a non-leaf catalogue category" {
		t.Errorf("Unexpected detail: %q", invalid.Detail)
	}

	// The new name must not collide with an existing definition.
	_, err = svc.CatalogueCategoryProperty.Create(ctx, fx.category.ID, &CreateCataloguePropertyInput{
		PropertyDefinitionInput: PropertyDefinitionInput{Name: "coating", Type: entity.PropertyTypeString},
	})
	if _, ok := err.(*apperr.DuplicatePropertyNameError); !ok {
		t.Fatalf("Expected DuplicatePropertyNameError, got %v", err)
	}

	// The default value is validated like any property value.
	_, err = svc.CatalogueCategoryProperty.Create(ctx, fx.category.ID, &CreateCataloguePropertyInput{
		PropertyDefinitionInput: PropertyDefinitionInput{Name: "Weight", Type: entity.PropertyTypeNumber},
		DefaultValue:            entity.StringValue("heavy"),
	})
	if _, ok := err.(*apperr.InvalidPropertyTypeError); !ok {
		t.Fatalf("Expected InvalidPropertyTypeError, got %v", err)
	}

	_, err = svc.CatalogueCategoryProperty.Create(ctx, entity.NewID(), &CreateCataloguePropertyInput{
		PropertyDefinitionInput: PropertyDefinitionInput{Name: "Weight", Type: entity.PropertyTypeNumber},
	})
	if _, ok := err.(*apperr.MissingRecordError); !ok {
		t.Fatalf("Expected MissingRecordError, got %v", err)
	}
}

func TestCataloguePropertyUpdateRenameCascades(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()
	fx := seedPropertyFixture(t, svc, db)
	repos := repository.NewRepositories(db)

	definition, err := svc.CatalogueCategoryProperty.Update(ctx, fx.category.ID, fx.existingID, &UpdateCataloguePropertyInput{
		Name: strPtr("Surface Coating"),
	})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if definition.Name != "Surface Coating" {
		t.Errorf("Expected renamed definition, got %q", definition.Name)
	}

	catalogueItem, err := repos.CatalogueItem.FindByID(ctx, fx.catalogueItem.ID)
	if err != nil {
		t.Fatalf("reload catalogue item: %v", err)
	}
	if catalogueItem.Properties[0].Name != "Surface Coating" {
		t.Errorf("Expected rename on catalogue item, got %q", catalogueItem.Properties[0].Name)
	}
	if !catalogueItem.Properties[0].Value.Equal(entity.StringValue("matte")) {
		t.Errorf("Rename must not touch values, got %+v", catalogueItem.Properties[0].Value)
	}

	item, err := repos.Item.FindByID(ctx, fx.item.ID)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if item.Properties[0].Name != "Surface Coating" {
		t.Errorf("Expected rename on item, got %q", item.Properties[0].Name)
	}

	// Renaming onto a sibling definition is rejected.
	other, err := svc.CatalogueCategoryProperty.Create(ctx, fx.category.ID, &CreateCataloguePropertyInput{
		PropertyDefinitionInput: PropertyDefinitionInput{Name: "Mount", Type: entity.PropertyTypeString},
	})
	if err != nil {
		t.Fatalf("create second property: %v", err)
	}
	_, err = svc.CatalogueCategoryProperty.Update(ctx, fx.category.ID, other.ID, &UpdateCataloguePropertyInput{
		Name: strPtr("surface coating"),
	})
	if _, ok := err.(*apperr.DuplicatePropertyNameError); !ok {
		t.Fatalf("Expected DuplicatePropertyNameError, got %v", err)
	}

	_, err = svc.CatalogueCategoryProperty.Update(ctx, fx.category.ID, entity.NewID(), &UpdateCataloguePropertyInput{})
	missing, ok := err.(*apperr.MissingRecordError)
	if !ok {
		t.Fatalf("Expected MissingRecordError, got %v", err)
	}
	if missing.Entity != "property" {
		t.Errorf("Expected property label, got %q", missing.Entity)
	}
}

func TestCataloguePropertyUpdateAllowedValues(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	constrainedID := entity.NewID()
	plainID := entity.NewID()
	category := testutil.SeedCatalogueCategory(t, db, "filters", true, nil, entity.PropertyDefinitionList{
		{ID: constrainedID, Name: "Diameter", Type: entity.PropertyTypeNumber, AllowedValues: &entity.AllowedValues{
			Type:   "list",
			Values: []entity.Value{entity.NumberValue(52), entity.NumberValue(58)},
		}},
		{ID: plainID, Name: "Brand", Type: entity.PropertyTypeString},
	})

	// Growing the list is the only permitted change.
	definition, err := svc.CatalogueCategoryProperty.Update(ctx, category.ID, constrainedID, &UpdateCataloguePropertyInput{
		AllowedValues: optionalOf(&entity.AllowedValues{
			Type:   "list",
			Values: []entity.Value{entity.NumberValue(52), entity.NumberValue(58), entity.NumberValue(67)},
		}),
	})
	if err != nil {
		t.Fatalf("grow allowed values: %v", err)
	}
	if len(definition.AllowedValues.Values) != 3 {
		t.Errorf("Expected 3 allowed values, got %d", len(definition.AllowedValues.Values))
	}

	cases := []struct {
		name       string
		propertyID string
		values     *entity.AllowedValues
		detail     string
	}{
		{
			"add to unconstrained", plainID,
			&entity.AllowedValues{Type: "list", Values: []entity.Value{entity.StringValue("Hoya")}},
			"Cannot add allowed_values to an existing property",
		},
		{
			"remove", constrainedID,
			nil,
			"Cannot remove allowed_values from an existing property",
		},
		{
			"shrink", constrainedID,
			&entity.AllowedValues{Type: "list", Values: []entity.Value{entity.NumberValue(52)}},
			"Cannot modify existing values inside allowed_values of type 'list', you may only add more values",
		},
	}
	for _, tc := range cases {
		_, err := svc.CatalogueCategoryProperty.Update(ctx, category.ID, tc.propertyID, &UpdateCataloguePropertyInput{
			AllowedValues: optionalOf(tc.values),
		})
		invalid, ok := err.(*apperr.InvalidActionError)
		if !ok {
			t.Fatalf("%s: expected InvalidActionError, got %v", tc.name, err)
		}
		if invalid.Detail != tc.detail {
			t.Errorf("%s: unexpected detail %q", tc.name, invalid.Detail)
		}
	}
}
