package service

import (
	"context"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
	"go.uber.org/zap"
)

// CreateCataloguePropertyInput adds a property definition to an
// existing leaf category. The default value seeds the property on
// every catalogue item and item already beneath the category.
type CreateCataloguePropertyInput struct {
	PropertyDefinitionInput
	DefaultValue entity.Value `json:"default_value"`
}

// UpdateCataloguePropertyInput patches a property definition. Only the
// name and the allowed values can change, and allowed values may only
// grow.
type UpdateCataloguePropertyInput struct {
	Name          *string                         `json:"name"`
	AllowedValues Optional[*entity.AllowedValues] `json:"allowed_values"`
}

// CatalogueCategoryPropertyService manages property definitions on
// existing catalogue categories, propagating changes down to the
// catalogue items and items beneath them.
type CatalogueCategoryPropertyService struct {
	categoryRepo      *repository.CatalogueCategoryRepository
	catalogueItemRepo *repository.CatalogueItemRepository
	itemRepo          *repository.ItemRepository
	unitRepo          *repository.UnitRepository
	logger            *zap.Logger
}

func NewCatalogueCategoryPropertyService(
	categoryRepo *repository.CatalogueCategoryRepository,
	catalogueItemRepo *repository.CatalogueItemRepository,
	itemRepo *repository.ItemRepository,
	unitRepo *repository.UnitRepository,
	logger *zap.Logger,
) *CatalogueCategoryPropertyService {
	return &CatalogueCategoryPropertyService{
		categoryRepo:      categoryRepo,
		catalogueItemRepo: catalogueItemRepo,
		itemRepo:          itemRepo,
		unitRepo:          unitRepo,
		logger:            logger,
	}
}

// Create adds a property definition to a leaf category and seeds it
// with the default value on every catalogue item and item below.
func (s *CatalogueCategoryPropertyService) Create(ctx context.Context, categoryID string, input *CreateCataloguePropertyInput) (*entity.PropertyDefinition, error) {
	// Mandatory properties need a default value to populate the
	// subtree with.
	if input.Mandatory && input.DefaultValue.IsNull() {
		return nil, &apperr.InvalidActionError{
			Detail: "Cannot add a mandatory property without a default value",
		}
	}

	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsLeaf {
		return nil, &apperr.InvalidActionError{
			Detail: "Cannot add a property to a non-leaf catalogue category",
		}
	}

	names := make([]string, 0, len(category.Properties)+1)
	for _, definition := range category.Properties {
		names = append(names, definition.Name)
	}
	names = append(names, input.Name)
	if err := checkDuplicatePropertyNames(names); err != nil {
		return nil, err
	}

	if err := validateDefinitionInput(input.PropertyDefinitionInput); err != nil {
		return nil, err
	}
	definition := entity.PropertyDefinition{
		ID:            entity.NewID(),
		Name:          input.Name,
		Type:          input.Type,
		UnitID:        input.UnitID,
		Mandatory:     input.Mandatory,
		AllowedValues: input.AllowedValues,
	}
	if input.UnitID != nil {
		unit, err := s.unitRepo.FindByID(ctx, *input.UnitID)
		if err != nil {
			return nil, missingIfNotFound(err, "unit", *input.UnitID)
		}
		definition.Unit = &unit.Value
	}

	// Validate the default value the same way an item value would be.
	seeded, err := processProperties(
		entity.PropertyDefinitionList{definition},
		[]SuppliedProperty{{ID: definition.ID, Value: input.DefaultValue}},
	)
	if err != nil {
		return nil, err
	}

	category.Properties = append(category.Properties, definition)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	// Propagation is best-effort; a failure here leaves some children
	// without the new property but does not undo the definition.
	if err := s.catalogueItemRepo.AddPropertyToAllInCategory(ctx, categoryID, seeded[0]); err != nil {
		s.logger.Error("failed to propagate new property to catalogue items",
			zap.String("catalogue_category_id", categoryID),
			zap.String("property_id", definition.ID),
			zap.Error(err))
		return &definition, nil
	}
	catalogueItemIDs, err := s.catalogueItemRepo.ListIDsByCategory(ctx, categoryID)
	if err == nil {
		err = s.itemRepo.AddPropertyToAllIn(ctx, catalogueItemIDs, seeded[0])
	}
	if err != nil {
		s.logger.Error("failed to propagate new property to items",
			zap.String("catalogue_category_id", categoryID),
			zap.String("property_id", definition.ID),
			zap.Error(err))
	}
	return &definition, nil
}

// Update patches a property definition, cascading a rename to the
// denormalized copies on catalogue items and items.
func (s *CatalogueCategoryPropertyService) Update(ctx context.Context, categoryID, propertyID string, input *UpdateCataloguePropertyInput) (*entity.PropertyDefinition, error) {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, definition := range category.Properties {
		if definition.ID == propertyID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, apperr.MissingRecord("property", propertyID)
	}
	definition := category.Properties[index]

	updatingName := input.Name != nil && *input.Name != definition.Name
	if updatingName {
		definition.Name = *input.Name
		names := make([]string, len(category.Properties))
		for i, d := range category.Properties {
			names[i] = d.Name
		}
		names[index] = definition.Name
		if err := checkDuplicatePropertyNames(names); err != nil {
			return nil, err
		}
	}

	if input.AllowedValues.Set {
		if err := checkAllowedValuesUpdate(definition.AllowedValues, input.AllowedValues.Value); err != nil {
			return nil, err
		}
		definition.AllowedValues = input.AllowedValues.Value
	}
	if err := validateDefinitionInput(PropertyDefinitionInput{
		Name:          definition.Name,
		Type:          definition.Type,
		UnitID:        definition.UnitID,
		Mandatory:     definition.Mandatory,
		AllowedValues: definition.AllowedValues,
	}); err != nil {
		return nil, err
	}

	category.Properties[index] = definition
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	if updatingName {
		if err := s.catalogueItemRepo.RenamePropertyInCategory(ctx, categoryID, propertyID, definition.Name); err != nil {
			s.logger.Error("failed to propagate property rename to catalogue items",
				zap.String("catalogue_category_id", categoryID),
				zap.String("property_id", propertyID),
				zap.Error(err))
			return &definition, nil
		}
		catalogueItemIDs, err := s.catalogueItemRepo.ListIDsByCategory(ctx, categoryID)
		if err == nil {
			err = s.itemRepo.RenamePropertyIn(ctx, catalogueItemIDs, propertyID, definition.Name)
		}
		if err != nil {
			s.logger.Error("failed to propagate property rename to items",
				zap.String("catalogue_category_id", categoryID),
				zap.String("property_id", propertyID),
				zap.Error(err))
		}
	}
	return &definition, nil
}

func (s *CatalogueCategoryPropertyService) findCategory(ctx context.Context, id string) (*entity.CatalogueCategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, missingIfNotFound(err, "catalogue category", id)
	}
	return category, nil
}

// checkAllowedValuesUpdate validates a change of allowed values:
// they cannot be added, removed or re-typed after the fact, and list
// values may only be added to.
func checkAllowedValuesUpdate(existing, updated *entity.AllowedValues) error {
	if existing == nil && updated == nil {
		return nil
	}
	if existing == nil {
		return &apperr.InvalidActionError{Detail: "Cannot add allowed_values to an existing property"}
	}
	if updated == nil {
		return &apperr.InvalidActionError{Detail: "Cannot remove allowed_values from an existing property"}
	}
	if existing.Type != updated.Type {
		return &apperr.InvalidActionError{Detail: "Cannot modify a properties' allowed_values to have a different type"}
	}
	for _, existingValue := range existing.Values {
		if !updated.Contains(existingValue) {
			return &apperr.InvalidActionError{
				Detail: "Cannot modify existing values inside allowed_values of type 'list', you may only add more values",
			}
		}
	}
	return nil
}
