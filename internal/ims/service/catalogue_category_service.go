package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
	"gorm.io/gorm"
)

// PropertyDefinitionInput is a property definition as supplied on a
// category create or update request. IDs are assigned server-side.
type PropertyDefinitionInput struct {
	Name          string                `json:"name" binding:"required"`
	Type          string                `json:"type" binding:"required,oneof=string number boolean"`
	UnitID        *string               `json:"unit_id"`
	Mandatory     bool                  `json:"mandatory"`
	AllowedValues *entity.AllowedValues `json:"allowed_values"`
}

type CreateCatalogueCategoryInput struct {
	Name       string                    `json:"name" binding:"required"`
	IsLeaf     bool                      `json:"is_leaf"`
	ParentID   *string                   `json:"parent_id"`
	Properties []PropertyDefinitionInput `json:"properties"`
}

type UpdateCatalogueCategoryInput struct {
	Name       *string                    `json:"name"`
	IsLeaf     *bool                      `json:"is_leaf"`
	ParentID   Optional[*string]          `json:"parent_id"`
	Properties *[]PropertyDefinitionInput `json:"properties"`
}

type CatalogueCategoryService struct {
	categoryRepo      *repository.CatalogueCategoryRepository
	catalogueItemRepo *repository.CatalogueItemRepository
	unitRepo          *repository.UnitRepository
}

func NewCatalogueCategoryService(
	categoryRepo *repository.CatalogueCategoryRepository,
	catalogueItemRepo *repository.CatalogueItemRepository,
	unitRepo *repository.UnitRepository,
) *CatalogueCategoryService {
	return &CatalogueCategoryService{
		categoryRepo:      categoryRepo,
		catalogueItemRepo: catalogueItemRepo,
		unitRepo:          unitRepo,
	}
}

func (s *CatalogueCategoryService) Create(ctx context.Context, input *CreateCatalogueCategoryInput) (*entity.CatalogueCategory, error) {
	if input.ParentID != nil {
		if err := validateID(*input.ParentID); err != nil {
			return nil, err
		}
		parent, err := s.categoryRepo.FindByID(ctx, *input.ParentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.MissingRecord("parent catalogue category", *input.ParentID)
		}
		if err != nil {
			return nil, err
		}
		if parent.IsLeaf {
			return nil, &apperr.LeafCatalogueCategoryError{
				Detail: "Cannot add catalogue category to a leaf parent catalogue category",
			}
		}
	}

	// Non-leaf categories cannot declare properties; any supplied are
	// dropped rather than rejected.
	properties := entity.PropertyDefinitionList{}
	if input.IsLeaf && len(input.Properties) > 0 {
		if err := checkDuplicatePropertyNames(definitionInputNames(input.Properties)); err != nil {
			return nil, err
		}
		var err error
		properties, err = s.buildDefinitions(ctx, input.Properties)
		if err != nil {
			return nil, err
		}
	}

	code := generateCode(input.Name)
	duplicate, err := s.categoryRepo.HasSiblingWithCode(ctx, code, input.ParentID, "")
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, &apperr.DuplicateRecordError{
			Detail: "Duplicate catalogue category found within the parent catalogue category",
			Entity: "catalogue category",
		}
	}

	category := &entity.CatalogueCategory{
		ID:         entity.NewID(),
		Name:       input.Name,
		Code:       code,
		IsLeaf:     input.IsLeaf,
		ParentID:   input.ParentID,
		Properties: properties,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogueCategoryService) Get(ctx context.Context, id string) (*entity.CatalogueCategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.MissingRecord("catalogue category", id)
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogueCategoryService) GetBreadcrumbs(ctx context.Context, id string) (*entity.Breadcrumbs, error) {
	return s.categoryRepo.GetBreadcrumbs(ctx, id)
}

func (s *CatalogueCategoryService) List(ctx context.Context) ([]entity.CatalogueCategory, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CatalogueCategoryService) ListByParent(ctx context.Context, parentID *string) ([]entity.CatalogueCategory, error) {
	return s.categoryRepo.ListByParent(ctx, parentID)
}

func (s *CatalogueCategoryService) Update(ctx context.Context, id string, input *UpdateCatalogueCategoryInput) (*entity.CatalogueCategory, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IsLeaf != nil || input.Properties != nil {
		hasChildren, err := s.hasChildElements(ctx, id)
		if err != nil {
			return nil, err
		}
		if hasChildren {
			return nil, &apperr.ChildElementsExistError{
				Detail: fmt.Sprintf("Catalogue category with ID %s has child elements and cannot be updated", id),
			}
		}
	}

	if input.Name != nil && *input.Name != category.Name {
		category.Name = *input.Name
		category.Code = generateCode(*input.Name)
	}
	if input.IsLeaf != nil {
		category.IsLeaf = *input.IsLeaf
	}

	movingCategory := input.ParentID.Set && !equalStringPtr(input.ParentID.Value, category.ParentID)
	if movingCategory {
		if input.ParentID.Value != nil {
			if err := validateID(*input.ParentID.Value); err != nil {
				return nil, err
			}
			parent, err := s.categoryRepo.FindByID(ctx, *input.ParentID.Value)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.MissingRecord("parent catalogue category", *input.ParentID.Value)
			}
			if err != nil {
				return nil, err
			}
			if parent.IsLeaf {
				return nil, &apperr.LeafCatalogueCategoryError{
					Detail: "Cannot add catalogue category to a leaf parent catalogue category",
				}
			}
			valid, err := s.categoryRepo.IsValidMove(ctx, id, *input.ParentID.Value)
			if err != nil {
				return nil, err
			}
			if !valid {
				return nil, &apperr.InvalidActionError{
					Detail: "Cannot move a catalogue category to one of its own children",
				}
			}
		}
		category.ParentID = input.ParentID.Value
	}

	if input.Name != nil || movingCategory {
		duplicate, err := s.categoryRepo.HasSiblingWithCode(ctx, category.Code, category.ParentID, id)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, &apperr.DuplicateRecordError{
				Detail: "Duplicate catalogue category found within the parent catalogue category",
				Entity: "catalogue category",
			}
		}
	}

	if input.Properties != nil {
		// Wholesale replacement; the definitions get fresh IDs.
		properties := entity.PropertyDefinitionList{}
		if category.IsLeaf && len(*input.Properties) > 0 {
			if err := checkDuplicatePropertyNames(definitionInputNames(*input.Properties)); err != nil {
				return nil, err
			}
			properties, err = s.buildDefinitions(ctx, *input.Properties)
			if err != nil {
				return nil, err
			}
		}
		category.Properties = properties
	}

	// Non-leaf categories never carry property definitions, even when
	// the patch only flips is_leaf and leaves properties untouched.
	if !category.IsLeaf {
		category.Properties = entity.PropertyDefinitionList{}
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogueCategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	hasChildren, err := s.hasChildElements(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return &apperr.ChildElementsExistError{
			Detail: fmt.Sprintf("Catalogue category with ID %s has child elements and cannot be deleted", id),
		}
	}
	return s.categoryRepo.Delete(ctx, id)
}

// hasChildElements reports whether the category has child categories
// or catalogue items.
func (s *CatalogueCategoryService) hasChildElements(ctx context.Context, id string) (bool, error) {
	hasCategories, err := s.categoryRepo.HasChildCategories(ctx, id)
	if err != nil {
		return false, err
	}
	if hasCategories {
		return true, nil
	}
	return s.catalogueItemRepo.ExistsByCategory(ctx, id)
}

// buildDefinitions validates the supplied definitions, resolves their
// unit values and assigns them IDs.
func (s *CatalogueCategoryService) buildDefinitions(ctx context.Context, inputs []PropertyDefinitionInput) (entity.PropertyDefinitionList, error) {
	definitions := make(entity.PropertyDefinitionList, 0, len(inputs))
	for _, input := range inputs {
		definition, err := s.buildDefinition(ctx, input)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, *definition)
	}
	return definitions, nil
}

func (s *CatalogueCategoryService) buildDefinition(ctx context.Context, input PropertyDefinitionInput) (*entity.PropertyDefinition, error) {
	if err := validateDefinitionInput(input); err != nil {
		return nil, err
	}
	definition := &entity.PropertyDefinition{
		ID:            entity.NewID(),
		Name:          input.Name,
		Type:          input.Type,
		UnitID:        input.UnitID,
		Mandatory:     input.Mandatory,
		AllowedValues: input.AllowedValues,
	}
	if input.UnitID != nil {
		if err := validateID(*input.UnitID); err != nil {
			return nil, err
		}
		unit, err := s.unitRepo.FindByID(ctx, *input.UnitID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.MissingRecord("unit", *input.UnitID)
		}
		if err != nil {
			return nil, err
		}
		definition.Unit = &unit.Value
	}
	return definition, nil
}

// validateDefinitionInput enforces the shape rules on a property
// definition: no units or allowed values on booleans, and allowed
// values must be a non-empty homogeneous list without duplicates.
func validateDefinitionInput(input PropertyDefinitionInput) error {
	if input.Type == entity.PropertyTypeBoolean && input.UnitID != nil {
		return &apperr.InvalidPropertyTypeError{
			Detail: fmt.Sprintf("Unit not allowed for boolean property '%s'", input.Name),
		}
	}
	allowed := input.AllowedValues
	if allowed == nil {
		return nil
	}
	if input.Type == entity.PropertyTypeBoolean {
		return &apperr.InvalidPropertyTypeError{
			Detail: fmt.Sprintf("allowed_values not allowed for a boolean property '%s'", input.Name),
		}
	}
	if allowed.Type != entity.AllowedValuesTypeList {
		return &apperr.InvalidPropertyTypeError{
			Detail: "allowed_values must be of type 'list'",
		}
	}
	if len(allowed.Values) == 0 {
		return &apperr.InvalidPropertyTypeError{
			Detail: "allowed_values of type 'list' must contain at least one value",
		}
	}
	seen := make(map[string]struct{}, len(allowed.Values))
	for _, value := range allowed.Values {
		if !value.MatchesType(input.Type) {
			return &apperr.InvalidPropertyTypeError{
				Detail: "allowed_values of type 'list' must only contain values of the same type as the property itself",
			}
		}
		key := value.String()
		if value.Kind == entity.KindString {
			key = strings.ToLower(key)
		}
		if _, ok := seen[key]; ok {
			return &apperr.InvalidPropertyTypeError{
				Detail: fmt.Sprintf("allowed_values of type 'list' contains a duplicate value: %s", value.String()),
			}
		}
		seen[key] = struct{}{}
	}
	return nil
}

func definitionInputNames(inputs []PropertyDefinitionInput) []string {
	names := make([]string, len(inputs))
	for i, input := range inputs {
		names[i] = input.Name
	}
	return names
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
