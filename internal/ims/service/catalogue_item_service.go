package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
	"github.com/xuri/excelize/v2"
)

type CreateCatalogueItemInput struct {
	CatalogueCategoryID                string             `json:"catalogue_category_id" binding:"required"`
	ManufacturerID                     string             `json:"manufacturer_id" binding:"required"`
	Name                               string             `json:"name" binding:"required"`
	Description                        *string            `json:"description"`
	CostGBP                            float64            `json:"cost_gbp"`
	CostToReworkGBP                    *float64           `json:"cost_to_rework_gbp"`
	DaysToReplace                      float64            `json:"days_to_replace"`
	DaysToRework                       *float64           `json:"days_to_rework"`
	DrawingNumber                      *string            `json:"drawing_number"`
	DrawingLink                        *string            `json:"drawing_link"`
	ItemModelNumber                    *string            `json:"item_model_number"`
	IsObsolete                         bool               `json:"is_obsolete"`
	ObsoleteReason                     *string            `json:"obsolete_reason"`
	ObsoleteReplacementCatalogueItemID *string            `json:"obsolete_replacement_catalogue_item_id"`
	Notes                              *string            `json:"notes"`
	Properties                         []SuppliedProperty `json:"properties"`
}

type UpdateCatalogueItemInput struct {
	CatalogueCategoryID                *string             `json:"catalogue_category_id"`
	ManufacturerID                     *string             `json:"manufacturer_id"`
	Name                               *string             `json:"name"`
	Description                        Optional[*string]   `json:"description"`
	CostGBP                            *float64            `json:"cost_gbp"`
	CostToReworkGBP                    Optional[*float64]  `json:"cost_to_rework_gbp"`
	DaysToReplace                      *float64            `json:"days_to_replace"`
	DaysToRework                       Optional[*float64]  `json:"days_to_rework"`
	DrawingNumber                      Optional[*string]   `json:"drawing_number"`
	DrawingLink                        Optional[*string]   `json:"drawing_link"`
	ItemModelNumber                    Optional[*string]   `json:"item_model_number"`
	IsObsolete                         *bool               `json:"is_obsolete"`
	ObsoleteReason                     Optional[*string]   `json:"obsolete_reason"`
	ObsoleteReplacementCatalogueItemID Optional[*string]   `json:"obsolete_replacement_catalogue_item_id"`
	Notes                              Optional[*string]   `json:"notes"`
	Properties                         *[]SuppliedProperty `json:"properties"`
}

type CatalogueItemService struct {
	catalogueItemRepo *repository.CatalogueItemRepository
	categoryRepo      *repository.CatalogueCategoryRepository
	manufacturerRepo  *repository.ManufacturerRepository
	itemRepo          *repository.ItemRepository
}

func NewCatalogueItemService(
	catalogueItemRepo *repository.CatalogueItemRepository,
	categoryRepo *repository.CatalogueCategoryRepository,
	manufacturerRepo *repository.ManufacturerRepository,
	itemRepo *repository.ItemRepository,
) *CatalogueItemService {
	return &CatalogueItemService{
		catalogueItemRepo: catalogueItemRepo,
		categoryRepo:      categoryRepo,
		manufacturerRepo:  manufacturerRepo,
		itemRepo:          itemRepo,
	}
}

func (s *CatalogueItemService) Create(ctx context.Context, input *CreateCatalogueItemInput) (*entity.CatalogueItem, error) {
	if err := validateID(input.CatalogueCategoryID); err != nil {
		return nil, err
	}
	if err := validateID(input.ManufacturerID); err != nil {
		return nil, err
	}
	if input.ObsoleteReplacementCatalogueItemID != nil {
		if err := validateID(*input.ObsoleteReplacementCatalogueItemID); err != nil {
			return nil, err
		}
	}
	category, err := s.categoryRepo.FindByID(ctx, input.CatalogueCategoryID)
	if err != nil {
		return nil, missingIfNotFound(err, "catalogue category", input.CatalogueCategoryID)
	}
	if !category.IsLeaf {
		return nil, &apperr.NonLeafCatalogueCategoryError{
			Detail: "Cannot add catalogue item to a non-leaf catalogue category",
		}
	}

	if _, err := s.manufacturerRepo.FindByID(ctx, input.ManufacturerID); err != nil {
		return nil, missingIfNotFound(err, "manufacturer", input.ManufacturerID)
	}

	if input.ObsoleteReplacementCatalogueItemID != nil {
		if _, err := s.catalogueItemRepo.FindByID(ctx, *input.ObsoleteReplacementCatalogueItemID); err != nil {
			return nil, missingIfNotFound(err, "catalogue item", *input.ObsoleteReplacementCatalogueItemID)
		}
	}

	properties, err := processProperties(category.Properties, input.Properties)
	if err != nil {
		return nil, err
	}

	item := &entity.CatalogueItem{
		ID:                                 entity.NewID(),
		CatalogueCategoryID:                input.CatalogueCategoryID,
		ManufacturerID:                     input.ManufacturerID,
		Name:                               input.Name,
		Description:                        input.Description,
		CostGBP:                            input.CostGBP,
		CostToReworkGBP:                    input.CostToReworkGBP,
		DaysToReplace:                      input.DaysToReplace,
		DaysToRework:                       input.DaysToRework,
		DrawingNumber:                      input.DrawingNumber,
		DrawingLink:                        input.DrawingLink,
		ItemModelNumber:                    input.ItemModelNumber,
		IsObsolete:                         input.IsObsolete,
		ObsoleteReason:                     input.ObsoleteReason,
		ObsoleteReplacementCatalogueItemID: input.ObsoleteReplacementCatalogueItemID,
		Notes:                              input.Notes,
		Properties:                         properties,
	}
	if err := s.catalogueItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogueItemService) Get(ctx context.Context, id string) (*entity.CatalogueItem, error) {
	item, err := s.catalogueItemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, missingIfNotFound(err, "catalogue item", id)
	}
	return item, nil
}

func (s *CatalogueItemService) List(ctx context.Context, categoryID *string) ([]entity.CatalogueItem, error) {
	return s.catalogueItemRepo.List(ctx, categoryID)
}

func (s *CatalogueItemService) Update(ctx context.Context, id string, input *UpdateCatalogueItemInput) (*entity.CatalogueItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ManufacturerID != nil || input.Properties != nil {
		hasItems, err := s.itemRepo.ExistsByCatalogueItem(ctx, id)
		if err != nil {
			return nil, err
		}
		if hasItems {
			return nil, &apperr.ChildElementsExistError{
				Detail: fmt.Sprintf("Catalogue item with ID %s has child elements and cannot be updated", id),
			}
		}
	}

	var category *entity.CatalogueCategory
	if input.CatalogueCategoryID != nil && *input.CatalogueCategoryID != item.CatalogueCategoryID {
		if err := validateID(*input.CatalogueCategoryID); err != nil {
			return nil, err
		}
		category, err = s.categoryRepo.FindByID(ctx, *input.CatalogueCategoryID)
		if err != nil {
			return nil, missingIfNotFound(err, "catalogue category", *input.CatalogueCategoryID)
		}
		if !category.IsLeaf {
			return nil, &apperr.NonLeafCatalogueCategoryError{
				Detail: "Cannot add catalogue item to a non-leaf catalogue category",
			}
		}

		// Moving without new properties is only allowed between
		// categories whose definitions match exactly, ignoring IDs.
		// The stored values are remapped onto the new definition IDs.
		if input.Properties == nil {
			currentCategory, err := s.categoryRepo.FindByID(ctx, item.CatalogueCategoryID)
			if err != nil {
				return nil, missingIfNotFound(err, "catalogue category", item.CatalogueCategoryID)
			}
			remapped, err := remapPropertyIDs(item.Properties, currentCategory.Properties, category.Properties)
			if err != nil {
				return nil, err
			}
			item.Properties = remapped
		}
		item.CatalogueCategoryID = *input.CatalogueCategoryID
	}

	if input.ManufacturerID != nil && *input.ManufacturerID != item.ManufacturerID {
		if err := validateID(*input.ManufacturerID); err != nil {
			return nil, err
		}
		if _, err := s.manufacturerRepo.FindByID(ctx, *input.ManufacturerID); err != nil {
			return nil, missingIfNotFound(err, "manufacturer", *input.ManufacturerID)
		}
		item.ManufacturerID = *input.ManufacturerID
	}

	if input.ObsoleteReplacementCatalogueItemID.Set {
		replacementID := input.ObsoleteReplacementCatalogueItemID.Value
		if replacementID != nil && !equalStringPtr(replacementID, item.ObsoleteReplacementCatalogueItemID) {
			if err := validateID(*replacementID); err != nil {
				return nil, err
			}
			if _, err := s.catalogueItemRepo.FindByID(ctx, *replacementID); err != nil {
				return nil, missingIfNotFound(err, "catalogue item", *replacementID)
			}
		}
		item.ObsoleteReplacementCatalogueItemID = replacementID
	}

	if input.Properties != nil {
		if category == nil {
			category, err = s.categoryRepo.FindByID(ctx, item.CatalogueCategoryID)
			if err != nil {
				return nil, missingIfNotFound(err, "catalogue category", item.CatalogueCategoryID)
			}
		}
		properties, err := processProperties(category.Properties, *input.Properties)
		if err != nil {
			return nil, err
		}
		item.Properties = properties
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description.Set {
		item.Description = input.Description.Value
	}
	if input.CostGBP != nil {
		item.CostGBP = *input.CostGBP
	}
	if input.CostToReworkGBP.Set {
		item.CostToReworkGBP = input.CostToReworkGBP.Value
	}
	if input.DaysToReplace != nil {
		item.DaysToReplace = *input.DaysToReplace
	}
	if input.DaysToRework.Set {
		item.DaysToRework = input.DaysToRework.Value
	}
	if input.DrawingNumber.Set {
		item.DrawingNumber = input.DrawingNumber.Value
	}
	if input.DrawingLink.Set {
		item.DrawingLink = input.DrawingLink.Value
	}
	if input.ItemModelNumber.Set {
		item.ItemModelNumber = input.ItemModelNumber.Value
	}
	if input.IsObsolete != nil {
		item.IsObsolete = *input.IsObsolete
	}
	if input.ObsoleteReason.Set {
		item.ObsoleteReason = input.ObsoleteReason.Value
	}
	if input.Notes.Set {
		item.Notes = input.Notes.Value
	}

	if err := s.catalogueItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogueItemService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	hasItems, err := s.itemRepo.ExistsByCatalogueItem(ctx, id)
	if err != nil {
		return err
	}
	if hasItems {
		return &apperr.ChildElementsExistError{
			Detail: fmt.Sprintf("Catalogue item with ID %s has child elements and cannot be deleted", id),
		}
	}
	return s.catalogueItemRepo.Delete(ctx, id)
}

// Export renders catalogue items, optionally filtered by category, as
// a spreadsheet.
func (s *CatalogueItemService) Export(ctx context.Context, categoryID *string) (*excelize.File, error) {
	items, err := s.catalogueItemRepo.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Catalogue Items"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Catalogue Category ID", "Manufacturer ID", "Cost (GBP)",
		"Days To Replace", "Model Number", "Obsolete", "Properties"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, item := range items {
		values := []interface{}{
			item.ID,
			item.Name,
			item.CatalogueCategoryID,
			item.ManufacturerID,
			item.CostGBP,
			item.DaysToReplace,
			stringOrEmpty(item.ItemModelNumber),
			strconv.FormatBool(item.IsObsolete),
			formatProperties(item.Properties),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatProperties(properties entity.PropertyValueList) string {
	out := ""
	for i, p := range properties {
		if i > 0 {
			out += "; "
		}
		out += p.Name + "=" + p.Value.String()
		if p.Unit != nil {
			out += " " + *p.Unit
		}
	}
	return out
}

// remapPropertyIDs carries stored property values over to a new
// category whose definitions must match the old ones exactly apart
// from their IDs.
func remapPropertyIDs(stored entity.PropertyValueList, from, to entity.PropertyDefinitionList) (entity.PropertyValueList, error) {
	const message = "Cannot move catalogue item to a category with different properties without specifying the new properties"
	if len(from) != len(to) {
		return nil, &apperr.InvalidActionError{Detail: message}
	}
	idMap := make(map[string]string, len(from))
	for i := range from {
		if !from[i].EqualWithoutID(to[i]) {
			return nil, &apperr.InvalidActionError{Detail: message}
		}
		idMap[from[i].ID] = to[i].ID
	}
	remapped := make(entity.PropertyValueList, len(stored))
	for i, value := range stored {
		value.ID = idMap[value.ID]
		remapped[i] = value
	}
	return remapped, nil
}
