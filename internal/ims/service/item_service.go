package service

import (
	"context"
	"time"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
)

type CreateItemInput struct {
	CatalogueItemID     string             `json:"catalogue_item_id" binding:"required"`
	SystemID            string             `json:"system_id" binding:"required"`
	PurchaseOrderNumber *string            `json:"purchase_order_number"`
	IsDefective         bool               `json:"is_defective"`
	UsageStatusID       string             `json:"usage_status_id" binding:"required"`
	WarrantyEndDate     *time.Time         `json:"warranty_end_date"`
	AssetNumber         *string            `json:"asset_number"`
	SerialNumber        *string            `json:"serial_number"`
	DeliveredDate       *time.Time         `json:"delivered_date"`
	Notes               *string            `json:"notes"`
	Properties          []SuppliedProperty `json:"properties"`
}

type UpdateItemInput struct {
	CatalogueItemID     *string               `json:"catalogue_item_id"`
	SystemID            *string               `json:"system_id"`
	PurchaseOrderNumber Optional[*string]     `json:"purchase_order_number"`
	IsDefective         *bool                 `json:"is_defective"`
	UsageStatusID       *string               `json:"usage_status_id"`
	WarrantyEndDate     Optional[*time.Time]  `json:"warranty_end_date"`
	AssetNumber         Optional[*string]     `json:"asset_number"`
	SerialNumber        Optional[*string]     `json:"serial_number"`
	DeliveredDate       Optional[*time.Time]  `json:"delivered_date"`
	Notes               Optional[*string]     `json:"notes"`
	Properties          *[]SuppliedProperty   `json:"properties"`
}

type ItemService struct {
	itemRepo          *repository.ItemRepository
	catalogueItemRepo *repository.CatalogueItemRepository
	categoryRepo      *repository.CatalogueCategoryRepository
	systemRepo        *repository.SystemRepository
	usageStatusRepo   *repository.UsageStatusRepository
}

func NewItemService(
	itemRepo *repository.ItemRepository,
	catalogueItemRepo *repository.CatalogueItemRepository,
	categoryRepo *repository.CatalogueCategoryRepository,
	systemRepo *repository.SystemRepository,
	usageStatusRepo *repository.UsageStatusRepository,
) *ItemService {
	return &ItemService{
		itemRepo:          itemRepo,
		catalogueItemRepo: catalogueItemRepo,
		categoryRepo:      categoryRepo,
		systemRepo:        systemRepo,
		usageStatusRepo:   usageStatusRepo,
	}
}

// Create creates an item. Properties not supplied are inherited from
// the catalogue item before validation against the category.
func (s *ItemService) Create(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	for _, id := range []string{input.CatalogueItemID, input.SystemID, input.UsageStatusID} {
		if err := validateID(id); err != nil {
			return nil, err
		}
	}
	catalogueItem, err := s.catalogueItemRepo.FindByID(ctx, input.CatalogueItemID)
	if err != nil {
		return nil, missingIfNotFound(err, "catalogue item", input.CatalogueItemID)
	}

	category, err := s.findCategoryOf(ctx, catalogueItem)
	if err != nil {
		return nil, err
	}

	if _, err := s.systemRepo.FindByID(ctx, input.SystemID); err != nil {
		return nil, missingIfNotFound(err, "system", input.SystemID)
	}

	usageStatus, err := s.usageStatusRepo.FindByID(ctx, input.UsageStatusID)
	if err != nil {
		return nil, missingIfNotFound(err, "usage status", input.UsageStatusID)
	}

	supplied := mergeMissingProperties(catalogueItem.Properties, input.Properties)
	properties, err := processProperties(category.Properties, supplied)
	if err != nil {
		return nil, err
	}

	item := &entity.Item{
		ID:                  entity.NewID(),
		CatalogueItemID:     input.CatalogueItemID,
		SystemID:            input.SystemID,
		PurchaseOrderNumber: input.PurchaseOrderNumber,
		IsDefective:         input.IsDefective,
		UsageStatusID:       input.UsageStatusID,
		UsageStatus:         usageStatus.Value,
		WarrantyEndDate:     input.WarrantyEndDate,
		AssetNumber:         input.AssetNumber,
		SerialNumber:        input.SerialNumber,
		DeliveredDate:       input.DeliveredDate,
		Notes:               input.Notes,
		Properties:          properties,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, id string) (*entity.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, missingIfNotFound(err, "item", id)
	}
	return item, nil
}

func (s *ItemService) List(ctx context.Context, systemID, catalogueItemID *string) ([]entity.Item, error) {
	return s.itemRepo.List(ctx, systemID, catalogueItemID)
}

func (s *ItemService) Update(ctx context.Context, id string, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// The catalogue item an item belongs to is immutable.
	if input.CatalogueItemID != nil && *input.CatalogueItemID != item.CatalogueItemID {
		return nil, &apperr.InvalidActionError{Detail: "Cannot change the catalogue item the item belongs to"}
	}

	if input.SystemID != nil && *input.SystemID != item.SystemID {
		if err := validateID(*input.SystemID); err != nil {
			return nil, err
		}
		if _, err := s.systemRepo.FindByID(ctx, *input.SystemID); err != nil {
			return nil, missingIfNotFound(err, "system", *input.SystemID)
		}
		item.SystemID = *input.SystemID
	}

	if input.UsageStatusID != nil && *input.UsageStatusID != item.UsageStatusID {
		if err := validateID(*input.UsageStatusID); err != nil {
			return nil, err
		}
		usageStatus, err := s.usageStatusRepo.FindByID(ctx, *input.UsageStatusID)
		if err != nil {
			return nil, missingIfNotFound(err, "usage status", *input.UsageStatusID)
		}
		item.UsageStatusID = *input.UsageStatusID
		item.UsageStatus = usageStatus.Value
	}

	if input.Properties != nil {
		catalogueItem, err := s.catalogueItemRepo.FindByID(ctx, item.CatalogueItemID)
		if err != nil {
			return nil, missingIfNotFound(err, "catalogue item", item.CatalogueItemID)
		}
		category, err := s.findCategoryOf(ctx, catalogueItem)
		if err != nil {
			return nil, err
		}
		supplied := mergeMissingProperties(catalogueItem.Properties, *input.Properties)
		properties, err := processProperties(category.Properties, supplied)
		if err != nil {
			return nil, err
		}
		item.Properties = properties
	}

	if input.PurchaseOrderNumber.Set {
		item.PurchaseOrderNumber = input.PurchaseOrderNumber.Value
	}
	if input.IsDefective != nil {
		item.IsDefective = *input.IsDefective
	}
	if input.WarrantyEndDate.Set {
		item.WarrantyEndDate = input.WarrantyEndDate.Value
	}
	if input.AssetNumber.Set {
		item.AssetNumber = input.AssetNumber.Value
	}
	if input.SerialNumber.Set {
		item.SerialNumber = input.SerialNumber.Value
	}
	if input.DeliveredDate.Set {
		item.DeliveredDate = input.DeliveredDate.Value
	}
	if input.Notes.Set {
		item.Notes = input.Notes.Value
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

// findCategoryOf resolves the catalogue category of a catalogue item.
// The link is valid by construction, so a dangling reference means the
// stored data is corrupt.
func (s *ItemService) findCategoryOf(ctx context.Context, catalogueItem *entity.CatalogueItem) (*entity.CatalogueCategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, catalogueItem.CatalogueCategoryID)
	if err != nil {
		if isNotFound(err) {
			return nil, &apperr.DatabaseIntegrityError{
				Detail: "No catalogue category found with ID: " + catalogueItem.CatalogueCategoryID,
			}
		}
		return nil, err
	}
	return category, nil
}

// mergeMissingProperties fills the supplied properties out with the
// catalogue item's values, in catalogue item order, so an item only
// needs to name the properties it overrides.
func mergeMissingProperties(inherited entity.PropertyValueList, supplied []SuppliedProperty) []SuppliedProperty {
	suppliedByID := make(map[string]SuppliedProperty, len(supplied))
	for _, sp := range supplied {
		suppliedByID[sp.ID] = sp
	}
	merged := make([]SuppliedProperty, 0, len(inherited))
	for _, property := range inherited {
		if sp, ok := suppliedByID[property.ID]; ok {
			merged = append(merged, sp)
		} else {
			merged = append(merged, SuppliedProperty{ID: property.ID, Value: property.Value})
		}
	}
	return merged
}
