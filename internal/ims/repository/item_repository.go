package repository

import (
	"context"
	"encoding/json"

	"github.com/labforge/ims/internal/ims/entity"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List lists items, optionally filtered by system and/or catalogue
// item.
func (r *ItemRepository) List(ctx context.Context, systemID, catalogueItemID *string) ([]entity.Item, error) {
	q := r.db.WithContext(ctx).Model(&entity.Item{}).Order("created_at ASC")
	if systemID != nil {
		q = q.Where("system_id = ?", *systemID)
	}
	if catalogueItemID != nil {
		q = q.Where("catalogue_item_id = ?", *catalogueItemID)
	}
	var items []entity.Item
	err := q.Find(&items).Error
	return items, err
}

func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Item{}, "id = ?", id).Error
}

// ExistsByCatalogueItem reports whether any item is an instance of the
// catalogue item.
func (r *ItemRepository) ExistsByCatalogueItem(ctx context.Context, catalogueItemID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("catalogue_item_id = ?", catalogueItemID).
		Count(&count).Error
	return count > 0, err
}

// ExistsBySystem reports whether any item sits in the system.
func (r *ItemRepository) ExistsBySystem(ctx context.Context, systemID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("system_id = ?", systemID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByUsageStatus reports whether any item carries the usage
// status.
func (r *ItemRepository) ExistsByUsageStatus(ctx context.Context, usageStatusID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("usage_status_id = ?", usageStatusID).
		Count(&count).Error
	return count > 0, err
}

// AddPropertyToAllIn appends a property value to every item belonging
// to one of the given catalogue items.
func (r *ItemRepository) AddPropertyToAllIn(ctx context.Context, catalogueItemIDs []string, property entity.PropertyValue) error {
	if len(catalogueItemIDs) == 0 {
		return nil
	}
	appended, err := json.Marshal([]entity.PropertyValue{property})
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(
		`UPDATE items SET properties = properties || ?::jsonb, updated_at = NOW() WHERE catalogue_item_id IN ?`,
		string(appended), catalogueItemIDs,
	).Error
}

// RenamePropertyIn rewrites the denormalized name of a property on
// every item belonging to one of the given catalogue items.
func (r *ItemRepository) RenamePropertyIn(ctx context.Context, catalogueItemIDs []string, propertyID, name string) error {
	if len(catalogueItemIDs) == 0 {
		return nil
	}
	match, err := json.Marshal([]map[string]string{{"id": propertyID}})
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(
		`UPDATE items
		 SET properties = (
		   SELECT COALESCE(jsonb_agg(CASE WHEN p->>'id' = ? THEN jsonb_set(p, '{name}', to_jsonb(?::text)) ELSE p END), '[]'::jsonb)
		   FROM jsonb_array_elements(properties) AS p
		 ), updated_at = NOW()
		 WHERE catalogue_item_id IN ? AND properties @> ?::jsonb`,
		propertyID, name, catalogueItemIDs, string(match),
	).Error
}
