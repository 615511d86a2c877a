package repository

import (
	"context"
	"encoding/json"

	"github.com/labforge/ims/internal/ims/entity"
	"gorm.io/gorm"
)

type CatalogueItemRepository struct {
	db *gorm.DB
}

func NewCatalogueItemRepository(db *gorm.DB) *CatalogueItemRepository {
	return &CatalogueItemRepository{db: db}
}

func (r *CatalogueItemRepository) Create(ctx context.Context, item *entity.CatalogueItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *CatalogueItemRepository) FindByID(ctx context.Context, id string) (*entity.CatalogueItem, error) {
	var item entity.CatalogueItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List lists catalogue items, optionally filtered by catalogue
// category.
func (r *CatalogueItemRepository) List(ctx context.Context, categoryID *string) ([]entity.CatalogueItem, error) {
	q := r.db.WithContext(ctx).Model(&entity.CatalogueItem{}).Order("created_at ASC")
	if categoryID != nil {
		q = q.Where("catalogue_category_id = ?", *categoryID)
	}
	var items []entity.CatalogueItem
	err := q.Find(&items).Error
	return items, err
}

// ListIDsByCategory returns the IDs of every catalogue item in a
// category. Used to scope mass property updates to the items below.
func (r *CatalogueItemRepository) ListIDsByCategory(ctx context.Context, categoryID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entity.CatalogueItem{}).
		Where("catalogue_category_id = ?", categoryID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CatalogueItemRepository) Update(ctx context.Context, item *entity.CatalogueItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *CatalogueItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.CatalogueItem{}, "id = ?", id).Error
}

// ExistsByCategory reports whether the category contains any catalogue
// items.
func (r *CatalogueItemRepository) ExistsByCategory(ctx context.Context, categoryID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CatalogueItem{}).
		Where("catalogue_category_id = ?", categoryID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByManufacturer reports whether any catalogue item references
// the manufacturer.
func (r *CatalogueItemRepository) ExistsByManufacturer(ctx context.Context, manufacturerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CatalogueItem{}).
		Where("manufacturer_id = ?", manufacturerID).
		Count(&count).Error
	return count > 0, err
}

// AddPropertyToAllInCategory appends a property value to every
// catalogue item in the category, bumping their modified times.
func (r *CatalogueItemRepository) AddPropertyToAllInCategory(ctx context.Context, categoryID string, property entity.PropertyValue) error {
	appended, err := json.Marshal([]entity.PropertyValue{property})
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(
		`UPDATE catalogue_items SET properties = properties || ?::jsonb, updated_at = NOW() WHERE catalogue_category_id = ?`,
		string(appended), categoryID,
	).Error
}

// RenamePropertyInCategory rewrites the denormalized name of a
// property on every catalogue item in the category that carries it.
func (r *CatalogueItemRepository) RenamePropertyInCategory(ctx context.Context, categoryID, propertyID, name string) error {
	match, err := json.Marshal([]map[string]string{{"id": propertyID}})
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(
		`UPDATE catalogue_items
		 SET properties = (
		   SELECT COALESCE(jsonb_agg(CASE WHEN p->>'id' = ? THEN jsonb_set(p, '{name}', to_jsonb(?::text)) ELSE p END), '[]'::jsonb)
		   FROM jsonb_array_elements(properties) AS p
		 ), updated_at = NOW()
		 WHERE catalogue_category_id = ? AND properties @> ?::jsonb`,
		propertyID, name, categoryID, string(match),
	).Error
}
