package repository

import (
	"context"
	"errors"

	"github.com/labforge/ims/internal/ims/entity"
	"gorm.io/gorm"
)

type CatalogueCategoryRepository struct {
	db *gorm.DB
}

func NewCatalogueCategoryRepository(db *gorm.DB) *CatalogueCategoryRepository {
	return &CatalogueCategoryRepository{db: db}
}

func (r *CatalogueCategoryRepository) Create(ctx context.Context, category *entity.CatalogueCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CatalogueCategoryRepository) FindByID(ctx context.Context, id string) (*entity.CatalogueCategory, error) {
	var category entity.CatalogueCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogueCategoryRepository) List(ctx context.Context) ([]entity.CatalogueCategory, error) {
	var categories []entity.CatalogueCategory
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&categories).Error
	return categories, err
}

// ListByParent lists the child categories of a parent; nil lists the
// root-level categories.
func (r *CatalogueCategoryRepository) ListByParent(ctx context.Context, parentID *string) ([]entity.CatalogueCategory, error) {
	var categories []entity.CatalogueCategory
	err := r.db.WithContext(ctx).
		Where("parent_id IS NOT DISTINCT FROM ?", parentID).
		Order("created_at ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CatalogueCategoryRepository) Update(ctx context.Context, category *entity.CatalogueCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *CatalogueCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.CatalogueCategory{}, "id = ?", id).Error
}

// HasSiblingWithCode reports whether another category with the same
// code exists under the same parent. excludeID is skipped so an update
// does not collide with the record itself.
func (r *CatalogueCategoryRepository) HasSiblingWithCode(ctx context.Context, code string, parentID *string, excludeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CatalogueCategory{}).
		Where("code = ? AND parent_id IS NOT DISTINCT FROM ? AND id <> ?", code, parentID, excludeID).
		Count(&count).Error
	return count > 0, err
}

// HasChildCategories reports whether the category has child categories.
func (r *CatalogueCategoryRepository) HasChildCategories(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CatalogueCategory{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// UsesUnit reports whether any category declares a property with the
// given unit.
func (r *CatalogueCategoryRepository) UsesUnit(ctx context.Context, unitID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CatalogueCategory{}).
		Where(`properties @> ?::jsonb`, `[{"unit_id": "`+unitID+`"}]`).
		Count(&count).Error
	return count > 0, err
}

func (r *CatalogueCategoryRepository) GetBreadcrumbs(ctx context.Context, id string) (*entity.Breadcrumbs, error) {
	return computeBreadcrumbs(ctx, r.fetchNode, id, "catalogue_categories")
}

// IsValidMove reports whether the category can be re-parented to the
// destination without creating a cycle.
func (r *CatalogueCategoryRepository) IsValidMove(ctx context.Context, id, destinationID string) (bool, error) {
	return isValidMove(ctx, r.fetchNode, id, destinationID)
}

func (r *CatalogueCategoryRepository) fetchNode(ctx context.Context, id string) (*treeNode, error) {
	var category entity.CatalogueCategory
	err := r.db.WithContext(ctx).
		Select("id", "name", "parent_id").
		First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &treeNode{ID: category.ID, Name: category.Name, ParentID: category.ParentID}, nil
}
