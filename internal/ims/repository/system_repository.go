package repository

import (
	"context"
	"errors"

	"github.com/labforge/ims/internal/ims/entity"
	"gorm.io/gorm"
)

type SystemRepository struct {
	db *gorm.DB
}

func NewSystemRepository(db *gorm.DB) *SystemRepository {
	return &SystemRepository{db: db}
}

func (r *SystemRepository) Create(ctx context.Context, system *entity.System) error {
	return r.db.WithContext(ctx).Create(system).Error
}

func (r *SystemRepository) FindByID(ctx context.Context, id string) (*entity.System, error) {
	var system entity.System
	err := r.db.WithContext(ctx).First(&system, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &system, nil
}

func (r *SystemRepository) List(ctx context.Context) ([]entity.System, error) {
	var systems []entity.System
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&systems).Error
	return systems, err
}

// ListByParent lists the child systems of a parent; nil lists the
// root-level systems.
func (r *SystemRepository) ListByParent(ctx context.Context, parentID *string) ([]entity.System, error) {
	var systems []entity.System
	err := r.db.WithContext(ctx).
		Where("parent_id IS NOT DISTINCT FROM ?", parentID).
		Order("created_at ASC").
		Find(&systems).Error
	return systems, err
}

func (r *SystemRepository) Update(ctx context.Context, system *entity.System) error {
	return r.db.WithContext(ctx).Save(system).Error
}

func (r *SystemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.System{}, "id = ?", id).Error
}

// HasSiblingWithCode reports whether another system with the same code
// exists under the same parent.
func (r *SystemRepository) HasSiblingWithCode(ctx context.Context, code string, parentID *string, excludeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.System{}).
		Where("code = ? AND parent_id IS NOT DISTINCT FROM ? AND id <> ?", code, parentID, excludeID).
		Count(&count).Error
	return count > 0, err
}

// HasChildSystems reports whether the system has child systems.
func (r *SystemRepository) HasChildSystems(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.System{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *SystemRepository) GetBreadcrumbs(ctx context.Context, id string) (*entity.Breadcrumbs, error) {
	return computeBreadcrumbs(ctx, r.fetchNode, id, "systems")
}

// IsValidMove reports whether the system can be re-parented to the
// destination without creating a cycle.
func (r *SystemRepository) IsValidMove(ctx context.Context, id, destinationID string) (bool, error) {
	return isValidMove(ctx, r.fetchNode, id, destinationID)
}

func (r *SystemRepository) fetchNode(ctx context.Context, id string) (*treeNode, error) {
	var system entity.System
	err := r.db.WithContext(ctx).
		Select("id", "name", "parent_id").
		First(&system, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &treeNode{ID: system.ID, Name: system.Name, ParentID: system.ParentID}, nil
}
