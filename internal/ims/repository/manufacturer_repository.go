package repository

import (
	"context"

	"github.com/labforge/ims/internal/ims/entity"
	"gorm.io/gorm"
)

type ManufacturerRepository struct {
	db *gorm.DB
}

func NewManufacturerRepository(db *gorm.DB) *ManufacturerRepository {
	return &ManufacturerRepository{db: db}
}

func (r *ManufacturerRepository) Create(ctx context.Context, manufacturer *entity.Manufacturer) error {
	return r.db.WithContext(ctx).Create(manufacturer).Error
}

func (r *ManufacturerRepository) FindByID(ctx context.Context, id string) (*entity.Manufacturer, error) {
	var manufacturer entity.Manufacturer
	err := r.db.WithContext(ctx).First(&manufacturer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &manufacturer, nil
}

func (r *ManufacturerRepository) List(ctx context.Context) ([]entity.Manufacturer, error) {
	var manufacturers []entity.Manufacturer
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&manufacturers).Error
	return manufacturers, err
}

func (r *ManufacturerRepository) Update(ctx context.Context, manufacturer *entity.Manufacturer) error {
	return r.db.WithContext(ctx).Save(manufacturer).Error
}

func (r *ManufacturerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Manufacturer{}, "id = ?", id).Error
}

// ExistsWithCode reports whether another manufacturer already uses the
// code.
func (r *ManufacturerRepository) ExistsWithCode(ctx context.Context, code, excludeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Manufacturer{}).
		Where("code = ? AND id <> ?", code, excludeID).
		Count(&count).Error
	return count > 0, err
}
