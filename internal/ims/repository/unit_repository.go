package repository

import (
	"context"

	"github.com/labforge/ims/internal/ims/entity"
	"gorm.io/gorm"
)

type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) Create(ctx context.Context, unit *entity.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *UnitRepository) FindByID(ctx context.Context, id string) (*entity.Unit, error) {
	var unit entity.Unit
	err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *UnitRepository) List(ctx context.Context) ([]entity.Unit, error) {
	var units []entity.Unit
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&units).Error
	return units, err
}

func (r *UnitRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Unit{}, "id = ?", id).Error
}

// ExistsWithCode reports whether a unit already uses the code.
func (r *UnitRepository) ExistsWithCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Unit{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}
