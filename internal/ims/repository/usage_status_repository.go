package repository

import (
	"context"

	"github.com/labforge/ims/internal/ims/entity"
	"gorm.io/gorm"
)

type UsageStatusRepository struct {
	db *gorm.DB
}

func NewUsageStatusRepository(db *gorm.DB) *UsageStatusRepository {
	return &UsageStatusRepository{db: db}
}

func (r *UsageStatusRepository) Create(ctx context.Context, status *entity.UsageStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *UsageStatusRepository) FindByID(ctx context.Context, id string) (*entity.UsageStatus, error) {
	var status entity.UsageStatus
	err := r.db.WithContext(ctx).First(&status, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *UsageStatusRepository) List(ctx context.Context) ([]entity.UsageStatus, error) {
	var statuses []entity.UsageStatus
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&statuses).Error
	return statuses, err
}

func (r *UsageStatusRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.UsageStatus{}, "id = ?", id).Error
}

// ExistsWithCode reports whether a usage status already uses the code.
func (r *UsageStatusRepository) ExistsWithCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.UsageStatus{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}
