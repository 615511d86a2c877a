package service

import (
	"context"
	"fmt"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
)

type CreateUsageStatusInput struct {
	Value string `json:"value" binding:"required"`
}

type UsageStatusService struct {
	usageStatusRepo *repository.UsageStatusRepository
	itemRepo        *repository.ItemRepository
}

func NewUsageStatusService(usageStatusRepo *repository.UsageStatusRepository, itemRepo *repository.ItemRepository) *UsageStatusService {
	return &UsageStatusService{usageStatusRepo: usageStatusRepo, itemRepo: itemRepo}
}

func (s *UsageStatusService) Create(ctx context.Context, input *CreateUsageStatusInput) (*entity.UsageStatus, error) {
	code := generateCode(input.Value)
	duplicate, err := s.usageStatusRepo.ExistsWithCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, &apperr.DuplicateRecordError{
			Detail: "Duplicate usage status found",
			Entity: "usage status",
		}
	}

	status := &entity.UsageStatus{
		ID:    entity.NewID(),
		Value: input.Value,
		Code:  code,
	}
	if err := s.usageStatusRepo.Create(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *UsageStatusService) Get(ctx context.Context, id string) (*entity.UsageStatus, error) {
	status, err := s.usageStatusRepo.FindByID(ctx, id)
	if err != nil {
		return nil, missingIfNotFound(err, "usage status", id)
	}
	return status, nil
}

func (s *UsageStatusService) List(ctx context.Context) ([]entity.UsageStatus, error) {
	return s.usageStatusRepo.List(ctx)
}

func (s *UsageStatusService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	inUse, err := s.itemRepo.ExistsByUsageStatus(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return &apperr.PartOfItemError{
			Detail: fmt.Sprintf("The usage status with ID %s is a part of an Item", id),
		}
	}
	return s.usageStatusRepo.Delete(ctx, id)
}
