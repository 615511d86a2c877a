package service

import (
	"context"
	"fmt"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
)

type CreateUnitInput struct {
	Value string `json:"value" binding:"required"`
}

type UnitService struct {
	unitRepo     *repository.UnitRepository
	categoryRepo *repository.CatalogueCategoryRepository
}

func NewUnitService(unitRepo *repository.UnitRepository, categoryRepo *repository.CatalogueCategoryRepository) *UnitService {
	return &UnitService{unitRepo: unitRepo, categoryRepo: categoryRepo}
}

func (s *UnitService) Create(ctx context.Context, input *CreateUnitInput) (*entity.Unit, error) {
	code := generateCode(input.Value)
	duplicate, err := s.unitRepo.ExistsWithCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, &apperr.DuplicateRecordError{
			Detail: "Duplicate unit found",
			Entity: "unit",
		}
	}

	unit := &entity.Unit{
		ID:    entity.NewID(),
		Value: input.Value,
		Code:  code,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) Get(ctx context.Context, id string) (*entity.Unit, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, missingIfNotFound(err, "unit", id)
	}
	return unit, nil
}

func (s *UnitService) List(ctx context.Context) ([]entity.Unit, error) {
	return s.unitRepo.List(ctx)
}

func (s *UnitService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	inUse, err := s.categoryRepo.UsesUnit(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return &apperr.PartOfCatalogueCategoryError{
			Detail: fmt.Sprintf("The unit with ID %s is a part of a Catalogue category", id),
		}
	}
	return s.unitRepo.Delete(ctx, id)
}
