package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
	"gorm.io/gorm"
)

type CreateSystemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Owner       *string `json:"owner"`
	Importance  string  `json:"importance" binding:"required,oneof=low medium high"`
	ParentID    *string `json:"parent_id"`
}

type UpdateSystemInput struct {
	Name        *string           `json:"name"`
	Description Optional[*string] `json:"description"`
	Location    Optional[*string] `json:"location"`
	Owner       Optional[*string] `json:"owner"`
	Importance  *string           `json:"importance" binding:"omitempty,oneof=low medium high"`
	ParentID    Optional[*string] `json:"parent_id"`
}

type SystemService struct {
	systemRepo *repository.SystemRepository
	itemRepo   *repository.ItemRepository
}

func NewSystemService(systemRepo *repository.SystemRepository, itemRepo *repository.ItemRepository) *SystemService {
	return &SystemService{systemRepo: systemRepo, itemRepo: itemRepo}
}

func (s *SystemService) Create(ctx context.Context, input *CreateSystemInput) (*entity.System, error) {
	if input.ParentID != nil {
		if err := validateID(*input.ParentID); err != nil {
			return nil, err
		}
		if _, err := s.systemRepo.FindByID(ctx, *input.ParentID); err != nil {
			return nil, missingIfNotFound(err, "parent system", *input.ParentID)
		}
	}

	code := generateCode(input.Name)
	duplicate, err := s.systemRepo.HasSiblingWithCode(ctx, code, input.ParentID, "")
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, &apperr.DuplicateRecordError{
			Detail: "Duplicate system found within the parent system",
			Entity: "system",
		}
	}

	system := &entity.System{
		ID:          entity.NewID(),
		ParentID:    input.ParentID,
		Name:        input.Name,
		Code:        code,
		Description: input.Description,
		Location:    input.Location,
		Owner:       input.Owner,
		Importance:  input.Importance,
	}
	if err := s.systemRepo.Create(ctx, system); err != nil {
		return nil, err
	}
	return system, nil
}

func (s *SystemService) Get(ctx context.Context, id string) (*entity.System, error) {
	system, err := s.systemRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.MissingRecord("system", id)
	}
	if err != nil {
		return nil, err
	}
	return system, nil
}

func (s *SystemService) GetBreadcrumbs(ctx context.Context, id string) (*entity.Breadcrumbs, error) {
	return s.systemRepo.GetBreadcrumbs(ctx, id)
}

func (s *SystemService) List(ctx context.Context) ([]entity.System, error) {
	return s.systemRepo.List(ctx)
}

func (s *SystemService) ListByParent(ctx context.Context, parentID *string) ([]entity.System, error) {
	return s.systemRepo.ListByParent(ctx, parentID)
}

func (s *SystemService) Update(ctx context.Context, id string, input *UpdateSystemInput) (*entity.System, error) {
	system, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != system.Name {
		system.Name = *input.Name
		system.Code = generateCode(*input.Name)
	}
	if input.Description.Set {
		system.Description = input.Description.Value
	}
	if input.Location.Set {
		system.Location = input.Location.Value
	}
	if input.Owner.Set {
		system.Owner = input.Owner.Value
	}
	if input.Importance != nil {
		system.Importance = *input.Importance
	}

	movingSystem := input.ParentID.Set && !equalStringPtr(input.ParentID.Value, system.ParentID)
	if movingSystem {
		if input.ParentID.Value != nil {
			if err := validateID(*input.ParentID.Value); err != nil {
				return nil, err
			}
			if _, err := s.systemRepo.FindByID(ctx, *input.ParentID.Value); err != nil {
				return nil, missingIfNotFound(err, "parent system", *input.ParentID.Value)
			}
			valid, err := s.systemRepo.IsValidMove(ctx, id, *input.ParentID.Value)
			if err != nil {
				return nil, err
			}
			if !valid {
				return nil, &apperr.InvalidActionError{
					Detail: "Cannot move a system to one of its own children",
				}
			}
		}
		system.ParentID = input.ParentID.Value
	}

	if input.Name != nil || movingSystem {
		duplicate, err := s.systemRepo.HasSiblingWithCode(ctx, system.Code, system.ParentID, id)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, &apperr.DuplicateRecordError{
				Detail: "Duplicate system found within the parent system",
				Entity: "system",
			}
		}
	}

	if err := s.systemRepo.Update(ctx, system); err != nil {
		return nil, err
	}
	return system, nil
}

func (s *SystemService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	hasChildren, err := s.hasChildElements(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return &apperr.ChildElementsExistError{
			Detail: fmt.Sprintf("System with ID %s has child elements and cannot be deleted", id),
		}
	}
	return s.systemRepo.Delete(ctx, id)
}

// hasChildElements reports whether the system has child systems or
// items installed in it.
func (s *SystemService) hasChildElements(ctx context.Context, id string) (bool, error) {
	hasSystems, err := s.systemRepo.HasChildSystems(ctx, id)
	if err != nil {
		return false, err
	}
	if hasSystems {
		return true, nil
	}
	return s.itemRepo.ExistsBySystem(ctx, id)
}
