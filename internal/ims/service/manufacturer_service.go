package service

import (
	"context"
	"fmt"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
)

type CreateManufacturerInput struct {
	Name      string         `json:"name" binding:"required"`
	URL       *string        `json:"url"`
	Address   entity.Address `json:"address" binding:"required"`
	Telephone *string        `json:"telephone"`
}

// AddressPatch updates individual address fields. The mandatory fields
// cannot be unset, only replaced.
type AddressPatch struct {
	AddressLine *string           `json:"address_line"`
	Town        Optional[*string] `json:"town"`
	County      Optional[*string] `json:"county"`
	Country     *string           `json:"country"`
	Postcode    *string           `json:"postcode"`
}

type UpdateManufacturerInput struct {
	Name      *string           `json:"name"`
	URL       Optional[*string] `json:"url"`
	Address   *AddressPatch     `json:"address"`
	Telephone Optional[*string] `json:"telephone"`
}

type ManufacturerService struct {
	manufacturerRepo  *repository.ManufacturerRepository
	catalogueItemRepo *repository.CatalogueItemRepository
}

func NewManufacturerService(
	manufacturerRepo *repository.ManufacturerRepository,
	catalogueItemRepo *repository.CatalogueItemRepository,
) *ManufacturerService {
	return &ManufacturerService{manufacturerRepo: manufacturerRepo, catalogueItemRepo: catalogueItemRepo}
}

func (s *ManufacturerService) Create(ctx context.Context, input *CreateManufacturerInput) (*entity.Manufacturer, error) {
	code := generateCode(input.Name)
	duplicate, err := s.manufacturerRepo.ExistsWithCode(ctx, code, "")
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, &apperr.DuplicateRecordError{
			Detail: "Duplicate manufacturer found",
			Entity: "manufacturer",
		}
	}

	manufacturer := &entity.Manufacturer{
		ID:        entity.NewID(),
		Name:      input.Name,
		Code:      code,
		URL:       input.URL,
		Address:   input.Address,
		Telephone: input.Telephone,
	}
	if err := s.manufacturerRepo.Create(ctx, manufacturer); err != nil {
		return nil, err
	}
	return manufacturer, nil
}

func (s *ManufacturerService) Get(ctx context.Context, id string) (*entity.Manufacturer, error) {
	manufacturer, err := s.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, missingIfNotFound(err, "manufacturer", id)
	}
	return manufacturer, nil
}

func (s *ManufacturerService) List(ctx context.Context) ([]entity.Manufacturer, error) {
	return s.manufacturerRepo.List(ctx)
}

func (s *ManufacturerService) Update(ctx context.Context, id string, input *UpdateManufacturerInput) (*entity.Manufacturer, error) {
	manufacturer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != manufacturer.Name {
		code := generateCode(*input.Name)
		duplicate, err := s.manufacturerRepo.ExistsWithCode(ctx, code, id)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, &apperr.DuplicateRecordError{
				Detail: "Duplicate manufacturer found",
				Entity: "manufacturer",
			}
		}
		manufacturer.Name = *input.Name
		manufacturer.Code = code
	}
	if input.URL.Set {
		manufacturer.URL = input.URL.Value
	}
	if input.Telephone.Set {
		manufacturer.Telephone = input.Telephone.Value
	}
	if input.Address != nil {
		patch := input.Address
		if patch.AddressLine != nil {
			manufacturer.Address.AddressLine = *patch.AddressLine
		}
		if patch.Town.Set {
			manufacturer.Address.Town = patch.Town.Value
		}
		if patch.County.Set {
			manufacturer.Address.County = patch.County.Value
		}
		if patch.Country != nil {
			manufacturer.Address.Country = *patch.Country
		}
		if patch.Postcode != nil {
			manufacturer.Address.Postcode = *patch.Postcode
		}
	}

	if err := s.manufacturerRepo.Update(ctx, manufacturer); err != nil {
		return nil, err
	}
	return manufacturer, nil
}

func (s *ManufacturerService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	inUse, err := s.catalogueItemRepo.ExistsByManufacturer(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return &apperr.PartOfCatalogueItemError{
			Detail: fmt.Sprintf("Manufacturer with ID '%s' is part of a catalogue item", id),
		}
	}
	return s.manufacturerRepo.Delete(ctx, id)
}
