package service

import (
	"errors"
	"fmt"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services bundles one service per API resource.
type Services struct {
	CatalogueCategory         *CatalogueCategoryService
	CatalogueCategoryProperty *CatalogueCategoryPropertyService
	CatalogueItem             *CatalogueItemService
	Item                      *ItemService
	System                    *SystemService
	Manufacturer              *ManufacturerService
	Unit                      *UnitService
	UsageStatus               *UsageStatusService
}

// NewServices creates the service set over the shared repositories.
func NewServices(repos *repository.Repositories, logger *zap.Logger) *Services {
	return &Services{
		CatalogueCategory: NewCatalogueCategoryService(repos.CatalogueCategory, repos.CatalogueItem, repos.Unit),
		CatalogueCategoryProperty: NewCatalogueCategoryPropertyService(
			repos.CatalogueCategory, repos.CatalogueItem, repos.Item, repos.Unit, logger),
		CatalogueItem: NewCatalogueItemService(repos.CatalogueItem, repos.CatalogueCategory, repos.Manufacturer, repos.Item),
		Item:          NewItemService(repos.Item, repos.CatalogueItem, repos.CatalogueCategory, repos.System, repos.UsageStatus),
		System:        NewSystemService(repos.System, repos.Item),
		Manufacturer:  NewManufacturerService(repos.Manufacturer, repos.CatalogueItem),
		Unit:          NewUnitService(repos.Unit, repos.CatalogueCategory),
		UsageStatus:   NewUsageStatusService(repos.UsageStatus, repos.Item),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// missingIfNotFound translates a gorm not-found error into the typed
// missing-record condition for the given entity label.
func missingIfNotFound(err error, label, id string) error {
	if isNotFound(err) {
		return apperr.MissingRecord(label, id)
	}
	return err
}

// validateID rejects malformed ids supplied in request bodies. Path ids
// are not validated; a malformed path id simply fails its lookup.
func validateID(id string) error {
	if !entity.IsValidID(id) {
		return &apperr.InvalidIDError{Detail: fmt.Sprintf("Invalid ID value '%s'", id)}
	}
	return nil
}
