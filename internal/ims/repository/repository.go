package repository

import "gorm.io/gorm"

// Repositories bundles one repository per entity type.
type Repositories struct {
	CatalogueCategory *CatalogueCategoryRepository
	CatalogueItem     *CatalogueItemRepository
	Item              *ItemRepository
	System            *SystemRepository
	Manufacturer      *ManufacturerRepository
	Unit              *UnitRepository
	UsageStatus       *UsageStatusRepository
}

// NewRepositories creates the repository set over a shared connection.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		CatalogueCategory: NewCatalogueCategoryRepository(db),
		CatalogueItem:     NewCatalogueItemRepository(db),
		Item:              NewItemRepository(db),
		System:            NewSystemRepository(db),
		Manufacturer:      NewManufacturerRepository(db),
		Unit:              NewUnitRepository(db),
		UsageStatus:       NewUsageStatusRepository(db),
	}
}
