package entity

import "time"

// CatalogueItem describes a type of equipment within a leaf catalogue
// category. Items are the physical instances of a catalogue item.
type CatalogueItem struct {
	ID                  string            `gorm:"primaryKey;size:32" json:"id"`
	CatalogueCategoryID string            `gorm:"size:32;not null;index" json:"catalogue_category_id"`
	ManufacturerID      string            `gorm:"size:32;not null;index" json:"manufacturer_id"`
	Name                string            `gorm:"size:255;not null" json:"name"`
	Description         *string           `json:"description"`
	CostGBP             float64           `gorm:"not null" json:"cost_gbp"`
	CostToReworkGBP     *float64          `json:"cost_to_rework_gbp"`
	DaysToReplace       float64           `gorm:"not null" json:"days_to_replace"`
	DaysToRework        *float64          `json:"days_to_rework"`
	DrawingNumber       *string           `gorm:"size:255" json:"drawing_number"`
	DrawingLink         *string           `gorm:"size:2000" json:"drawing_link"`
	ItemModelNumber     *string           `gorm:"size:255" json:"item_model_number"`
	IsObsolete          bool              `gorm:"not null;default:false" json:"is_obsolete"`
	ObsoleteReason      *string           `json:"obsolete_reason"`
	ObsoleteReplacementCatalogueItemID *string `gorm:"size:32" json:"obsolete_replacement_catalogue_item_id"`
	Notes               *string           `json:"notes"`
	Properties          PropertyValueList `gorm:"type:jsonb;not null;default:'[]'" json:"properties"`
	CreatedAt           time.Time         `json:"created_time"`
	UpdatedAt           time.Time         `json:"modified_time"`
}

func (CatalogueItem) TableName() string { return "catalogue_items" }
