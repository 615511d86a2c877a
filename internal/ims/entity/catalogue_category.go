package entity

import "time"

// CatalogueCategory is a node in the catalogue tree. Leaf categories
// declare the property definitions their catalogue items must satisfy;
// only non-leaf categories may have child categories.
type CatalogueCategory struct {
	ID         string                 `gorm:"primaryKey;size:32" json:"id"`
	Name       string                 `gorm:"size:255;not null" json:"name"`
	Code       string                 `gorm:"size:255;not null;index:idx_catalogue_categories_parent_code" json:"code"`
	IsLeaf     bool                   `gorm:"not null" json:"is_leaf"`
	ParentID   *string                `gorm:"size:32;index:idx_catalogue_categories_parent_code" json:"parent_id"`
	Properties PropertyDefinitionList `gorm:"type:jsonb;not null;default:'[]'" json:"properties"`
	CreatedAt  time.Time              `json:"created_time"`
	UpdatedAt  time.Time              `json:"modified_time"`
}

func (CatalogueCategory) TableName() string { return "catalogue_categories" }
