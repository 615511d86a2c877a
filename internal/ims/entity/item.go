package entity

import "time"

// Item is a physical instance of a catalogue item, located in a system.
// The usage status value is denormalized from the usage status record
// at write time.
type Item struct {
	ID                  string            `gorm:"primaryKey;size:32" json:"id"`
	CatalogueItemID     string            `gorm:"size:32;not null;index" json:"catalogue_item_id"`
	SystemID            string            `gorm:"size:32;not null;index" json:"system_id"`
	PurchaseOrderNumber *string           `gorm:"size:255" json:"purchase_order_number"`
	IsDefective         bool              `gorm:"not null;default:false" json:"is_defective"`
	UsageStatusID       string            `gorm:"size:32;not null;index" json:"usage_status_id"`
	UsageStatus         string            `gorm:"size:255;not null" json:"usage_status"`
	WarrantyEndDate     *time.Time        `json:"warranty_end_date"`
	AssetNumber         *string           `gorm:"size:255" json:"asset_number"`
	SerialNumber        *string           `gorm:"size:255" json:"serial_number"`
	DeliveredDate       *time.Time        `json:"delivered_date"`
	Notes               *string           `json:"notes"`
	Properties          PropertyValueList `gorm:"type:jsonb;not null;default:'[]'" json:"properties"`
	CreatedAt           time.Time         `json:"created_time"`
	UpdatedAt           time.Time         `json:"modified_time"`
}

func (Item) TableName() string { return "items" }
