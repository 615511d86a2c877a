package entity

import "time"

// System importance levels.
const (
	ImportanceLow    = "low"
	ImportanceMedium = "medium"
	ImportanceHigh   = "high"
)

// System is a node in the tree of locations items are installed in.
type System struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	ParentID    *string   `gorm:"size:32;index:idx_systems_parent_code" json:"parent_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Code        string    `gorm:"size:255;not null;index:idx_systems_parent_code" json:"code"`
	Description *string   `json:"description"`
	Location    *string   `gorm:"size:255" json:"location"`
	Owner       *string   `gorm:"size:255" json:"owner"`
	Importance  string    `gorm:"size:16;not null" json:"importance"`
	CreatedAt   time.Time `json:"created_time"`
	UpdatedAt   time.Time `json:"modified_time"`
}

func (System) TableName() string { return "systems" }
