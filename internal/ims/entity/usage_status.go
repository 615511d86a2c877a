package entity

import "time"

// UsageStatus is a named state an item can be in, e.g. "In Use".
type UsageStatus struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	Code      string    `gorm:"size:255;not null;uniqueIndex" json:"code"`
	CreatedAt time.Time `json:"created_time"`
	UpdatedAt time.Time `json:"modified_time"`
}

func (UsageStatus) TableName() string { return "usage_statuses" }
