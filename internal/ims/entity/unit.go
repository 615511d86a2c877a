package entity

import "time"

// Unit is a measurement unit attachable to property definitions.
type Unit struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	Code      string    `gorm:"size:255;not null;uniqueIndex" json:"code"`
	CreatedAt time.Time `json:"created_time"`
	UpdatedAt time.Time `json:"modified_time"`
}

func (Unit) TableName() string { return "units" }
