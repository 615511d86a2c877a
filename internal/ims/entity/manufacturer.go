package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Address is a manufacturer's postal address, stored as JSONB.
type Address struct {
	AddressLine string  `json:"address_line" binding:"required"`
	Town        *string `json:"town"`
	County      *string `json:"county"`
	Country     string  `json:"country" binding:"required"`
	Postcode    string  `json:"postcode" binding:"required"`
}

func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(value interface{}) error {
	b, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, a)
}

// Manufacturer supplies catalogue items. Codes are unique across all
// manufacturers.
type Manufacturer struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Code      string    `gorm:"size:255;not null;uniqueIndex" json:"code"`
	URL       *string   `gorm:"size:2000" json:"url"`
	Address   Address   `gorm:"type:jsonb;not null" json:"address"`
	Telephone *string   `gorm:"size:64" json:"telephone"`
	CreatedAt time.Time `json:"created_time"`
	UpdatedAt time.Time `json:"modified_time"`
}

func (Manufacturer) TableName() string { return "manufacturers" }
