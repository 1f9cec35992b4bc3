package models

import (
	"time"
)

// Car statuses, in pipeline order.
const (
	StatusJapan       = "JAPAN"
	StatusInTransit   = "IN_TRANSIT"
	StatusInAustralia = "IN_AUSTRALIA"
	StatusSold        = "SOLD"
)

// Car is one imported vehicle, keyed by its chassis code.
type Car struct {
	ID                    uint          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ChassisCode           string        `gorm:"column:chassis_code;not null;uniqueIndex" json:"chassisCode"`
	Make                  string        `gorm:"column:make;not null" json:"make"`
	Model                 string        `gorm:"column:model;not null" json:"model"`
	Variant               *string       `gorm:"column:variant" json:"variant"`
	Year                  *int          `gorm:"column:year" json:"year"`
	Colour                *string       `gorm:"column:colour" json:"colour"`
	Grade                 *string       `gorm:"column:grade" json:"grade"`
	Status                string        `gorm:"column:status;type:varchar(20);not null;default:'JAPAN'" json:"status"`
	TotalPurchasePriceAUD float64       `gorm:"column:total_purchase_price_aud;not null" json:"totalPurchasePriceAUD"`
	SalePrice             *float64      `gorm:"column:sale_price" json:"salePrice"`
	Profit                *float64      `gorm:"column:profit" json:"profit"`
	Documents             []CarDocument `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

func (Car) TableName() string {
	return "Cars"
}
