// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name               string         `json:"name" gorm:"size:255;not null;index"`
	Description        string         `json:"description" gorm:"type:text;not null"`
	Price              float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice      *float64       `json:"originalPrice,omitempty" gorm:"type:decimal(10,2)"`
	DiscountPercentage *float64       `json:"discountPercentage,omitempty" gorm:"type:decimal(5,2)"`
	Category           Category       `json:"category" gorm:"type:varchar(20);not null;index"`
	Brand              string         `json:"brand" gorm:"size:100;not null"`
	Material           string         `json:"material" gorm:"size:100;not null"`
	Dimensions         *Dimensions    `json:"dimensions,omitempty" gorm:"type:jsonb"`
	Weight             float64        `json:"weight"`
	Images             pq.StringArray `json:"images" gorm:"type:text[]"`
	StockQuantity      int            `json:"stockQuantity" gorm:"not null"`
	InStock            bool           `json:"inStock" gorm:"not null"`
	Featured           bool           `json:"featured" gorm:"default:false;index"`
	Rating             float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	Reviews            ReviewList     `json:"reviews" gorm:"type:jsonb"`
	Variants           VariantList    `json:"variants,omitempty" gorm:"type:jsonb"`
}

// SyncStockFlag keeps the derived inStock flag consistent with stockQuantity.
func (p *Product) SyncStockFlag() {
	p.InStock = p.StockQuantity > 0
}

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (d Dimensions) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *Dimensions) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	return json.Unmarshal(jsonBytes(value), d)
}

type Review struct {
	UserID  uuid.UUID `json:"userId"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment,omitempty"`
	Date    string    `json:"date"`
}

type ReviewList []Review

func (r ReviewList) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *ReviewList) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	return json.Unmarshal(jsonBytes(value), r)
}

// VariantSize is the per-size availability inside a shoe color variant.
type VariantSize struct {
	Size    string `json:"size"`
	InStock bool   `json:"inStock"`
}

// Variant groups shoe images and size availability by color.
type Variant struct {
	Color  string        `json:"color"`
	Images []string      `json:"images,omitempty"`
	Sizes  []VariantSize `json:"sizes"`
}

type VariantList []Variant

func (v VariantList) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (v *VariantList) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	return json.Unmarshal(jsonBytes(value), v)
}
