// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a checkout snapshot: line items capture the unit price at the
// moment stock was reserved, independent of later catalog price changes.
// Exactly one of UserID and GuestInfo is set.
type Order struct {
	BaseModel
	UserID            *uuid.UUID    `json:"userId,omitempty" gorm:"type:uuid;index"`
	User              *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	GuestInfo         *GuestInfo    `json:"guestInfo,omitempty" gorm:"type:jsonb"`
	Items             []OrderItem   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount       float64       `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	ShippingAddress   Address       `json:"shippingAddress" gorm:"type:jsonb"`
	BillingAddress    Address       `json:"billingAddress" gorm:"type:jsonb"`
	PaymentMethod     PaymentMethod `json:"paymentMethod" gorm:"type:varchar(20);not null"`
	PaymentStatus     PaymentStatus `json:"paymentStatus" gorm:"type:varchar(20);default:'pending';index"`
	OrderStatus       OrderStatus   `json:"orderStatus" gorm:"type:varchar(20);default:'pending';index"`
	TrackingNumber    string        `json:"trackingNumber,omitempty" gorm:"size:100"`
	EstimatedDelivery *time.Time    `json:"estimatedDelivery,omitempty"`
	Notes             string        `json:"notes,omitempty" gorm:"type:text"`
	AdminEarnings     float64       `json:"adminEarnings" gorm:"type:decimal(12,2);not null;default:0"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (g GuestInfo) Value() (driver.Value, error) {
	return json.Marshal(g)
}

func (g *GuestInfo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	return json.Unmarshal(jsonBytes(value), g)
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	return json.Unmarshal(jsonBytes(value), a)
}
