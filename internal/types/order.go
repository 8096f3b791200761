package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"

	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

type Order struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	OrderNumber     string       `gorm:"uniqueIndex;not null;column:order_number" json:"order_number"`
	TotalAmount     float64      `gorm:"not null;column:total_amount" json:"total_amount"`
	Status          string       `gorm:"not null;default:PENDING;column:status" json:"status"`
	PaymentStatus   string       `gorm:"not null;default:PENDING;index;column:payment_status" json:"payment_status"`
	ShippingAddress string       `gorm:"column:shipping_address" json:"shipping_address"`
	Notes           string       `gorm:"column:notes" json:"notes,omitempty"`
	Items           []*OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items,omitempty"`
	CreatedAt       time.Time    `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	Order     *Order     `gorm:"constraint:OnDelete:CASCADE;foreignKey:OrderID;references:ID" json:"-"`
	ProductID *uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Product   *Product   `gorm:"constraint:OnDelete:SET NULL;foreignKey:ProductID;references:ID" json:"-"`
	Quantity  int        `gorm:"not null;column:quantity" json:"quantity"`
	UnitPrice float64    `gorm:"not null;column:unit_price" json:"unit_price"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
