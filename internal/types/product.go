package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProductStateUnconfirmed = 0
	ProductStatePending     = 1
	ProductStateConfirmed   = 2
)

type Product struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"not null;column:name" json:"name"`
	Description string      `gorm:"column:description" json:"description"`
	Price       float64     `gorm:"not null;column:price" json:"price"`
	Quantity    int         `gorm:"not null;default:0;column:quantity" json:"quantity"`
	Weight      float64     `gorm:"column:weight" json:"weight"`
	State       int         `gorm:"not null;default:1;column:state" json:"state"`
	HotQuantity int         `gorm:"not null;default:0;column:hot_quantity" json:"hot_quantity"`
	IsPromote   bool        `gorm:"not null;default:false;column:is_promote" json:"is_promote"`
	Categories  []*Category `gorm:"many2many:product_categories" json:"categories,omitempty"`
	IsDeleted   bool        `gorm:"not null;default:false;index;column:is_deleted" json:"is_deleted"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
