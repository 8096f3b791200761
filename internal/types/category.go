package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category levels are derived, never client-supplied: root nodes sit at
// level 1, children at min(parent.level+1, CategoryMaxDepth).
const CategoryMaxDepth = 3

type Category struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string      `gorm:"not null;index;column:name" json:"name"`
	ParentID  *uuid.UUID  `gorm:"type:uuid;index" json:"parent_id"`
	Parent    *Category   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentID;references:ID" json:"-"`
	Children  []*Category `gorm:"foreignKey:ParentID;references:ID" json:"children,omitempty"`
	Level     int         `gorm:"not null;default:1;column:level" json:"level"`
	IsDeleted bool        `gorm:"not null;default:false;index;column:is_deleted" json:"is_deleted"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
