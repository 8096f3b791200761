package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionMaxDepth caps the permission tree; inserting past it fails.
const PermissionMaxDepth = 4

type Permission struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string        `gorm:"not null;index;column:name" json:"name"`
	ParentID  *uuid.UUID    `gorm:"type:uuid;index" json:"parent_id"`
	Parent    *Permission   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentID;references:ID" json:"-"`
	Children  []*Permission `gorm:"foreignKey:ParentID;references:ID" json:"children,omitempty"`
	Level     int           `gorm:"not null;default:1;column:level" json:"level"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null" json:"updated_at"`
}

func (Permission) TableName() string { return "permissions" }

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
