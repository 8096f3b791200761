package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string        `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string        `gorm:"column:description" json:"description"`
	Permissions []*Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
