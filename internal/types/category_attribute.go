package types

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AttrSelOnly = "only"
	AttrSelMany = "many"

	AttrWriteManual = "manual"
	AttrWriteList   = "list"
)

type CategoryAttribute struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_category_attr_name" json:"category_id"`
	Category   *Category      `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"-"`
	AttrName   string         `gorm:"not null;uniqueIndex:idx_category_attr_name;column:attr_name" json:"attr_name"`
	AttrSel    string         `gorm:"not null;default:only;column:attr_sel" json:"attr_sel"`
	AttrWrite  string         `gorm:"not null;default:manual;column:attr_write" json:"attr_write"`
	AttrVals   datatypes.JSON `gorm:"column:attr_vals;type:jsonb" json:"attr_vals,omitempty"`
}

func (CategoryAttribute) TableName() string { return "category_attributes" }

func (a *CategoryAttribute) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
