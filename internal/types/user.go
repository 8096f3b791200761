package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username  string     `gorm:"not null;column:username" json:"username"`
	Password  string     `gorm:"not null;column:password" json:"-"`
	IsStaff   bool       `gorm:"not null;default:false;column:is_staff" json:"is_staff"`
	RoleID    *uuid.UUID `gorm:"type:uuid;index" json:"role_id"`
	Role      *Role      `gorm:"constraint:OnDelete:SET NULL;foreignKey:RoleID;references:ID" json:"role,omitempty"`
	IsDeleted bool       `gorm:"not null;default:false;column:is_deleted" json:"is_deleted"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
