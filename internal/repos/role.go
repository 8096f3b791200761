package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type RoleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Role, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Role, int64, error)
	Update(ctx context.Context, tx *gorm.DB, role *types.Role) error
	ReplacePermissions(ctx context.Context, tx *gorm.DB, role *types.Role, perms []*types.Permission) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type roleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	repoLog := baseLog.With("repo", "RoleRepo")
	return &roleRepo{db: db, log: repoLog}
}

func (rr *roleRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *roleRepo) Create(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error) {
	if err := rr.conn(tx).WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (rr *roleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Role, error) {
	var result types.Role
	err := rr.conn(tx).WithContext(ctx).Preload("Permissions").Where("id = ?", id).First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *roleRepo) NameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := rr.conn(tx).WithContext(ctx).Model(&types.Role{}).Where("name = ?", name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (rr *roleRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Role, int64, error) {
	var results []*types.Role
	var count int64
	q := rr.conn(tx).WithContext(ctx).Model(&types.Role{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Preload("Permissions").Order("created_at ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, count, nil
}

func (rr *roleRepo) Update(ctx context.Context, tx *gorm.DB, role *types.Role) error {
	return rr.conn(tx).WithContext(ctx).Omit("Permissions").Save(role).Error
}

func (rr *roleRepo) ReplacePermissions(ctx context.Context, tx *gorm.DB, role *types.Role, perms []*types.Permission) error {
	return rr.conn(tx).WithContext(ctx).Model(role).Association("Permissions").Replace(perms)
}

func (rr *roleRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return rr.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.Role{}).Error
}
