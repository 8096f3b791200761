package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type PermissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, perm *types.Permission) (*types.Permission, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Permission, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Permission, error)
	ListByLevel(ctx context.Context, tx *gorm.DB, level int) ([]*types.Permission, error)
	ListRoots(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Permission, int64, error)
	ListChildren(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Permission, error)
	NameExistsFold(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, perm *types.Permission) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type permissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPermissionRepo(db *gorm.DB, baseLog *logger.Logger) PermissionRepo {
	repoLog := baseLog.With("repo", "PermissionRepo")
	return &permissionRepo{db: db, log: repoLog}
}

func (pr *permissionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *permissionRepo) Create(ctx context.Context, tx *gorm.DB, perm *types.Permission) (*types.Permission, error) {
	if err := pr.conn(tx).WithContext(ctx).Create(perm).Error; err != nil {
		return nil, err
	}
	return perm, nil
}

func (pr *permissionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Permission, error) {
	var result types.Permission
	err := pr.conn(tx).WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *permissionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Permission, error) {
	var results []*types.Permission
	if len(ids) == 0 {
		return results, nil
	}
	if err := pr.conn(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *permissionRepo) ListByLevel(ctx context.Context, tx *gorm.DB, level int) ([]*types.Permission, error) {
	var results []*types.Permission
	if err := pr.conn(tx).WithContext(ctx).
		Where("level = ?", level).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListRoots pages through level-1 permissions.
func (pr *permissionRepo) ListRoots(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Permission, int64, error) {
	var count int64
	if err := pr.conn(tx).WithContext(ctx).Model(&types.Permission{}).
		Where("level = ?", 1).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var results []*types.Permission
	if err := pr.conn(tx).WithContext(ctx).
		Where("level = ?", 1).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, count, nil
}

func (pr *permissionRepo) ListChildren(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Permission, error) {
	var results []*types.Permission
	if err := pr.conn(tx).WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Permission names are unique globally and case-insensitively.
func (pr *permissionRepo) NameExistsFold(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := pr.conn(tx).WithContext(ctx).Model(&types.Permission{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *permissionRepo) Update(ctx context.Context, tx *gorm.DB, perm *types.Permission) error {
	return pr.conn(tx).WithContext(ctx).Save(perm).Error
}

func (pr *permissionRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return pr.conn(tx).WithContext(ctx).Where("id IN ?", ids).Delete(&types.Permission{}).Error
}
