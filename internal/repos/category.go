package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cat *types.Category) (*types.Category, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Category, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Category, error)
	ListByLevel(ctx context.Context, tx *gorm.DB, level int, deleted bool, offset, limit int) ([]*types.Category, int64, error)
	ListDeleted(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Category, int64, error)
	ListChildren(ctx context.Context, tx *gorm.DB, parentID uuid.UUID, deleted bool) ([]*types.Category, error)
	ListAllChildren(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Category, error)
	ActiveNameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, cat *types.Category) error
	SetDeleted(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, deleted bool) error
	SetLevel(ctx context.Context, tx *gorm.DB, id uuid.UUID, level int) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (cr *categoryRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *categoryRepo) Create(ctx context.Context, tx *gorm.DB, cat *types.Category) (*types.Category, error) {
	if err := cr.conn(tx).WithContext(ctx).Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (cr *categoryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Category, error) {
	var result types.Category
	err := cr.conn(tx).WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *categoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Category, error) {
	var results []*types.Category
	if len(ids) == 0 {
		return results, nil
	}
	if err := cr.conn(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *categoryRepo) ListByLevel(ctx context.Context, tx *gorm.DB, level int, deleted bool, offset, limit int) ([]*types.Category, int64, error) {
	var results []*types.Category
	var count int64
	q := cr.conn(tx).WithContext(ctx).Model(&types.Category{}).
		Where("level = ? AND is_deleted = ?", level, deleted)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, count, nil
}

func (cr *categoryRepo) ListDeleted(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Category, int64, error) {
	var results []*types.Category
	var count int64
	q := cr.conn(tx).WithContext(ctx).Model(&types.Category{}).Where("is_deleted = ?", true)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, count, nil
}

func (cr *categoryRepo) ListChildren(ctx context.Context, tx *gorm.DB, parentID uuid.UUID, deleted bool) ([]*types.Category, error) {
	var results []*types.Category
	if err := cr.conn(tx).WithContext(ctx).
		Where("parent_id = ? AND is_deleted = ?", parentID, deleted).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListAllChildren ignores the deletion flag; cascades need the whole subtree.
func (cr *categoryRepo) ListAllChildren(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Category, error) {
	var results []*types.Category
	if err := cr.conn(tx).WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *categoryRepo) ActiveNameExists(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := cr.conn(tx).WithContext(ctx).Model(&types.Category{}).
		Where("name = ? AND is_deleted = ?", name, false)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *categoryRepo) Update(ctx context.Context, tx *gorm.DB, cat *types.Category) error {
	return cr.conn(tx).WithContext(ctx).Save(cat).Error
}

func (cr *categoryRepo) SetDeleted(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, deleted bool) error {
	if len(ids) == 0 {
		return nil
	}
	return cr.conn(tx).WithContext(ctx).Model(&types.Category{}).
		Where("id IN ?", ids).
		Update("is_deleted", deleted).Error
}

func (cr *categoryRepo) SetLevel(ctx context.Context, tx *gorm.DB, id uuid.UUID, level int) error {
	return cr.conn(tx).WithContext(ctx).Model(&types.Category{}).
		Where("id = ?", id).
		Update("level", level).Error
}

func (cr *categoryRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return cr.conn(tx).WithContext(ctx).Where("id IN ?", ids).Delete(&types.Category{}).Error
}
