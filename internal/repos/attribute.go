package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type AttributeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attr *types.CategoryAttribute) (*types.CategoryAttribute, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CategoryAttribute, error)
	List(ctx context.Context, tx *gorm.DB, categoryID *uuid.UUID, offset, limit int) ([]*types.CategoryAttribute, int64, error)
	NameExistsForCategory(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, attr *types.CategoryAttribute) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type attributeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttributeRepo(db *gorm.DB, baseLog *logger.Logger) AttributeRepo {
	repoLog := baseLog.With("repo", "AttributeRepo")
	return &attributeRepo{db: db, log: repoLog}
}

func (ar *attributeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ar.db
}

func (ar *attributeRepo) Create(ctx context.Context, tx *gorm.DB, attr *types.CategoryAttribute) (*types.CategoryAttribute, error) {
	if err := ar.conn(tx).WithContext(ctx).Create(attr).Error; err != nil {
		return nil, err
	}
	return attr, nil
}

func (ar *attributeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CategoryAttribute, error) {
	var result types.CategoryAttribute
	err := ar.conn(tx).WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *attributeRepo) List(ctx context.Context, tx *gorm.DB, categoryID *uuid.UUID, offset, limit int) ([]*types.CategoryAttribute, int64, error) {
	var results []*types.CategoryAttribute
	var count int64
	q := ar.conn(tx).WithContext(ctx).Model(&types.CategoryAttribute{})
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("attr_name ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, count, nil
}

func (ar *attributeRepo) NameExistsForCategory(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := ar.conn(tx).WithContext(ctx).Model(&types.CategoryAttribute{}).
		Where("category_id = ? AND attr_name = ?", categoryID, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *attributeRepo) Update(ctx context.Context, tx *gorm.DB, attr *types.CategoryAttribute) error {
	return ar.conn(tx).WithContext(ctx).Save(attr).Error
}

func (ar *attributeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return ar.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.CategoryAttribute{}).Error
}
