package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, order *types.Order) (*types.Order, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Order, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Order, int64, error)
	Update(ctx context.Context, tx *gorm.DB, order *types.Order) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (or *orderRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return or.db
}

func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *types.Order) (*types.Order, error) {
	if err := or.conn(tx).WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (or *orderRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Order, error) {
	var result types.Order
	err := or.conn(tx).WithContext(ctx).Preload("Items").Where("id = ?", id).First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (or *orderRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Order, int64, error) {
	var results []*types.Order
	var count int64
	q := or.conn(tx).WithContext(ctx).Model(&types.Order{})
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, count, nil
}

func (or *orderRepo) Update(ctx context.Context, tx *gorm.DB, order *types.Order) error {
	return or.conn(tx).WithContext(ctx).Omit("Items").Save(order).Error
}

func (or *orderRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return or.conn(tx).WithContext(ctx).Select("Items").Where("id = ?", id).Delete(&types.Order{ID: id}).Error
}

func (or *orderRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := or.conn(tx).WithContext(ctx).Model(&types.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
