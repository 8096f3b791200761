package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Product, error)
	List(ctx context.Context, tx *gorm.DB, deleted bool, offset, limit int) ([]*types.Product, int64, error)
	Update(ctx context.Context, tx *gorm.DB, product *types.Product) error
	ReplaceCategories(ctx context.Context, tx *gorm.DB, product *types.Product, categories []*types.Category) error
	SetDeleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, deleted bool) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error) {
	if err := pr.conn(tx).WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (pr *productRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Product, error) {
	var result types.Product
	err := pr.conn(tx).WithContext(ctx).Preload("Categories").Where("id = ?", id).First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Product, error) {
	var results []*types.Product
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

func (pr *productRepo) List(ctx context.Context, tx *gorm.DB, deleted bool, offset, limit int) ([]*types.Product, int64, error) {
	var results []*types.Product
	var count int64
	q := pr.conn(tx).WithContext(ctx).Model(&types.Product{}).Where("is_deleted = ?", deleted)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Preload("Categories").Order("created_at ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, count, nil
}

func (pr *productRepo) Update(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	return pr.conn(tx).WithContext(ctx).Omit("Categories").Save(product).Error
}

func (pr *productRepo) ReplaceCategories(ctx context.Context, tx *gorm.DB, product *types.Product, categories []*types.Category) error {
	return pr.conn(tx).WithContext(ctx).Model(product).Association("Categories").Replace(categories)
}

func (pr *productRepo) SetDeleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, deleted bool) error {
	return pr.conn(tx).WithContext(ctx).Model(&types.Product{}).
		Where("id = ?", id).
		Update("is_deleted", deleted).Error
}
