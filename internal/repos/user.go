package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.User, int64, error)
	Update(ctx context.Context, tx *gorm.DB, user *types.User) error
	SetDeleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, deleted bool) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ur.db
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	if err := ur.conn(tx).WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error) {
	var result types.User
	err := ur.conn(tx).WithContext(ctx).Preload("Role").Where("id = ?", id).First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	var result types.User
	err := ur.conn(tx).WithContext(ctx).Where("email = ?", email).First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := ur.conn(tx).WithContext(ctx).Model(&types.User{}).Where("email = ?", email)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.User, int64, error) {
	var results []*types.User
	var count int64
	q := ur.conn(tx).WithContext(ctx).Model(&types.User{}).Where("is_deleted = ?", false)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Preload("Role").Order("created_at ASC").Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, count, nil
}

func (ur *userRepo) Update(ctx context.Context, tx *gorm.DB, user *types.User) error {
	return ur.conn(tx).WithContext(ctx).Omit("Role").Save(user).Error
}

func (ur *userRepo) SetDeleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, deleted bool) error {
	return ur.conn(tx).WithContext(ctx).Model(&types.User{}).
		Where("id = ?", id).
		Update("is_deleted", deleted).Error
}
