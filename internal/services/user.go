package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

// CreateUserCommand carries the fields accepted when creating a user.
type CreateUserCommand struct {
	Email    string
	Username string
	Password string
	IsStaff  bool
	RoleID   *uuid.UUID
}

// UpdateUserCommand carries the mutable user fields. RoleSet distinguishes
// "clear the role" from "leave the role alone".
type UpdateUserCommand struct {
	Email    *string
	Username *string
	Password *string
	IsStaff  *bool
	RoleID   *uuid.UUID
	RoleSet  bool
}

type UserService interface {
	Create(ctx context.Context, cmd CreateUserCommand) (*types.User, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateUserCommand) (*types.User, error)
	Get(ctx context.Context, id uuid.UUID) (*types.User, error)
	List(ctx context.Context, offset, limit int) ([]*types.User, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	roleRepo repos.RoleRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, roleRepo repos.RoleRepo) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, roleRepo: roleRepo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (us *userService) checkRole(ctx context.Context, tx *gorm.DB, roleID *uuid.UUID) error {
	if roleID == nil {
		return nil
	}
	role, err := us.roleRepo.GetByID(ctx, tx, *roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return apierr.ValidationField("role", "Role does not exist.")
	}
	return nil
}

func (us *userService) Create(ctx context.Context, cmd CreateUserCommand) (*types.User, error) {
	email := normalizeEmail(cmd.Email)
	if email == "" {
		return nil, apierr.ValidationField("email", "Email is required.")
	}
	if cmd.Password == "" {
		return nil, apierr.ValidationField("password", "Password is required.")
	}
	var created *types.User
	txErr := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := us.userRepo.EmailExists(ctx, tx, email, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return apierr.ValidationField("email", "Email is already in use.")
		}
		if err := us.checkRole(ctx, tx, cmd.RoleID); err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &types.User{
			Email:    email,
			Username: cmd.Username,
			Password: string(hash),
			IsStaff:  cmd.IsStaff,
			RoleID:   cmd.RoleID,
		}
		created, err = us.userRepo.Create(ctx, tx, user)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	us.log.Info("user created", "user_id", created.ID)
	return created, nil
}

func (us *userService) Update(ctx context.Context, id uuid.UUID, cmd UpdateUserCommand) (*types.User, error) {
	var updated *types.User
	txErr := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if user == nil || user.IsDeleted {
			return apierr.NotFound("user")
		}
		if cmd.Email != nil {
			email := normalizeEmail(*cmd.Email)
			if email != user.Email {
				exists, err := us.userRepo.EmailExists(ctx, tx, email, user.ID)
				if err != nil {
					return err
				}
				if exists {
					return apierr.ValidationField("email", "Email is already in use.")
				}
				user.Email = email
			}
		}
		if cmd.Username != nil {
			user.Username = *cmd.Username
		}
		if cmd.Password != nil && *cmd.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*cmd.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.Password = string(hash)
		}
		if cmd.IsStaff != nil {
			user.IsStaff = *cmd.IsStaff
		}
		if cmd.RoleSet {
			if err := us.checkRole(ctx, tx, cmd.RoleID); err != nil {
				return err
			}
			user.RoleID = cmd.RoleID
		}
		if err := us.userRepo.Update(ctx, tx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (us *userService) Get(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted {
		return nil, apierr.NotFound("user")
	}
	return user, nil
}

func (us *userService) List(ctx context.Context, offset, limit int) ([]*types.User, int64, error) {
	return us.userRepo.List(ctx, nil, offset, limit)
}

func (us *userService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	user, err := us.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if user == nil || user.IsDeleted {
		return apierr.NotFound("user")
	}
	if err := us.userRepo.SetDeleted(ctx, nil, id, true); err != nil {
		return err
	}
	us.log.Info("user soft-deleted", "user_id", id)
	return nil
}
