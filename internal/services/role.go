package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

// CreateRoleCommand carries the fields accepted when creating a role.
type CreateRoleCommand struct {
	Name          string
	Description   string
	PermissionIDs []uuid.UUID
}

// UpdateRoleCommand carries the mutable role fields. PermissionsSet
// distinguishes "replace permission grants" from "leave them alone".
type UpdateRoleCommand struct {
	Name           *string
	Description    *string
	PermissionIDs  []uuid.UUID
	PermissionsSet bool
}

type RoleService interface {
	Create(ctx context.Context, cmd CreateRoleCommand) (*types.Role, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateRoleCommand) (*types.Role, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Role, error)
	List(ctx context.Context, offset, limit int) ([]*types.Role, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type roleService struct {
	db             *gorm.DB
	log            *logger.Logger
	roleRepo       repos.RoleRepo
	permissionRepo repos.PermissionRepo
}

func NewRoleService(db *gorm.DB, baseLog *logger.Logger, roleRepo repos.RoleRepo, permissionRepo repos.PermissionRepo) RoleService {
	serviceLog := baseLog.With("service", "RoleService")
	return &roleService{db: db, log: serviceLog, roleRepo: roleRepo, permissionRepo: permissionRepo}
}

// resolvePermissions loads the referenced permissions and rejects ids that do
// not exist.
func (rs *roleService) resolvePermissions(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	perms, err := rs.permissionRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(ids) {
		return nil, apierr.ValidationField("permissions", "One or more permissions do not exist.")
	}
	return perms, nil
}

func (rs *roleService) Create(ctx context.Context, cmd CreateRoleCommand) (*types.Role, error) {
	if cmd.Name == "" {
		return nil, apierr.ValidationField("name", "Name is required.")
	}
	var created *types.Role
	txErr := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := rs.roleRepo.NameExists(ctx, tx, cmd.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return apierr.ValidationField("name", "Role name must be unique.")
		}
		perms, err := rs.resolvePermissions(ctx, tx, cmd.PermissionIDs)
		if err != nil {
			return err
		}
		role := &types.Role{
			Name:        cmd.Name,
			Description: cmd.Description,
		}
		created, err = rs.roleRepo.Create(ctx, tx, role)
		if err != nil {
			return err
		}
		if len(perms) > 0 {
			if err := rs.roleRepo.ReplacePermissions(ctx, tx, created, perms); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	rs.log.Info("role created", "role_id", created.ID)
	return rs.Get(ctx, created.ID)
}

func (rs *roleService) Update(ctx context.Context, id uuid.UUID, cmd UpdateRoleCommand) (*types.Role, error) {
	txErr := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		role, err := rs.roleRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if role == nil {
			return apierr.NotFound("role")
		}
		if cmd.Name != nil && *cmd.Name != role.Name {
			taken, err := rs.roleRepo.NameExists(ctx, tx, *cmd.Name, role.ID)
			if err != nil {
				return err
			}
			if taken {
				return apierr.ValidationField("name", "Role name must be unique.")
			}
			role.Name = *cmd.Name
		}
		if cmd.Description != nil {
			role.Description = *cmd.Description
		}
		if err := rs.roleRepo.Update(ctx, tx, role); err != nil {
			return err
		}
		if cmd.PermissionsSet {
			perms, err := rs.resolvePermissions(ctx, tx, cmd.PermissionIDs)
			if err != nil {
				return err
			}
			if err := rs.roleRepo.ReplacePermissions(ctx, tx, role, perms); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return rs.Get(ctx, id)
}

func (rs *roleService) Get(ctx context.Context, id uuid.UUID) (*types.Role, error) {
	role, err := rs.roleRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apierr.NotFound("role")
	}
	return role, nil
}

func (rs *roleService) List(ctx context.Context, offset, limit int) ([]*types.Role, int64, error) {
	return rs.roleRepo.List(ctx, nil, offset, limit)
}

func (rs *roleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := rs.roleRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if role == nil {
		return apierr.NotFound("role")
	}
	if err := rs.roleRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	rs.log.Info("role deleted", "role_id", id)
	return nil
}
