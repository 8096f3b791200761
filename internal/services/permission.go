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

// CreatePermissionCommand carries the fields accepted when creating a
// permission. The level is derived from the parent, never supplied.
type CreatePermissionCommand struct {
	Name     string
	ParentID *uuid.UUID
}

// UpdatePermissionCommand carries the mutable permission fields. ParentSet
// distinguishes "clear the parent" from "leave the parent alone".
type UpdatePermissionCommand struct {
	Name      *string
	ParentID  *uuid.UUID
	ParentSet bool
}

type PermissionService interface {
	Create(ctx context.Context, cmd CreatePermissionCommand) (*types.Permission, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdatePermissionCommand) (*types.Permission, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Permission, error)
	List(ctx context.Context, offset, limit int) ([]*types.Permission, int64, error)
	ListTree(ctx context.Context) ([]*types.Permission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type permissionService struct {
	db             *gorm.DB
	log            *logger.Logger
	permissionRepo repos.PermissionRepo
}

func NewPermissionService(db *gorm.DB, baseLog *logger.Logger, permissionRepo repos.PermissionRepo) PermissionService {
	serviceLog := baseLog.With("service", "PermissionService")
	return &permissionService{db: db, log: serviceLog, permissionRepo: permissionRepo}
}

// resolveParent loads the parent and derives the node's level from it,
// clamped to the depth cap. The level comparison only fails at the cap,
// which is exactly when insertion below the parent is not allowed.
func (ps *permissionService) resolveParent(ctx context.Context, tx *gorm.DB, parentID *uuid.UUID) (*types.Permission, int, error) {
	if parentID == nil {
		return nil, 1, nil
	}
	parent, err := ps.permissionRepo.GetByID(ctx, tx, *parentID)
	if err != nil {
		return nil, 0, err
	}
	if parent == nil {
		return nil, 0, apierr.ValidationField("parent", "Parent permission does not exist.")
	}
	level := parent.Level + 1
	if level > types.PermissionMaxDepth {
		level = types.PermissionMaxDepth
	}
	if parent.Level >= level {
		return nil, 0, apierr.ValidationField("parent", "Parent level must be less than current level.")
	}
	return parent, level, nil
}

func (ps *permissionService) checkNameUnique(ctx context.Context, tx *gorm.DB, name string, excludeID uuid.UUID) error {
	taken, err := ps.permissionRepo.NameExistsFold(ctx, tx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apierr.ValidationField("name", "Permission name must be unique.")
	}
	return nil
}

func (ps *permissionService) Create(ctx context.Context, cmd CreatePermissionCommand) (*types.Permission, error) {
	if cmd.Name == "" {
		return nil, apierr.ValidationField("name", "Name is required.")
	}
	var created *types.Permission
	txErr := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, level, err := ps.resolveParent(ctx, tx, cmd.ParentID)
		if err != nil {
			return err
		}
		if err := ps.checkNameUnique(ctx, tx, cmd.Name, uuid.Nil); err != nil {
			return err
		}
		perm := &types.Permission{
			Name:     cmd.Name,
			Level:    level,
			ParentID: cmd.ParentID,
		}
		created, err = ps.permissionRepo.Create(ctx, tx, perm)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	ps.log.Info("permission created", "permission_id", created.ID, "level", created.Level)
	return created, nil
}

func (ps *permissionService) Update(ctx context.Context, id uuid.UUID, cmd UpdatePermissionCommand) (*types.Permission, error) {
	var updated *types.Permission
	txErr := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		perm, err := ps.permissionRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if perm == nil {
			return apierr.NotFound("permission")
		}

		parentID := perm.ParentID
		if cmd.ParentSet {
			parentID = cmd.ParentID
		}
		if parentID != nil && *parentID == perm.ID {
			return apierr.ValidationField("parent", "Permission cannot be its own parent.")
		}
		_, level, err := ps.resolveParent(ctx, tx, parentID)
		if err != nil {
			return err
		}
		if cmd.Name != nil && *cmd.Name != perm.Name {
			if err := ps.checkNameUnique(ctx, tx, *cmd.Name, perm.ID); err != nil {
				return err
			}
			perm.Name = *cmd.Name
		}
		perm.Level = level
		perm.ParentID = parentID
		if err := ps.permissionRepo.Update(ctx, tx, perm); err != nil {
			return err
		}
		updated = perm
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (ps *permissionService) Get(ctx context.Context, id uuid.UUID) (*types.Permission, error) {
	perm, err := ps.permissionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, apierr.NotFound("permission")
	}
	return perm, nil
}

// List pages through level-1 permissions only. Deeper nodes are reachable
// through Get or the tree projection.
func (ps *permissionService) List(ctx context.Context, offset, limit int) ([]*types.Permission, int64, error) {
	return ps.permissionRepo.ListRoots(ctx, nil, offset, limit)
}

// ListTree returns level-1 permissions with their descendants nested, walking
// at most PermissionMaxDepth levels.
func (ps *permissionService) ListTree(ctx context.Context) ([]*types.Permission, error) {
	roots, err := ps.permissionRepo.ListByLevel(ctx, nil, 1)
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if err := ps.expandChildren(ctx, root, 1); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

func (ps *permissionService) expandChildren(ctx context.Context, node *types.Permission, depth int) error {
	if depth >= types.PermissionMaxDepth {
		node.Children = []*types.Permission{}
		return nil
	}
	children, err := ps.permissionRepo.ListChildren(ctx, nil, node.ID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := ps.expandChildren(ctx, child, depth+1); err != nil {
			return err
		}
	}
	node.Children = children
	return nil
}

// Delete removes a permission together with its whole subtree in one
// transaction. Permissions are hard-deleted.
func (ps *permissionService) Delete(ctx context.Context, id uuid.UUID) error {
	txErr := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		perm, err := ps.permissionRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if perm == nil {
			return apierr.NotFound("permission")
		}
		ids := []uuid.UUID{perm.ID}
		queue := []uuid.UUID{perm.ID}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			children, err := ps.permissionRepo.ListChildren(ctx, tx, current)
			if err != nil {
				return err
			}
			for _, child := range children {
				ids = append(ids, child.ID)
				queue = append(queue, child.ID)
			}
		}
		return ps.permissionRepo.DeleteByIDs(ctx, tx, ids)
	})
	if txErr != nil {
		return txErr
	}
	ps.log.Info("permission deleted", "permission_id", id)
	return nil
}
