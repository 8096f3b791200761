package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

type CreateCategoryCommand struct {
	Name     string
	ParentID *uuid.UUID
}

type UpdateCategoryCommand struct {
	Name      *string
	ParentID  *uuid.UUID
	ParentSet bool
	IsDeleted *bool
}

type CategoryService interface {
	Insert(ctx context.Context, cmd CreateCategoryCommand) (*types.Category, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCategoryCommand) (*types.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Category, error)
	List(ctx context.Context, level int, offset, limit int) ([]*types.Category, int64, error)
	ListDeleted(ctx context.Context, offset, limit int) ([]*types.Category, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) (*types.Category, error)
	PermanentDelete(ctx context.Context, id uuid.UUID) error
	PermanentDeleteBulk(ctx context.Context, ids []uuid.UUID) error
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
}

func NewCategoryService(db *gorm.DB, log *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
	serviceLog := log.With("service", "CategoryService")
	return &categoryService{db: db, log: serviceLog, categoryRepo: categoryRepo}
}

// NormalizeCategoryLevel applies the list-filter rule: the level query param
// must be a digit in [1,3], anything else falls back to level 1.
func NormalizeCategoryLevel(raw string) int {
	if raw == "" {
		return 1
	}
	level, err := strconv.Atoi(raw)
	if err != nil || level < 1 || level > types.CategoryMaxDepth {
		return 1
	}
	return level
}

func (cs *categoryService) Insert(ctx context.Context, cmd CreateCategoryCommand) (*types.Category, error) {
	var created *types.Category
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, level, err := cs.resolveParent(ctx, tx, cmd.ParentID)
		if err != nil {
			return err
		}

		exists, err := cs.categoryRepo.ActiveNameExists(ctx, tx, cmd.Name, uuid.Nil)
		if err != nil {
			return fmt.Errorf("check category name: %w", err)
		}
		if exists {
			return apierr.ValidationField("name", "Category name must be unique among active categories.")
		}

		cat := &types.Category{
			Name:     cmd.Name,
			ParentID: cmd.ParentID,
			Level:    level,
		}
		created, err = cs.categoryRepo.Create(ctx, tx, cat)
		if err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// resolveParent validates the parent reference and derives the child level:
// 1 for roots, min(parent.level+1, cap) otherwise. The level/parent-level
// comparison only fails at the depth cap, which is exactly when insertion
// below the parent is not allowed.
func (cs *categoryService) resolveParent(ctx context.Context, tx *gorm.DB, parentID *uuid.UUID) (*types.Category, int, error) {
	if parentID == nil {
		return nil, 1, nil
	}
	parent, err := cs.categoryRepo.GetByID(ctx, tx, *parentID)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch parent category: %w", err)
	}
	if parent == nil || parent.IsDeleted {
		return nil, 0, apierr.ValidationField("parent_id", "Parent category does not exist or is deleted.")
	}
	level := parent.Level + 1
	if level > types.CategoryMaxDepth {
		level = types.CategoryMaxDepth
	}
	if parent.Level >= level {
		return nil, 0, apierr.ValidationField("parent_id", "Parent level must be less than current level.")
	}
	return parent, level, nil
}

func (cs *categoryService) Update(ctx context.Context, id uuid.UUID, cmd UpdateCategoryCommand) (*types.Category, error) {
	var updated *types.Category
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := cs.categoryRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch category: %w", err)
		}
		if cat == nil {
			return apierr.NotFound("category")
		}

		if cmd.ParentSet {
			if cmd.ParentID != nil {
				if *cmd.ParentID == cat.ID {
					return apierr.ValidationField("parent_id", "Category cannot be its own parent.")
				}
				inSubtree, err := cs.idInSubtree(ctx, tx, cat, *cmd.ParentID)
				if err != nil {
					return err
				}
				if inSubtree {
					return apierr.ValidationField("parent_id", "Category cannot be moved under its own descendant.")
				}
			}
			_, level, err := cs.resolveParent(ctx, tx, cmd.ParentID)
			if err != nil {
				return err
			}
			cat.ParentID = cmd.ParentID
			cat.Level = level
		}

		if cmd.Name != nil && *cmd.Name != cat.Name {
			exists, err := cs.categoryRepo.ActiveNameExists(ctx, tx, *cmd.Name, cat.ID)
			if err != nil {
				return fmt.Errorf("check category name: %w", err)
			}
			if exists && !cat.IsDeleted {
				return apierr.ValidationField("name", "Category name must be unique among active categories.")
			}
			cat.Name = *cmd.Name
		}

		if cmd.IsDeleted != nil {
			if !*cmd.IsDeleted && cat.IsDeleted {
				if err := cs.validateReactivation(ctx, tx, cat); err != nil {
					return err
				}
			}
			cat.IsDeleted = *cmd.IsDeleted
		}

		if err := cs.categoryRepo.Update(ctx, tx, cat); err != nil {
			return fmt.Errorf("update category: %w", err)
		}
		// Levels can only move when the node itself moved.
		if cmd.ParentSet {
			if err := cs.recomputeDescendantLevels(ctx, tx, cat); err != nil {
				return err
			}
		}
		updated = cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// idInSubtree reports whether target is the root or any descendant of root.
func (cs *categoryService) idInSubtree(ctx context.Context, tx *gorm.DB, root *types.Category, target uuid.UUID) (bool, error) {
	nodes, err := cs.collectSubtree(ctx, tx, root)
	if err != nil {
		return false, err
	}
	for _, node := range nodes {
		if node.ID == target {
			return true, nil
		}
	}
	return false, nil
}

// collectSubtree gathers the node and every descendant with an explicit
// work list instead of unbounded recursion.
func (cs *categoryService) collectSubtree(ctx context.Context, tx *gorm.DB, root *types.Category) ([]*types.Category, error) {
	nodes := []*types.Category{root}
	queue := []*types.Category{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		children, err := cs.categoryRepo.ListAllChildren(ctx, tx, node.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch children of %s: %w", node.ID, err)
		}
		nodes = append(nodes, children...)
		queue = append(queue, children...)
	}
	return nodes, nil
}

// recomputeDescendantLevels reclamps every descendant's level after a
// reparent or level change on the root.
func (cs *categoryService) recomputeDescendantLevels(ctx context.Context, tx *gorm.DB, root *types.Category) error {
	type entry struct {
		node        *types.Category
		parentLevel int
	}
	children, err := cs.categoryRepo.ListAllChildren(ctx, tx, root.ID)
	if err != nil {
		return fmt.Errorf("fetch children of %s: %w", root.ID, err)
	}
	queue := make([]entry, 0, len(children))
	for _, child := range children {
		queue = append(queue, entry{node: child, parentLevel: root.Level})
	}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		level := e.parentLevel + 1
		if level > types.CategoryMaxDepth {
			level = types.CategoryMaxDepth
		}
		if e.node.Level != level {
			if err := cs.categoryRepo.SetLevel(ctx, tx, e.node.ID, level); err != nil {
				return fmt.Errorf("set level on %s: %w", e.node.ID, err)
			}
		}
		grandchildren, err := cs.categoryRepo.ListAllChildren(ctx, tx, e.node.ID)
		if err != nil {
			return fmt.Errorf("fetch children of %s: %w", e.node.ID, err)
		}
		for _, gc := range grandchildren {
			queue = append(queue, entry{node: gc, parentLevel: level})
		}
	}
	return nil
}

// validateReactivation enforces the two reactivation preconditions: the
// parent must be active, and no node in the reactivating subtree may share
// a name with any other active category. The scan is depth-first and aborts
// on the first conflict.
func (cs *categoryService) validateReactivation(ctx context.Context, tx *gorm.DB, cat *types.Category) error {
	if cat.ParentID != nil {
		parent, err := cs.categoryRepo.GetByID(ctx, tx, *cat.ParentID)
		if err != nil {
			return fmt.Errorf("fetch parent category: %w", err)
		}
		if parent == nil || parent.IsDeleted {
			return apierr.ValidationField("parent_id", "Cannot reactivate: Parent category is deleted.")
		}
	}

	stack := []*types.Category{cat}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		exists, err := cs.categoryRepo.ActiveNameExists(ctx, tx, node.Name, node.ID)
		if err != nil {
			return fmt.Errorf("check name of %s: %w", node.ID, err)
		}
		if exists {
			return apierr.ValidationField("name", fmt.Sprintf("Name '%s' conflicts with an active category.", node.Name))
		}
		children, err := cs.categoryRepo.ListAllChildren(ctx, tx, node.ID)
		if err != nil {
			return fmt.Errorf("fetch children of %s: %w", node.ID, err)
		}
		stack = append(stack, children...)
	}
	return nil
}

func (cs *categoryService) Get(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	cat, err := cs.categoryRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("fetch category: %w", err)
	}
	if cat == nil || cat.IsDeleted {
		return nil, apierr.NotFound("category")
	}
	if err := cs.expandChildren(ctx, nil, cat, false, cat.Level); err != nil {
		return nil, err
	}
	return cat, nil
}

func (cs *categoryService) List(ctx context.Context, level, offset, limit int) ([]*types.Category, int64, error) {
	cats, count, err := cs.categoryRepo.ListByLevel(ctx, nil, level, false, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	for _, cat := range cats {
		if err := cs.expandChildren(ctx, nil, cat, false, cat.Level); err != nil {
			return nil, 0, err
		}
	}
	return cats, count, nil
}

func (cs *categoryService) ListDeleted(ctx context.Context, offset, limit int) ([]*types.Category, int64, error) {
	cats, count, err := cs.categoryRepo.ListDeleted(ctx, nil, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list deleted categories: %w", err)
	}
	for _, cat := range cats {
		if err := cs.expandChildren(ctx, nil, cat, true, cat.Level); err != nil {
			return nil, 0, err
		}
	}
	return cats, count, nil
}

// expandChildren loads nested children matching the deletion view. The
// depth counter stops expansion at the tree cap.
func (cs *categoryService) expandChildren(ctx context.Context, tx *gorm.DB, node *types.Category, deleted bool, depth int) error {
	if depth >= types.CategoryMaxDepth {
		node.Children = []*types.Category{}
		return nil
	}
	children, err := cs.categoryRepo.ListChildren(ctx, tx, node.ID, deleted)
	if err != nil {
		return fmt.Errorf("fetch children of %s: %w", node.ID, err)
	}
	for _, child := range children {
		if err := cs.expandChildren(ctx, tx, child, deleted, depth+1); err != nil {
			return err
		}
	}
	node.Children = children
	return nil
}

func (cs *categoryService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := cs.categoryRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch category: %w", err)
		}
		if cat == nil || cat.IsDeleted {
			return apierr.NotFound("category")
		}
		nodes, err := cs.collectSubtree(ctx, tx, cat)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(nodes))
		for _, node := range nodes {
			ids = append(ids, node.ID)
		}
		if err := cs.categoryRepo.SetDeleted(ctx, tx, ids, true); err != nil {
			return fmt.Errorf("soft delete subtree: %w", err)
		}
		return nil
	})
}

func (cs *categoryService) Reactivate(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	var reactivated *types.Category
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := cs.categoryRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch category: %w", err)
		}
		if cat == nil || !cat.IsDeleted {
			return apierr.NotFound("category")
		}
		if err := cs.validateReactivation(ctx, tx, cat); err != nil {
			return err
		}
		nodes, err := cs.collectSubtree(ctx, tx, cat)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(nodes))
		for _, node := range nodes {
			ids = append(ids, node.ID)
		}
		if err := cs.categoryRepo.SetDeleted(ctx, tx, ids, false); err != nil {
			return fmt.Errorf("reactivate subtree: %w", err)
		}
		cat.IsDeleted = false
		reactivated = cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reactivated, nil
}

func (cs *categoryService) PermanentDelete(ctx context.Context, id uuid.UUID) error {
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := cs.categoryRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch category: %w", err)
		}
		if cat == nil {
			return apierr.NotFound("category")
		}
		if !cat.IsDeleted {
			return apierr.ValidationField("detail", "Only soft-deleted categories can be permanently deleted.")
		}
		return cs.categoryRepo.DeleteByIDs(ctx, tx, []uuid.UUID{cat.ID})
	})
}

// PermanentDeleteBulk removes every id or nothing: a single missing or
// still-active id fails the whole batch.
func (cs *categoryService) PermanentDeleteBulk(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return apierr.ValidationField("ids", "No IDs provided.")
	}
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats, err := cs.categoryRepo.GetByIDs(ctx, tx, ids)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		deleted := make([]uuid.UUID, 0, len(cats))
		for _, cat := range cats {
			if cat.IsDeleted {
				deleted = append(deleted, cat.ID)
			}
		}
		if len(deleted) == 0 {
			return apierr.ValidationField("ids", "No soft-deleted categories found for provided IDs.")
		}
		if len(deleted) != len(ids) {
			return apierr.ValidationField("ids", "Some IDs do not correspond to soft-deleted categories.")
		}
		return cs.categoryRepo.DeleteByIDs(ctx, tx, deleted)
	})
}
