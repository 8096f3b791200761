package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

func newPermissionService(t *testing.T) PermissionService {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	return NewPermissionService(gdb, log, repos.NewPermissionRepo(gdb, log))
}

func mustCreatePermission(t *testing.T, svc PermissionService, name string, parentID *uuid.UUID) *types.Permission {
	t.Helper()
	perm, err := svc.Create(context.Background(), CreatePermissionCommand{Name: name, ParentID: parentID})
	if err != nil {
		t.Fatalf("create permission %q: %v", name, err)
	}
	return perm
}

func TestPermissionLevelDerivedFromParent(t *testing.T) {
	svc := newPermissionService(t)
	ctx := context.Background()

	root := mustCreatePermission(t, svc, "orders", nil)
	if root.Level != 1 {
		t.Fatalf("root level = %d, want 1", root.Level)
	}

	// A request carrying only name and parent gets its level computed.
	child := mustCreatePermission(t, svc, "orders.read", &root.ID)
	if child.Level != 2 {
		t.Fatalf("child level = %d, want 2", child.Level)
	}
	grand := mustCreatePermission(t, svc, "orders.read.audit", &child.ID)
	if grand.Level != 3 {
		t.Fatalf("grandchild level = %d, want 3", grand.Level)
	}
	leaf := mustCreatePermission(t, svc, "orders.read.audit.export", &grand.ID)
	if leaf.Level != types.PermissionMaxDepth {
		t.Fatalf("leaf level = %d, want %d", leaf.Level, types.PermissionMaxDepth)
	}

	// Below the cap the clamped level collides with the parent's.
	_, err := svc.Create(ctx, CreatePermissionCommand{Name: "toodeep", ParentID: &leaf.ID})
	if msg := fieldError(t, err, "parent"); msg != "Parent level must be less than current level." {
		t.Fatalf("unexpected message: %q", msg)
	}

	missing := uuid.New()
	_, err = svc.Create(ctx, CreatePermissionCommand{Name: "orphan", ParentID: &missing})
	if msg := fieldError(t, err, "parent"); msg != "Parent permission does not exist." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestPermissionUpdateRederivesLevel(t *testing.T) {
	svc := newPermissionService(t)
	ctx := context.Background()

	rootA := mustCreatePermission(t, svc, "catalog", nil)
	childA := mustCreatePermission(t, svc, "catalog.read", &rootA.ID)
	grand := mustCreatePermission(t, svc, "catalog.read.audit", &childA.ID)

	// Reparenting under a shallower node recomputes the level.
	moved, err := svc.Update(ctx, grand.ID, UpdatePermissionCommand{ParentID: &rootA.ID, ParentSet: true})
	if err != nil {
		t.Fatalf("reparent: %v", err)
	}
	if moved.Level != 2 {
		t.Fatalf("moved level = %d, want 2", moved.Level)
	}

	// Clearing the parent promotes the node to a root.
	promoted, err := svc.Update(ctx, moved.ID, UpdatePermissionCommand{ParentSet: true})
	if err != nil {
		t.Fatalf("clear parent: %v", err)
	}
	if promoted.Level != 1 || promoted.ParentID != nil {
		t.Fatalf("promoted = level %d parent %v, want root", promoted.Level, promoted.ParentID)
	}

	// A name-only update leaves level and parent alone.
	name := "catalog.view"
	renamed, err := svc.Update(ctx, childA.ID, UpdatePermissionCommand{Name: &name})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Level != 2 || renamed.ParentID == nil || *renamed.ParentID != rootA.ID {
		t.Fatalf("rename moved the node: level %d parent %v", renamed.Level, renamed.ParentID)
	}

	if _, err := svc.Update(ctx, childA.ID, UpdatePermissionCommand{ParentID: &childA.ID, ParentSet: true}); err == nil {
		t.Fatalf("expected self-parent rejection")
	}
}

func TestPermissionNameUniqueCaseInsensitive(t *testing.T) {
	svc := newPermissionService(t)
	ctx := context.Background()

	mustCreatePermission(t, svc, "Orders", nil)

	_, err := svc.Create(ctx, CreatePermissionCommand{Name: "orders"})
	if msg := fieldError(t, err, "name"); msg != "Permission name must be unique." {
		t.Fatalf("unexpected message: %q", msg)
	}
	_, err = svc.Create(ctx, CreatePermissionCommand{Name: "ORDERS"})
	if msg := fieldError(t, err, "name"); msg != "Permission name must be unique." {
		t.Fatalf("unexpected message: %q", msg)
	}

	// Renaming a permission to its own name is not a conflict.
	perm := mustCreatePermission(t, svc, "Users", nil)
	same := "Users"
	if _, err := svc.Update(ctx, perm.ID, UpdatePermissionCommand{Name: &same}); err != nil {
		t.Fatalf("self-rename: %v", err)
	}
}

func TestPermissionListScopesToRoots(t *testing.T) {
	svc := newPermissionService(t)
	ctx := context.Background()

	rootA := mustCreatePermission(t, svc, "catalog", nil)
	mustCreatePermission(t, svc, "catalog.read", &rootA.ID)
	mustCreatePermission(t, svc, "reports", nil)

	perms, count, err := svc.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if count != 2 || len(perms) != 2 {
		t.Fatalf("list = %d rows count %d, want 2/2", len(perms), count)
	}
	for _, perm := range perms {
		if perm.Level != 1 {
			t.Fatalf("flat list leaked level-%d permission %q", perm.Level, perm.Name)
		}
	}
}

func TestPermissionTree(t *testing.T) {
	svc := newPermissionService(t)
	ctx := context.Background()

	root := mustCreatePermission(t, svc, "admin", nil)
	child := mustCreatePermission(t, svc, "admin.users", &root.ID)
	mustCreatePermission(t, svc, "admin.users.write", &child.ID)
	mustCreatePermission(t, svc, "reports", nil)

	tree, err := svc.ListTree(ctx)
	if err != nil {
		t.Fatalf("list tree: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("roots = %d, want 2", len(tree))
	}
	var admin *types.Permission
	for _, node := range tree {
		if node.Name == "admin" {
			admin = node
		}
	}
	if admin == nil {
		t.Fatalf("admin root missing from tree")
	}
	if len(admin.Children) != 1 || admin.Children[0].Name != "admin.users" {
		t.Fatalf("admin children wrong: %+v", admin.Children)
	}
	grand := admin.Children[0].Children
	if len(grand) != 1 || grand[0].Name != "admin.users.write" {
		t.Fatalf("grandchildren wrong: %+v", grand)
	}
}

func TestPermissionDeleteCascades(t *testing.T) {
	svc := newPermissionService(t)
	ctx := context.Background()

	root := mustCreatePermission(t, svc, "inventory", nil)
	child := mustCreatePermission(t, svc, "inventory.read", &root.ID)
	grand := mustCreatePermission(t, svc, "inventory.read.audit", &child.ID)

	if err := svc.Delete(ctx, root.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, id := range []uuid.UUID{root.ID, child.ID, grand.ID} {
		if _, err := svc.Get(ctx, id); err == nil {
			t.Fatalf("permission %s survived cascade", id)
		}
	}
	if err := svc.Delete(ctx, root.ID); err == nil {
		t.Fatalf("expected 404 on second delete")
	}
}
