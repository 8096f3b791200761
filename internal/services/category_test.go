package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

func newCategoryService(t *testing.T) CategoryService {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	return NewCategoryService(gdb, log, repos.NewCategoryRepo(gdb, log))
}

func mustCreateCategory(t *testing.T, svc CategoryService, name string, parentID *uuid.UUID) *types.Category {
	t.Helper()
	cat, err := svc.Insert(context.Background(), CreateCategoryCommand{Name: name, ParentID: parentID})
	if err != nil {
		t.Fatalf("insert category %q: %v", name, err)
	}
	return cat
}

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	ae := apierr.From(err)
	msg, ok := ae.Fields[field]
	if !ok {
		t.Fatalf("expected error on field %q, got %+v", field, ae)
	}
	return msg
}

func TestCategoryInsertLevels(t *testing.T) {
	svc := newCategoryService(t)

	root := mustCreateCategory(t, svc, "Electronics", nil)
	if root.Level != 1 {
		t.Fatalf("root level = %d, want 1", root.Level)
	}
	child := mustCreateCategory(t, svc, "Computers", &root.ID)
	if child.Level != 2 {
		t.Fatalf("child level = %d, want 2", child.Level)
	}
	grandchild := mustCreateCategory(t, svc, "Laptops", &child.ID)
	if grandchild.Level != 3 {
		t.Fatalf("grandchild level = %d, want 3", grandchild.Level)
	}

	_, err := svc.Insert(context.Background(), CreateCategoryCommand{Name: "Ultrabooks", ParentID: &grandchild.ID})
	msg := fieldError(t, err, "parent_id")
	if msg != "Parent level must be less than current level." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCategoryInsertValidation(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	mustCreateCategory(t, svc, "Books", nil)

	_, err := svc.Insert(ctx, CreateCategoryCommand{Name: "Books"})
	if msg := fieldError(t, err, "name"); msg != "Category name must be unique among active categories." {
		t.Fatalf("unexpected message: %q", msg)
	}

	missing := uuid.New()
	_, err = svc.Insert(ctx, CreateCategoryCommand{Name: "Comics", ParentID: &missing})
	if msg := fieldError(t, err, "parent_id"); msg != "Parent category does not exist or is deleted." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCategoryInsertUnderDeletedParent(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	root := mustCreateCategory(t, svc, "Garden", nil)
	if err := svc.SoftDelete(ctx, root.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	_, err := svc.Insert(ctx, CreateCategoryCommand{Name: "Tools", ParentID: &root.ID})
	if msg := fieldError(t, err, "parent_id"); msg != "Parent category does not exist or is deleted." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCategoryNameReusableAfterSoftDelete(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	first := mustCreateCategory(t, svc, "Toys", nil)
	if err := svc.SoftDelete(ctx, first.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	// The name is free again once its holder is soft-deleted.
	mustCreateCategory(t, svc, "Toys", nil)
}

func TestCategorySoftDeleteCascades(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	root := mustCreateCategory(t, svc, "Sports", nil)
	child := mustCreateCategory(t, svc, "Football", &root.ID)
	grandchild := mustCreateCategory(t, svc, "Boots", &child.ID)

	if err := svc.SoftDelete(ctx, root.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	for _, id := range []uuid.UUID{root.ID, child.ID, grandchild.ID} {
		if _, err := svc.Get(ctx, id); err == nil {
			t.Fatalf("category %s still visible after cascade", id)
		}
	}
	deleted, count, err := svc.ListDeleted(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	if count != 3 || len(deleted) != 3 {
		t.Fatalf("deleted count = %d (len %d), want 3", count, len(deleted))
	}

	// Deleting an already-deleted category is a 404.
	if err := svc.SoftDelete(ctx, root.ID); err == nil {
		t.Fatalf("expected error on double delete")
	}
}

func TestCategoryReactivate(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	root := mustCreateCategory(t, svc, "Music", nil)
	child := mustCreateCategory(t, svc, "Guitars", &root.ID)
	if err := svc.SoftDelete(ctx, root.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	restored, err := svc.Reactivate(ctx, root.ID)
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if restored.IsDeleted {
		t.Fatalf("root still deleted after reactivate")
	}
	got, err := svc.Get(ctx, child.ID)
	if err != nil {
		t.Fatalf("child not restored with subtree: %v", err)
	}
	if got.IsDeleted {
		t.Fatalf("child still deleted after cascade reactivate")
	}
}

func TestCategoryReactivateDeletedParent(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	root := mustCreateCategory(t, svc, "Office", nil)
	child := mustCreateCategory(t, svc, "Desks", &root.ID)
	if err := svc.SoftDelete(ctx, root.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	_, err := svc.Reactivate(ctx, child.ID)
	if msg := fieldError(t, err, "parent_id"); msg != "Cannot reactivate: Parent category is deleted." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCategoryReactivateNameConflict(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	old := mustCreateCategory(t, svc, "Phones", nil)
	if err := svc.SoftDelete(ctx, old.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	mustCreateCategory(t, svc, "Phones", nil)

	_, err := svc.Reactivate(ctx, old.ID)
	if msg := fieldError(t, err, "name"); msg != "Name 'Phones' conflicts with an active category." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCategoryPermanentDelete(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	active := mustCreateCategory(t, svc, "Active", nil)
	err := svc.PermanentDelete(ctx, active.ID)
	if msg := fieldError(t, err, "detail"); msg != "Only soft-deleted categories can be permanently deleted." {
		t.Fatalf("unexpected message: %q", msg)
	}

	if err := svc.SoftDelete(ctx, active.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if err := svc.PermanentDelete(ctx, active.ID); err != nil {
		t.Fatalf("permanent delete: %v", err)
	}
	_, count, err := svc.ListDeleted(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	if count != 0 {
		t.Fatalf("deleted count = %d after permanent delete, want 0", count)
	}
}

func TestCategoryPermanentDeleteBulk(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	err := svc.PermanentDeleteBulk(ctx, nil)
	if msg := fieldError(t, err, "ids"); msg != "No IDs provided." {
		t.Fatalf("unexpected message: %q", msg)
	}

	err = svc.PermanentDeleteBulk(ctx, []uuid.UUID{uuid.New()})
	if msg := fieldError(t, err, "ids"); msg != "No soft-deleted categories found for provided IDs." {
		t.Fatalf("unexpected message: %q", msg)
	}

	a := mustCreateCategory(t, svc, "A", nil)
	b := mustCreateCategory(t, svc, "B", nil)
	if err := svc.SoftDelete(ctx, a.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	// Mixing active and soft-deleted ids is rejected wholesale.
	err = svc.PermanentDeleteBulk(ctx, []uuid.UUID{a.ID, b.ID})
	if msg := fieldError(t, err, "ids"); msg != "Some IDs do not correspond to soft-deleted categories." {
		t.Fatalf("unexpected message: %q", msg)
	}
	if _, err := svc.Get(ctx, b.ID); err != nil {
		t.Fatalf("active category vanished after failed bulk delete: %v", err)
	}

	if err := svc.SoftDelete(ctx, b.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if err := svc.PermanentDeleteBulk(ctx, []uuid.UUID{a.ID, b.ID}); err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
}

func TestCategoryUpdateReparent(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	rootA := mustCreateCategory(t, svc, "Outdoors", nil)
	rootB := mustCreateCategory(t, svc, "Indoors", nil)
	child := mustCreateCategory(t, svc, "Lighting", &rootA.ID)
	grandchild := mustCreateCategory(t, svc, "Lamps", &child.ID)

	// Reparent child under the other root; descendants keep relative depth.
	updated, err := svc.Update(ctx, child.ID, UpdateCategoryCommand{ParentID: &rootB.ID, ParentSet: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Level != 2 {
		t.Fatalf("reparented level = %d, want 2", updated.Level)
	}
	got, err := svc.Get(ctx, grandchild.ID)
	if err != nil {
		t.Fatalf("get grandchild: %v", err)
	}
	if got.Level != 3 {
		t.Fatalf("grandchild level = %d, want 3", got.Level)
	}

	// A category cannot be moved under its own descendant.
	if _, err := svc.Update(ctx, child.ID, UpdateCategoryCommand{ParentID: &grandchild.ID, ParentSet: true}); err == nil {
		t.Fatalf("expected cycle rejection")
	}
	if _, err := svc.Update(ctx, child.ID, UpdateCategoryCommand{ParentID: &child.ID, ParentSet: true}); err == nil {
		t.Fatalf("expected self-parent rejection")
	}

	// A rename does not touch the subtree; levels stay put.
	name := "Fixtures"
	if _, err := svc.Update(ctx, child.ID, UpdateCategoryCommand{Name: &name}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, err = svc.Get(ctx, grandchild.ID)
	if err != nil {
		t.Fatalf("get grandchild after rename: %v", err)
	}
	if got.Level != 3 {
		t.Fatalf("grandchild level after rename = %d, want 3", got.Level)
	}
}

func TestCategoryListFiltersByLevel(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	root := mustCreateCategory(t, svc, "Food", nil)
	mustCreateCategory(t, svc, "Snacks", &root.ID)

	level1, count, err := svc.List(ctx, 1, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if count != 1 || len(level1) != 1 || level1[0].Name != "Food" {
		t.Fatalf("level-1 list wrong: count=%d len=%d", count, len(level1))
	}
	if len(level1[0].Children) != 1 || level1[0].Children[0].Name != "Snacks" {
		t.Fatalf("children not expanded: %+v", level1[0].Children)
	}

	level2, count, err := svc.List(ctx, 2, 0, 10)
	if err != nil {
		t.Fatalf("list level 2: %v", err)
	}
	if count != 1 || len(level2) != 1 || level2[0].Name != "Snacks" {
		t.Fatalf("level-2 list wrong: count=%d len=%d", count, len(level2))
	}
}

func TestNormalizeCategoryLevel(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"1":   1,
		"2":   2,
		"3":   3,
		"4":   1,
		"0":   1,
		"abc": 1,
		"-2":  1,
	}
	for raw, want := range cases {
		if got := NormalizeCategoryLevel(raw); got != want {
			t.Errorf("NormalizeCategoryLevel(%q) = %d, want %d", raw, got, want)
		}
	}
}
