package service

import (
	"context"
	"testing"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/testutil"
)

func TestSystemCreate(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	root, err := svc.System.Create(ctx, &CreateSystemInput{
		Name:       "Beamline A",
		Importance: entity.ImportanceHigh,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if root.Code != "beamline-a" {
		t.Errorf("Expected generated code, got %q", root.Code)
	}

	child, err := svc.System.Create(ctx, &CreateSystemInput{
		Name:       "Detector Bank",
		Importance: entity.ImportanceMedium,
		ParentID:   &root.ID,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != root.ID {
		t.Errorf("Expected child parent %s, got %v", root.ID, child.ParentID)
	}

	// Sibling names collide by code, not by exact name.
	_, err = svc.System.Create(ctx, &CreateSystemInput{
		Name:       "detector BANK",
		Importance: entity.ImportanceLow,
		ParentID:   &root.ID,
	})
	duplicate, ok := err.(*apperr.DuplicateRecordError)
	if !ok {
		t.Fatalf("Expected DuplicateRecordError, got %v", err)
	}
	if duplicate.Detail != "Duplicate system found within the parent system" {
		t.Errorf("Unexpected detail: %q", duplicate.Detail)
	}

	// The same code is fine under a different parent.
	if _, err := svc.System.Create(ctx, &CreateSystemInput{
		Name:       "Detector Bank",
		Importance: entity.ImportanceMedium,
	}); err != nil {
		t.Errorf("Expected same name under different parent to be accepted: %v", err)
	}

	_, err = svc.System.Create(ctx, &CreateSystemInput{
		Name:       "Orphan",
		Importance: entity.ImportanceLow,
		ParentID:   strPtr(entity.NewID()),
	})
	missing, ok := err.(*apperr.MissingRecordError)
	if !ok {
		t.Fatalf("Expected MissingRecordError, got %v", err)
	}
	if missing.Entity != "parent system" {
		t.Errorf("Expected parent system label, got %q", missing.Entity)
	}
}

func TestSystemUpdateMove(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	root := testutil.SeedSystem(t, db, "root", nil)
	middle := testutil.SeedSystem(t, db, "middle", &root.ID)
	leaf := testutil.SeedSystem(t, db, "leaf", &middle.ID)

	// Moving under a descendant would orphan the subtree.
	_, err := svc.System.Update(ctx, root.ID, &UpdateSystemInput{
		ParentID: optionalOf(&leaf.ID),
	})
	invalid, ok := err.(*apperr.InvalidActionError)
	if !ok {
		t.Fatalf("Expected InvalidActionError, got %v", err)
	}
	if invalid.Detail != "Cannot move a system to one of its own children" {
		t.Errorf("Unexpected detail: %q", invalid.Detail)
	}

	// A valid move to the root.
	moved, err := svc.System.Update(ctx, leaf.ID, &UpdateSystemInput{
		ParentID: optionalOf[*string](nil),
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.ParentID != nil {
		t.Errorf("Expected nil parent after move, got %v", moved.ParentID)
	}

	// A rename regenerates the code and re-checks siblings.
	renamed, err := svc.System.Update(ctx, middle.ID, &UpdateSystemInput{Name: strPtr("Mid Section")})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Code != "mid-section" {
		t.Errorf("Expected regenerated code, got %q", renamed.Code)
	}
	_, err = svc.System.Update(ctx, leaf.ID, &UpdateSystemInput{Name: strPtr("Root")})
	if _, ok := err.(*apperr.DuplicateRecordError); !ok {
		t.Fatalf("Expected DuplicateRecordError, got %v", err)
	}
}

func TestSystemDelete(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	parent := testutil.SeedSystem(t, db, "parent", nil)
	child := testutil.SeedSystem(t, db, "child", &parent.ID)

	err := svc.System.Delete(ctx, parent.ID)
	gated, ok := err.(*apperr.ChildElementsExistError)
	if !ok {
		t.Fatalf("Expected ChildElementsExistError, got %v", err)
	}
	if gated.Detail != "System with ID "+parent.ID+" has child elements and cannot be deleted" {
		t.Errorf("Unexpected detail: %q", gated.Detail)
	}

	if err := svc.System.Delete(ctx, child.ID); err != nil {
		t.Fatalf("delete child: %v", err)
	}
	if err := svc.System.Delete(ctx, parent.ID); err != nil {
		t.Fatalf("delete parent: %v", err)
	}
	err = svc.System.Delete(ctx, parent.ID)
	if _, ok := err.(*apperr.MissingRecordError); !ok {
		t.Fatalf("Expected MissingRecordError, got %v", err)
	}
}

func TestSystemBreadcrumbs(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	site := testutil.SeedSystem(t, db, "site", nil)
	hall := testutil.SeedSystem(t, db, "hall", &site.ID)
	rack := testutil.SeedSystem(t, db, "rack", &hall.ID)

	crumbs, err := svc.System.GetBreadcrumbs(ctx, rack.ID)
	if err != nil {
		t.Fatalf("breadcrumbs: %v", err)
	}
	if !crumbs.FullTrail {
		t.Error("Expected full trail for shallow system")
	}
	if len(crumbs.Trail) != 2 || crumbs.Trail[0].Name != "hall" || crumbs.Trail[1].Name != "site" {
		t.Errorf("Expected nearest-parent-first trail, got %+v", crumbs.Trail)
	}
}
