package service

import (
	"errors"
	"testing"
)

func TestProjectCreateAndSlug(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewProjectService(gdb)

	if _, err := svc.Create(ProjectInput{}); !errors.Is(err, ErrProjectNameRequired) {
		t.Fatalf("expected ErrProjectNameRequired, got %v", err)
	}

	item, err := svc.Create(ProjectInput{Name: "Harbour Bridge Retrofit", Category: "commercial"})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	if item.Slug != "harbour-bridge-retrofit" {
		t.Fatalf("expected slug derived from name, got %q", item.Slug)
	}

	if _, err := svc.Create(ProjectInput{Name: "Another", Slug: "harbour-bridge-retrofit"}); !errors.Is(err, ErrProjectSlugTaken) {
		t.Fatalf("expected ErrProjectSlugTaken, got %v", err)
	}

	found, err := svc.GetBySlug("harbour-bridge-retrofit")
	if err != nil {
		t.Fatalf("failed to get by slug: %v", err)
	}
	if found.ID != item.ID {
		t.Fatalf("expected project %d, got %d", item.ID, found.ID)
	}
}

func TestProjectListFilters(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewProjectService(gdb)
	featured := true

	if _, err := svc.Create(ProjectInput{Name: "Lakeside Homes", Category: "residential", Featured: true}); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	if _, err := svc.Create(ProjectInput{Name: "Steel Mill Upgrade", Category: "industrial"}); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	result, err := svc.List(ProjectFilter{Category: "residential"})
	if err != nil {
		t.Fatalf("failed to list projects: %v", err)
	}
	if result.Total != 1 || result.Items[0].Name != "Lakeside Homes" {
		t.Fatalf("expected one residential project, got %+v", result)
	}

	result, err = svc.List(ProjectFilter{Featured: &featured})
	if err != nil {
		t.Fatalf("failed to list featured projects: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected one featured project, got %d", result.Total)
	}

	result, err = svc.List(ProjectFilter{Search: "mill"})
	if err != nil {
		t.Fatalf("failed to search projects: %v", err)
	}
	if result.Total != 1 || result.Items[0].Name != "Steel Mill Upgrade" {
		t.Fatalf("expected search to match one project, got %+v", result)
	}
}

func TestProjectUpdateReportsPreviousImage(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewProjectService(gdb)
	item, err := svc.Create(ProjectInput{Name: "Civic Center", Image: "/static/uploads/old.jpg"})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	updated, previous, err := svc.Update(item.ID, ProjectInput{Name: "Civic Center", Image: "/static/uploads/new.jpg"})
	if err != nil {
		t.Fatalf("failed to update project: %v", err)
	}
	if previous != "/static/uploads/old.jpg" {
		t.Fatalf("expected previous image reported, got %q", previous)
	}
	if updated.Image != "/static/uploads/new.jpg" {
		t.Fatalf("expected image replaced, got %q", updated.Image)
	}

	if _, _, err := svc.Update(9999, ProjectInput{Name: "x"}); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectDelete(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewProjectService(gdb)
	item, err := svc.Create(ProjectInput{Name: "Temporary Site Office"})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	if err := svc.Delete(item.ID); err != nil {
		t.Fatalf("failed to delete project: %v", err)
	}
	if _, err := svc.Get(item.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound after delete, got %v", err)
	}
	if err := svc.Delete(item.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound on second delete, got %v", err)
	}
}
