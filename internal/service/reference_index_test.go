package service

import (
	"errors"
	"testing"

	"github.com/buildsite/internal/db"
)

func TestIsReferencedByGalleryRow(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	refs := NewReferenceIndex(gdb)
	project := createTestProject(t, gdb, "ref-project")

	url := "https://cdn.example.com/media/uploads/ref.jpg"
	row := db.ProjectGalleryImage{ProjectID: project.ID, ImageURL: url}
	if err := gdb.Create(&row).Error; err != nil {
		t.Fatalf("failed to create gallery row: %v", err)
	}

	referenced, err := refs.IsReferenced(url, ReferenceExclusion{})
	if err != nil {
		t.Fatalf("reference check failed: %v", err)
	}
	if !referenced {
		t.Fatalf("expected URL to be referenced")
	}

	// Excluding the row itself leaves nothing pointing at the URL.
	referenced, err = refs.IsReferenced(url, ReferenceExclusion{Kind: GalleryKindProject, RowID: row.ID})
	if err != nil {
		t.Fatalf("reference check failed: %v", err)
	}
	if referenced {
		t.Fatalf("expected no reference with the row excluded")
	}

	referenced, err = refs.IsReferenced("", ReferenceExclusion{})
	if err != nil || referenced {
		t.Fatalf("expected blank URL to be unreferenced, got %v %v", referenced, err)
	}
}

func TestIsReferencedByPrimaryImage(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	refs := NewReferenceIndex(gdb)
	url := "https://cdn.example.com/media/uploads/cover.jpg"

	project := createTestProject(t, gdb, "cover-project")
	if err := gdb.Model(&db.Project{}).Where("id = ?", project.ID).Update("image", url).Error; err != nil {
		t.Fatalf("failed to set primary image: %v", err)
	}

	referenced, err := refs.IsReferenced(url, ReferenceExclusion{})
	if err != nil {
		t.Fatalf("reference check failed: %v", err)
	}
	if !referenced {
		t.Fatalf("expected primary image to count as a reference")
	}

	// Purging this parent excludes its own primary image field.
	referenced, err = refs.IsReferenced(url, ReferenceExclusion{ParentKind: GalleryKindProject, ParentID: project.ID})
	if err != nil {
		t.Fatalf("reference check failed: %v", err)
	}
	if referenced {
		t.Fatalf("expected no reference with the parent excluded")
	}

	// A soft-deleted parent no longer holds a reference.
	if err := gdb.Delete(&db.Project{}, project.ID).Error; err != nil {
		t.Fatalf("failed to delete project: %v", err)
	}
	referenced, err = refs.IsReferenced(url, ReferenceExclusion{})
	if err != nil {
		t.Fatalf("reference check failed: %v", err)
	}
	if referenced {
		t.Fatalf("expected deleted parent to release the reference")
	}
}

func TestIsReferencedByTeamPhoto(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	refs := NewReferenceIndex(gdb)
	url := "https://cdn.example.com/media/uploads/portrait.jpg"

	member := db.TeamMember{Name: "Sam Ortiz", PhotoURL: url}
	if err := gdb.Create(&member).Error; err != nil {
		t.Fatalf("failed to create team member: %v", err)
	}

	referenced, err := refs.IsReferenced(url, ReferenceExclusion{})
	if err != nil {
		t.Fatalf("reference check failed: %v", err)
	}
	if !referenced {
		t.Fatalf("expected team photo to count as a reference")
	}
}

func TestIsReferencedFailsClosed(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	refs := NewReferenceIndex(gdb)
	checkErr := errors.New("index offline")
	refs.Register(ReferenceChecker{
		Name: "broken",
		Exists: func(string, ReferenceExclusion) (bool, error) {
			return false, checkErr
		},
	})

	referenced, err := refs.IsReferenced("https://cdn.example.com/media/uploads/any.jpg", ReferenceExclusion{})
	if !errors.Is(err, checkErr) {
		t.Fatalf("expected checker error surfaced, got %v", err)
	}
	if !referenced {
		t.Fatalf("expected a failing check to report the URL as referenced")
	}
}

func TestStagingReferenceChecker(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	store := newMockStore()
	staging := NewStagingService(store)
	refs := NewReferenceIndex(gdb)
	refs.Register(staging.ReferenceChecker())

	url := trackTestUpload(staging, store, "uploads/staged.jpg", "session-x")

	referenced, err := refs.IsReferenced(url, ReferenceExclusion{})
	if err != nil {
		t.Fatalf("reference check failed: %v", err)
	}
	if !referenced {
		t.Fatalf("expected staged upload to count as a reference")
	}

	staging.Commit("session-x", url)
	referenced, err = refs.IsReferenced(url, ReferenceExclusion{})
	if err != nil {
		t.Fatalf("reference check failed: %v", err)
	}
	if referenced {
		t.Fatalf("expected committed upload to drop out of the index")
	}
}
