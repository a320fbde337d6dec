package service

import (
	"errors"
	"strings"
	"testing"
)

func TestBlogCreateDefaultsToDraft(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewBlogService(gdb)

	if _, err := svc.Create(BlogInput{}); !errors.Is(err, ErrPostTitleRequired) {
		t.Fatalf("expected ErrPostTitleRequired, got %v", err)
	}
	if _, err := svc.Create(BlogInput{Title: "x", Status: "archived"}); !errors.Is(err, ErrPostStatusInvalid) {
		t.Fatalf("expected ErrPostStatusInvalid, got %v", err)
	}

	item, err := svc.Create(BlogInput{Title: "Winter Concrete Pours"})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	if item.Status != PostStatusDraft {
		t.Fatalf("expected draft status, got %q", item.Status)
	}
	if item.PublishedAt != nil {
		t.Fatalf("expected no publish timestamp for a draft")
	}
}

func TestBlogPublishStampsPublishedAt(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewBlogService(gdb)
	item, err := svc.Create(BlogInput{Title: "Choosing Roofing Materials"})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	published, _, err := svc.Update(item.ID, BlogInput{Title: item.Title, Status: PostStatusPublished})
	if err != nil {
		t.Fatalf("failed to publish post: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatalf("expected publish timestamp to be stamped")
	}
	stamped := *published.PublishedAt

	// Re-saving an already published post keeps the original timestamp.
	again, _, err := svc.Update(item.ID, BlogInput{Title: item.Title, Status: PostStatusPublished})
	if err != nil {
		t.Fatalf("failed to update post: %v", err)
	}
	if again.PublishedAt == nil || !again.PublishedAt.Equal(stamped) {
		t.Fatalf("expected publish timestamp preserved")
	}

	// Only published posts are visible by slug on the public site.
	draft, err := svc.Create(BlogInput{Title: "Unfinished Notes"})
	if err != nil {
		t.Fatalf("failed to create draft: %v", err)
	}
	if _, err := svc.GetPublishedBySlug(draft.Slug); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected draft hidden from public slug lookup, got %v", err)
	}
	if _, err := svc.GetPublishedBySlug(published.Slug); err != nil {
		t.Fatalf("expected published post visible, got %v", err)
	}
}

func TestRenderContent(t *testing.T) {
	rendered, err := RenderContent("# Site Prep\n\nCheck the *soil report* first.")
	if err != nil {
		t.Fatalf("failed to render markdown: %v", err)
	}
	if !strings.Contains(rendered, "<h1") || !strings.Contains(rendered, "<em>soil report</em>") {
		t.Fatalf("unexpected rendered output: %q", rendered)
	}

	// Script tags never survive sanitization.
	rendered, err = RenderContent("hello <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("failed to render markdown: %v", err)
	}
	if strings.Contains(rendered, "<script>") {
		t.Fatalf("expected script stripped, got %q", rendered)
	}
}
