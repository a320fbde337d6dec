package service

import (
	"fmt"
	"strings"
)

// GalleryKind identifies which parent entity a gallery belongs to.
type GalleryKind string

const (
	GalleryKindProject GalleryKind = "project"
	GalleryKindService GalleryKind = "service"
	GalleryKindBlog    GalleryKind = "blog"
)

// galleryDescriptor maps a gallery kind onto its tables and columns. New
// kinds register here; nothing else hardcodes table names.
type galleryDescriptor struct {
	kind              GalleryKind
	table             string
	parentTable       string
	parentColumn      string
	parentImageColumn string
	hasFeature        bool
}

var galleryDescriptors = []galleryDescriptor{
	{
		kind:              GalleryKindProject,
		table:             "project_gallery_images",
		parentTable:       "projects",
		parentColumn:      "project_id",
		parentImageColumn: "image",
		hasFeature:        true,
	},
	{
		kind:              GalleryKindService,
		table:             "service_gallery_images",
		parentTable:       "services",
		parentColumn:      "service_id",
		parentImageColumn: "image",
	},
	{
		kind:              GalleryKindBlog,
		table:             "blog_gallery_images",
		parentTable:       "blog_posts",
		parentColumn:      "blog_post_id",
		parentImageColumn: "image",
	},
}

func descriptorFor(kind GalleryKind) (galleryDescriptor, error) {
	for _, d := range galleryDescriptors {
		if d.kind == kind {
			return d, nil
		}
	}
	return galleryDescriptor{}, ErrGalleryKindInvalid
}

func (d galleryDescriptor) selectColumns() string {
	feature := "is_feature"
	if !d.hasFeature {
		feature = "0 AS is_feature"
	}
	return fmt.Sprintf(
		"id, %s AS parent_id, image_url, caption, display_order, %s, width, height, created_at",
		d.parentColumn, feature,
	)
}

// ParseGalleryKind accepts the URL form of a kind, singular or plural.
func ParseGalleryKind(raw string) (GalleryKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "project", "projects":
		return GalleryKindProject, nil
	case "service", "services":
		return GalleryKindService, nil
	case "blog", "blogs", "post", "posts":
		return GalleryKindBlog, nil
	}
	return "", ErrGalleryKindInvalid
}
