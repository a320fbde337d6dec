package service

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ReferenceExclusion names records that must not count as references during a
// check, typically because they are the ones being deleted.
type ReferenceExclusion struct {
	// Kind and RowID exclude one gallery row.
	Kind  GalleryKind
	RowID uint
	// ParentKind and ParentID exclude one parent's primary-image field, used
	// when purging every gallery row for that parent.
	ParentKind GalleryKind
	ParentID   uint
}

// ReferenceChecker is one registered existence probe. Checkers must answer
// whether any live record they cover still points at the URL.
type ReferenceChecker struct {
	Name   string
	Exists func(url string, exclude ReferenceExclusion) (bool, error)
}

// ReferenceIndex decides whether a stored file URL is still needed by any
// record before the file may be removed from the object store.
type ReferenceIndex struct {
	checkers []ReferenceChecker
}

// NewReferenceIndex registers the gallery-row and parent-image checkers for
// every gallery kind plus the team photo column.
func NewReferenceIndex(gdb *gorm.DB) *ReferenceIndex {
	idx := &ReferenceIndex{}

	for _, d := range galleryDescriptors {
		d := d
		idx.Register(ReferenceChecker{
			Name: string(d.kind) + " gallery",
			Exists: func(url string, exclude ReferenceExclusion) (bool, error) {
				query := gdb.Table(d.table).Where("image_url = ?", url)
				if exclude.Kind == d.kind && exclude.RowID != 0 {
					query = query.Where("id <> ?", exclude.RowID)
				}
				var count int64
				if err := query.Count(&count).Error; err != nil {
					return false, err
				}
				return count > 0, nil
			},
		})
		idx.Register(ReferenceChecker{
			Name: string(d.kind) + " primary image",
			Exists: func(url string, exclude ReferenceExclusion) (bool, error) {
				query := gdb.Table(d.parentTable).
					Where(d.parentImageColumn+" = ?", url).
					Where("deleted_at IS NULL")
				if exclude.ParentKind == d.kind && exclude.ParentID != 0 {
					query = query.Where("id <> ?", exclude.ParentID)
				}
				var count int64
				if err := query.Count(&count).Error; err != nil {
					return false, err
				}
				return count > 0, nil
			},
		})
	}

	idx.Register(ReferenceChecker{
		Name: "team photo",
		Exists: func(url string, _ ReferenceExclusion) (bool, error) {
			var count int64
			err := gdb.Table("team_members").
				Where("photo_url = ?", url).
				Where("deleted_at IS NULL").
				Count(&count).Error
			if err != nil {
				return false, err
			}
			return count > 0, nil
		},
	})

	return idx
}

// Register appends a checker. Exposed so collaborators such as the staging
// manager can contribute their own reference sources.
func (ri *ReferenceIndex) Register(checker ReferenceChecker) {
	ri.checkers = append(ri.checkers, checker)
}

// IsReferenced reports whether any live record outside the exclusion still
// points at the URL. A failing checker fails closed: the URL is reported as
// referenced alongside the error so callers skip the file deletion.
func (ri *ReferenceIndex) IsReferenced(url string, exclude ReferenceExclusion) (bool, error) {
	if strings.TrimSpace(url) == "" {
		return false, nil
	}

	for _, checker := range ri.checkers {
		used, err := checker.Exists(url, exclude)
		if err != nil {
			return true, fmt.Errorf("reference check %q: %w", checker.Name, err)
		}
		if used {
			return true, nil
		}
	}

	return false, nil
}
