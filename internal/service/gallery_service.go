package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/buildsite/internal/db"
	"github.com/buildsite/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrParentNotFound       = errors.New("parent record not found")
	ErrGalleryImageNotFound = errors.New("gallery image not found")
	ErrGalleryImageMissing  = errors.New("gallery image url is required")
	ErrGalleryKindInvalid   = errors.New("gallery kind is invalid")
	ErrReorderMismatch      = errors.New("reorder ids do not match the gallery")
)

// GalleryImage is the kind-neutral view of one gallery row.
type GalleryImage struct {
	ID           uint      `json:"id"`
	ParentID     uint      `json:"parentId"`
	ImageURL     string    `json:"imageUrl"`
	Caption      string    `json:"caption"`
	DisplayOrder int       `json:"displayOrder"`
	IsFeature    bool      `json:"isFeature"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GalleryImageInput represents one image to attach to a gallery.
type GalleryImageInput struct {
	ImageURL     string
	Caption      string
	DisplayOrder int
	Width        int
	Height       int
}

// GalleryService owns gallery mutations for every parent kind. File deletion
// always goes through the reference index first: a URL still referenced by
// any other row, primary-image field or pending upload keeps its file.
type GalleryService struct {
	db      *gorm.DB
	store   storage.ObjectStore
	refs    *ReferenceIndex
	staging *StagingService
	caps    map[GalleryKind]int
}

// NewGalleryService wires the gallery mutation service.
func NewGalleryService(gdb *gorm.DB, store storage.ObjectStore, refs *ReferenceIndex, staging *StagingService, caps map[GalleryKind]int) *GalleryService {
	if caps == nil {
		caps = map[GalleryKind]int{}
	}
	return &GalleryService{db: gdb, store: store, refs: refs, staging: staging, caps: caps}
}

// MaxImages reports the configured cap for a kind. Zero means unlimited.
func (s *GalleryService) MaxImages(kind GalleryKind) int {
	return s.caps[kind]
}

// ListImages returns a parent's gallery ordered for presentation, ties broken
// by insertion order.
func (s *GalleryService) ListImages(kind GalleryKind, parentID uint) ([]GalleryImage, error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return nil, err
	}

	var items []GalleryImage
	err = s.db.Table(d.table).
		Select(d.selectColumns()).
		Where(d.parentColumn+" = ?", parentID).
		Order("display_order asc").
		Order("id asc").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddImages attaches up to the configured cap of new images to a parent.
// Images beyond capacity are not inserted and come back in the rejected
// count so the admin UI can re-queue them. Inserted URLs are committed out
// of the staging session.
func (s *GalleryService) AddImages(kind GalleryKind, parentID uint, inputs []GalleryImageInput, sessionID string) (added []GalleryImage, rejected int, err error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return nil, 0, err
	}
	if len(inputs) == 0 {
		return nil, 0, nil
	}
	for _, input := range inputs {
		if strings.TrimSpace(input.ImageURL) == "" {
			return nil, 0, ErrGalleryImageMissing
		}
	}

	if err := s.requireParent(d, parentID); err != nil {
		return nil, 0, err
	}

	var existing int64
	if err := s.db.Table(d.table).Where(d.parentColumn+" = ?", parentID).Count(&existing).Error; err != nil {
		return nil, 0, err
	}

	admitted := inputs
	if limit := s.caps[kind]; limit > 0 {
		capacity := limit - int(existing)
		if capacity <= 0 {
			return nil, len(inputs), nil
		}
		if len(inputs) > capacity {
			admitted = inputs[:capacity]
			rejected = len(inputs) - capacity
		}
	}

	nextOrder, err := s.nextDisplayOrder(d, parentID)
	if err != nil {
		return nil, len(inputs), err
	}

	for i, input := range admitted {
		order := input.DisplayOrder
		if order <= 0 {
			order = nextOrder
			nextOrder++
		}
		item, insertErr := s.insertRow(kind, parentID, input, order)
		if insertErr != nil {
			// Partial failure: report what made it in, the caller retries
			// the remainder.
			rejected += len(admitted) - i
			err = insertErr
			break
		}
		added = append(added, item)
	}

	if s.staging != nil && sessionID != "" && len(added) > 0 {
		urls := make([]string, 0, len(added))
		for _, item := range added {
			urls = append(urls, item.ImageURL)
		}
		s.staging.Commit(sessionID, urls...)
	}

	return added, rejected, err
}

// UpdateImage changes caption and display order of one gallery row.
func (s *GalleryService) UpdateImage(kind GalleryKind, id uint, caption string, displayOrder int) (*GalleryImage, error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return nil, err
	}

	item, err := s.getRow(d, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrGalleryImageNotFound
	}

	updates := map[string]any{
		"caption":       strings.TrimSpace(caption),
		"display_order": displayOrder,
	}
	if err := s.db.Table(d.table).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	item.Caption = strings.TrimSpace(caption)
	item.DisplayOrder = displayOrder
	return item, nil
}

// Reorder assigns sequential 1-based display orders following orderedIDs.
// Every id must belong to the given parent; reordering never crosses parents.
func (s *GalleryService) Reorder(kind GalleryKind, parentID uint, orderedIDs []uint) error {
	d, err := descriptorFor(kind)
	if err != nil {
		return err
	}

	items, err := s.ListImages(kind, parentID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(items) {
		return ErrReorderMismatch
	}
	owned := make(map[uint]bool, len(items))
	for _, item := range items {
		owned[item.ID] = true
	}
	for _, id := range orderedIDs {
		if !owned[id] {
			return ErrReorderMismatch
		}
		delete(owned, id) // catches duplicates in orderedIDs
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIDs {
			err := tx.Table(d.table).
				Where("id = ?", id).
				Where(d.parentColumn+" = ?", parentID).
				Update("display_order", position+1).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SetFeature marks one project gallery image as the feature image and copies
// its URL into the project's primary image field, all in one transaction so
// concurrent edits cannot leave two feature rows.
func (s *GalleryService) SetFeature(projectID, imageID uint) (*GalleryImage, error) {
	var row db.ProjectGalleryImage
	err := s.db.Where("id = ? AND project_id = ?", imageID, projectID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryImageNotFound
		}
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.ProjectGalleryImage{}).
			Where("project_id = ?", projectID).
			Where("is_feature = ?", true).
			Update("is_feature", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&db.ProjectGalleryImage{}).
			Where("id = ?", imageID).
			Update("is_feature", true).Error; err != nil {
			return err
		}

		result := tx.Model(&db.Project{}).Where("id = ?", projectID).Update("image", row.ImageURL)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrParentNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d, _ := descriptorFor(GalleryKindProject)
	return s.getRow(d, imageID)
}

// DeleteImage removes one gallery row and, when nothing else references the
// URL, the backing file. Deleting a row that is already gone succeeds.
func (s *GalleryService) DeleteImage(ctx context.Context, kind GalleryKind, id uint) error {
	d, err := descriptorFor(kind)
	if err != nil {
		return err
	}

	item, err := s.getRow(d, id)
	if err != nil {
		return err
	}
	if item == nil {
		return nil // double delete is a no-op
	}

	s.deleteFileIfUnreferenced(ctx, item.ImageURL, ReferenceExclusion{Kind: kind, RowID: id})

	return s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", d.table), id).Error
}

// DeleteAllForParent removes every gallery row for a parent, then deletes
// each file whose URL is no longer referenced anywhere. Rows go first on
// purpose: while siblings exist they would always count as references.
func (s *GalleryService) DeleteAllForParent(ctx context.Context, kind GalleryKind, parentID uint) (int, error) {
	d, err := descriptorFor(kind)
	if err != nil {
		return 0, err
	}

	items, err := s.ListImages(kind, parentID)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	err = s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", d.table, d.parentColumn), parentID).Error
	if err != nil {
		return 0, err
	}

	exclude := ReferenceExclusion{ParentKind: kind, ParentID: parentID}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ImageURL] {
			continue
		}
		seen[item.ImageURL] = true
		s.deleteFileIfUnreferenced(ctx, item.ImageURL, exclude)
	}

	return len(items), nil
}

// CleanupSession sweeps one upload session, preserving any file whose URL is
// already persisted somewhere. Called from the admin UI's cancel and unmount
// signals.
func (s *GalleryService) CleanupSession(ctx context.Context, sessionID, specificURL string) (StagingCleanupResult, error) {
	if s.staging == nil {
		return StagingCleanupResult{}, nil
	}
	preserve, err := s.persistedURLs()
	if err != nil {
		// Fail closed: without the preserve list a sweep could delete a
		// file that a record still references.
		return StagingCleanupResult{}, err
	}
	return s.staging.Cleanup(ctx, sessionID, specificURL, preserve), nil
}

// SweepExpiredUploads is the backstop for abandoned sessions, run on a timer
// from main. Returns how many files were deleted.
func (s *GalleryService) SweepExpiredUploads(ctx context.Context, maxAge time.Duration) int {
	if s.staging == nil {
		return 0
	}
	preserve, err := s.persistedURLs()
	if err != nil {
		log.Printf("upload sweep: skipped, preserve list unavailable: %v", err)
		return 0
	}
	return s.staging.CleanupExpired(ctx, maxAge, preserve)
}

// ReleaseFile deletes the backing file for a URL that just lost a reference,
// unless something else still points at it. Used when a parent record is
// deleted or its primary image replaced.
func (s *GalleryService) ReleaseFile(ctx context.Context, url string, exclude ReferenceExclusion) {
	if strings.TrimSpace(url) == "" {
		return
	}
	s.deleteFileIfUnreferenced(ctx, url, exclude)
}

func (s *GalleryService) deleteFileIfUnreferenced(ctx context.Context, url string, exclude ReferenceExclusion) {
	referenced, err := s.refs.IsReferenced(url, exclude)
	if err != nil {
		// Fail closed: a failed check must never turn into a file deletion.
		log.Printf("gallery: reference check failed for %s, keeping file: %v", url, err)
		return
	}
	if referenced {
		return
	}

	key := storage.KeyFromURL(url, s.store.BaseURL())
	if key == "" {
		return // URL not owned by our store
	}
	if err := s.store.Delete(ctx, key); err != nil {
		// Non-fatal: the row is the source of truth, an orphaned file is
		// recovered by a later audit.
		log.Printf("gallery: failed to delete stored file %s: %v", key, err)
	}
}

// persistedURLs collects every image URL currently referenced by a live
// record, used as the preserve list for staging sweeps.
func (s *GalleryService) persistedURLs() ([]string, error) {
	var urls []string

	for _, d := range galleryDescriptors {
		var galleryURLs []string
		err := s.db.Table(d.table).
			Where("image_url <> ''").
			Pluck("image_url", &galleryURLs).Error
		if err != nil {
			return nil, err
		}
		urls = append(urls, galleryURLs...)

		var parentURLs []string
		err = s.db.Table(d.parentTable).
			Where(d.parentImageColumn+" <> ''").
			Where("deleted_at IS NULL").
			Pluck(d.parentImageColumn, &parentURLs).Error
		if err != nil {
			return nil, err
		}
		urls = append(urls, parentURLs...)
	}

	var photoURLs []string
	err := s.db.Table("team_members").
		Where("photo_url <> ''").
		Where("deleted_at IS NULL").
		Pluck("photo_url", &photoURLs).Error
	if err != nil {
		return nil, err
	}
	urls = append(urls, photoURLs...)

	return urls, nil
}

func (s *GalleryService) requireParent(d galleryDescriptor, parentID uint) error {
	var count int64
	err := s.db.Table(d.parentTable).
		Where("id = ?", parentID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrParentNotFound
	}
	return nil
}

func (s *GalleryService) getRow(d galleryDescriptor, id uint) (*GalleryImage, error) {
	var items []GalleryImage
	err := s.db.Table(d.table).
		Select(d.selectColumns()).
		Where("id = ?", id).
		Limit(1).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (s *GalleryService) nextDisplayOrder(d galleryDescriptor, parentID uint) (int, error) {
	var maxOrder int
	err := s.db.Table(d.table).
		Where(d.parentColumn+" = ?", parentID).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

func (s *GalleryService) insertRow(kind GalleryKind, parentID uint, input GalleryImageInput, order int) (GalleryImage, error) {
	caption := strings.TrimSpace(input.Caption)
	url := strings.TrimSpace(input.ImageURL)

	switch kind {
	case GalleryKindProject:
		row := db.ProjectGalleryImage{
			ProjectID:    parentID,
			ImageURL:     url,
			Caption:      caption,
			DisplayOrder: order,
			Width:        input.Width,
			Height:       input.Height,
		}
		if err := s.db.Create(&row).Error; err != nil {
			return GalleryImage{}, err
		}
		return GalleryImage{
			ID: row.ID, ParentID: parentID, ImageURL: url, Caption: caption,
			DisplayOrder: order, Width: input.Width, Height: input.Height, CreatedAt: row.CreatedAt,
		}, nil
	case GalleryKindService:
		row := db.ServiceGalleryImage{
			ServiceID:    parentID,
			ImageURL:     url,
			Caption:      caption,
			DisplayOrder: order,
			Width:        input.Width,
			Height:       input.Height,
		}
		if err := s.db.Create(&row).Error; err != nil {
			return GalleryImage{}, err
		}
		return GalleryImage{
			ID: row.ID, ParentID: parentID, ImageURL: url, Caption: caption,
			DisplayOrder: order, Width: input.Width, Height: input.Height, CreatedAt: row.CreatedAt,
		}, nil
	case GalleryKindBlog:
		row := db.BlogGalleryImage{
			BlogPostID:   parentID,
			ImageURL:     url,
			Caption:      caption,
			DisplayOrder: order,
			Width:        input.Width,
			Height:       input.Height,
		}
		if err := s.db.Create(&row).Error; err != nil {
			return GalleryImage{}, err
		}
		return GalleryImage{
			ID: row.ID, ParentID: parentID, ImageURL: url, Caption: caption,
			DisplayOrder: order, Width: input.Width, Height: input.Height, CreatedAt: row.CreatedAt,
		}, nil
	}
	return GalleryImage{}, fmt.Errorf("%w: %s", ErrGalleryKindInvalid, kind)
}
