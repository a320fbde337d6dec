package service

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/buildsite/internal/storage"
)

// PendingUpload is a file already placed in the object store but not yet
// attached to a persisted record. Never written to the database.
type PendingUpload struct {
	URL       string
	Key       string
	Filename  string
	SessionID string
	TrackedAt time.Time
}

// StagingCleanupResult reports what one cleanup pass did per URL.
type StagingCleanupResult struct {
	DeletedURLs   []string
	FailedURLs    []string
	PreservedURLs []string
}

// StagingService tracks uploads staged during one form-editing session so
// abandoned files can be swept from the object store. State is an in-memory
// map guarded by a mutex; the service is constructor-injected rather than a
// package singleton so a shared store can replace it for multi-instance
// deployments.
type StagingService struct {
	mu      sync.Mutex
	store   storage.ObjectStore
	pending map[string]map[string]PendingUpload // session id -> url -> entry
}

// NewStagingService creates a StagingService deleting through the given store.
func NewStagingService(store storage.ObjectStore) *StagingService {
	return &StagingService{
		store:   store,
		pending: make(map[string]map[string]PendingUpload),
	}
}

// Track records an uploaded file under its session. Re-tracking the same
// (url, session) pair refreshes the timestamp instead of duplicating.
func (s *StagingService) Track(url, key, sessionID, filename string) {
	if url == "" || sessionID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.pending[sessionID]
	if session == nil {
		session = make(map[string]PendingUpload)
		s.pending[sessionID] = session
	}
	session[url] = PendingUpload{
		URL:       url,
		Key:       key,
		Filename:  filename,
		SessionID: sessionID,
		TrackedAt: time.Now(),
	}
}

// Commit removes matching entries from tracking and returns their URLs. With
// no urls argument the whole session is committed. Committing never touches
// the object store; it only stops the files from being swept. A second
// commit of the same session returns an empty list.
func (s *StagingService) Commit(sessionID string, urls ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.pending[sessionID]
	if len(session) == 0 {
		return nil
	}

	var committed []string
	if len(urls) == 0 {
		for url := range session {
			committed = append(committed, url)
		}
		delete(s.pending, sessionID)
	} else {
		for _, url := range urls {
			if _, ok := session[url]; ok {
				committed = append(committed, url)
				delete(session, url)
			}
		}
		if len(session) == 0 {
			delete(s.pending, sessionID)
		}
	}

	sort.Strings(committed)
	return committed
}

// Pending lists what is still staged under a session, oldest first. Lets the
// admin UI restore upload state on mount instead of trusting client storage.
func (s *StagingService) Pending(sessionID string) []PendingUpload {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]PendingUpload, 0, len(s.pending[sessionID]))
	for _, entry := range s.pending[sessionID] {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TrackedAt.Before(entries[j].TrackedAt)
	})
	return entries
}

// IsPending reports whether the URL is staged under any session other than
// excludeSession.
func (s *StagingService) IsPending(url, excludeSession string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPendingLocked(url, excludeSession)
}

func (s *StagingService) isPendingLocked(url, excludeSession string) bool {
	for sessionID, session := range s.pending {
		if sessionID == excludeSession {
			continue
		}
		if _, ok := session[url]; ok {
			return true
		}
	}
	return false
}

// ReferenceChecker exposes pending state to the reference index so a staged
// file cannot be deleted out from under another editing session.
func (s *StagingService) ReferenceChecker() ReferenceChecker {
	return ReferenceChecker{
		Name: "pending upload",
		Exists: func(url string, _ ReferenceExclusion) (bool, error) {
			return s.IsPending(url, ""), nil
		},
	}
}

// Cleanup sweeps one session. Entries whose URL appears in preserveURLs, or
// is still staged under a different session, keep their backing file and are
// reported as preserved. Everything else is deleted from the object store.
// Tracking is cleared for every processed entry, deletes that failed
// included, so the map cannot grow without bound; a failed delete leaves an
// orphaned file rather than being retried forever.
func (s *StagingService) Cleanup(ctx context.Context, sessionID, specificURL string, preserveURLs []string) StagingCleanupResult {
	preserve := make(map[string]bool, len(preserveURLs))
	for _, url := range preserveURLs {
		preserve[url] = true
	}

	s.mu.Lock()
	session := s.pending[sessionID]
	var preserved []PendingUpload
	var deletable []PendingUpload
	for url, entry := range session {
		if specificURL != "" && url != specificURL {
			continue
		}
		if preserve[url] || s.isPendingLocked(url, sessionID) {
			preserved = append(preserved, entry)
		} else {
			deletable = append(deletable, entry)
		}
		delete(session, url)
	}
	if len(session) == 0 {
		delete(s.pending, sessionID)
	}
	s.mu.Unlock()

	result := StagingCleanupResult{}
	for _, entry := range preserved {
		result.PreservedURLs = append(result.PreservedURLs, entry.URL)
	}

	for _, entry := range deletable {
		key := entry.Key
		if key == "" {
			key = storage.KeyFromURL(entry.URL, s.store.BaseURL())
		}
		if err := s.store.Delete(ctx, key); err != nil {
			log.Printf("staging cleanup: failed to delete %s: %v", entry.URL, err)
			result.FailedURLs = append(result.FailedURLs, entry.URL)
			continue
		}
		result.DeletedURLs = append(result.DeletedURLs, entry.URL)
	}

	return result
}

// CleanupExpired sweeps every session holding at least one entry older than
// maxAge and returns how many files were deleted. The whole session is
// cleaned once any of its entries has expired.
func (s *StagingService) CleanupExpired(ctx context.Context, maxAge time.Duration, preserveURLs []string) int {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	var expired []string
	for sessionID, session := range s.pending {
		for _, entry := range session {
			if entry.TrackedAt.Before(cutoff) {
				expired = append(expired, sessionID)
				break
			}
		}
	}
	s.mu.Unlock()

	deleted := 0
	for _, sessionID := range expired {
		result := s.Cleanup(ctx, sessionID, "", preserveURLs)
		deleted += len(result.DeletedURLs)
	}
	return deleted
}
