package app

import (
	"context"
	"errors"

	"analogygen/internal/model"
)

var ErrEntryNotFound = errors.New("entry not found or unauthorized")

// HistoryLister is the slice of the history repository serving reads and
// owner-scoped deletes.
type HistoryLister interface {
	ListByOwner(email string) ([]model.HistoryEntry, error)
	DeleteByIDAndOwner(id, email string) (int64, error)
}

// HistoryCache caches a user's full history list, with a short-lived dirty
// marker suppressing cache fills right after a write.
type HistoryCache interface {
	GetHistory(ctx context.Context, email string) ([]model.HistoryEntry, bool, error)
	SetHistory(ctx context.Context, email string, entries []model.HistoryEntry) error
	DeleteHistory(ctx context.Context, email string) error
	MarkDirty(ctx context.Context, email string) error
	IsDirty(ctx context.Context, email string) (bool, error)
}

type HistoryService struct {
	repo  HistoryLister
	cache HistoryCache
}

func NewHistoryService(repo HistoryLister, cache HistoryCache) *HistoryService {
	return &HistoryService{repo: repo, cache: cache}
}

// List returns the user's history newest first, served from cache when fresh.
func (s *HistoryService) List(ctx context.Context, email string) ([]model.HistoryEntry, error) {
	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, email)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetHistory(ctx, email); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	entries, err := s.repo.ListByOwner(email)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx, email); dirtyErr == nil && !dirty {
			_ = s.cache.SetHistory(ctx, email, entries)
		}
	}
	return entries, nil
}

// Delete removes the entry only when it exists and belongs to email. A
// missing entry and someone else's entry both report ErrEntryNotFound.
func (s *HistoryService) Delete(ctx context.Context, email, id string) error {
	affected, err := s.repo.DeleteByIDAndOwner(id, email)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	if s.cache != nil {
		_ = s.cache.MarkDirty(ctx, email)
		_ = s.cache.DeleteHistory(ctx, email)
	}
	return nil
}
