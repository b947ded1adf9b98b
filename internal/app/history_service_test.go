package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"analogygen/internal/model"
)

type fakeHistoryLister struct {
	entries []model.HistoryEntry
}

func (f *fakeHistoryLister) ListByOwner(email string) ([]model.HistoryEntry, error) {
	var out []model.HistoryEntry
	for _, entry := range f.entries {
		if entry.OwnerEmail == email {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeHistoryLister) DeleteByIDAndOwner(id, email string) (int64, error) {
	for i, entry := range f.entries {
		if entry.ID == id && entry.OwnerEmail == email {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeHistoryCache struct {
	stored map[string][]model.HistoryEntry
	dirty  map[string]bool
}

func newFakeHistoryCache() *fakeHistoryCache {
	return &fakeHistoryCache{
		stored: map[string][]model.HistoryEntry{},
		dirty:  map[string]bool{},
	}
}

func (f *fakeHistoryCache) GetHistory(ctx context.Context, email string) ([]model.HistoryEntry, bool, error) {
	entries, ok := f.stored[email]
	return entries, ok, nil
}

func (f *fakeHistoryCache) SetHistory(ctx context.Context, email string, entries []model.HistoryEntry) error {
	f.stored[email] = entries
	return nil
}

func (f *fakeHistoryCache) DeleteHistory(ctx context.Context, email string) error {
	delete(f.stored, email)
	return nil
}

func (f *fakeHistoryCache) MarkDirty(ctx context.Context, email string) error {
	f.dirty[email] = true
	return nil
}

func (f *fakeHistoryCache) IsDirty(ctx context.Context, email string) (bool, error) {
	return f.dirty[email], nil
}

func sampleEntries() []model.HistoryEntry {
	return []model.HistoryEntry{
		{ID: "id-2", OwnerEmail: "a@x.com", Concept: "goroutines", CreatedAt: time.Now()},
		{ID: "id-1", OwnerEmail: "a@x.com", Concept: "recursion", CreatedAt: time.Now().Add(-time.Hour)},
		{ID: "id-3", OwnerEmail: "b@x.com", Concept: "channels", CreatedAt: time.Now()},
	}
}

func TestHistoryList(t *testing.T) {
	t.Parallel()

	repo := &fakeHistoryLister{entries: sampleEntries()}
	cache := newFakeHistoryCache()
	svc := NewHistoryService(repo, cache)

	entries, err := svc.List(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Fill happened, second read comes from cache.
	require.Contains(t, cache.stored, "a@x.com")
	repo.entries = nil
	cached, err := svc.List(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, cached, 2)
}

func TestHistoryListSkipsDirtyCache(t *testing.T) {
	t.Parallel()

	repo := &fakeHistoryLister{entries: sampleEntries()}
	cache := newFakeHistoryCache()
	cache.stored["a@x.com"] = []model.HistoryEntry{{ID: "stale"}}
	cache.dirty["a@x.com"] = true
	svc := NewHistoryService(repo, cache)

	entries, err := svc.List(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotEqual(t, "stale", entries[0].ID)
}

func TestHistoryDelete(t *testing.T) {
	t.Parallel()

	repo := &fakeHistoryLister{entries: sampleEntries()}
	cache := newFakeHistoryCache()
	cache.stored["a@x.com"] = []model.HistoryEntry{{ID: "stale"}}
	svc := NewHistoryService(repo, cache)

	require.NoError(t, svc.Delete(context.Background(), "a@x.com", "id-1"))
	require.Len(t, repo.entries, 2)
	require.NotContains(t, cache.stored, "a@x.com")
	require.True(t, cache.dirty["a@x.com"])
}

func TestHistoryDeleteWrongOwner(t *testing.T) {
	t.Parallel()

	repo := &fakeHistoryLister{entries: sampleEntries()}
	svc := NewHistoryService(repo, nil)

	err := svc.Delete(context.Background(), "intruder@x.com", "id-1")
	require.ErrorIs(t, err, ErrEntryNotFound)
	// The entry stays in the store.
	require.Len(t, repo.entries, 3)
}

func TestHistoryDeleteMissingID(t *testing.T) {
	t.Parallel()

	repo := &fakeHistoryLister{entries: sampleEntries()}
	svc := NewHistoryService(repo, nil)

	missingErr := svc.Delete(context.Background(), "a@x.com", "no-such-id")
	wrongOwnerErr := svc.Delete(context.Background(), "b@x.com", "id-1")
	require.ErrorIs(t, missingErr, ErrEntryNotFound)
	require.ErrorIs(t, wrongOwnerErr, ErrEntryNotFound)
	require.Equal(t, missingErr.Error(), wrongOwnerErr.Error())
}
