package repository_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/repository"
	"github.com/John-Hatton/Inventory/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingItemStore counts mutation calls so tests can prove they ran
// on the queue's goroutine, not the caller's.
type recordingItemStore struct {
	inserts atomic.Int32
	updates atomic.Int32
	deletes atomic.Int32
	all     []model.Item
}

func (s *recordingItemStore) Insert(item *model.Item) error  { s.inserts.Add(1); return nil }
func (s *recordingItemStore) Update(item *model.Item) error  { s.updates.Add(1); return nil }
func (s *recordingItemStore) Delete(item *model.Item) error  { s.deletes.Add(1); return nil }
func (s *recordingItemStore) DeleteByID(id int64) error      { s.deletes.Add(1); return nil }
func (s *recordingItemStore) All() ([]model.Item, error)     { return s.all, nil }
func (s *recordingItemStore) ByCategory(category string) ([]model.Item, error) {
	var out []model.Item
	for _, it := range s.all {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}
func (s *recordingItemStore) WatchAll(ctx context.Context) (<-chan []model.Item, func(), error) {
	ch := make(chan []model.Item, 1)
	ch <- s.all
	return ch, func() { close(ch) }, nil
}
func (s *recordingItemStore) WatchByCategory(ctx context.Context, category string) (<-chan []model.Item, func(), error) {
	return s.WatchAll(ctx)
}

func TestItemRepository_MutationsNeverRunOnCallerGoroutine(t *testing.T) {
	store := &recordingItemStore{}
	queue := testutil.SetupTestQueue(t)
	repo := repository.NewItemRepositoryWith(store, queue)

	// Hold the single worker busy so nothing can run during the Insert call.
	gate := make(chan struct{})
	queue.Submit(func() error { <-gate; return nil })

	done := repo.Insert(&model.Item{Name: "Queued"})

	// The call has returned; the store must not have been touched yet.
	assert.Equal(t, int32(0), store.inserts.Load())

	close(gate)
	require.NoError(t, wait(t, done))
	assert.Equal(t, int32(1), store.inserts.Load())
}

func TestItemRepository_EachMutationSubmittedOnce(t *testing.T) {
	store := &recordingItemStore{}
	queue := testutil.SetupTestQueue(t)
	repo := repository.NewItemRepositoryWith(store, queue)

	require.NoError(t, wait(t, repo.Insert(&model.Item{Name: "A"})))
	require.NoError(t, wait(t, repo.Update(&model.Item{ID: 1, Name: "B"})))
	require.NoError(t, wait(t, repo.Delete(&model.Item{ID: 1})))
	require.NoError(t, wait(t, repo.DeleteByID(2)))

	assert.Equal(t, int32(1), store.inserts.Load())
	assert.Equal(t, int32(1), store.updates.Load())
	assert.Equal(t, int32(2), store.deletes.Load())
}

func TestItemRepository_ReadsPassThrough(t *testing.T) {
	store := &recordingItemStore{all: []model.Item{
		{ID: 1, Name: "Lamp", Category: "Office"},
		{ID: 2, Name: "Mug", Category: "Kitchen"},
	}}
	repo := repository.NewItemRepositoryWith(store, testutil.SetupTestQueue(t))

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	kitchen, err := repo.ByCategory("Kitchen")
	require.NoError(t, err)
	require.Len(t, kitchen, 1)
	assert.Equal(t, "Mug", kitchen[0].Name)

	snaps, cancel, err := repo.WatchAll(context.Background())
	require.NoError(t, err)
	defer cancel()
	snap := <-snaps
	assert.Len(t, snap, 2)
}

func TestItemRepository_EndToEndWithDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, ps := testutil.SetupTestCache(t)
	queue := testutil.SetupTestQueue(t)
	repo := repository.NewItemRepository(db, ps, queue, zaptestLogger())

	require.NoError(t, wait(t, repo.Insert(&model.Item{Name: "Couch", Category: "Furniture"})))

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Couch", all[0].Name)
}

func wait(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mutation result")
		return nil
	}
}
