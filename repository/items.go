package repository

import (
	"context"

	"github.com/John-Hatton/Inventory/cache"
	"github.com/John-Hatton/Inventory/dao"
	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/worker"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ItemRepository mediates between the view models and the items table.
// Mutations run on the background queue in submission order; the caller
// gets back a result channel it is free to ignore. Reads pass through
// to the DAO's live queries untouched.
type ItemRepository struct {
	store ItemStore
	queue *worker.Queue
}

// NewItemRepository is the production constructor: it binds to the
// shared database handle and change bus.
func NewItemRepository(db *gorm.DB, ps cache.PubSub, queue *worker.Queue, logger *zap.Logger) *ItemRepository {
	return &ItemRepository{store: dao.NewItemDAO(db, ps, logger), queue: queue}
}

// NewItemRepositoryWith injects an explicit store and queue. Used by tests.
func NewItemRepositoryWith(store ItemStore, queue *worker.Queue) *ItemRepository {
	return &ItemRepository{store: store, queue: queue}
}

// Insert schedules an insert on the background queue.
func (r *ItemRepository) Insert(item *model.Item) <-chan error {
	return r.queue.Submit(func() error { return r.store.Insert(item) })
}

// Update schedules an insert-or-replace on the background queue.
func (r *ItemRepository) Update(item *model.Item) <-chan error {
	return r.queue.Submit(func() error { return r.store.Update(item) })
}

// Delete schedules a delete on the background queue.
func (r *ItemRepository) Delete(item *model.Item) <-chan error {
	return r.queue.Submit(func() error { return r.store.Delete(item) })
}

// DeleteByID schedules a delete-by-identity on the background queue.
func (r *ItemRepository) DeleteByID(id int64) <-chan error {
	return r.queue.Submit(func() error { return r.store.DeleteByID(id) })
}

// All returns the current snapshot, name ascending.
func (r *ItemRepository) All() ([]model.Item, error) {
	return r.store.All()
}

// ByCategory returns the current snapshot filtered by exact category.
func (r *ItemRepository) ByCategory(category string) ([]model.Item, error) {
	return r.store.ByCategory(category)
}

// WatchAll passes the DAO's live query through unchanged.
func (r *ItemRepository) WatchAll(ctx context.Context) (<-chan []model.Item, func(), error) {
	return r.store.WatchAll(ctx)
}

// WatchByCategory passes the DAO's filtered live query through unchanged.
func (r *ItemRepository) WatchByCategory(ctx context.Context, category string) (<-chan []model.Item, func(), error) {
	return r.store.WatchByCategory(ctx, category)
}
