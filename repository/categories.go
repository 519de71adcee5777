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

// CategoryRepository mediates between the view models and the
// categories table. Same contract as ItemRepository: queued mutations,
// pass-through live reads.
type CategoryRepository struct {
	store CategoryStore
	queue *worker.Queue
}

// NewCategoryRepository is the production constructor.
func NewCategoryRepository(db *gorm.DB, ps cache.PubSub, queue *worker.Queue, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{store: dao.NewCategoryDAO(db, ps, logger), queue: queue}
}

// NewCategoryRepositoryWith injects an explicit store and queue. Used by tests.
func NewCategoryRepositoryWith(store CategoryStore, queue *worker.Queue) *CategoryRepository {
	return &CategoryRepository{store: store, queue: queue}
}

// Insert schedules an insert on the background queue.
func (r *CategoryRepository) Insert(cat *model.Category) <-chan error {
	return r.queue.Submit(func() error { return r.store.Insert(cat) })
}

// Delete schedules a delete on the background queue.
func (r *CategoryRepository) Delete(cat *model.Category) <-chan error {
	return r.queue.Submit(func() error { return r.store.Delete(cat) })
}

// DeleteByID schedules a delete-by-identity on the background queue.
func (r *CategoryRepository) DeleteByID(id int64) <-chan error {
	return r.queue.Submit(func() error { return r.store.DeleteByID(id) })
}

// All returns the current snapshot, name ascending.
func (r *CategoryRepository) All() ([]model.Category, error) {
	return r.store.All()
}

// WatchAll passes the DAO's live query through unchanged.
func (r *CategoryRepository) WatchAll(ctx context.Context) (<-chan []model.Category, func(), error) {
	return r.store.WatchAll(ctx)
}
