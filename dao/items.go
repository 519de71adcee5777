package dao

import (
	"context"
	"fmt"

	"github.com/John-Hatton/Inventory/cache"
	"github.com/John-Hatton/Inventory/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ItemsChannel carries one notification per committed item mutation.
const ItemsChannel = "items.changed"

// ItemDAO is the query/mutation interface bound to the items table.
// Every committed mutation publishes a change notification so the watch
// queries re-deliver automatically.
type ItemDAO struct {
	db     *gorm.DB
	ps     cache.PubSub
	logger *zap.Logger
}

// NewItemDAO creates an ItemDAO.
func NewItemDAO(db *gorm.DB, ps cache.PubSub, logger *zap.Logger) *ItemDAO {
	return &ItemDAO{db: db, ps: ps, logger: logger}
}

// Insert creates a new row. The item's ID is assigned by the database
// and written back into the struct.
func (d *ItemDAO) Insert(item *model.Item) error {
	if err := d.db.Create(item).Error; err != nil {
		return fmt.Errorf("dao: insert item: %w", err)
	}
	d.notify("insert")
	return nil
}

// Update inserts-or-replaces the row matching the item's ID.
func (d *ItemDAO) Update(item *model.Item) error {
	if err := d.db.Save(item).Error; err != nil {
		return fmt.Errorf("dao: update item: %w", err)
	}
	d.notify("update")
	return nil
}

// Delete removes the exact row for the given item.
func (d *ItemDAO) Delete(item *model.Item) error {
	if err := d.db.Delete(item).Error; err != nil {
		return fmt.Errorf("dao: delete item: %w", err)
	}
	d.notify("delete")
	return nil
}

// DeleteByID removes the row with the given identity. Deleting an absent
// ID is a no-op.
func (d *ItemDAO) DeleteByID(id int64) error {
	if err := d.db.Delete(&model.Item{}, id).Error; err != nil {
		return fmt.Errorf("dao: delete item %d: %w", id, err)
	}
	d.notify("delete")
	return nil
}

// All returns every item ordered by name ascending.
func (d *ItemDAO) All() ([]model.Item, error) {
	var items []model.Item
	if err := d.db.Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("dao: list items: %w", err)
	}
	return items, nil
}

// ByCategory returns the items whose category exactly equals the given
// string, ordered by name ascending.
func (d *ItemDAO) ByCategory(category string) ([]model.Item, error) {
	var items []model.Item
	if err := d.db.Where("category = ?", category).Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("dao: list items by category: %w", err)
	}
	return items, nil
}

// WatchAll returns a live query over All: the current snapshot is
// delivered on subscribe and a fresh one after every committed item
// mutation. The cancel function releases the subscription; cancelling
// the context does too.
func (d *ItemDAO) WatchAll(ctx context.Context) (<-chan []model.Item, func(), error) {
	return d.watch(ctx, d.All)
}

// WatchByCategory is WatchAll filtered by exact category match.
func (d *ItemDAO) WatchByCategory(ctx context.Context, category string) (<-chan []model.Item, func(), error) {
	return d.watch(ctx, func() ([]model.Item, error) {
		return d.ByCategory(category)
	})
}

func (d *ItemDAO) watch(ctx context.Context, query func() ([]model.Item, error)) (<-chan []model.Item, func(), error) {
	msgs, unsub, err := d.ps.Subscribe(ctx, ItemsChannel)
	if err != nil {
		return nil, nil, fmt.Errorf("dao: watch items: %w", err)
	}

	out := make(chan []model.Item, 1)
	go func() {
		defer close(out)
		emit := func() bool {
			snap, err := query()
			if err != nil {
				d.logger.Error("live query failed", zap.Error(err))
				return true
			}
			select {
			case out <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if !emit() {
			return
		}
		for {
			select {
			case _, ok := <-msgs:
				if !ok {
					return
				}
				if !emit() {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, unsub, nil
}

func (d *ItemDAO) notify(action string) {
	if err := d.ps.Publish(context.Background(), ItemsChannel, action); err != nil {
		d.logger.Warn("item change notification failed", zap.Error(err))
	}
}
