package repository

import (
	"context"

	"github.com/John-Hatton/Inventory/model"
)

// ItemStore is the data-access surface ItemRepository depends on.
// dao.ItemDAO satisfies it; tests substitute a recording fake.
type ItemStore interface {
	Insert(item *model.Item) error
	Update(item *model.Item) error
	Delete(item *model.Item) error
	DeleteByID(id int64) error
	All() ([]model.Item, error)
	ByCategory(category string) ([]model.Item, error)
	WatchAll(ctx context.Context) (<-chan []model.Item, func(), error)
	WatchByCategory(ctx context.Context, category string) (<-chan []model.Item, func(), error)
}

// CategoryStore is the data-access surface CategoryRepository depends on.
type CategoryStore interface {
	Insert(cat *model.Category) error
	Delete(cat *model.Category) error
	DeleteByID(id int64) error
	All() ([]model.Category, error)
	WatchAll(ctx context.Context) (<-chan []model.Category, func(), error)
}
