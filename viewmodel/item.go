package viewmodel

import (
	"context"

	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/repository"
)

// ItemViewModel is the item screen family's façade over the repository.
// It owns a context that scopes every subscription it hands out; Close
// tears them all down when the owning screen goes away. Beyond that it
// is pure delegation.
type ItemViewModel struct {
	repo   *repository.ItemRepository
	ctx    context.Context
	cancel context.CancelFunc
}

// NewItemViewModel creates a view model scoped to its own lifecycle.
func NewItemViewModel(repo *repository.ItemRepository) *ItemViewModel {
	ctx, cancel := context.WithCancel(context.Background())
	return &ItemViewModel{repo: repo, ctx: ctx, cancel: cancel}
}

// Close releases every subscription created through this view model.
func (vm *ItemViewModel) Close() {
	vm.cancel()
}

// All returns the current item snapshot.
func (vm *ItemViewModel) All() ([]model.Item, error) {
	return vm.repo.All()
}

// ByCategory returns the current snapshot for one category.
func (vm *ItemViewModel) ByCategory(category string) ([]model.Item, error) {
	return vm.repo.ByCategory(category)
}

// WatchAll subscribes to the full item list for this view model's lifetime.
func (vm *ItemViewModel) WatchAll() (<-chan []model.Item, func(), error) {
	return vm.repo.WatchAll(vm.ctx)
}

// WatchByCategory subscribes to one category's items for this view
// model's lifetime.
func (vm *ItemViewModel) WatchByCategory(category string) (<-chan []model.Item, func(), error) {
	return vm.repo.WatchByCategory(vm.ctx, category)
}

// Insert forwards to the repository.
func (vm *ItemViewModel) Insert(item *model.Item) <-chan error {
	return vm.repo.Insert(item)
}

// Update forwards to the repository.
func (vm *ItemViewModel) Update(item *model.Item) <-chan error {
	return vm.repo.Update(item)
}

// Delete forwards to the repository.
func (vm *ItemViewModel) Delete(item *model.Item) <-chan error {
	return vm.repo.Delete(item)
}

// DeleteByID forwards to the repository.
func (vm *ItemViewModel) DeleteByID(id int64) <-chan error {
	return vm.repo.DeleteByID(id)
}
