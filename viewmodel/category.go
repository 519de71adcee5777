package viewmodel

import (
	"context"

	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/repository"
)

// CategoryViewModel is the category screen family's façade over the
// repository. Same lifecycle contract as ItemViewModel.
type CategoryViewModel struct {
	repo   *repository.CategoryRepository
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCategoryViewModel creates a view model scoped to its own lifecycle.
func NewCategoryViewModel(repo *repository.CategoryRepository) *CategoryViewModel {
	ctx, cancel := context.WithCancel(context.Background())
	return &CategoryViewModel{repo: repo, ctx: ctx, cancel: cancel}
}

// Close releases every subscription created through this view model.
func (vm *CategoryViewModel) Close() {
	vm.cancel()
}

// All returns the current category snapshot.
func (vm *CategoryViewModel) All() ([]model.Category, error) {
	return vm.repo.All()
}

// WatchAll subscribes to the category list for this view model's lifetime.
func (vm *CategoryViewModel) WatchAll() (<-chan []model.Category, func(), error) {
	return vm.repo.WatchAll(vm.ctx)
}

// Insert forwards to the repository.
func (vm *CategoryViewModel) Insert(cat *model.Category) <-chan error {
	return vm.repo.Insert(cat)
}

// Delete forwards to the repository.
func (vm *CategoryViewModel) Delete(cat *model.Category) <-chan error {
	return vm.repo.Delete(cat)
}

// DeleteByID forwards to the repository.
func (vm *CategoryViewModel) DeleteByID(id int64) <-chan error {
	return vm.repo.DeleteByID(id)
}
