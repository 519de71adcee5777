package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/John-Hatton/Inventory/cache"
	"github.com/John-Hatton/Inventory/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoriesChannel carries one notification per committed category mutation.
const CategoriesChannel = "categories.changed"

// ErrDuplicateCategory is returned when inserting a category whose name
// already exists.
var ErrDuplicateCategory = errors.New("dao: category name already exists")

// CategoryDAO is the query/mutation interface bound to the categories
// table. Categories have no update operation.
type CategoryDAO struct {
	db     *gorm.DB
	ps     cache.PubSub
	logger *zap.Logger
}

// NewCategoryDAO creates a CategoryDAO.
func NewCategoryDAO(db *gorm.DB, ps cache.PubSub, logger *zap.Logger) *CategoryDAO {
	return &CategoryDAO{db: db, ps: ps, logger: logger}
}

// Insert creates a new category. Names are unique; a collision returns
// ErrDuplicateCategory.
func (d *CategoryDAO) Insert(cat *model.Category) error {
	if err := d.db.Create(cat).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("dao: insert category: %w", err)
	}
	d.notify("insert")
	return nil
}

// Delete removes the exact row for the given category.
func (d *CategoryDAO) Delete(cat *model.Category) error {
	if err := d.db.Delete(cat).Error; err != nil {
		return fmt.Errorf("dao: delete category: %w", err)
	}
	d.notify("delete")
	return nil
}

// DeleteByID removes the category with the given identity. Deleting an
// absent ID is a no-op.
func (d *CategoryDAO) DeleteByID(id int64) error {
	if err := d.db.Delete(&model.Category{}, id).Error; err != nil {
		return fmt.Errorf("dao: delete category %d: %w", id, err)
	}
	d.notify("delete")
	return nil
}

// All returns every category ordered by name ascending.
func (d *CategoryDAO) All() ([]model.Category, error) {
	var cats []model.Category
	if err := d.db.Order("name ASC").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("dao: list categories: %w", err)
	}
	return cats, nil
}

// WatchAll returns a live query over All, re-delivering after every
// committed category mutation.
func (d *CategoryDAO) WatchAll(ctx context.Context) (<-chan []model.Category, func(), error) {
	msgs, unsub, err := d.ps.Subscribe(ctx, CategoriesChannel)
	if err != nil {
		return nil, nil, fmt.Errorf("dao: watch categories: %w", err)
	}

	out := make(chan []model.Category, 1)
	go func() {
		defer close(out)
		emit := func() bool {
			snap, err := d.All()
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

func (d *CategoryDAO) notify(action string) {
	if err := d.ps.Publish(context.Background(), CategoriesChannel, action); err != nil {
		d.logger.Warn("category change notification failed", zap.Error(err))
	}
}

// isUniqueViolation detects duplicate-key errors from common database drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "already exists")
}
