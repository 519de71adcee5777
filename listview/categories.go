package listview

import (
	"fmt"
	"io"
	"sync"

	"github.com/John-Hatton/Inventory/model"
)

// CategoryList binds a live category query to a renderable row list.
// Alongside OnClick it exposes an OnDelete slot for the per-row delete
// affordance.
type CategoryList struct {
	mu   sync.RWMutex
	rows []model.Category

	OnClick  func(model.Category)
	OnDelete func(model.Category)

	done chan struct{}
}

// NewCategoryList creates an unbound CategoryList.
func NewCategoryList() *CategoryList {
	return &CategoryList{done: make(chan struct{})}
}

// Bind consumes snapshots from ch until it closes.
func (l *CategoryList) Bind(ch <-chan []model.Category) {
	go func() {
		defer close(l.done)
		for snap := range ch {
			l.mu.Lock()
			l.rows = append([]model.Category(nil), snap...)
			l.mu.Unlock()
		}
	}()
}

// Wait blocks until the bound channel has closed.
func (l *CategoryList) Wait() {
	<-l.done
}

// Rows returns the current row snapshot.
func (l *CategoryList) Rows() []model.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Category, len(l.rows))
	copy(out, l.rows)
	return out
}

// Click raises the row's entity to the OnClick slot, if set.
func (l *CategoryList) Click(index int) {
	l.raise(index, l.OnClick)
}

// Delete raises the row's entity to the OnDelete slot, if set.
func (l *CategoryList) Delete(index int) {
	l.raise(index, l.OnDelete)
}

func (l *CategoryList) raise(index int, cb func(model.Category)) {
	l.mu.RLock()
	var cat *model.Category
	if index >= 0 && index < len(l.rows) {
		c := l.rows[index]
		cat = &c
	}
	l.mu.RUnlock()
	if cat != nil && cb != nil {
		cb(*cat)
	}
}

// Render writes a plain-text rendering of every row.
func (l *CategoryList) Render(w io.Writer) {
	for _, row := range l.Rows() {
		fmt.Fprintf(w, "%d\t%s\n", row.ID, row.Name)
	}
}
