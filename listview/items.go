package listview

import (
	"fmt"
	"io"
	"sync"

	"github.com/John-Hatton/Inventory/media"
	"github.com/John-Hatton/Inventory/model"
	"go.uber.org/zap"
)

// ItemRow is one rendered list entry.
type ItemRow struct {
	Item  model.Item
	Thumb []byte // JPEG thumbnail, nil when the item has no image
}

// ItemList binds a live item query to a renderable row list. Every
// snapshot emission replaces the whole row set; there is no diffing.
// OnClick is a single-slot callback: the one owner interested in row
// activation sets it before Bind.
type ItemList struct {
	mu   sync.RWMutex
	rows []ItemRow

	OnClick func(model.Item)

	thumbs *media.Store
	logger *zap.Logger
	done   chan struct{}
}

// NewItemList creates an unbound ItemList. thumbs may be nil to skip
// thumbnail loading.
func NewItemList(thumbs *media.Store, logger *zap.Logger) *ItemList {
	return &ItemList{thumbs: thumbs, logger: logger, done: make(chan struct{})}
}

// Bind consumes snapshots from ch until it closes. It returns
// immediately; rebuilding happens on a background goroutine.
func (l *ItemList) Bind(ch <-chan []model.Item) {
	go func() {
		defer close(l.done)
		for snap := range ch {
			l.rebuild(snap)
		}
	}()
}

// Wait blocks until the bound channel has closed.
func (l *ItemList) Wait() {
	<-l.done
}

func (l *ItemList) rebuild(snap []model.Item) {
	rows := make([]ItemRow, len(snap))
	for i, it := range snap {
		rows[i] = ItemRow{Item: it}
		if l.thumbs != nil && it.ImagePath != "" {
			thumb, err := l.thumbs.Thumbnail(it.ImagePath)
			if err != nil {
				l.logger.Warn("thumbnail load failed",
					zap.String("path", it.ImagePath), zap.Error(err))
				continue
			}
			rows[i].Thumb = thumb
		}
	}
	l.mu.Lock()
	l.rows = rows
	l.mu.Unlock()
}

// Rows returns the current row snapshot.
func (l *ItemList) Rows() []ItemRow {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ItemRow, len(l.rows))
	copy(out, l.rows)
	return out
}

// Click raises the row's entity to the OnClick slot, if set.
func (l *ItemList) Click(index int) {
	l.mu.RLock()
	var item *model.Item
	if index >= 0 && index < len(l.rows) {
		it := l.rows[index].Item
		item = &it
	}
	cb := l.OnClick
	l.mu.RUnlock()
	if item != nil && cb != nil {
		cb(*item)
	}
}

// Render writes a plain-text rendering of every row.
func (l *ItemList) Render(w io.Writer) {
	for _, row := range l.Rows() {
		marker := " "
		if row.Thumb != nil {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d\t%s\t%s\t%s\n",
			marker, row.Item.ID, row.Item.Name, row.Item.Category, row.Item.Description)
	}
}
