package listview_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/John-Hatton/Inventory/listview"
	"github.com/John-Hatton/Inventory/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestItemList_EachSnapshotReplacesAllRows(t *testing.T) {
	list := listview.NewItemList(nil, zap.NewNop())
	ch := make(chan []model.Item)
	list.Bind(ch)

	ch <- []model.Item{
		{ID: 1, Name: "Lamp"},
		{ID: 2, Name: "Mug"},
	}
	ch <- []model.Item{
		{ID: 3, Name: "Chair"},
	}
	close(ch)
	list.Wait()

	rows := list.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Chair", rows[0].Item.Name)
}

func TestItemList_ClickRaisesRowEntity(t *testing.T) {
	list := listview.NewItemList(nil, zap.NewNop())
	var clicked []model.Item
	list.OnClick = func(it model.Item) { clicked = append(clicked, it) }

	ch := make(chan []model.Item, 1)
	ch <- []model.Item{{ID: 7, Name: "Bike"}}
	close(ch)
	list.Bind(ch)
	list.Wait()

	list.Click(0)
	list.Click(5)  // out of range, ignored
	list.Click(-1) // out of range, ignored

	require.Len(t, clicked, 1)
	assert.Equal(t, int64(7), clicked[0].ID)
}

func TestItemList_ClickWithoutHandlerIsNoOp(t *testing.T) {
	list := listview.NewItemList(nil, zap.NewNop())
	ch := make(chan []model.Item, 1)
	ch <- []model.Item{{ID: 1, Name: "Bike"}}
	close(ch)
	list.Bind(ch)
	list.Wait()

	assert.NotPanics(t, func() { list.Click(0) })
}

func TestItemList_Render(t *testing.T) {
	list := listview.NewItemList(nil, zap.NewNop())
	ch := make(chan []model.Item, 1)
	ch <- []model.Item{{ID: 1, Name: "Lamp", Category: "Office", Description: "desk lamp"}}
	close(ch)
	list.Bind(ch)
	list.Wait()

	var buf bytes.Buffer
	list.Render(&buf)
	out := buf.String()
	assert.True(t, strings.Contains(out, "Lamp"))
	assert.True(t, strings.Contains(out, "Office"))
}
