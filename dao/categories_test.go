package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/John-Hatton/Inventory/dao"
	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCategoryDAO(t *testing.T) *dao.CategoryDAO {
	t.Helper()
	db := testutil.SetupTestDB(t)
	_, ps := testutil.SetupTestCache(t)
	return dao.NewCategoryDAO(db, ps, zap.NewNop())
}

func TestCategoryDAO_InsertAndAll_NameAscending(t *testing.T) {
	d := newCategoryDAO(t)

	require.NoError(t, d.Insert(&model.Category{Name: "Tools"}))
	require.NoError(t, d.Insert(&model.Category{Name: "Books"}))

	all, err := d.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Books", all[0].Name)
	assert.Equal(t, "Tools", all[1].Name)
}

func TestCategoryDAO_Insert_DuplicateName(t *testing.T) {
	d := newCategoryDAO(t)

	require.NoError(t, d.Insert(&model.Category{Name: "Garage"}))
	err := d.Insert(&model.Category{Name: "Garage"})
	assert.ErrorIs(t, err, dao.ErrDuplicateCategory)
}

func TestCategoryDAO_DeleteAndDeleteByID(t *testing.T) {
	d := newCategoryDAO(t)

	cat := &model.Category{Name: "Garden"}
	require.NoError(t, d.Insert(cat))
	require.NoError(t, d.Delete(cat))

	all, err := d.All()
	require.NoError(t, err)
	assert.Empty(t, all)

	// Absent ID is a no-op.
	require.NoError(t, d.DeleteByID(12345))
}

func TestCategoryDAO_WatchAll_RedeliversOnChange(t *testing.T) {
	d := newCategoryDAO(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snaps, unsub, err := d.WatchAll(ctx)
	require.NoError(t, err)
	defer unsub()

	assert.Empty(t, nextCategorySnapshot(t, snaps))

	require.NoError(t, d.Insert(&model.Category{Name: "Office"}))
	snap := nextCategorySnapshot(t, snaps)
	require.Len(t, snap, 1)
	assert.Equal(t, "Office", snap[0].Name)
}

func nextCategorySnapshot(t *testing.T, ch <-chan []model.Category) []model.Category {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "snapshot channel closed early")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}
