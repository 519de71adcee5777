package viewmodel_test

import (
	"testing"

	"github.com/John-Hatton/Inventory/dao"
	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/repository"
	"github.com/John-Hatton/Inventory/testutil"
	"github.com/John-Hatton/Inventory/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCategoryVM(t *testing.T) *viewmodel.CategoryViewModel {
	t.Helper()
	db := testutil.SetupTestDB(t)
	_, ps := testutil.SetupTestCache(t)
	queue := testutil.SetupTestQueue(t)
	repo := repository.NewCategoryRepository(db, ps, queue, zap.NewNop())
	vm := viewmodel.NewCategoryViewModel(repo)
	t.Cleanup(vm.Close)
	return vm
}

func TestCategoryViewModel_InsertAndList(t *testing.T) {
	vm := setupCategoryVM(t)

	require.NoError(t, waitErr(t, vm.Insert(&model.Category{Name: "Tools"})))
	require.NoError(t, waitErr(t, vm.Insert(&model.Category{Name: "Books"})))

	all, err := vm.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Books", all[0].Name)
	assert.Equal(t, "Tools", all[1].Name)
}

func TestCategoryViewModel_DuplicateNameRejected(t *testing.T) {
	vm := setupCategoryVM(t)

	require.NoError(t, waitErr(t, vm.Insert(&model.Category{Name: "Tools"})))
	err := waitErr(t, vm.Insert(&model.Category{Name: "Tools"}))
	assert.ErrorIs(t, err, dao.ErrDuplicateCategory)
}

func TestCategoryViewModel_DeleteByID(t *testing.T) {
	vm := setupCategoryVM(t)

	require.NoError(t, waitErr(t, vm.Insert(&model.Category{Name: "Garden"})))
	all, err := vm.All()
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, waitErr(t, vm.DeleteByID(all[0].ID)))
	all, err = vm.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}
