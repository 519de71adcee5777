package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/John-Hatton/Inventory/api/rest"
	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/repository"
	"github.com/John-Hatton/Inventory/testutil"
	"github.com/John-Hatton/Inventory/viewmodel"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func newCategoryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	_, ps := testutil.SetupTestCache(t)
	queue := testutil.SetupTestQueue(t)
	repo := repository.NewCategoryRepository(db, ps, queue, zap.NewNop())
	vm := viewmodel.NewCategoryViewModel(repo)
	t.Cleanup(vm.Close)

	h := rest.NewCategoryHandler(vm, nil, zap.NewNop())
	r := gin.New()
	r.GET("/api/categories", h.List)
	r.POST("/api/categories", h.Create)
	r.DELETE("/api/categories/:id", h.Delete)
	return r
}

func postCategory(r *gin.Engine, name string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories",
		strings.NewReader(`{"name":"`+name+`"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func listCategories(t *testing.T, r *gin.Engine) []model.Category {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Categories []model.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Categories
}

func TestCategories_CreateAndList(t *testing.T) {
	r := newCategoryRouter(t)

	require.Equal(t, http.StatusCreated, postCategory(r, "Tools").Code)
	require.Equal(t, http.StatusCreated, postCategory(r, "Books").Code)

	cats := listCategories(t, r)
	require.Len(t, cats, 2)
	assert.Equal(t, "Books", cats[0].Name)
}

func TestCategories_DuplicateNameConflicts(t *testing.T) {
	r := newCategoryRouter(t)

	require.Equal(t, http.StatusCreated, postCategory(r, "Tools").Code)
	assert.Equal(t, http.StatusConflict, postCategory(r, "Tools").Code)
}

func TestCategories_CreateRequiresName(t *testing.T) {
	r := newCategoryRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategories_Delete(t *testing.T) {
	r := newCategoryRouter(t)
	require.Equal(t, http.StatusCreated, postCategory(r, "Garden").Code)
	id := listCategories(t, r)[0].ID

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/categories/"+itoa(id), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listCategories(t, r))
}
