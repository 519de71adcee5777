package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/John-Hatton/Inventory/dao"
	"github.com/John-Hatton/Inventory/history"
	mw "github.com/John-Hatton/Inventory/middleware"
	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/viewmodel"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CategoryHandler exposes the category screens over HTTP.
type CategoryHandler struct {
	vm      *viewmodel.CategoryViewModel
	history *history.Service
	logger  *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler. hist may be nil in tests.
func NewCategoryHandler(vm *viewmodel.CategoryViewModel, hist *history.Service, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{vm: vm, history: hist, logger: logger}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.vm.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

type categoryCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	cat := &model.Category{Name: name}
	if err := <-h.vm.Insert(cat); err != nil {
		if errors.Is(err, dao.ErrDuplicateCategory) {
			c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		}
		return
	}
	h.record(c, "insert", cat)
	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

// Delete handles DELETE /api/categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := <-h.vm.DeleteByID(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	h.record(c, "delete", &model.Category{ID: id})
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *CategoryHandler) record(c *gin.Context, action string, cat *model.Category) {
	if h.history == nil {
		return
	}
	h.history.Record(history.Entry{
		TraceID:  mw.GetTraceID(c),
		Entity:   "category",
		EntityID: cat.ID,
		Action:   action,
		Payload:  cat,
	})
}
