package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/John-Hatton/Inventory/history"
	"github.com/John-Hatton/Inventory/media"
	mw "github.com/John-Hatton/Inventory/middleware"
	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/viewmodel"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItemHandler exposes the item screens over HTTP.
type ItemHandler struct {
	vm      *viewmodel.ItemViewModel
	media   *media.Store
	history *history.Service
	logger  *zap.Logger
}

// NewItemHandler creates a new ItemHandler. media and hist may be nil in tests.
func NewItemHandler(vm *viewmodel.ItemViewModel, m *media.Store, hist *history.Service, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{vm: vm, media: m, history: hist, logger: logger}
}

// List handles GET /api/items[?category=...].
func (h *ItemHandler) List(c *gin.Context) {
	var (
		items []model.Item
		err   error
	)
	if cat := c.Query("category"); cat != "" {
		items, err = h.vm.ByCategory(cat)
	} else {
		items, err = h.vm.All()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create handles POST /api/items. The body is a multipart form with
// name, description, category, and an optional image file.
func (h *ItemHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	item := &model.Item{
		Name:        name,
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	}

	if file, err := c.FormFile("image"); err == nil && h.media != nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image"})
			return
		}
		defer src.Close()
		path, err := h.media.Save(src)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item.ImagePath = path
	}

	if err := <-h.vm.Insert(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	h.record(c, "insert", item)
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

type itemUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImagePath   string `json:"image_path"`
}

// Update handles PUT /api/items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req itemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &model.Item{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImagePath:   req.ImagePath,
	}
	if err := <-h.vm.Update(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	h.record(c, "update", item)
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Delete handles DELETE /api/items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := <-h.vm.DeleteByID(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	h.record(c, "delete", &model.Item{ID: id})
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// Image handles GET /api/items/:id/image[?thumb=1].
func (h *ItemHandler) Image(c *gin.Context) {
	if h.media == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media disabled"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	items, err := h.vm.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	var path string
	for _, it := range items {
		if it.ID == id {
			path = it.ImagePath
			break
		}
	}
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no image"})
		return
	}

	if c.Query("thumb") != "" {
		thumb, err := h.media.Thumbnail(path)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "image unreadable"})
			return
		}
		c.Data(http.StatusOK, "image/jpeg", thumb)
		return
	}
	f, err := h.media.Open(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image unreadable"})
		return
	}
	defer f.Close()
	c.File(f.Name())
}

func (h *ItemHandler) record(c *gin.Context, action string, item *model.Item) {
	if h.history == nil {
		return
	}
	h.history.Record(history.Entry{
		TraceID:  mw.GetTraceID(c),
		Entity:   "item",
		EntityID: item.ID,
		Action:   action,
		Payload:  item,
	})
}
