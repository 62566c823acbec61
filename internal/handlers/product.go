package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techplug_back_end/internal/models"
	"techplug_back_end/internal/services"
)

// GetProducts lists the catalog. Optional filters: type, brand, condition, category.
func (h *Handler) GetProducts(c *gin.Context) {
	products := h.Store.ListProducts()

	filters := map[string]func(models.Product) string{
		"type":      func(p models.Product) string { return string(p.Type) },
		"brand":     func(p models.Product) string { return string(p.Brand) },
		"condition": func(p models.Product) string { return string(p.Condition) },
		"category":  func(p models.Product) string { return p.Category },
	}
	for param, field := range filters {
		want := c.Query(param)
		if want == "" {
			continue
		}
		kept := products[:0]
		for _, p := range products {
			if strings.EqualFold(field(p), want) {
				kept = append(kept, p)
			}
		}
		products = kept
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.Store.Product(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SearchProducts asks Elasticsearch first and falls back to an in-memory match
// when there is no index or it fails.
func (h *Handler) SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	products := h.Store.ListProducts()
	if query == "" {
		c.JSON(http.StatusOK, products)
		return
	}

	if h.Search != nil {
		ids, err := h.Search.Search(c.Request.Context(), query)
		if err == nil {
			byID := make(map[string]models.Product, len(products))
			for _, p := range products {
				byID[p.ID] = p
			}
			results := make([]models.Product, 0, len(ids))
			for _, id := range ids {
				if p, ok := byID[id]; ok {
					results = append(results, p)
				}
			}
			c.JSON(http.StatusOK, results)
			return
		}
		h.Logger.Warn("search index unavailable, using in-memory match", zap.String("q", query), zap.Error(err))
	}
	c.JSON(http.StatusOK, services.MatchProducts(products, query))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	c.Set("audit_resource_id", p.ID)
	if err := h.Store.AddProduct(p); err != nil {
		h.fail(c, err)
		return
	}
	created, err := h.Store.Product(p.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProduct merges the given fields. It answers 204 when the id does not
// exist and the store ignores absent ids.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	if err := h.Store.UpdateProduct(id, patch); err != nil {
		h.fail(c, err)
		return
	}
	h.respondWithProduct(c, id)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.Store.DeleteProduct(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadProductImage stores the multipart "image" file and points the
// product's image at it.
func (h *Handler) UploadProductImage(c *gin.Context) {
	if h.Images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}
	id := c.Param("id")
	if _, err := h.Store.Product(id); err != nil {
		h.fail(c, err)
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		badRequest(c, err)
		return
	}

	url, err := h.Images.Upload(c.Request.Context(), id, file)
	if err != nil {
		if errors.Is(err, services.ErrNotAnImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, err)
		return
	}
	if err := h.Store.UpdateProduct(id, models.ProductPatch{Image: &url}); err != nil {
		h.fail(c, err)
		return
	}
	h.respondWithProduct(c, id)
}

func (h *Handler) respondWithProduct(c *gin.Context, id string) {
	p, err := h.Store.Product(id)
	if errors.Is(err, models.ErrNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
