package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"techplug_back_end/internal/models"
)

func (h *Handler) GetServiceCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ListServiceCategories())
}

func (h *Handler) CreateServiceCategory(c *gin.Context) {
	var cat models.ServiceCategory
	if err := c.ShouldBindJSON(&cat); err != nil {
		badRequest(c, err)
		return
	}
	c.Set("audit_resource_id", cat.ID)
	if err := h.Store.AddServiceCategory(cat); err != nil {
		h.fail(c, err)
		return
	}
	created, err := h.Store.ServiceCategory(cat.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateServiceCategory applies a partial update. A "services" array replaces
// the category's items as a whole, which is how items are added, edited and removed.
func (h *Handler) UpdateServiceCategory(c *gin.Context) {
	var patch models.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	if err := h.Store.UpdateServiceCategory(id, patch); err != nil {
		h.fail(c, err)
		return
	}

	cat, err := h.Store.ServiceCategory(id)
	if errors.Is(err, models.ErrNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) DeleteServiceCategory(c *gin.Context) {
	if err := h.Store.DeleteServiceCategory(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
