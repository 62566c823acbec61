package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"techplug_back_end/internal/models"
)

type CartView struct {
	Items []models.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

func (h *Handler) cartView() CartView {
	return CartView{
		Items: h.Store.CartContents(),
		Total: h.Store.CartTotal(),
		Count: h.Store.CartCount(),
	}
}

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView())
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// AddToCart looks the product up in the catalog and adds that snapshot.
func (h *Handler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Store.Product(req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Store.AddToCart(p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	if err := h.Store.RemoveFromCart(c.Param("productId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}
