package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"techplug_back_end/internal/models"
	"techplug_back_end/internal/utils"
)

// PlaceOrder stores an order from an explicit draft and empties the cart.
// Drafts carry their own prices, so the route is admin only.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var draft models.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.Store.PlaceOrder(draft)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("audit_resource_id", order.ID)
	c.JSON(http.StatusCreated, order)
}

// Checkout turns the current cart into an order. The simulated payment wait
// happens here, before the store is touched.
func (h *Handler) Checkout(c *gin.Context) {
	var shipping models.ShippingDetails
	if err := c.ShouldBindJSON(&shipping); err != nil {
		badRequest(c, err)
		return
	}
	if shipping.PaymentMethod != "" && !shipping.PaymentMethod.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment method: " + string(shipping.PaymentMethod)})
		return
	}

	if h.CheckoutDelay > 0 {
		timer := time.NewTimer(h.CheckoutDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-c.Request.Context().Done():
			c.AbortWithStatus(http.StatusRequestTimeout)
			return
		}
	}

	order, err := h.Store.Checkout(shipping)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ListOrders())
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Store.Order(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrderQRCode renders the order receipt as a PNG QR code.
func (h *Handler) GetOrderQRCode(c *gin.Context) {
	order, err := h.Store.Order(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	png, err := utils.OrderQRCode(order)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}
