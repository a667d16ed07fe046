package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/order"
)

// CheckoutRequest payload; both sections are optional pass-through.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	Shipping *order.ShippingInfo `json:"shipping"`
	Payment  *order.PaymentInfo  `json:"payment"`
}

// Checkout godoc
// @Summary  Convert the cart into an order
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body CheckoutRequest false "shipping and payment pass-through"
// @Success  201 {object} order.Order
// @Failure  400 {object} map[string]string "Cart is empty"
// @Router   /checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	u := currentUser(c)

	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
	}

	o, err := h.checkout.Run(c.Request.Context(), u.ID, req.Shipping, req.Payment)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
			return
		}
		internalError(c, "checkout failed", err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// ListMyOrders godoc
// @Summary  List the caller's orders, newest first
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} order.Order
// @Router   /orders [get]
func (h *Handler) ListMyOrders(c *gin.Context) {
	u := currentUser(c)
	out, err := h.orders.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		internalError(c, "list orders failed", err)
		return
	}
	if out == nil {
		out = []order.Order{}
	}
	c.JSON(http.StatusOK, out)
}

// GetMyOrder godoc
// @Summary  One of the caller's orders, with items
// @Produce  json
// @Security BearerAuth
// @Param    orderId path string true "order id"
// @Success  200 {object} order.Order
// @Router   /orders/{orderId} [get]
func (h *Handler) GetMyOrder(c *gin.Context) {
	u := currentUser(c)
	o, err := h.orders.GetByUser(c.Request.Context(), c.Param("orderId"), u.ID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		internalError(c, "get order failed", err)
		return
	}
	c.JSON(http.StatusOK, o)
}
