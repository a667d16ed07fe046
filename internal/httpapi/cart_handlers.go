package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
)

// AddCartItemRequest payload.
// swagger:model AddCartItemRequest
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest payload.
// swagger:model UpdateCartItemRequest
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// GetCart godoc
// @Summary  Current user's cart
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} cart.Cart
// @Router   /cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	u := currentUser(c)
	out, err := h.carts.Get(c.Request.Context(), u.ID)
	if err != nil {
		internalError(c, "get cart failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// AddCartItem godoc
// @Summary  Add a product to the cart
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body AddCartItemRequest true "item"
// @Success  201 {object} cart.Item
// @Router   /cart/items [post]
func (h *Handler) AddCartItem(c *gin.Context) {
	u := currentUser(c)
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	it, err := h.carts.AddItem(c.Request.Context(), u.ID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		internalError(c, "add cart item failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":        it.ID,
		"productId": it.ProductID,
		"quantity":  it.Quantity,
	})
}

// UpdateCartItem godoc
// @Summary  Change a cart line's quantity
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    itemId path string true "cart item id"
// @Param    body body UpdateCartItemRequest true "quantity"
// @Router   /cart/items/{itemId} [patch]
func (h *Handler) UpdateCartItem(c *gin.Context) {
	u := currentUser(c)
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	it, err := h.carts.UpdateItem(c.Request.Context(), u.ID, c.Param("itemId"), req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
			return
		}
		internalError(c, "update cart item failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        it.ID,
		"productId": it.ProductID,
		"quantity":  it.Quantity,
	})
}

// RemoveCartItem godoc
// @Summary  Remove a cart line
// @Security BearerAuth
// @Param    itemId path string true "cart item id"
// @Success  204
// @Router   /cart/items/{itemId} [delete]
func (h *Handler) RemoveCartItem(c *gin.Context) {
	u := currentUser(c)
	if err := h.carts.RemoveItem(c.Request.Context(), u.ID, c.Param("itemId")); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
			return
		}
		internalError(c, "remove cart item failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
