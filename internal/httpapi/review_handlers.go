package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/review"
)

// CreateReviewRequest payload.
// swagger:model CreateReviewRequest
type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// ListProductReviews godoc
// @Summary  Approved reviews for a product
// @Produce  json
// @Param    id path string true "product id"
// @Success  200 {array} review.Review
// @Router   /products/{id}/reviews [get]
func (h *Handler) ListProductReviews(c *gin.Context) {
	out, err := h.reviews.ListForProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "list reviews failed", err)
		return
	}
	if out == nil {
		out = []review.Review{}
	}
	c.JSON(http.StatusOK, out)
}

// CreateProductReview godoc
// @Summary  Review a product (one per user per product)
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "product id"
// @Param    body body CreateReviewRequest true "review"
// @Success  201 {object} review.Review
// @Router   /products/{id}/reviews [post]
func (h *Handler) CreateProductReview(c *gin.Context) {
	u := currentUser(c)
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	rv := &review.Review{
		ProductID: c.Param("id"),
		UserID:    u.ID,
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Body,
	}
	if err := h.reviews.Create(c.Request.Context(), rv); err != nil {
		switch {
		case errors.Is(err, review.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		case errors.Is(err, review.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"message": "You already reviewed this product"})
		default:
			internalError(c, "create review failed", err)
		}
		return
	}
	c.JSON(http.StatusCreated, rv)
}
