package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
)

// ListCategories godoc
// @Summary  List categories
// @Produce  json
// @Success  200 {array} catalog.Category
// @Router   /categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	out, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		internalError(c, "list categories failed", err)
		return
	}
	if out == nil {
		out = []catalog.Category{}
	}
	c.JSON(http.StatusOK, out)
}

// ListProducts godoc
// @Summary  Browse active products
// @Produce  json
// @Param    q query string false "search in name/description"
// @Param    category query string false "category slug"
// @Success  200 {array} catalog.Product
// @Router   /products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	out, err := h.catalog.List(c.Request.Context(), catalog.Query{
		Q:            c.Query("q"),
		CategorySlug: c.Query("category"),
	})
	if err != nil {
		internalError(c, "list products failed", err)
		return
	}
	if out == nil {
		out = []catalog.Product{}
	}
	c.JSON(http.StatusOK, out)
}

// GetProduct godoc
// @Summary  Product detail
// @Produce  json
// @Param    id path string true "product id"
// @Success  200 {object} catalog.Product
// @Router   /products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		internalError(c, "get product failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}
