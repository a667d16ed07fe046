package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/catalog"
	"storefront/internal/money"
)

// AdminProductRequest payload for product create/update. Price can be
// given either as integer cents or as a decimal string ("19.90"); the
// decimal form wins when both are present.
// swagger:model AdminProductRequest
type AdminProductRequest struct {
	CategoryID   string `json:"categoryId"`
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"priceCents"`
	Price        string `json:"price" example:"19.90"`
	CurrencyCode string `json:"currencyCode"`
	SKU          string `json:"sku"`
	ImageURL     string `json:"imageUrl"`
	IsActive     *bool  `json:"isActive"`
}

func (r *AdminProductRequest) toProduct() (*catalog.Product, error) {
	priceCents := r.PriceCents
	if r.Price != "" {
		var err error
		priceCents, err = money.ParseCents(r.Price)
		if err != nil {
			return nil, err
		}
	}
	if priceCents < 0 {
		return nil, money.ErrInvalidAmount
	}
	currency := r.CurrencyCode
	if currency == "" {
		currency = "USD"
	}
	return &catalog.Product{
		CategoryID:   r.CategoryID,
		Name:         r.Name,
		Slug:         r.Slug,
		Description:  r.Description,
		PriceCents:   priceCents,
		CurrencyCode: currency,
		SKU:          r.SKU,
		ImageURL:     r.ImageURL,
		IsActive:     r.IsActive == nil || *r.IsActive,
	}, nil
}

// AdminSummary godoc
// @Summary  Store-wide entity counts
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} admin.Summary
// @Router   /admin/summary [get]
func (h *Handler) AdminSummary(c *gin.Context) {
	s, err := h.admin.Summary(c.Request.Context())
	if err != nil {
		internalError(c, "admin summary failed", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// AdminListOrders godoc
// @Summary  Recent orders across all users
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} admin.OrderSummary
// @Router   /admin/orders [get]
func (h *Handler) AdminListOrders(c *gin.Context) {
	out, err := h.admin.ListOrders(c.Request.Context())
	if err != nil {
		internalError(c, "admin list orders failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// AdminListProducts godoc
// @Summary  All products, including inactive
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} catalog.Product
// @Router   /admin/products [get]
func (h *Handler) AdminListProducts(c *gin.Context) {
	out, err := h.catalog.ListAll(c.Request.Context(), 500)
	if err != nil {
		internalError(c, "admin list products failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// AdminCreateProduct godoc
// @Summary  Create a product
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body AdminProductRequest true "product"
// @Success  201 {object} map[string]string
// @Router   /admin/products [post]
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req AdminProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}
	p, err := req.toProduct()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
		return
	}
	p.ID = uuid.NewString()

	if err := h.catalog.Create(c.Request.Context(), p); err != nil {
		if errors.Is(err, catalog.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "Duplicate slug/sku"})
			return
		}
		internalError(c, "create product failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": p.ID})
}

// AdminUpdateProduct godoc
// @Summary  Replace a product
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "product id"
// @Param    body body AdminProductRequest true "product"
// @Router   /admin/products/{id} [put]
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	var req AdminProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}
	p, err := req.toProduct()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
		return
	}
	p.ID = c.Param("id")

	if err := h.catalog.Update(c.Request.Context(), p); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		case errors.Is(err, catalog.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"message": "Duplicate slug/sku"})
		default:
			internalError(c, "update product failed", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": p.ID})
}
