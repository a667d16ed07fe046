package catalog

import "time"

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Inventory is read-only display data; nothing in this codebase
// reserves or decrements it.
type Inventory struct {
	Quantity int `json:"quantity"`
	Reserved int `json:"reserved"`
}

type Product struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	// Monetary amounts are integer cents; Price is the display string.
	PriceCents   int64      `json:"priceCents"`
	Price        string     `json:"price"`
	CurrencyCode string     `json:"currencyCode"`
	SKU          string     `json:"sku,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	IsActive     bool       `json:"isActive"`
	CategoryName string     `json:"categoryName,omitempty"`
	CategorySlug string     `json:"categorySlug,omitempty"`
	Inventory    *Inventory `json:"inventory,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
