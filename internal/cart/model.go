package cart

// ProductSummary is the slice of catalog data shown inside a cart line.
type ProductSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type Item struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	// Price snapshot captured when the item was added; checkout bills
	// this value, not the live catalog price.
	UnitPriceCents int64          `json:"unitPriceCents"`
	CurrencyCode   string         `json:"currencyCode"`
	LineTotalCents int64          `json:"lineTotalCents"`
	Product        ProductSummary `json:"product"`
}

type Cart struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Items         []Item `json:"items"`
	SubtotalCents int64  `json:"subtotalCents"`
	CurrencyCode  string `json:"currencyCode"`
}
