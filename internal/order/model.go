package order

import "time"

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

type ShippingInfo struct {
	Name       string `json:"name,omitempty"`
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// PaymentInfo is passed through opaquely; nothing here charges it.
type PaymentInfo struct {
	Provider  string `json:"provider,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// Item is a point-in-time copy of the product at checkout, so historical
// orders stay stable when catalog data changes later.
type Item struct {
	ID             string `json:"id,omitempty"`
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	SKU            string `json:"sku,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	CurrencyCode   string `json:"currencyCode"`
	LineTotalCents int64  `json:"lineTotalCents"`
}

type Order struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Status        string       `json:"status"`
	SubtotalCents int64        `json:"subtotalCents"`
	TaxCents      int64        `json:"taxCents"`
	ShippingCents int64        `json:"shippingCents"`
	TotalCents    int64        `json:"totalCents"`
	CurrencyCode  string       `json:"currencyCode"`
	Shipping      ShippingInfo `json:"shipping"`
	Items         []Item       `json:"items,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
