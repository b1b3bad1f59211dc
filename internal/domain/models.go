package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item with its purchase cost
type Product struct {
	ID        int64           `json:"id" db:"id"`
	SKU       string          `json:"sku" db:"sku"`
	Title     string          `json:"title" db:"title"`
	CostPrice decimal.Decimal `json:"cost_price" db:"cost_price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Sale represents a single marketplace sale of a product
type Sale struct {
	ID             int64           `json:"id" db:"id"`
	ProductID      int64           `json:"product_id" db:"product_id"`
	Quantity       int             `json:"quantity" db:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price" db:"unit_price"`
	MarketplaceFee decimal.Decimal `json:"marketplace_fee" db:"marketplace_fee"`
	ShippingCost   decimal.Decimal `json:"shipping_cost" db:"shipping_cost"`
	SaleDate       time.Time       `json:"sale_date" db:"sale_date"`
}

// Expense represents an operational expense. The table exists in the
// schema for future reporting but no endpoint reads or writes it yet.
type Expense struct {
	ID         int64           `json:"id" db:"id"`
	Type       string          `json:"type" db:"type"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	OccurredAt time.Time       `json:"occurred_at" db:"occurred_at"`
}

// SaleWithCost is a sale joined with its product's cost and identity.
// Rows only exist for sales whose product reference resolves, so
// orphaned sales never reach the profit calculations.
type SaleWithCost struct {
	ProductID      int64
	ProductTitle   string
	Quantity       int
	UnitPrice      decimal.Decimal
	MarketplaceFee decimal.Decimal
	ShippingCost   decimal.Decimal
	CostPrice      decimal.Decimal
	SaleDate       time.Time
}
