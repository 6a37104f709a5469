package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorSale is one sold line attributed to the vendor.
type VendorSale struct {
	ID          int             `json:"id" yaml:"id"`
	Order       int             `json:"order,omitempty" yaml:"order,omitempty"`
	Product     int             `json:"product,omitempty" yaml:"product,omitempty"`
	ProductName string          `json:"product_name" yaml:"product_name"`
	Quantity    int             `json:"quantity" yaml:"quantity"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	CreatedAt   time.Time       `json:"created_at" yaml:"created_at"`
}

func (s VendorSale) ResourceID() int { return s.ID }
