// Package model defines the records exchanged with the vendor API.
//
// Records are parsed once at the API boundary. Unknown JSON fields are
// ignored; updates send explicit payloads, so fields the client does not
// model are left alone on the server.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the listing state of a product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusDraft    ProductStatus = "draft"
)

// ProductStatuses lists the accepted product statuses.
var ProductStatuses = []string{
	string(ProductStatusActive),
	string(ProductStatusInactive),
	string(ProductStatusDraft),
}

// LowStockThreshold is the quantity at or below which stock is flagged.
const LowStockThreshold = 5

// Product is a catalog item owned by the vendor.
type Product struct {
	ID           int             `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	Price        decimal.Decimal `json:"price" yaml:"price"`
	Quantity     int             `json:"quantity" yaml:"quantity"`
	Status       ProductStatus   `json:"status,omitempty" yaml:"status,omitempty"`
	Category     int             `json:"category,omitempty" yaml:"category,omitempty"`
	CategoryName string          `json:"category_name,omitempty" yaml:"category_name,omitempty"`
	Vendor       int             `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Image        string          `json:"image,omitempty" yaml:"image,omitempty"`
	CreatedAt    *time.Time      `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

func (p Product) ResourceID() int { return p.ID }

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.Quantity > 0 }

// LowStock reports whether the product is in stock but running low.
func (p Product) LowStock() bool { return p.Quantity > 0 && p.Quantity <= LowStockThreshold }

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description,omitempty" validate:"max=5000"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Category    int             `json:"category" validate:"required"`
	Status      ProductStatus   `json:"status,omitempty" validate:"omitempty,oneof=active inactive draft"`
}

// ProductPatch is a partial product update. Nil fields are not sent.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gt=0"`
	Quantity    *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Status      *ProductStatus   `json:"status,omitempty" validate:"omitempty,oneof=active inactive draft"`
	Category    *int             `json:"category,omitempty" validate:"omitempty,gt=0"`
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Quantity == nil && p.Status == nil && p.Category == nil
}

// Apply returns a copy of prod with the patch applied.
func (p ProductPatch) Apply(prod Product) Product {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Quantity != nil {
		prod.Quantity = *p.Quantity
	}
	if p.Status != nil {
		prod.Status = *p.Status
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	return prod
}

// Category groups products.
type Category struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (c Category) ResourceID() int { return c.ID }

// CategoryInput is the payload for creating or replacing a category.
type CategoryInput struct {
	Name        string `json:"name" yaml:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" yaml:"description" validate:"max=2000"`
}

// Apply returns c replaced by in.
func (in CategoryInput) Apply(c Category) Category {
	c.Name = in.Name
	c.Description = in.Description
	return c
}

// Review is a customer review of a product.
type Review struct {
	ID        int        `json:"id" yaml:"id"`
	Product   int        `json:"product" yaml:"product"`
	User      string     `json:"user_name,omitempty" yaml:"user,omitempty"`
	Rating    int        `json:"rating" yaml:"rating"`
	Comment   string     `json:"comment,omitempty" yaml:"comment,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

func (r Review) ResourceID() int { return r.ID }
