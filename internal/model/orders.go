package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order or order item.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists the accepted order statuses in fulfilment order.
var OrderStatuses = []string{
	string(OrderStatusPending),
	string(OrderStatusProcessing),
	string(OrderStatusShipped),
	string(OrderStatusDelivered),
	string(OrderStatusCancelled),
}

// Terminal reports whether no further transitions are expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order is a customer order containing the vendor's items.
type Order struct {
	ID              int             `json:"id" yaml:"id"`
	Customer        int             `json:"customer,omitempty" yaml:"customer,omitempty"`
	CustomerName    string          `json:"customer_name,omitempty" yaml:"customer_name,omitempty"`
	Status          OrderStatus     `json:"status" yaml:"status"`
	PaymentStatus   string          `json:"payment_status,omitempty" yaml:"payment_status,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount" yaml:"total_amount"`
	ShippingAddress string          `json:"shipping_address,omitempty" yaml:"shipping_address,omitempty"`
	Items           []OrderItem     `json:"items,omitempty" yaml:"items,omitempty"`
	CreatedAt       *time.Time      `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

func (o Order) ResourceID() int { return o.ID }

// ItemsTotal sums the subtotals of the order's items.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ID          int             `json:"id" yaml:"id"`
	Order       int             `json:"order" yaml:"order"`
	Product     int             `json:"product" yaml:"product"`
	ProductName string          `json:"product_name,omitempty" yaml:"product_name,omitempty"`
	Quantity    int             `json:"quantity" yaml:"quantity"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Status      OrderStatus     `json:"status,omitempty" yaml:"status,omitempty"`
}

func (i OrderItem) ResourceID() int { return i.ID }

// Subtotal is price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItemPatch is a partial order item update.
type OrderItemPatch struct {
	Status   *OrderStatus `json:"status,omitempty" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Quantity *int         `json:"quantity,omitempty" validate:"omitempty,gte=1"`
}
