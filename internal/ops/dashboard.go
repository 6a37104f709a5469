package ops

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jacksmith/vendorctl/internal/model"
)

// RecentOrders is how many orders the overview lists.
const RecentOrders = 5

// Overview is the dashboard landing summary.
type Overview struct {
	Products   int             `json:"products" yaml:"products"`
	LowStock   []model.Product `json:"low_stock" yaml:"low_stock"`
	OutOfStock int             `json:"out_of_stock" yaml:"out_of_stock"`
	Orders     int             `json:"orders" yaml:"orders"`
	OpenOrders int             `json:"open_orders" yaml:"open_orders"`
	Revenue    decimal.Decimal `json:"revenue" yaml:"revenue"`
	UnitsSold  int             `json:"units_sold" yaml:"units_sold"`
	Recent     []model.Order   `json:"recent_orders" yaml:"recent_orders"`
}

// Dashboard loads the products, orders and sales screens concurrently.
type Dashboard struct {
	Products *Products
	Orders   *Orders
	Sales    *Sales
}

// Overview loads all three screens and summarizes them. Any failed load
// fails the overview; the other loads are cancelled.
func (d *Dashboard) Overview(ctx context.Context) (Overview, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Products.Load(gctx, 0) })
	g.Go(func() error { return d.Orders.Load(gctx) })
	g.Go(func() error { return d.Sales.Load(gctx) })
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return Summarize(d.Products.Items(), d.Orders.Items(), d.Sales.Items()), nil
}

// Summarize builds an Overview from loaded records.
func Summarize(products []model.Product, orders []model.Order, sales []model.VendorSale) Overview {
	ov := Overview{
		Products: len(products),
		Orders:   len(orders),
		Revenue:  decimal.Zero,
	}
	for _, p := range products {
		switch {
		case !p.InStock():
			ov.OutOfStock++
		case p.LowStock():
			ov.LowStock = append(ov.LowStock, p)
		}
	}
	for _, o := range orders {
		if !o.Status.Terminal() {
			ov.OpenOrders++
		}
	}
	for _, s := range sales {
		ov.Revenue = ov.Revenue.Add(s.Amount)
		ov.UnitsSold += s.Quantity
	}

	recent := append([]model.Order(nil), orders...)
	sort.SliceStable(recent, func(i, j int) bool {
		a, b := recent[i].CreatedAt, recent[j].CreatedAt
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > RecentOrders {
		recent = recent[:RecentOrders]
	}
	ov.Recent = recent
	return ov
}
