package ops

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/resource"
)

// SaleMatch matches sales by product name or id.
var SaleMatch = resource.MatchFields(
	func(s model.VendorSale) string { return s.ProductName },
	resource.IDField[model.VendorSale],
)

// Sales is the vendor sales screen.
type Sales struct {
	*resource.Screen[model.VendorSale]
	api SalesAPI
}

func NewSales(b Backend, opts resource.Options) *Sales {
	return &Sales{
		Screen: resource.NewScreen("sale", SaleMatch, opts),
		api:    b.Sales,
	}
}

func (s *Sales) Load(ctx context.Context) error {
	return s.Screen.Load(ctx, s.api.List)
}

// MonthTotal is the sales of one calendar month.
type MonthTotal struct {
	Month   string          `json:"month" yaml:"month"` // YYYY-MM
	Units   int             `json:"units" yaml:"units"`
	Revenue decimal.Decimal `json:"revenue" yaml:"revenue"`
}

// ProductTotal is the sales of one product.
type ProductTotal struct {
	Name    string          `json:"name" yaml:"name"`
	Units   int             `json:"units" yaml:"units"`
	Revenue decimal.Decimal `json:"revenue" yaml:"revenue"`
}

// SalesReport summarizes a set of sales.
type SalesReport struct {
	Sales       int             `json:"sales" yaml:"sales"`
	Units       int             `json:"units" yaml:"units"`
	Revenue     decimal.Decimal `json:"revenue" yaml:"revenue"`
	Average     decimal.Decimal `json:"average" yaml:"average"`
	ByMonth     []MonthTotal    `json:"by_month" yaml:"by_month"`
	TopProducts []ProductTotal  `json:"top_products" yaml:"top_products"`
}

// Report summarizes the records matching the current query. top limits
// TopProducts; zero means no limit.
func (s *Sales) Report(top int) SalesReport {
	return BuildReport(s.View(), top)
}

// BuildReport aggregates sales. Months are in chronological order; top
// products are ordered by revenue, then units, then name.
func BuildReport(sales []model.VendorSale, top int) SalesReport {
	r := SalesReport{Revenue: decimal.Zero, Average: decimal.Zero}
	months := map[string]*MonthTotal{}
	products := map[string]*ProductTotal{}

	for _, sale := range sales {
		r.Sales++
		r.Units += sale.Quantity
		r.Revenue = r.Revenue.Add(sale.Amount)

		key := sale.CreatedAt.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthTotal{Month: key, Revenue: decimal.Zero}
			months[key] = m
		}
		m.Units += sale.Quantity
		m.Revenue = m.Revenue.Add(sale.Amount)

		name := strings.TrimSpace(sale.ProductName)
		if name == "" {
			name = "(unknown)"
		}
		p, ok := products[name]
		if !ok {
			p = &ProductTotal{Name: name, Revenue: decimal.Zero}
			products[name] = p
		}
		p.Units += sale.Quantity
		p.Revenue = p.Revenue.Add(sale.Amount)
	}

	if r.Sales > 0 {
		r.Average = r.Revenue.Div(decimal.NewFromInt(int64(r.Sales))).Round(2)
	}

	for _, m := range months {
		r.ByMonth = append(r.ByMonth, *m)
	}
	sort.Slice(r.ByMonth, func(i, j int) bool { return r.ByMonth[i].Month < r.ByMonth[j].Month })

	for _, p := range products {
		r.TopProducts = append(r.TopProducts, *p)
	}
	sort.Slice(r.TopProducts, func(i, j int) bool {
		a, b := r.TopProducts[i], r.TopProducts[j]
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		if a.Units != b.Units {
			return a.Units > b.Units
		}
		return a.Name < b.Name
	})
	if top > 0 && len(r.TopProducts) > top {
		r.TopProducts = r.TopProducts[:top]
	}
	return r
}
