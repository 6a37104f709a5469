package ops

import (
	"context"
	"strconv"

	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/resource"
)

// CustomerMatch matches customers by full name, email or id.
var CustomerMatch = resource.MatchFields(
	model.Customer.FullName,
	func(c model.Customer) string { return c.Email },
	resource.IDField[model.Customer],
)

// Customers is the customer screen.
type Customers struct {
	*resource.Screen[model.Customer]
	api CustomerAPI
}

func NewCustomers(b Backend, opts resource.Options) *Customers {
	return &Customers{
		Screen: resource.NewScreen("customer", CustomerMatch, opts),
		api:    b.Customers,
	}
}

func (c *Customers) Load(ctx context.Context) error {
	return c.Screen.Load(ctx, c.api.List)
}

// Edit replaces a customer with in (PUT).
func (c *Customers) Edit(ctx context.Context, id int, in model.CustomerInput) (model.Customer, error) {
	current, ok := c.Get(id)
	if !ok {
		return model.Customer{}, &NotFoundError{Kind: "customer", ID: id}
	}
	return c.Screen.Update(ctx, id, in, func(ctx context.Context) (model.Customer, error) {
		got, err := c.api.Put(ctx, id, in)
		return orApplied(got, err, in.Apply(current))
	})
}

func (c *Customers) Delete(ctx context.Context, id int) error {
	label := "customer " + strconv.Itoa(id)
	if current, ok := c.Get(id); ok && current.FullName() != "" {
		label = current.FullName()
	}
	return c.Screen.Delete(ctx, id, resource.DeletePrompt("customer", label), func(ctx context.Context) error {
		return c.api.Delete(ctx, id)
	})
}

// VendorMatch matches vendors by store name, full name, email or id.
var VendorMatch = resource.MatchFields(
	func(v model.Vendor) string { return v.StoreName },
	model.Vendor.FullName,
	func(v model.Vendor) string { return v.Email },
	resource.IDField[model.Vendor],
)

// Vendors is the vendor administration screen.
type Vendors struct {
	*resource.Screen[model.Vendor]
	api VendorAPI
}

func NewVendors(b Backend, opts resource.Options) *Vendors {
	return &Vendors{
		Screen: resource.NewScreen("vendor", VendorMatch, opts),
		api:    b.Vendors,
	}
}

func (v *Vendors) Load(ctx context.Context) error {
	return v.Screen.Load(ctx, v.api.List)
}

// Edit replaces a vendor with in (PUT).
func (v *Vendors) Edit(ctx context.Context, id int, in model.VendorInput) (model.Vendor, error) {
	current, ok := v.Get(id)
	if !ok {
		return model.Vendor{}, &NotFoundError{Kind: "vendor", ID: id}
	}
	return v.Screen.Update(ctx, id, in, func(ctx context.Context) (model.Vendor, error) {
		got, err := v.api.Put(ctx, id, in)
		return orApplied(got, err, in.Apply(current))
	})
}

// SetStatus changes only a vendor's status, resending the other fields as
// loaded.
func (v *Vendors) SetStatus(ctx context.Context, id int, status model.VendorStatus) (model.Vendor, error) {
	current, ok := v.Get(id)
	if !ok {
		return model.Vendor{}, &NotFoundError{Kind: "vendor", ID: id}
	}
	in := current.Input()
	in.Status = status
	return v.Edit(ctx, id, in)
}

func (v *Vendors) Delete(ctx context.Context, id int) error {
	label := "vendor " + strconv.Itoa(id)
	if current, ok := v.Get(id); ok && current.StoreName != "" {
		label = current.StoreName
	}
	return v.Screen.Delete(ctx, id, resource.DeletePrompt("vendor", label), func(ctx context.Context) error {
		return v.api.Delete(ctx, id)
	})
}
