package ops

import (
	"context"

	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/resource"
)

// Inventory is the stock screen. Unlike Products it searches on the server.
//
// Quantity changes send the absolute new quantity computed from the
// reconciled local record. While one change to an item is in flight a
// second change to the same item fails with resource.ErrInFlight, so two
// quick increments can never both send current+1.
type Inventory struct {
	*resource.Screen[model.Product]
	api ProductAPI
}

func NewInventory(b Backend, opts resource.Options) *Inventory {
	return &Inventory{
		Screen: resource.NewScreen("product", ProductMatch, opts),
		api:    b.Products,
	}
}

func (inv *Inventory) Load(ctx context.Context) error {
	return inv.Screen.Load(ctx, inv.api.List)
}

// Searcher returns a debounced server-side search that replaces the
// screen's records with each fresh result.
func (inv *Inventory) Searcher(ctx context.Context, opts resource.SearchOptions, onResult func(resource.SearchResult[model.Product])) *resource.Searcher[model.Product] {
	return inv.Screen.Searcher(ctx, inv.api.Search, opts, onResult)
}

// Increment raises an item's quantity by one.
func (inv *Inventory) Increment(ctx context.Context, id int) (model.Product, error) {
	return inv.adjust(ctx, id, 1)
}

// Decrement lowers an item's quantity by one. It fails validation rather
// than going below zero.
func (inv *Inventory) Decrement(ctx context.Context, id int) (model.Product, error) {
	return inv.adjust(ctx, id, -1)
}

// SetQuantity sets an item's quantity to qty.
func (inv *Inventory) SetQuantity(ctx context.Context, id, qty int) (model.Product, error) {
	current, ok := inv.Get(id)
	if !ok {
		return model.Product{}, &NotFoundError{Kind: "product", ID: id}
	}
	return inv.send(ctx, current, qty)
}

func (inv *Inventory) adjust(ctx context.Context, id, delta int) (model.Product, error) {
	current, ok := inv.Get(id)
	if !ok {
		return model.Product{}, &NotFoundError{Kind: "product", ID: id}
	}
	return inv.send(ctx, current, current.Quantity+delta)
}

func (inv *Inventory) send(ctx context.Context, current model.Product, qty int) (model.Product, error) {
	if qty < 0 {
		return model.Product{}, &resource.ValidationError{Fields: []resource.FieldError{
			{Field: "quantity", Message: "Quantity cannot be negative"},
		}}
	}
	patch := model.ProductPatch{Quantity: &qty}
	return inv.Update(ctx, current.ID, patch, patchProduct(inv.api, current, patch))
}
