package ops

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/resource"
)

// OrderMatch matches orders by order number, id, customer or status.
var OrderMatch = resource.MatchFields(
	func(o model.Order) string { return model.FormatOrderNumber(o.ID) },
	resource.IDField[model.Order],
	func(o model.Order) string { return o.CustomerName },
	func(o model.Order) string { return string(o.Status) },
)

// OrderItemMatch matches order items by product name, id or status.
var OrderItemMatch = resource.MatchFields(
	func(i model.OrderItem) string { return i.ProductName },
	resource.IDField[model.OrderItem],
	func(i model.OrderItem) string { return string(i.Status) },
)

// Orders is the order screen. Item mutations go through Lines and are
// mirrored into the owning order.
type Orders struct {
	*resource.Screen[model.Order]
	Lines *resource.Screen[model.OrderItem]
	api   OrderAPI
}

func NewOrders(b Backend, opts resource.Options) *Orders {
	return &Orders{
		Screen: resource.NewScreen("order", OrderMatch, opts),
		Lines:  resource.NewScreen("order item", OrderItemMatch, opts),
		api:    b.Orders,
	}
}

func (o *Orders) Load(ctx context.Context) error {
	if err := o.Screen.Load(ctx, o.api.List); err != nil {
		return err
	}
	return o.Lines.Load(ctx, func(context.Context) ([]model.OrderItem, error) {
		return flattenItems(o.Screen.Items()), nil
	})
}

// Show fetches one order with its items and records it on the screen.
func (o *Orders) Show(ctx context.Context, id int) (model.Order, error) {
	end := o.Busy().Begin(resource.Key{Op: resource.OpLoad, ID: id})
	defer end()

	order, err := o.api.Get(ctx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("load order %d: %w", id, err)
	}
	o.Reconcile(order)
	for _, item := range flattenItems([]model.Order{order}) {
		o.Lines.Reconcile(item)
	}
	return order, nil
}

// SetItemStatus moves one order item to status. Delivered and cancelled
// items cannot be moved.
func (o *Orders) SetItemStatus(ctx context.Context, itemID int, status model.OrderStatus) (model.OrderItem, error) {
	item, ok := o.Lines.Get(itemID)
	if !ok {
		return model.OrderItem{}, &NotFoundError{Kind: "order item", ID: itemID}
	}
	if item.Status == status {
		return item, nil
	}
	if item.Status.Terminal() {
		return model.OrderItem{}, &StatusError{Operation: "change", Kind: "order item", ID: itemID, Status: string(item.Status)}
	}

	patch := model.OrderItemPatch{Status: &status}
	updated, err := o.Lines.Update(ctx, itemID, patch, func(ctx context.Context) (model.OrderItem, error) {
		local := item
		local.Status = status
		got, err := o.api.PatchItem(ctx, itemID, patch)
		got, err = orApplied(got, err, local)
		if got.Order == 0 {
			got.Order = item.Order
		}
		return got, err
	})
	if err != nil {
		return model.OrderItem{}, err
	}
	o.mirror(updated.Order, func(items []model.OrderItem) []model.OrderItem {
		for i := range items {
			if items[i].ID == updated.ID {
				items[i] = updated
			}
		}
		return items
	})
	return updated, nil
}

// DeleteItem removes one item from its order after confirmation.
func (o *Orders) DeleteItem(ctx context.Context, itemID int) error {
	label := "order item " + strconv.Itoa(itemID)
	item, ok := o.Lines.Get(itemID)
	if ok && item.ProductName != "" {
		label = fmt.Sprintf("%s from %s", item.ProductName, model.FormatOrderNumber(item.Order))
	}

	err := o.Lines.Delete(ctx, itemID, resource.DeletePrompt("order item", label), func(ctx context.Context) error {
		return o.api.DeleteItem(ctx, itemID)
	})
	if err != nil {
		return err
	}
	if ok {
		o.mirror(item.Order, func(items []model.OrderItem) []model.OrderItem {
			out := items[:0]
			for _, it := range items {
				if it.ID != itemID {
					out = append(out, it)
				}
			}
			return out
		})
	}
	return nil
}

// mirror applies fn to the items of order id, if that order is loaded.
func (o *Orders) mirror(orderID int, fn func([]model.OrderItem) []model.OrderItem) {
	order, ok := o.Get(orderID)
	if !ok {
		return
	}
	items := append([]model.OrderItem(nil), order.Items...)
	order.Items = fn(items)
	o.Reconcile(order)
}

// flattenItems lists every item of orders, filling in the owning order id
// when the server omitted it.
func flattenItems(orders []model.Order) []model.OrderItem {
	var items []model.OrderItem
	for _, order := range orders {
		for _, item := range order.Items {
			if item.Order == 0 {
				item.Order = order.ID
			}
			items = append(items, item)
		}
	}
	return items
}
