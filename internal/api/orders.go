package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jacksmith/vendorctl/internal/model"
)

// OrderService covers /api/orders/ and /api/order-items/.
type OrderService struct{ c *Client }

func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	return list[model.Order](ctx, s.c, "/api/orders/", nil)
}

func (s *OrderService) Get(ctx context.Context, id int) (model.Order, error) {
	return one[model.Order](ctx, s.c, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil)
}

func (s *OrderService) PatchItem(ctx context.Context, id int, patch model.OrderItemPatch) (model.OrderItem, error) {
	return one[model.OrderItem](ctx, s.c, http.MethodPatch, fmt.Sprintf("/api/order-items/%d/", id), patch)
}

func (s *OrderService) DeleteItem(ctx context.Context, id int) error {
	_, err := s.c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/order-items/%d/", id), nil, nil)
	return err
}

// SalesService covers /api/vendor-sales/.
type SalesService struct{ c *Client }

func (s *SalesService) List(ctx context.Context) ([]model.VendorSale, error) {
	return list[model.VendorSale](ctx, s.c, "/api/vendor-sales/", nil)
}
