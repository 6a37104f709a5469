package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jacksmith/vendorctl/internal/model"
)

// ProductService covers /api/product/.
type ProductService struct{ c *Client }

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return list[model.Product](ctx, s.c, "/api/product/", nil)
}

// Available lists products the vendor currently has on sale.
func (s *ProductService) Available(ctx context.Context) ([]model.Product, error) {
	return list[model.Product](ctx, s.c, "/api/product/available_products/", nil)
}

// ByCategory lists products in one category.
func (s *ProductService) ByCategory(ctx context.Context, category int) ([]model.Product, error) {
	q := url.Values{"category": {strconv.Itoa(category)}}
	return list[model.Product](ctx, s.c, "/api/product/search_by_category/", q)
}

// Search runs a server-side product search.
func (s *ProductService) Search(ctx context.Context, query string) ([]model.Product, error) {
	var q url.Values
	if query != "" {
		q = url.Values{"search": {query}}
	}
	return list[model.Product](ctx, s.c, "/api/product/", q)
}

func (s *ProductService) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	return one[model.Product](ctx, s.c, http.MethodPost, "/api/product/", in)
}

// Patch sends a partial update. The payload carries only the set fields.
func (s *ProductService) Patch(ctx context.Context, id int, patch any) (model.Product, error) {
	return one[model.Product](ctx, s.c, http.MethodPatch, fmt.Sprintf("/api/product/%d/", id), patch)
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	_, err := s.c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/product/%d/", id), nil, nil)
	return err
}

// CategoryService covers /api/category/.
type CategoryService struct{ c *Client }

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return list[model.Category](ctx, s.c, "/api/category/", nil)
}

func (s *CategoryService) Create(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	return one[model.Category](ctx, s.c, http.MethodPost, "/api/category/", in)
}

func (s *CategoryService) Put(ctx context.Context, id int, in model.CategoryInput) (model.Category, error) {
	return one[model.Category](ctx, s.c, http.MethodPut, fmt.Sprintf("/api/category/%d/", id), in)
}

func (s *CategoryService) Delete(ctx context.Context, id int) error {
	_, err := s.c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/category/%d/", id), nil, nil)
	return err
}

// ReviewService covers /api/review/.
type ReviewService struct{ c *Client }

// ByProduct lists reviews left on one product.
func (s *ReviewService) ByProduct(ctx context.Context, product int) ([]model.Review, error) {
	q := url.Values{"product_id": {strconv.Itoa(product)}}
	return list[model.Review](ctx, s.c, "/api/review/by_product/", q)
}
