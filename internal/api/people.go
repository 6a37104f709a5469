package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jacksmith/vendorctl/internal/model"
)

// CustomerService covers /api/customer/.
type CustomerService struct{ c *Client }

func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	return list[model.Customer](ctx, s.c, "/api/customer/", nil)
}

func (s *CustomerService) Put(ctx context.Context, id int, in model.CustomerInput) (model.Customer, error) {
	return one[model.Customer](ctx, s.c, http.MethodPut, fmt.Sprintf("/api/customer/%d/", id), in)
}

// Delete removes a customer. The backend route has no trailing slash.
func (s *CustomerService) Delete(ctx context.Context, id int) error {
	_, err := s.c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/customer/%d", id), nil, nil)
	return err
}

// VendorService covers /api/vendor/.
type VendorService struct{ c *Client }

func (s *VendorService) List(ctx context.Context) ([]model.Vendor, error) {
	return list[model.Vendor](ctx, s.c, "/api/vendor/", nil)
}

func (s *VendorService) Put(ctx context.Context, id int, in model.VendorInput) (model.Vendor, error) {
	return one[model.Vendor](ctx, s.c, http.MethodPut, fmt.Sprintf("/api/vendor/%d/", id), in)
}

func (s *VendorService) Delete(ctx context.Context, id int) error {
	_, err := s.c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/vendor/%d/", id), nil, nil)
	return err
}

// ProfileService covers /api/user-profile/.
type ProfileService struct{ c *Client }

// Get returns the signed-in user's profile. The endpoint answers with an
// array of one.
func (s *ProfileService) Get(ctx context.Context) (model.UserProfile, error) {
	return one[model.UserProfile](ctx, s.c, http.MethodGet, "/api/user-profile/", nil)
}

func (s *ProfileService) Patch(ctx context.Context, id int, patch model.ProfilePatch) (model.UserProfile, error) {
	return one[model.UserProfile](ctx, s.c, http.MethodPatch, fmt.Sprintf("/api/user-profile/%d/", id), patch)
}
