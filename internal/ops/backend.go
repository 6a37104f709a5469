// Package ops holds one screen per dashboard entity. Screens sit on top of
// resource.Screen and talk to the server through the narrow interfaces
// below, so tests can substitute in-memory fakes for the HTTP client.
package ops

import (
	"context"
	"errors"

	"github.com/jacksmith/vendorctl/internal/api"
	"github.com/jacksmith/vendorctl/internal/model"
)

type ProductAPI interface {
	List(ctx context.Context) ([]model.Product, error)
	Available(ctx context.Context) ([]model.Product, error)
	ByCategory(ctx context.Context, category int) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (model.Product, error)
	Patch(ctx context.Context, id int, patch any) (model.Product, error)
	Delete(ctx context.Context, id int) error
}

type CategoryAPI interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, in model.CategoryInput) (model.Category, error)
	Put(ctx context.Context, id int, in model.CategoryInput) (model.Category, error)
	Delete(ctx context.Context, id int) error
}

type ReviewAPI interface {
	ByProduct(ctx context.Context, product int) ([]model.Review, error)
}

type CustomerAPI interface {
	List(ctx context.Context) ([]model.Customer, error)
	Put(ctx context.Context, id int, in model.CustomerInput) (model.Customer, error)
	Delete(ctx context.Context, id int) error
}

type VendorAPI interface {
	List(ctx context.Context) ([]model.Vendor, error)
	Put(ctx context.Context, id int, in model.VendorInput) (model.Vendor, error)
	Delete(ctx context.Context, id int) error
}

type OrderAPI interface {
	List(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id int) (model.Order, error)
	PatchItem(ctx context.Context, id int, patch model.OrderItemPatch) (model.OrderItem, error)
	DeleteItem(ctx context.Context, id int) error
}

type ProfileAPI interface {
	Get(ctx context.Context) (model.UserProfile, error)
	Patch(ctx context.Context, id int, patch model.ProfilePatch) (model.UserProfile, error)
}

type SalesAPI interface {
	List(ctx context.Context) ([]model.VendorSale, error)
}

type BankAPI interface {
	List(ctx context.Context) ([]model.Bank, error)
	VerifyAccount(ctx context.Context, req model.AccountVerificationRequest) (model.AccountVerification, error)
}

type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Register(ctx context.Context, reg model.Registration) (model.Message, error)
	VerifyEmail(ctx context.Context, v model.EmailVerification) (model.Message, error)
	PasswordReset(ctx context.Context, r model.PasswordReset) (model.Message, error)
	PasswordResetConfirm(ctx context.Context, uid, token string, r model.PasswordResetConfirm) (model.Message, error)
}

type SupportAPI interface {
	Create(ctx context.Context, req model.SupportRequest) (model.Message, error)
}

// Backend groups the remote services the screens need. The concrete
// implementation is api.Client, but any set of implementations works.
type Backend struct {
	Products   ProductAPI
	Categories CategoryAPI
	Reviews    ReviewAPI
	Customers  CustomerAPI
	Vendors    VendorAPI
	Orders     OrderAPI
	Profile    ProfileAPI
	Sales      SalesAPI
	Banks      BankAPI
	Auth       AuthAPI
	Support    SupportAPI
}

// NewBackend wires every service of c.
func NewBackend(c *api.Client) Backend {
	return Backend{
		Products:   c.Products,
		Categories: c.Categories,
		Reviews:    c.Reviews,
		Customers:  c.Customers,
		Vendors:    c.Vendors,
		Orders:     c.Orders,
		Profile:    c.Profile,
		Sales:      c.Sales,
		Banks:      c.Banks,
		Auth:       c.Auth,
		Support:    c.Support,
	}
}

// orApplied returns local when the server accepted a change but answered
// without the record.
func orApplied[T any](got T, err error, local T) (T, error) {
	if errors.Is(err, api.ErrNoContent) {
		return local, nil
	}
	return got, err
}
