package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jacksmith/vendorctl/internal/api"
	"github.com/jacksmith/vendorctl/internal/model"
)

var errServer = errors.New("server unavailable")

// fakeBackend is an in-memory stand-in for the HTTP API. It records every
// call as "METHOD name args" and fails any call whose record starts with a
// prefix in failOn. Calls matching emptyOn succeed with an empty reply.
type fakeBackend struct {
	mu         sync.Mutex
	calls      []string
	failOn     []string
	emptyOn    []string
	products   []model.Product
	categories []model.Category
	customers  []model.Customer
	vendors    []model.Vendor
	orders     []model.Order
	sales      []model.VendorSale
	reviews    []model.Review
	banks      []model.Bank
	profile    model.UserProfile
	token      string
	nextID     int
	// gate, when set, blocks product patches until it is closed.
	gate    chan struct{}
	entered chan struct{}
}

func newFake() *fakeBackend {
	return &fakeBackend{nextID: 100, token: "tok-1"}
}

func (f *fakeBackend) backend() Backend {
	return Backend{
		Products:   fakeProducts{f},
		Categories: fakeCategories{f},
		Reviews:    fakeReviews{f},
		Customers:  fakeCustomers{f},
		Vendors:    fakeVendors{f},
		Orders:     fakeOrders{f},
		Profile:    fakeProfile{f},
		Sales:      fakeSales{f},
		Banks:      fakeBanks{f},
		Auth:       fakeAuth{f},
		Support:    fakeSupport{f},
	}
}

func (f *fakeBackend) record(format string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := fmt.Sprintf(format, args...)
	f.calls = append(f.calls, call)
	for _, p := range f.failOn {
		if strings.HasPrefix(call, p) {
			return errServer
		}
	}
	for _, p := range f.emptyOn {
		if strings.HasPrefix(call, p) {
			return fmt.Errorf("%s: %w", call, api.ErrNoContent)
		}
	}
	return nil
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) id() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}

type fakeProducts struct{ f *fakeBackend }

func (p fakeProducts) List(context.Context) ([]model.Product, error) {
	if err := p.f.record("GET products"); err != nil {
		return nil, err
	}
	return append([]model.Product(nil), p.f.products...), nil
}

func (p fakeProducts) Available(context.Context) ([]model.Product, error) {
	if err := p.f.record("GET available"); err != nil {
		return nil, err
	}
	var out []model.Product
	for _, prod := range p.f.products {
		if prod.InStock() {
			out = append(out, prod)
		}
	}
	return out, nil
}

func (p fakeProducts) ByCategory(_ context.Context, category int) ([]model.Product, error) {
	if err := p.f.record("GET products category=%d", category); err != nil {
		return nil, err
	}
	var out []model.Product
	for _, prod := range p.f.products {
		if prod.Category == category {
			out = append(out, prod)
		}
	}
	return out, nil
}

func (p fakeProducts) Search(_ context.Context, q string) ([]model.Product, error) {
	if err := p.f.record("GET products search=%s", q); err != nil {
		return nil, err
	}
	var out []model.Product
	for _, prod := range p.f.products {
		if strings.Contains(strings.ToLower(prod.Name), strings.ToLower(q)) {
			out = append(out, prod)
		}
	}
	return out, nil
}

func (p fakeProducts) Create(_ context.Context, in model.ProductInput) (model.Product, error) {
	if err := p.f.record("POST product %s", in.Name); err != nil {
		return model.Product{}, err
	}
	return model.Product{ID: p.f.id(), Name: in.Name, Price: in.Price, Quantity: in.Quantity, Category: in.Category}, nil
}

func (p fakeProducts) Patch(ctx context.Context, id int, patch any) (model.Product, error) {
	body, _ := json.Marshal(patch)
	if p.f.entered != nil {
		p.f.entered <- struct{}{}
	}
	if p.f.gate != nil {
		select {
		case <-p.f.gate:
		case <-ctx.Done():
			return model.Product{}, ctx.Err()
		}
	}
	if err := p.f.record("PATCH product %d %s", id, body); err != nil {
		return model.Product{}, err
	}
	p.f.mu.Lock()
	defer p.f.mu.Unlock()
	for i, prod := range p.f.products {
		if prod.ID == id {
			var pp model.ProductPatch
			_ = json.Unmarshal(body, &pp)
			p.f.products[i] = pp.Apply(prod)
			return p.f.products[i], nil
		}
	}
	return model.Product{}, &api.APIError{Status: 404, Message: "not found"}
}

func (p fakeProducts) Delete(_ context.Context, id int) error {
	return p.f.record("DELETE product %d", id)
}

type fakeCategories struct{ f *fakeBackend }

func (c fakeCategories) List(context.Context) ([]model.Category, error) {
	if err := c.f.record("GET categories"); err != nil {
		return nil, err
	}
	return append([]model.Category(nil), c.f.categories...), nil
}

func (c fakeCategories) Create(_ context.Context, in model.CategoryInput) (model.Category, error) {
	if err := c.f.record("POST category %s", in.Name); err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: c.f.id(), Name: in.Name, Description: in.Description}, nil
}

func (c fakeCategories) Put(_ context.Context, id int, in model.CategoryInput) (model.Category, error) {
	if err := c.f.record("PUT category %d %s", id, in.Name); err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: id, Name: in.Name, Description: in.Description}, nil
}

func (c fakeCategories) Delete(_ context.Context, id int) error {
	return c.f.record("DELETE category %d", id)
}

type fakeReviews struct{ f *fakeBackend }

func (r fakeReviews) ByProduct(_ context.Context, product int) ([]model.Review, error) {
	if err := r.f.record("GET reviews %d", product); err != nil {
		return nil, err
	}
	var out []model.Review
	for _, rv := range r.f.reviews {
		if rv.Product == product {
			out = append(out, rv)
		}
	}
	return out, nil
}

type fakeCustomers struct{ f *fakeBackend }

func (c fakeCustomers) List(context.Context) ([]model.Customer, error) {
	if err := c.f.record("GET customers"); err != nil {
		return nil, err
	}
	return append([]model.Customer(nil), c.f.customers...), nil
}

func (c fakeCustomers) Put(_ context.Context, id int, in model.CustomerInput) (model.Customer, error) {
	if err := c.f.record("PUT customer %d", id); err != nil {
		return model.Customer{}, err
	}
	return model.Customer{ID: id, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, IsActive: in.IsActive}, nil
}

func (c fakeCustomers) Delete(_ context.Context, id int) error {
	return c.f.record("DELETE customer %d", id)
}

type fakeVendors struct{ f *fakeBackend }

func (v fakeVendors) List(context.Context) ([]model.Vendor, error) {
	if err := v.f.record("GET vendors"); err != nil {
		return nil, err
	}
	return append([]model.Vendor(nil), v.f.vendors...), nil
}

func (v fakeVendors) Put(_ context.Context, id int, in model.VendorInput) (model.Vendor, error) {
	if err := v.f.record("PUT vendor %d %s", id, in.Status); err != nil {
		return model.Vendor{}, err
	}
	return model.Vendor{
		ID: id, StoreName: in.StoreName, FirstName: in.FirstName, LastName: in.LastName,
		Email: in.Email, Status: in.Status, IsVerified: in.IsVerified,
	}, nil
}

func (v fakeVendors) Delete(_ context.Context, id int) error {
	return v.f.record("DELETE vendor %d", id)
}

type fakeOrders struct{ f *fakeBackend }

func (o fakeOrders) List(context.Context) ([]model.Order, error) {
	if err := o.f.record("GET orders"); err != nil {
		return nil, err
	}
	return append([]model.Order(nil), o.f.orders...), nil
}

func (o fakeOrders) Get(_ context.Context, id int) (model.Order, error) {
	if err := o.f.record("GET order %d", id); err != nil {
		return model.Order{}, err
	}
	for _, order := range o.f.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return model.Order{}, &api.APIError{Status: 404, Message: "not found"}
}

func (o fakeOrders) PatchItem(_ context.Context, id int, patch model.OrderItemPatch) (model.OrderItem, error) {
	if err := o.f.record("PATCH item %d %s", id, *patch.Status); err != nil {
		return model.OrderItem{}, err
	}
	for _, order := range o.f.orders {
		for _, item := range order.Items {
			if item.ID == id {
				item.Status = *patch.Status
				return item, nil
			}
		}
	}
	return model.OrderItem{}, &api.APIError{Status: 404, Message: "not found"}
}

func (o fakeOrders) DeleteItem(_ context.Context, id int) error {
	return o.f.record("DELETE item %d", id)
}

type fakeProfile struct{ f *fakeBackend }

func (p fakeProfile) Get(context.Context) (model.UserProfile, error) {
	if err := p.f.record("GET profile"); err != nil {
		return model.UserProfile{}, err
	}
	return p.f.profile, nil
}

func (p fakeProfile) Patch(_ context.Context, id int, patch model.ProfilePatch) (model.UserProfile, error) {
	if err := p.f.record("PATCH profile %d", id); err != nil {
		return model.UserProfile{}, err
	}
	prof := p.f.profile
	if patch.StoreName != nil {
		prof.StoreName = *patch.StoreName
	}
	if patch.Bio != nil {
		prof.Bio = *patch.Bio
	}
	return prof, nil
}

type fakeSales struct{ f *fakeBackend }

func (s fakeSales) List(context.Context) ([]model.VendorSale, error) {
	if err := s.f.record("GET sales"); err != nil {
		return nil, err
	}
	return append([]model.VendorSale(nil), s.f.sales...), nil
}

type fakeBanks struct{ f *fakeBackend }

func (b fakeBanks) List(context.Context) ([]model.Bank, error) {
	if err := b.f.record("GET banks"); err != nil {
		return nil, err
	}
	return b.f.banks, nil
}

func (b fakeBanks) VerifyAccount(_ context.Context, req model.AccountVerificationRequest) (model.AccountVerification, error) {
	if err := b.f.record("POST verify %s", req.AccountNumber); err != nil {
		return model.AccountVerification{}, err
	}
	return model.AccountVerification{AccountName: "ADA OBI"}, nil
}

type fakeAuth struct{ f *fakeBackend }

func (a fakeAuth) Login(_ context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if err := a.f.record("POST login %s", req.Email); err != nil {
		return model.LoginResponse{}, err
	}
	return model.LoginResponse{Token: a.f.token}, nil
}

func (a fakeAuth) Register(_ context.Context, reg model.Registration) (model.Message, error) {
	if err := a.f.record("POST register %s", reg.Email); err != nil {
		return model.Message{}, err
	}
	return model.Message{Message: "check your email"}, nil
}

func (a fakeAuth) VerifyEmail(_ context.Context, v model.EmailVerification) (model.Message, error) {
	if err := a.f.record("POST verify-email %s", v.Email); err != nil {
		return model.Message{}, err
	}
	return model.Message{Message: "verified"}, nil
}

func (a fakeAuth) PasswordReset(_ context.Context, r model.PasswordReset) (model.Message, error) {
	if err := a.f.record("POST password-reset %s", r.Email); err != nil {
		return model.Message{}, err
	}
	return model.Message{Detail: "sent"}, nil
}

func (a fakeAuth) PasswordResetConfirm(_ context.Context, uid, token string, _ model.PasswordResetConfirm) (model.Message, error) {
	if err := a.f.record("POST password-reset-confirm %s %s", uid, token); err != nil {
		return model.Message{}, err
	}
	return model.Message{Detail: "reset"}, nil
}

type fakeSupport struct{ f *fakeBackend }

func (s fakeSupport) Create(_ context.Context, req model.SupportRequest) (model.Message, error) {
	if err := s.f.record("POST support %s", req.Subject); err != nil {
		return model.Message{}, err
	}
	return model.Message{Message: "received"}, nil
}
