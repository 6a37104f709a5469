package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jacksmith/vendorctl/internal/model"
)

const (
	testToken    = "tok-123"
	testEmail    = "ada@shop.example"
	testPassword = "hunter2222"
)

// shop is an in-memory vendor API for command tests.
type shop struct {
	t *testing.T

	mu         sync.Mutex
	requests   []string
	products   []model.Product
	categories []model.Category
	customers  []model.Customer
	vendors    []model.Vendor
	orders     []model.Order
	sales      []model.VendorSale
	profile    model.UserProfile
	banks      []model.Bank
	failAll    int // when set, every authenticated request answers this status
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func newShop(t *testing.T) *shop {
	return &shop{
		t: t,
		categories: []model.Category{
			{ID: 1, Name: "Bags"},
			{ID: 2, Name: "Shoes"},
			{ID: 3, Name: "Accessories"},
		},
		products: []model.Product{
			{ID: 3, Name: "Ankara Tote", Quantity: 10, Price: decimal.RequireFromString("45.00"), Category: 1, CategoryName: "Bags", Status: model.ProductStatusActive},
			{ID: 4, Name: "Leather Sandals", Quantity: 0, Price: decimal.RequireFromString("30.00"), Category: 2, CategoryName: "Shoes", Status: model.ProductStatusActive},
			{ID: 5, Name: "Beaded Necklace", Quantity: 2, Price: decimal.RequireFromString("12.50"), Category: 3, CategoryName: "Accessories", Status: model.ProductStatusInactive},
		},
		customers: []model.Customer{
			{ID: 31, FirstName: "Chidi", LastName: "Okeke", Email: "chidi@example.com", IsActive: true},
			{ID: 32, FirstName: "Funke", LastName: "Adeyemi", Email: "funke@example.com", IsActive: true},
		},
		vendors: []model.Vendor{
			{ID: 9, StoreName: "Gadget Hub", FirstName: "Emeka", LastName: "Nwosu", Email: "emeka@gadgets.example", Status: model.VendorStatusPending},
			{ID: 10, StoreName: "Ada's Fabrics", FirstName: "Ada", LastName: "Obi", Email: testEmail, Status: model.VendorStatusApproved, IsVerified: true},
		},
		orders: []model.Order{
			{
				ID: 1, CustomerName: "Chidi Okeke", Status: model.OrderStatusProcessing,
				TotalAmount: decimal.RequireFromString("102.50"), CreatedAt: dayPtr("2026-03-02"),
				Items: []model.OrderItem{
					{ID: 11, Product: 3, ProductName: "Ankara Tote", Quantity: 2, Price: decimal.RequireFromString("45.00"), Status: model.OrderStatusProcessing},
					{ID: 12, Product: 5, ProductName: "Beaded Necklace", Quantity: 1, Price: decimal.RequireFromString("12.50"), Status: model.OrderStatusDelivered},
				},
			},
			{
				ID: 2, CustomerName: "Funke Adeyemi", Status: model.OrderStatusDelivered,
				TotalAmount: decimal.RequireFromString("45.00"), CreatedAt: dayPtr("2026-04-10"),
				Items: []model.OrderItem{
					{ID: 13, Product: 3, ProductName: "Ankara Tote", Quantity: 1, Price: decimal.RequireFromString("45.00"), Status: model.OrderStatusDelivered},
				},
			},
		},
		sales: []model.VendorSale{
			{ID: 101, Order: 1, Product: 3, ProductName: "Ankara Tote", Quantity: 2, Amount: decimal.RequireFromString("90.00"), CreatedAt: day("2026-03-02")},
			{ID: 102, Order: 1, Product: 5, ProductName: "Beaded Necklace", Quantity: 1, Amount: decimal.RequireFromString("12.50"), CreatedAt: day("2026-03-05")},
			{ID: 103, Order: 2, Product: 3, ProductName: "Ankara Tote", Quantity: 1, Amount: decimal.RequireFromString("45.00"), CreatedAt: day("2026-04-10")},
		},
		profile: model.UserProfile{ID: 7, FirstName: "Ada", LastName: "Obi", Email: testEmail, StoreName: "Ada's Fabrics"},
		banks: []model.Bank{
			{ID: 1, Name: "Guaranty Trust Bank", Code: "058"},
			{ID: 2, Name: "Access Bank", Code: "044"},
		},
	}
}

// start serves the shop until the test ends.
func (s *shop) start() *httptest.Server {
	mux := http.NewServeMux()
	public := []string{
		"/api/login/",
		"/api/user-vendor/register/",
		"/api/user/verify-email/",
		"/api/password-reset",
		"/api/support/",
	}

	mux.HandleFunc("POST /api/login/", s.login)
	mux.HandleFunc("POST /api/user-vendor/register/", s.message("Registration successful. Check your email."))
	mux.HandleFunc("POST /api/user/verify-email/", s.message("Email verified."))
	mux.HandleFunc("POST /api/password-reset/", s.message(""))
	mux.HandleFunc("POST /api/password-reset-confirm/{uid}/{token}/", s.message("Password has been reset."))
	mux.HandleFunc("POST /api/support/", s.message("Thanks, we will be in touch."))

	mux.HandleFunc("GET /api/product/{$}", s.listProducts)
	mux.HandleFunc("GET /api/product/available_products/", s.availableProducts)
	mux.HandleFunc("GET /api/product/search_by_category/", s.productsByCategory)
	mux.HandleFunc("POST /api/product/{$}", s.createProduct)
	mux.HandleFunc("PATCH /api/product/{id}/", s.patchProduct)
	mux.HandleFunc("DELETE /api/product/{id}/", s.noContent)
	mux.HandleFunc("GET /api/review/by_product/", s.reviews)

	mux.HandleFunc("GET /api/category/{$}", func(w http.ResponseWriter, r *http.Request) { s.json(w, 200, s.categories) })
	mux.HandleFunc("POST /api/category/{$}", s.createCategory)
	mux.HandleFunc("PUT /api/category/{id}/", s.echoWithID)
	mux.HandleFunc("DELETE /api/category/{id}/", s.noContent)

	mux.HandleFunc("GET /api/customer/{$}", func(w http.ResponseWriter, r *http.Request) { s.json(w, 200, s.customers) })
	mux.HandleFunc("PUT /api/customer/{id}/", s.echoWithID)
	mux.HandleFunc("DELETE /api/customer/{id}", s.noContent)

	mux.HandleFunc("GET /api/vendor/{$}", func(w http.ResponseWriter, r *http.Request) { s.json(w, 200, s.vendors) })
	mux.HandleFunc("PUT /api/vendor/{id}/", s.echoWithID)
	mux.HandleFunc("DELETE /api/vendor/{id}/", s.noContent)

	mux.HandleFunc("GET /api/orders/{$}", func(w http.ResponseWriter, r *http.Request) { s.json(w, 200, s.orders) })
	mux.HandleFunc("GET /api/orders/{id}", s.getOrder)
	mux.HandleFunc("PATCH /api/order-items/{id}/", s.patchItem)
	mux.HandleFunc("DELETE /api/order-items/{id}/", s.noContent)

	mux.HandleFunc("GET /api/user-profile/{$}", func(w http.ResponseWriter, r *http.Request) {
		s.json(w, 200, []model.UserProfile{s.profile})
	})
	mux.HandleFunc("PATCH /api/user-profile/{id}/", s.patchProfile)
	mux.HandleFunc("GET /api/vendor-sales/", func(w http.ResponseWriter, r *http.Request) { s.json(w, 200, s.sales) })
	mux.HandleFunc("GET /api/banks/{$}", func(w http.ResponseWriter, r *http.Request) { s.json(w, 200, s.banks) })
	mux.HandleFunc("POST /api/banks/verify_account/", s.verifyAccount)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		line := r.Method + " " + r.URL.RequestURI()
		if len(body) > 0 {
			line += " " + strings.TrimSpace(string(body))
		}
		s.requests = append(s.requests, line)
		fail := s.failAll
		s.mu.Unlock()

		isPublic := false
		for _, prefix := range public {
			if strings.HasPrefix(r.URL.Path, prefix) {
				isPublic = true
			}
		}
		if !isPublic {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				s.json(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
				return
			}
			if fail != 0 {
				w.WriteHeader(fail)
				return
			}
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	s.t.Cleanup(srv.Close)
	return srv
}

// Requests returns the recorded "METHOD uri body" lines.
func (s *shop) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Matching returns the recorded requests starting with prefix.
func (s *shop) Matching(prefix string) []string {
	var out []string
	for _, r := range s.Requests() {
		if strings.HasPrefix(r, prefix) {
			out = append(out, r)
		}
	}
	return out
}

func (s *shop) json(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *shop) noContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *shop) message(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if text == "" {
			w.WriteHeader(http.StatusOK)
			return
		}
		s.json(w, http.StatusOK, map[string]string{"message": text})
	}
}

func (s *shop) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.Email != testEmail || req.Password != testPassword {
		s.json(w, http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Unable to log in with provided credentials."},
		})
		return
	}
	s.json(w, http.StatusOK, map[string]any{"token": testToken, "user_id": 7})
}

func (s *shop) listProducts(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("search"))
	var out []model.Product
	for _, p := range s.products {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	s.json(w, http.StatusOK, map[string]any{"count": len(out), "results": out})
}

func (s *shop) availableProducts(w http.ResponseWriter, r *http.Request) {
	var out []model.Product
	for _, p := range s.products {
		if p.InStock() && p.Status == model.ProductStatusActive {
			out = append(out, p)
		}
	}
	s.json(w, http.StatusOK, out)
}

func (s *shop) productsByCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get("category"))
	var out []model.Product
	for _, p := range s.products {
		if p.Category == id {
			out = append(out, p)
		}
	}
	s.json(w, http.StatusOK, out)
}

func (s *shop) createProduct(w http.ResponseWriter, r *http.Request) {
	var in model.ProductInput
	json.NewDecoder(r.Body).Decode(&in)
	p := model.Product{
		ID:       len(s.products) + 100,
		Name:     in.Name,
		Price:    in.Price,
		Quantity: in.Quantity,
		Category: in.Category,
		Status:   in.Status,
	}
	s.products = append(s.products, p)
	s.json(w, http.StatusCreated, p)
}

func (s *shop) patchProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	var patch model.ProductPatch
	json.NewDecoder(r.Body).Decode(&patch)
	for i, p := range s.products {
		if p.ID == id {
			s.products[i] = patch.Apply(p)
			s.json(w, http.StatusOK, s.products[i])
			return
		}
	}
	s.json(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *shop) reviews(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("product_id") != "3" {
		s.json(w, http.StatusOK, []model.Review{})
		return
	}
	s.json(w, http.StatusOK, []model.Review{
		{ID: 1, Product: 3, User: "chidi", Rating: 5, Comment: "Sturdy and bright", CreatedAt: dayPtr("2026-03-12")},
		{ID: 2, Product: 3, User: "funke", Rating: 3, Comment: "Smaller than expected"},
	})
}

func (s *shop) createCategory(w http.ResponseWriter, r *http.Request) {
	var c model.Category
	json.NewDecoder(r.Body).Decode(&c)
	c.ID = len(s.categories) + 1
	s.categories = append(s.categories, c)
	s.json(w, http.StatusCreated, c)
}

// echoWithID answers a PUT with the sent record plus its id.
func (s *shop) echoWithID(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	json.NewDecoder(r.Body).Decode(&body)
	id, _ := strconv.Atoi(r.PathValue("id"))
	body["id"] = id
	s.json(w, http.StatusOK, body)
}

func (s *shop) getOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	for _, o := range s.orders {
		if o.ID == id {
			s.json(w, http.StatusOK, o)
			return
		}
	}
	s.json(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *shop) patchItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	var patch model.OrderItemPatch
	json.NewDecoder(r.Body).Decode(&patch)
	for _, o := range s.orders {
		for _, it := range o.Items {
			if it.ID == id {
				if patch.Status != nil {
					it.Status = *patch.Status
				}
				it.Order = o.ID
				s.json(w, http.StatusOK, it)
				return
			}
		}
	}
	s.json(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *shop) patchProfile(w http.ResponseWriter, r *http.Request) {
	var patch map[string]string
	json.NewDecoder(r.Body).Decode(&patch)
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch k {
		case "store_name":
			s.profile.StoreName = patch[k]
		case "phone_number":
			s.profile.Phone = patch[k]
		case "bank_name":
			s.profile.BankName = patch[k]
		case "bank_code":
			s.profile.BankCode = patch[k]
		case "account_number":
			s.profile.AccountNumber = patch[k]
		case "account_name":
			s.profile.AccountName = patch[k]
		}
	}
	s.json(w, http.StatusOK, s.profile)
}

func (s *shop) verifyAccount(w http.ResponseWriter, r *http.Request) {
	var req model.AccountVerificationRequest
	json.NewDecoder(r.Body).Decode(&req)
	if req.AccountNumber != "0123456789" {
		s.json(w, http.StatusBadRequest, map[string]string{"error": "Could not resolve account"})
		return
	}
	s.json(w, http.StatusOK, map[string]string{"account_number": req.AccountNumber, "account_name": "ADA OBI"})
}
