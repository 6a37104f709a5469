package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/vendorctl/internal/model"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Auth   string
	ReqID  string
	Body   string
}

type fakeServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{status: http.StatusOK, body: "[]"}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		fs.requests = append(fs.requests, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			ReqID:  r.Header.Get(RequestIDHeader),
			Body:   string(b),
		})
		status, body := fs.status, fs.body
		fs.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) reply(status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.status, fs.body = status, body
}

func (fs *fakeServer) last(t *testing.T) recorded {
	t.Helper()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.NotEmpty(t, fs.requests)
	return fs.requests[len(fs.requests)-1]
}

func newTestClient(t *testing.T, fs *fakeServer, token string) *Client {
	t.Helper()
	c, err := New(Options{BaseURL: fs.URL, Timeout: 5 * time.Second, Tokens: StaticToken(token)})
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"relative", "/api"},
		{"no host", "http://"},
		{"bad scheme", "ftp://example.com"},
		{"unparseable", "http://[::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options{BaseURL: tt.url})
			assert.Error(t, err)
		})
	}
}

func TestBearerTokenAndRequestID(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "abc123")

	_, err := c.Products.List(context.Background())
	require.NoError(t, err)
	first := fs.last(t)
	assert.Equal(t, "Bearer abc123", first.Auth)
	assert.Len(t, first.ReqID, 36)

	_, err = c.Products.List(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ReqID, fs.last(t).ReqID)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")

	_, err := c.Categories.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fs.last(t).Auth)
}

func TestEndpointPaths(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "tok")
	ctx := context.Background()
	status := model.OrderStatusShipped

	tests := []struct {
		name   string
		body   string
		call   func() error
		method string
		path   string
		query  string
	}{
		{"products list", "[]", func() error { _, err := c.Products.List(ctx); return err }, "GET", "/api/product/", ""},
		{"products available", "[]", func() error { _, err := c.Products.Available(ctx); return err }, "GET", "/api/product/available_products/", ""},
		{"products by category", "[]", func() error { _, err := c.Products.ByCategory(ctx, 4); return err }, "GET", "/api/product/search_by_category/", "category=4"},
		{"products search", "[]", func() error { _, err := c.Products.Search(ctx, "mug"); return err }, "GET", "/api/product/", "search=mug"},
		{"products create", `{"id":1}`, func() error {
			_, err := c.Products.Create(ctx, model.ProductInput{Name: "Mug", Price: decimal.NewFromInt(3), Category: 1})
			return err
		}, "POST", "/api/product/", ""},
		{"products patch", `{"id":3}`, func() error { _, err := c.Products.Patch(ctx, 3, map[string]int{"quantity": 11}); return err }, "PATCH", "/api/product/3/", ""},
		{"products delete", "", func() error { return c.Products.Delete(ctx, 3) }, "DELETE", "/api/product/3/", ""},
		{"categories list", "[]", func() error { _, err := c.Categories.List(ctx); return err }, "GET", "/api/category/", ""},
		{"categories create", `{"id":2}`, func() error { _, err := c.Categories.Create(ctx, model.CategoryInput{Name: "Toys"}); return err }, "POST", "/api/category/", ""},
		{"categories put", `{"id":2}`, func() error { _, err := c.Categories.Put(ctx, 2, model.CategoryInput{Name: "Toys"}); return err }, "PUT", "/api/category/2/", ""},
		{"categories delete", "", func() error { return c.Categories.Delete(ctx, 2) }, "DELETE", "/api/category/2/", ""},
		{"customers list", "[]", func() error { _, err := c.Customers.List(ctx); return err }, "GET", "/api/customer/", ""},
		{"customers put", `{"id":5}`, func() error { _, err := c.Customers.Put(ctx, 5, model.CustomerInput{}); return err }, "PUT", "/api/customer/5/", ""},
		{"customers delete", "", func() error { return c.Customers.Delete(ctx, 5) }, "DELETE", "/api/customer/5", ""},
		{"vendors list", "[]", func() error { _, err := c.Vendors.List(ctx); return err }, "GET", "/api/vendor/", ""},
		{"vendors put", `{"id":9}`, func() error { _, err := c.Vendors.Put(ctx, 9, model.VendorInput{}); return err }, "PUT", "/api/vendor/9/", ""},
		{"vendors delete", "", func() error { return c.Vendors.Delete(ctx, 9) }, "DELETE", "/api/vendor/9/", ""},
		{"orders list", "[]", func() error { _, err := c.Orders.List(ctx); return err }, "GET", "/api/orders/", ""},
		{"orders get", `{"id":7}`, func() error { _, err := c.Orders.Get(ctx, 7); return err }, "GET", "/api/orders/7", ""},
		{"order item patch", `{"id":8}`, func() error {
			_, err := c.Orders.PatchItem(ctx, 8, model.OrderItemPatch{Status: &status})
			return err
		}, "PATCH", "/api/order-items/8/", ""},
		{"order item delete", "", func() error { return c.Orders.DeleteItem(ctx, 8) }, "DELETE", "/api/order-items/8/", ""},
		{"profile get", `[{"id":1}]`, func() error { _, err := c.Profile.Get(ctx); return err }, "GET", "/api/user-profile/", ""},
		{"profile patch", `{"id":1}`, func() error { _, err := c.Profile.Patch(ctx, 1, model.ProfilePatch{}); return err }, "PATCH", "/api/user-profile/1/", ""},
		{"sales list", "[]", func() error { _, err := c.Sales.List(ctx); return err }, "GET", "/api/vendor-sales/", ""},
		{"banks list", "[]", func() error { _, err := c.Banks.List(ctx); return err }, "GET", "/api/banks/", ""},
		{"banks verify", `{"account_name":"A"}`, func() error {
			_, err := c.Banks.VerifyAccount(ctx, model.AccountVerificationRequest{AccountNumber: "0123456789", BankCode: "058"})
			return err
		}, "POST", "/api/banks/verify_account/", ""},
		{"login", `{"token":"t"}`, func() error {
			_, err := c.Auth.Login(ctx, model.LoginRequest{Email: "a@b.c", Password: "x"})
			return err
		}, "POST", "/api/login/", ""},
		{"register", `{"message":"ok"}`, func() error { _, err := c.Auth.Register(ctx, model.Registration{}); return err }, "POST", "/api/user-vendor/register/", ""},
		{"verify email", `{"message":"ok"}`, func() error { _, err := c.Auth.VerifyEmail(ctx, model.EmailVerification{}); return err }, "POST", "/api/user/verify-email/", ""},
		{"password reset", "", func() error { _, err := c.Auth.PasswordReset(ctx, model.PasswordReset{}); return err }, "POST", "/api/password-reset/", ""},
		{"password reset confirm", `{"detail":"done"}`, func() error {
			_, err := c.Auth.PasswordResetConfirm(ctx, "MQ", "abc-123", model.PasswordResetConfirm{})
			return err
		}, "POST", "/api/password-reset-confirm/MQ/abc-123/", ""},
		{"reviews by product", "[]", func() error { _, err := c.Reviews.ByProduct(ctx, 3); return err }, "GET", "/api/review/by_product/", "product_id=3"},
		{"support", `{"message":"received"}`, func() error { _, err := c.Support.Create(ctx, model.SupportRequest{}); return err }, "POST", "/api/support/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := http.StatusOK
			if tt.body == "" {
				status = http.StatusNoContent
			}
			fs.reply(status, tt.body)
			require.NoError(t, tt.call())
			got := fs.last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.query, got.Query)
		})
	}
}

func TestPatchSendsOnlySetFields(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "tok")
	fs.reply(http.StatusOK, `{"id":3,"name":"Mug","quantity":11}`)

	qty := 11
	p, err := c.Products.Patch(context.Background(), 3, model.ProductPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 11, p.Quantity)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(fs.last(t).Body), &sent))
	assert.Equal(t, map[string]any{"quantity": float64(11)}, sent)
}

func TestListEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, []int{1, 2}},
		{"results envelope", `{"count":1,"results":[{"id":3}]}`, []int{3}},
		{"data envelope", `{"data":[{"id":4}]}`, []int{4}},
		{"empty", `[]`, []int{}},
		{"empty body", ``, []int{}},
		{"null", `null`, []int{}},
		{"null results", `{"count":0,"results":null}`, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeServer(t)
			c := newTestClient(t, fs, "")
			fs.reply(http.StatusOK, tt.body)

			got, err := c.Categories.List(context.Background())
			require.NoError(t, err)
			ids := []int{}
			for _, cat := range got {
				ids = append(ids, cat.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListRejectsNonList(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")
	fs.reply(http.StatusOK, `{"id":1}`)

	_, err := c.Categories.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a list")
}

func TestProfileUnwrapsArrayOfOne(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "tok")
	fs.reply(http.StatusOK, `[{"id":12,"first_name":"Ada","last_name":"Obi","email":"ada@example.com"}]`)

	p, err := c.Profile.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, p.ID)
	assert.Equal(t, "Ada Obi", p.FullName())
}

func TestProfileEmptyArray(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "tok")
	fs.reply(http.StatusOK, `[]`)

	_, err := c.Profile.Get(context.Background())
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestLoginWithoutToken(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")
	fs.reply(http.StatusOK, `{"user_id":1}`)

	_, err := c.Auth.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "pw"})
	assert.Error(t, err)
}

func TestPasswordResetConfirmRequiresUIDAndToken(t *testing.T) {
	fs := newFakeServer(t)
	c := newTestClient(t, fs, "")

	_, err := c.Auth.PasswordResetConfirm(context.Background(), "", "tok", model.PasswordResetConfirm{})
	assert.Error(t, err)
	fs.mu.Lock()
	assert.Empty(t, fs.requests)
	fs.mu.Unlock()
}

func TestRateLimitedClientStillSends(t *testing.T) {
	fs := newFakeServer(t)
	c, err := New(Options{BaseURL: fs.URL, RateLimit: 100})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.Sales.List(context.Background())
		require.NoError(t, err)
	}
	fs.mu.Lock()
	assert.Len(t, fs.requests, 3)
	fs.mu.Unlock()
}
