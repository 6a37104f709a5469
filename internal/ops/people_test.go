package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/resource"
)

func seedVendors(f *fakeBackend) {
	f.vendors = []model.Vendor{
		{ID: 4, StoreName: "Crafty Corner", FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", Status: model.VendorStatusApproved},
		{ID: 9, StoreName: "Gadget Hub", FirstName: "Tunde", LastName: "Bello", Email: "tunde@example.com", Status: model.VendorStatusPending},
	}
}

func TestVendorDeleteConfirmed(t *testing.T) {
	f := newFake()
	seedVendors(f)
	rec := &resource.Recorder{}
	v := NewVendors(f.backend(), resource.Options{Confirm: resource.AlwaysConfirm, Notify: rec})
	require.NoError(t, v.Load(context.Background()))

	require.NoError(t, v.Delete(context.Background(), 9))
	assert.Equal(t, []int{4}, ids(v.Items()))
	assert.Equal(t, []string{"GET vendors", "DELETE vendor 9"}, f.Calls())
	assert.Equal(t, []string{"vendor 9 deleted"}, rec.Successes)
}

func TestVendorDeleteDeclined(t *testing.T) {
	f := newFake()
	seedVendors(f)
	v := NewVendors(f.backend(), resource.Options{Confirm: resource.DeclineAll})
	require.NoError(t, v.Load(context.Background()))

	err := v.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, resource.ErrDeclined)
	assert.Equal(t, []int{4, 9}, ids(v.Items()))
	assert.Equal(t, []string{"GET vendors"}, f.Calls())
}

func TestVendorDeleteFailureKeepsRecord(t *testing.T) {
	f := newFake()
	seedVendors(f)
	rec := &resource.Recorder{}
	v := NewVendors(f.backend(), resource.Options{Confirm: resource.AlwaysConfirm, Notify: rec})
	require.NoError(t, v.Load(context.Background()))

	f.failOn = []string{"DELETE"}
	err := v.Delete(context.Background(), 9)
	require.ErrorIs(t, err, errServer)
	assert.Equal(t, []int{4, 9}, ids(v.Items()))
	require.Len(t, rec.Failures, 1)
	assert.Equal(t, "delete vendor 9", rec.Failures[0].Action)
}

func TestVendorSetStatus(t *testing.T) {
	f := newFake()
	seedVendors(f)
	v := NewVendors(f.backend(), resource.Options{})
	require.NoError(t, v.Load(context.Background()))

	got, err := v.SetStatus(context.Background(), 9, model.VendorStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, model.VendorStatusSuspended, got.Status)
	assert.Equal(t, "Gadget Hub", got.StoreName)
	assert.Contains(t, f.Calls(), "PUT vendor 9 suspended")

	_, err = v.SetStatus(context.Background(), 9, model.VendorStatus("banned"))
	var verr *resource.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestVendorFilter(t *testing.T) {
	f := newFake()
	seedVendors(f)
	v := NewVendors(f.backend(), resource.Options{})
	require.NoError(t, v.Load(context.Background()))

	tests := []struct {
		query string
		want  []int
	}{
		{"gadget", []int{9}},
		{"ada obi", []int{4}},
		{"@example.com", []int{4, 9}},
		{"9", []int{9}},
	}
	for _, tt := range tests {
		v.SetQuery(tt.query)
		assert.Equal(t, tt.want, ids(v.View()), tt.query)
	}
}

func TestCustomers(t *testing.T) {
	f := newFake()
	f.customers = []model.Customer{
		{ID: 5, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", IsActive: true},
		{ID: 6, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
	}
	c := NewCustomers(f.backend(), resource.Options{Confirm: resource.AlwaysConfirm})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	c.SetQuery("grace hop")
	assert.Equal(t, []int{5}, ids(c.View()))

	in := f.customers[1].Input()
	in.IsActive = true
	got, err := c.Edit(ctx, 6, in)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	in.Email = "not-an-email"
	_, err = c.Edit(ctx, 6, in)
	var verr *resource.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Message("email"))

	require.NoError(t, c.Delete(ctx, 5))
	assert.Equal(t, []int{6}, ids(c.Items()))
	assert.Equal(t, []string{"GET customers", "PUT customer 6", "DELETE customer 5"}, f.Calls())
}

func TestPeopleEditEmptyReplyAppliesLocally(t *testing.T) {
	ctx := context.Background()

	t.Run("customer", func(t *testing.T) {
		f := newFake()
		f.customers = []model.Customer{{ID: 6, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"}}
		c := NewCustomers(f.backend(), resource.Options{})
		require.NoError(t, c.Load(ctx))

		f.emptyOn = []string{"PUT customer"}
		in := f.customers[0].Input()
		in.IsActive = true
		got, err := c.Edit(ctx, 6, in)
		require.NoError(t, err)
		assert.Equal(t, 6, got.ID)
		assert.True(t, got.IsActive)
		local, _ := c.Get(6)
		assert.True(t, local.IsActive)
	})

	t.Run("vendor status", func(t *testing.T) {
		f := newFake()
		seedVendors(f)
		v := NewVendors(f.backend(), resource.Options{})
		require.NoError(t, v.Load(ctx))

		f.emptyOn = []string{"PUT vendor"}
		got, err := v.SetStatus(ctx, 9, model.VendorStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, model.VendorStatusApproved, got.Status)
		assert.Equal(t, "Gadget Hub", got.StoreName)
		local, _ := v.Get(9)
		assert.Equal(t, model.VendorStatusApproved, local.Status)
	})
}
