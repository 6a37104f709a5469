package ops

import (
	"context"
	"strconv"
	"strings"

	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/resource"
)

// ProductMatch matches products by name, id or category name.
var ProductMatch = resource.MatchFields(
	func(p model.Product) string { return p.Name },
	resource.IDField[model.Product],
	func(p model.Product) string { return p.CategoryName },
)

// Products is the product catalog screen.
type Products struct {
	*resource.Screen[model.Product]
	api     ProductAPI
	reviews ReviewAPI
}

func NewProducts(b Backend, opts resource.Options) *Products {
	return &Products{
		Screen:  resource.NewScreen("product", ProductMatch, opts),
		api:     b.Products,
		reviews: b.Reviews,
	}
}

// Load fetches every product, or only those in category when it is non-zero.
func (p *Products) Load(ctx context.Context, category int) error {
	if category == 0 {
		return p.Screen.Load(ctx, p.api.List)
	}
	return p.Screen.Load(ctx, func(ctx context.Context) ([]model.Product, error) {
		return p.api.ByCategory(ctx, category)
	})
}

// LoadAvailable fetches only products currently on sale.
func (p *Products) LoadAvailable(ctx context.Context) error {
	return p.Screen.Load(ctx, p.api.Available)
}

func (p *Products) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	return p.Screen.Create(ctx, in, func(ctx context.Context) (model.Product, error) {
		return p.api.Create(ctx, in)
	})
}

// Edit sends a partial update. The product must be on the screen.
func (p *Products) Edit(ctx context.Context, id int, patch model.ProductPatch) (model.Product, error) {
	if patch.Empty() {
		return model.Product{}, ErrNothingToChange
	}
	current, ok := p.Get(id)
	if !ok {
		return model.Product{}, &NotFoundError{Kind: "product", ID: id}
	}
	return p.Screen.Update(ctx, id, patch, patchProduct(p.api, current, patch))
}

func (p *Products) Delete(ctx context.Context, id int) error {
	label := "product " + strconv.Itoa(id)
	if current, ok := p.Get(id); ok {
		label = current.Name
	}
	return p.Screen.Delete(ctx, id, resource.DeletePrompt("product", label), func(ctx context.Context) error {
		return p.api.Delete(ctx, id)
	})
}

// Reviews lists the reviews left on a product.
func (p *Products) Reviews(ctx context.Context, id int) ([]model.Review, error) {
	end := p.Busy().Begin(resource.Key{Op: resource.OpLoad, ID: id})
	defer end()
	return p.reviews.ByProduct(ctx, id)
}

// patchProduct sends patch and falls back to applying it locally when the
// server answers with no body.
func patchProduct(svc ProductAPI, current model.Product, patch model.ProductPatch) func(context.Context) (model.Product, error) {
	return func(ctx context.Context) (model.Product, error) {
		updated, err := svc.Patch(ctx, current.ID, patch)
		return orApplied(updated, err, patch.Apply(current))
	}
}

// CategoryMatch matches categories by name or id.
var CategoryMatch = resource.MatchFields(
	func(c model.Category) string { return c.Name },
	resource.IDField[model.Category],
)

// Categories is the category screen.
type Categories struct {
	*resource.Screen[model.Category]
	api CategoryAPI
}

func NewCategories(b Backend, opts resource.Options) *Categories {
	return &Categories{
		Screen: resource.NewScreen("category", CategoryMatch, opts),
		api:    b.Categories,
	}
}

func (c *Categories) Load(ctx context.Context) error {
	return c.Screen.Load(ctx, c.api.List)
}

// Create adds a category. A blank name fails validation and nothing is sent.
func (c *Categories) Create(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	return c.Screen.Create(ctx, in, func(ctx context.Context) (model.Category, error) {
		return c.api.Create(ctx, in)
	})
}

func (c *Categories) Edit(ctx context.Context, id int, in model.CategoryInput) (model.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	current, ok := c.Get(id)
	if !ok {
		return model.Category{}, &NotFoundError{Kind: "category", ID: id}
	}
	return c.Screen.Update(ctx, id, in, func(ctx context.Context) (model.Category, error) {
		got, err := c.api.Put(ctx, id, in)
		return orApplied(got, err, in.Apply(current))
	})
}

func (c *Categories) Delete(ctx context.Context, id int) error {
	label := "category " + strconv.Itoa(id)
	if current, ok := c.Get(id); ok {
		label = current.Name
	}
	return c.Screen.Delete(ctx, id, resource.DeletePrompt("category", label), func(ctx context.Context) error {
		return c.api.Delete(ctx, id)
	})
}
