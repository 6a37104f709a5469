package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/cli"
	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/ops"
)

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"product"},
	Short:   "Manage your products",
}

func init() {
	rootCmd.AddCommand(productsCmd)
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long: `List your products.

  --category  Fetch only one category (id or name prefix)
  -s, --search  Filter by name, id or category name

Examples:
  vendorctl products list
  vendorctl products list --category shoes
  vendorctl products list -s sneak`,
	Args: cobra.NoArgs,
	RunE: runProductsList,
}

var (
	productsCategory string
	productsSearch   string
)

func init() {
	productsListCmd.Flags().StringVar(&productsCategory, "category", "", "only this category (id or name)")
	productsListCmd.Flags().StringVarP(&productsSearch, "search", "s", "", "filter by name, id or category")
	productsCmd.AddCommand(productsListCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	category := 0
	if productsCategory != "" {
		if category, err = resolveCategory(ctx, a, productsCategory); err != nil {
			return err
		}
	}

	products := ops.NewProducts(a.backend, a.opts)
	if err := products.Load(ctx, category); err != nil {
		return err
	}
	products.SetQuery(productsSearch)
	return writeProducts(a, products.View())
}

var productsAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List products currently on sale",
	Args:  cobra.NoArgs,
	RunE:  runProductsAvailable,
}

var availableSearch string

func init() {
	productsAvailableCmd.Flags().StringVarP(&availableSearch, "search", "s", "", "filter by name, id or category")
	productsCmd.AddCommand(productsAvailableCmd)
}

func runProductsAvailable(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	products := ops.NewProducts(a.backend, a.opts)
	if err := products.LoadAvailable(cmd.Context()); err != nil {
		return err
	}
	products.SetQuery(availableSearch)
	return writeProducts(a, products.View())
}

func writeProducts(a *app, items []model.Product) error {
	return a.writeList(items, len(items), "No products found.", func() *cli.Table {
		t := cli.NewTable("ID", "NAME", "CATEGORY", "PRICE", "STOCK", "STATUS")
		t.SetMaxWidth(1, cli.DefaultMaxNameWidth)
		for _, p := range items {
			t.AddRow(
				strconv.Itoa(p.ID),
				p.Name,
				p.CategoryName,
				p.Price.StringFixed(2),
				cli.Stock(p),
				string(p.Status),
			)
		}
		return t
	})
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Long: `Add a product to your catalog.

Example:
  vendorctl products add --name "Ankara Tote" --price 45.00 --quantity 12 --category bags`,
	Args: cobra.NoArgs,
	RunE: runProductsAdd,
}

var (
	productName        string
	productDescription string
	productPrice       string
	productQuantity    int
	productCategory    string
	productStatus      string
)

func init() {
	addProductFlags(productsAddCmd)
	productsCmd.AddCommand(productsAddCmd)
}

func addProductFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&productName, "name", "n", "", "product name")
	f.StringVarP(&productDescription, "description", "d", "", "description")
	f.StringVar(&productPrice, "price", "", "unit price, e.g. 19.99")
	f.IntVarP(&productQuantity, "quantity", "q", 0, "units in stock")
	f.StringVar(&productCategory, "category", "", "category (id or name)")
	f.StringVar(&productStatus, "status", "", "status: "+strings.Join(model.ProductStatuses, ", "))
	cmd.RegisterFlagCompletionFunc("status", completeChoices(model.ProductStatuses))
}

func runProductsAdd(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	in := model.ProductInput{
		Name:        productName,
		Description: strings.TrimSpace(productDescription),
		Quantity:    productQuantity,
	}
	if productPrice != "" {
		if in.Price, err = parsePrice(productPrice); err != nil {
			return err
		}
	}
	if productCategory != "" {
		if in.Category, err = resolveCategory(ctx, a, productCategory); err != nil {
			return err
		}
	}
	if productStatus != "" {
		s, err := cli.MatchChoice("status", productStatus, model.ProductStatuses)
		if err != nil {
			return err
		}
		in.Status = model.ProductStatus(s)
	}

	p, err := ops.NewProducts(a.backend, a.opts).Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("Created product %d: %s\n", p.ID, p.Name)
	return nil
}

var productsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a product",
	Long: `Edit a product. Only the fields you pass are sent.

Examples:
  vendorctl products edit 12 --price 39.50
  vendorctl products edit 12 --status inactive
  vendorctl products edit 12 -i              # open in $EDITOR`,
	Args: cobra.ExactArgs(1),
	RunE: runProductsEdit,
}

var productInteractive bool

func init() {
	addProductFlags(productsEditCmd)
	productsEditCmd.Flags().BoolVarP(&productInteractive, "interactive", "i", false, "edit in $EDITOR")
	productsCmd.AddCommand(productsEditCmd)
}

// productDoc is the editable form of a product. Price is text so the
// editor shows exactly what the server sent.
type productDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Quantity    int    `yaml:"quantity"`
	Status      string `yaml:"status"`
	Category    int    `yaml:"category"`
}

func newProductDoc(p model.Product) productDoc {
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Quantity:    p.Quantity,
		Status:      string(p.Status),
		Category:    p.Category,
	}
}

// diff returns a patch holding the fields of d that differ from base.
func (d productDoc) diff(base productDoc) (model.ProductPatch, error) {
	var patch model.ProductPatch
	if name := strings.TrimSpace(d.Name); name != base.Name {
		patch.Name = &name
	}
	if desc := strings.TrimSpace(d.Description); desc != strings.TrimSpace(base.Description) {
		patch.Description = &desc
	}
	if d.Price != base.Price {
		price, err := parsePrice(d.Price)
		if err != nil {
			return patch, err
		}
		patch.Price = &price
	}
	if d.Quantity != base.Quantity {
		patch.Quantity = &d.Quantity
	}
	if d.Status != base.Status {
		s := model.ProductStatus(strings.TrimSpace(d.Status))
		patch.Status = &s
	}
	if d.Category != base.Category {
		patch.Category = &d.Category
	}
	return patch, nil
}

func runProductsEdit(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("product", args[0])
	if err != nil {
		return err
	}

	products := ops.NewProducts(a.backend, a.opts)
	if err := products.Load(ctx, 0); err != nil {
		return err
	}
	current, ok := products.Get(id)
	if !ok {
		return &cli.NotFoundError{Type: "product", ID: args[0]}
	}

	var patch model.ProductPatch
	if productInteractive {
		base := newProductDoc(current)
		edited := base
		if err := cli.EditYAML(ctx, base, &edited); err != nil {
			if errors.Is(err, cli.ErrUnchanged) {
				fmt.Println("No changes made.")
				return nil
			}
			return err
		}
		if patch, err = edited.diff(base); err != nil {
			return err
		}
	} else if patch, err = productPatchFromFlags(ctx, cmd, a); err != nil {
		return err
	}

	p, err := products.Edit(ctx, id, patch)
	if err != nil {
		return notFound(err)
	}
	fmt.Printf("Updated product %d: %s\n", p.ID, p.Name)
	return nil
}

func productPatchFromFlags(ctx context.Context, cmd *cobra.Command, a *app) (model.ProductPatch, error) {
	f := cmd.Flags()
	var patch model.ProductPatch
	if f.Changed("name") {
		name := strings.TrimSpace(productName)
		patch.Name = &name
	}
	if f.Changed("description") {
		desc := strings.TrimSpace(productDescription)
		patch.Description = &desc
	}
	if f.Changed("price") {
		price, err := parsePrice(productPrice)
		if err != nil {
			return patch, err
		}
		patch.Price = &price
	}
	if f.Changed("quantity") {
		q := productQuantity
		patch.Quantity = &q
	}
	if f.Changed("status") {
		s, err := cli.MatchChoice("status", productStatus, model.ProductStatuses)
		if err != nil {
			return patch, err
		}
		status := model.ProductStatus(s)
		patch.Status = &status
	}
	if f.Changed("category") {
		c, err := resolveCategory(ctx, a, productCategory)
		if err != nil {
			return patch, err
		}
		patch.Category = &c
	}
	return patch, nil
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsDelete,
}

func init() {
	productsCmd.AddCommand(productsDeleteCmd)
}

func runProductsDelete(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("product", args[0])
	if err != nil {
		return err
	}

	products := ops.NewProducts(a.backend, a.opts)
	if err := products.Load(ctx, 0); err != nil {
		return err
	}
	p, ok := products.Get(id)
	if !ok {
		return &cli.NotFoundError{Type: "product", ID: args[0]}
	}
	if err := products.Delete(ctx, id); err != nil {
		return cancelled(err)
	}
	fmt.Printf("Deleted product %d: %s\n", p.ID, p.Name)
	return nil
}

var productsReviewsCmd = &cobra.Command{
	Use:   "reviews <id>",
	Short: "Show customer reviews of a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsReviews,
}

func init() {
	productsCmd.AddCommand(productsReviewsCmd)
}

func runProductsReviews(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	id, err := parseID("product", args[0])
	if err != nil {
		return err
	}
	reviews, err := ops.NewProducts(a.backend, a.opts).Reviews(cmd.Context(), id)
	if err != nil {
		return err
	}
	return a.writeList(reviews, len(reviews), "No reviews yet.", func() *cli.Table {
		t := cli.NewTable("RATING", "USER", "DATE", "COMMENT")
		t.SetMaxWidth(3, 60)
		for _, r := range reviews {
			date := ""
			if r.CreatedAt != nil {
				date = r.CreatedAt.Format("2006-01-02")
			}
			t.AddRow(stars(r.Rating), r.User, date, r.Comment)
		}
		return t
	})
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return cli.Yellow(strings.Repeat("*", n)) + strings.Repeat(".", 5-n)
}

// parsePrice parses a decimal amount.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, &cli.ValidationError{Field: "price", Message: fmt.Sprintf("%q is not a number", s)}
	}
	return d, nil
}

// resolveCategory turns a category id or unique name prefix into an id.
// Names need the category list, so only they cost a request.
func resolveCategory(ctx context.Context, a *app, ref string) (int, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		return id, nil
	}
	categories := ops.NewCategories(a.backend, a.opts)
	if err := categories.Load(ctx); err != nil {
		return 0, err
	}
	var names []string
	for _, c := range categories.Items() {
		names = append(names, c.Name)
	}
	name, err := cli.MatchChoice("category", ref, names)
	if err != nil {
		return 0, err
	}
	for _, c := range categories.Items() {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return 0, &cli.NotFoundError{Type: "category", ID: ref}
}
