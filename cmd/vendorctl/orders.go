package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/cli"
	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/ops"
)

var ordersCmd = &cobra.Command{
	Use:     "orders",
	Aliases: []string{"order"},
	Short:   "View orders and update their items",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Long: `List orders containing your products.

  -s, --search  Filter by order number, id, customer or status
  --open        Show only orders that are not delivered or cancelled

Examples:
  vendorctl orders list
  vendorctl orders list -s pending
  vendorctl orders list --open`,
	Args: cobra.NoArgs,
	RunE: runOrdersList,
}

var (
	ordersSearch string
	ordersOpen   bool
)

func init() {
	ordersListCmd.Flags().StringVarP(&ordersSearch, "search", "s", "", "filter by order number, customer or status")
	ordersListCmd.Flags().BoolVar(&ordersOpen, "open", false, "only orders still in progress")
	ordersCmd.AddCommand(ordersListCmd)
	rootCmd.AddCommand(ordersCmd)
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	orders := ops.NewOrders(a.backend, a.opts)
	if err := orders.Load(cmd.Context()); err != nil {
		return err
	}
	orders.SetQuery(ordersSearch)

	var items []model.Order
	for _, o := range orders.View() {
		if ordersOpen && o.Status.Terminal() {
			continue
		}
		items = append(items, o)
	}
	return a.writeList(items, len(items), "No orders found.", func() *cli.Table {
		return ordersTable(items)
	})
}

func ordersTable(orders []model.Order) *cli.Table {
	t := cli.NewTable("ORDER", "DATE", "CUSTOMER", "ITEMS", "TOTAL", "STATUS")
	t.SetMaxWidth(2, cli.DefaultMaxNameWidth)
	for _, o := range orders {
		date := ""
		if o.CreatedAt != nil {
			date = o.CreatedAt.Format("2006-01-02")
		}
		t.AddRow(
			model.FormatOrderNumber(o.ID),
			date,
			o.CustomerName,
			strconv.Itoa(len(o.Items)),
			o.TotalAmount.StringFixed(2),
			cli.OrderStatus(o.Status),
		)
	}
	return t
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <order>",
	Short: "Show an order and its items",
	Long: `Show an order and its items. The order can be given as 7, #7 or
ORD-0007.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrdersShow,
}

func init() {
	ordersCmd.AddCommand(ordersShowCmd)
}

func runOrdersShow(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	id, err := parseID("order", args[0])
	if err != nil {
		return err
	}
	o, err := ops.NewOrders(a.backend, a.opts).Show(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !a.tableOutput() {
		return a.write(o, nil)
	}

	fmt.Printf("%s  %s\n", cli.Bold(model.FormatOrderNumber(o.ID)), cli.OrderStatus(o.Status))
	if o.CreatedAt != nil {
		fmt.Printf("Placed:   %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	}
	if o.CustomerName != "" {
		fmt.Printf("Customer: %s\n", o.CustomerName)
	}
	if o.ShippingAddress != "" {
		fmt.Printf("Ship to:  %s\n", o.ShippingAddress)
	}
	if o.PaymentStatus != "" {
		fmt.Printf("Payment:  %s\n", o.PaymentStatus)
	}
	fmt.Printf("Total:    %s\n", o.TotalAmount.StringFixed(2))

	if len(o.Items) == 0 {
		fmt.Println("\nNo items.")
		return nil
	}
	fmt.Println()
	t := cli.NewTable("ITEM", "PRODUCT", "QTY", "PRICE", "SUBTOTAL", "STATUS")
	t.SetMaxWidth(1, cli.DefaultMaxNameWidth)
	for _, it := range o.Items {
		t.AddRow(
			strconv.Itoa(it.ID),
			it.ProductName,
			strconv.Itoa(it.Quantity),
			it.Price.StringFixed(2),
			it.Subtotal().StringFixed(2),
			cli.OrderStatus(it.Status),
		)
	}
	t.Render(os.Stdout)
	return nil
}

var ordersSetStatusCmd = &cobra.Command{
	Use:   "set-status <item> <status>",
	Short: "Move an order item to a new status",
	Long: `Move an order item to a new status. The status accepts a unique
prefix of: ` + strings.Join(model.OrderStatuses, ", ") + `.

Delivered and cancelled items cannot be changed.

Examples:
  vendorctl orders set-status 41 shipped
  vendorctl orders set-status 41 deliv`,
	Args:              cobra.ExactArgs(2),
	RunE:              runOrdersSetStatus,
	ValidArgsFunction: completeOrderStatus,
}

func init() {
	ordersCmd.AddCommand(ordersSetStatusCmd)
}

func runOrdersSetStatus(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	itemID, err := parseID("order item", args[0])
	if err != nil {
		return err
	}
	s, err := cli.MatchChoice("status", args[1], model.OrderStatuses)
	if err != nil {
		return err
	}
	status := model.OrderStatus(s)

	orders := ops.NewOrders(a.backend, a.opts)
	if err := orders.Load(ctx); err != nil {
		return err
	}
	before, ok := orders.Lines.Get(itemID)
	if !ok {
		return &cli.NotFoundError{Type: "order item", ID: args[0]}
	}
	if before.Status == status {
		fmt.Printf("Item %d is already %s\n", itemID, status)
		return nil
	}

	item, err := orders.SetItemStatus(ctx, itemID, status)
	if err != nil {
		return notFound(err)
	}
	fmt.Printf("%s: %s is now %s\n", model.FormatOrderNumber(item.Order), item.ProductName, cli.OrderStatus(item.Status))
	return nil
}

var ordersDeleteItemCmd = &cobra.Command{
	Use:   "delete-item <item>",
	Short: "Remove an item from its order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersDeleteItem,
}

func init() {
	ordersCmd.AddCommand(ordersDeleteItemCmd)
}

func runOrdersDeleteItem(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	itemID, err := parseID("order item", args[0])
	if err != nil {
		return err
	}

	orders := ops.NewOrders(a.backend, a.opts)
	if err := orders.Load(ctx); err != nil {
		return err
	}
	item, ok := orders.Lines.Get(itemID)
	if !ok {
		return &cli.NotFoundError{Type: "order item", ID: args[0]}
	}
	if err := orders.DeleteItem(ctx, itemID); err != nil {
		return cancelled(err)
	}
	fmt.Printf("Removed %s from %s\n", item.ProductName, model.FormatOrderNumber(item.Order))
	return nil
}
