package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/cli"
	"github.com/jacksmith/vendorctl/internal/ops"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Overview of stock, orders and revenue",
	Long: `Show an overview of your store: product and stock counts, open
orders, revenue and the most recent orders. Products, orders and sales
are fetched in parallel.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	d := &ops.Dashboard{
		Products: ops.NewProducts(a.backend, a.opts),
		Orders:   ops.NewOrders(a.backend, a.opts),
		Sales:    ops.NewSales(a.backend, a.opts),
	}
	ov, err := d.Overview(cmd.Context())
	if err != nil {
		return err
	}
	if !a.tableOutput() {
		return a.write(ov, nil)
	}

	fmt.Printf("%s %d", cli.Bold("Products:"), ov.Products)
	if ov.OutOfStock > 0 {
		fmt.Printf(", %s", cli.Red(fmt.Sprintf("%d out of stock", ov.OutOfStock)))
	}
	if len(ov.LowStock) > 0 {
		fmt.Printf(", %s", cli.Yellow(fmt.Sprintf("%d low", len(ov.LowStock))))
	}
	fmt.Println()
	fmt.Printf("%s %d (%d open)\n", cli.Bold("Orders:"), ov.Orders, ov.OpenOrders)
	fmt.Printf("%s %s from %s\n", cli.Bold("Revenue:"), ov.Revenue.StringFixed(2), cli.Plural(ov.UnitsSold, "unit"))

	if len(ov.LowStock) > 0 {
		fmt.Printf("\n%s\n", cli.Bold("Low stock"))
		stockTable(ov.LowStock).Render(os.Stdout)
	}
	if len(ov.Recent) > 0 {
		fmt.Printf("\n%s\n", cli.Bold("Recent orders ("+strconv.Itoa(len(ov.Recent))+")"))
		ordersTable(ov.Recent).Render(os.Stdout)
	}
	return nil
}
