package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/cli"
	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/ops"
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Review your sales",
}

var salesSearch string

func init() {
	salesCmd.PersistentFlags().StringVarP(&salesSearch, "search", "s", "", "only sales whose product or id matches")
	rootCmd.AddCommand(salesCmd)
}

var salesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List individual sales",
	Args:  cobra.NoArgs,
	RunE:  runSalesList,
}

func init() {
	salesCmd.AddCommand(salesListCmd)
}

func runSalesList(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	sales := ops.NewSales(a.backend, a.opts)
	if err := sales.Load(cmd.Context()); err != nil {
		return err
	}
	sales.SetQuery(salesSearch)
	items := sales.View()
	return a.writeList(items, len(items), "No sales yet.", func() *cli.Table {
		t := cli.NewTable("DATE", "ORDER", "PRODUCT", "QTY", "AMOUNT")
		t.SetMaxWidth(2, cli.DefaultMaxNameWidth)
		for _, s := range items {
			order := ""
			if s.Order != 0 {
				order = model.FormatOrderNumber(s.Order)
			}
			t.AddRow(s.CreatedAt.Format("2006-01-02"), order, s.ProductName, strconv.Itoa(s.Quantity), s.Amount.StringFixed(2))
		}
		return t
	})
}

var salesReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize sales by month and product",
	Long: `Summarize your sales: totals, revenue per month and best-selling
products.

Examples:
  vendorctl sales report
  vendorctl sales report --top 10
  vendorctl sales report -s tote -o json`,
	Args: cobra.NoArgs,
	RunE: runSalesReport,
}

var salesTop int

func init() {
	salesReportCmd.Flags().IntVar(&salesTop, "top", 5, "number of best sellers to show (0 for all)")
	salesCmd.AddCommand(salesReportCmd)
}

func runSalesReport(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	if salesTop < 0 {
		return &cli.ValidationError{Field: "top", Message: "must not be negative"}
	}
	sales := ops.NewSales(a.backend, a.opts)
	if err := sales.Load(cmd.Context()); err != nil {
		return err
	}
	sales.SetQuery(salesSearch)
	report := sales.Report(salesTop)
	if !a.tableOutput() {
		return a.write(report, nil)
	}
	printReport(report)
	return nil
}

func printReport(r ops.SalesReport) {
	if r.Sales == 0 {
		fmt.Println("No sales yet.")
		return
	}
	fmt.Printf("%s %s from %s (%s)\n",
		cli.Bold("Revenue:"), r.Revenue.StringFixed(2), cli.Plural(r.Sales, "sale"), cli.Plural(r.Units, "unit"))
	fmt.Printf("%s %s per sale\n", cli.Bold("Average:"), r.Average.StringFixed(2))

	fmt.Println()
	months := cli.NewTable("MONTH", "UNITS", "REVENUE")
	for _, m := range r.ByMonth {
		months.AddRow(m.Month, strconv.Itoa(m.Units), m.Revenue.StringFixed(2))
	}
	months.Render(os.Stdout)

	fmt.Println()
	top := cli.NewTable("PRODUCT", "UNITS", "REVENUE")
	top.SetMaxWidth(0, cli.DefaultMaxNameWidth)
	for _, p := range r.TopProducts {
		top.AddRow(p.Name, strconv.Itoa(p.Units), p.Revenue.StringFixed(2))
	}
	top.Render(os.Stdout)
}
