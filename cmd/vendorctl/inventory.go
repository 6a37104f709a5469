package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/cli"
	"github.com/jacksmith/vendorctl/internal/logging"
	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/ops"
	"github.com/jacksmith/vendorctl/internal/resource"
)

const (
	searchCacheSize = 32
	searchCacheTTL  = 30 * time.Second
)

var inventoryCmd = &cobra.Command{
	Use:     "inventory",
	Aliases: []string{"stock"},
	Short:   "Check and adjust stock levels",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock levels",
	Args:  cobra.NoArgs,
	RunE:  runInventoryList,
}

var inventoryLow bool

func init() {
	inventoryListCmd.Flags().BoolVar(&inventoryLow, "low", false, "only items that are low or out of stock")
	inventoryCmd.AddCommand(inventoryListCmd)
	rootCmd.AddCommand(inventoryCmd)
}

func runInventoryList(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	inv := ops.NewInventory(a.backend, a.opts)
	if err := inv.Load(cmd.Context()); err != nil {
		return err
	}
	var items []model.Product
	for _, p := range inv.Items() {
		if inventoryLow && p.InStock() && !p.LowStock() {
			continue
		}
		items = append(items, p)
	}
	return writeStock(a, items)
}

func writeStock(a *app, items []model.Product) error {
	return a.writeList(items, len(items), "No products found.", func() *cli.Table {
		return stockTable(items)
	})
}

func stockTable(items []model.Product) *cli.Table {
	t := cli.NewTable("ID", "NAME", "STOCK")
	t.SetMaxWidth(1, cli.DefaultMaxNameWidth)
	for _, p := range items {
		t.AddRow(strconv.Itoa(p.ID), p.Name, cli.Stock(p))
	}
	return t
}

var inventorySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stock on the server",
	Long: `Search products on the server.

With a query argument the search runs once. Without one, each line read
from stdin is a new query: queries typed in quick succession are
collapsed and only the newest result is shown.

Examples:
  vendorctl inventory search tote
  vendorctl inventory search            # type queries, ctrl+d to finish`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInventorySearch,
}

func init() {
	inventoryCmd.AddCommand(inventorySearchCmd)
}

func runInventorySearch(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	inv := ops.NewInventory(a.backend, a.opts)
	streaming := len(args) == 0

	var (
		mu        sync.Mutex
		lastShown string
		shown     bool
	)
	opts := resource.SearchOptions{
		Delay:     a.cfg.SearchDebounce,
		CacheSize: searchCacheSize,
		CacheTTL:  searchCacheTTL,
	}
	searcher := inv.Searcher(ctx, opts, func(r resource.SearchResult[model.Product]) {
		if r.Err != nil {
			// One-shot searches return the error instead.
			if streaming && !errors.Is(r.Err, context.Canceled) {
				log.Error("search failed", "query", r.Query, "err", r.Err)
			}
			return
		}
		mu.Lock()
		defer mu.Unlock()
		lastShown, shown = r.Query, true
		if a.tableOutput() {
			fmt.Printf("%s %s\n", cli.Gray("search:"), cli.Bold(r.Query))
		}
		if err := writeStock(a, r.Items); err != nil {
			log.Error("write results", "err", err)
		}
	})

	if !streaming {
		defer searcher.Close()
		_, err := searcher.Search(ctx, args[0])
		return err
	}

	var (
		last    string
		queries int
	)
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		last = strings.TrimSpace(scanner.Text())
		queries++
		log.Debug("query", "q", last)
		searcher.Query(last)
	}
	if err := scanner.Err(); err != nil {
		searcher.Close()
		return fmt.Errorf("failed to read queries: %w", err)
	}

	// Drop the pending debounced query and answer the final one now.
	searcher.Close()
	if queries == 0 {
		return nil
	}
	mu.Lock()
	done := shown && lastShown == last
	mu.Unlock()
	if done {
		return nil
	}
	_, err = searcher.Search(ctx, last)
	if errors.Is(err, resource.ErrStale) {
		return nil
	}
	return err
}

var inventoryIncrCmd = &cobra.Command{
	Use:   "incr <id>",
	Short: "Add one unit of stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjustStock(cmd, args[0], (*ops.Inventory).Increment)
	},
}

var inventoryDecrCmd = &cobra.Command{
	Use:   "decr <id>",
	Short: "Remove one unit of stock",
	Long:  `Remove one unit of stock. Stock never goes below zero.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjustStock(cmd, args[0], (*ops.Inventory).Decrement)
	},
}

func init() {
	inventoryCmd.AddCommand(inventoryIncrCmd)
	inventoryCmd.AddCommand(inventoryDecrCmd)
}

func adjustStock(cmd *cobra.Command, ref string, adjust func(*ops.Inventory, context.Context, int) (model.Product, error)) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("product", ref)
	if err != nil {
		return err
	}
	inv := ops.NewInventory(a.backend, a.opts)
	if err := inv.Load(ctx); err != nil {
		return err
	}
	p, err := adjust(inv, ctx, id)
	if err != nil {
		return notFound(err)
	}
	return printStock(a, p)
}

var inventorySetCmd = &cobra.Command{
	Use:   "set <id> <quantity>",
	Short: "Set the stock of a product",
	Args:  cobra.ExactArgs(2),
	RunE:  runInventorySet,
}

func init() {
	inventoryCmd.AddCommand(inventorySetCmd)
}

func runInventorySet(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("product", args[0])
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return &cli.ValidationError{Field: "quantity", Message: fmt.Sprintf("%q is not a whole number", args[1])}
	}

	inv := ops.NewInventory(a.backend, a.opts)
	if err := inv.Load(ctx); err != nil {
		return err
	}
	p, err := inv.SetQuantity(ctx, id, qty)
	if err != nil {
		return notFound(err)
	}
	return printStock(a, p)
}

func printStock(a *app, p model.Product) error {
	if !a.tableOutput() {
		return a.write(p, nil)
	}
	fmt.Printf("%s: %s in stock\n", p.Name, cli.Stock(p))
	return nil
}
