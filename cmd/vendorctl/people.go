package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/cli"
	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/ops"
)

var customersCmd = &cobra.Command{
	Use:     "customers",
	Aliases: []string{"customer"},
	Short:   "Manage customers",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Args:  cobra.NoArgs,
	RunE:  runCustomersList,
}

var customersSearch string

func init() {
	customersListCmd.Flags().StringVarP(&customersSearch, "search", "s", "", "filter by name, email or id")
	customersCmd.AddCommand(customersListCmd)
	rootCmd.AddCommand(customersCmd)
}

func runCustomersList(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	customers := ops.NewCustomers(a.backend, a.opts)
	if err := customers.Load(cmd.Context()); err != nil {
		return err
	}
	customers.SetQuery(customersSearch)
	items := customers.View()
	return a.writeList(items, len(items), "No customers found.", func() *cli.Table {
		t := cli.NewTable("ID", "NAME", "EMAIL", "PHONE", "ACTIVE")
		t.SetMaxWidth(1, cli.DefaultMaxNameWidth)
		for _, c := range items {
			t.AddRow(strconv.Itoa(c.ID), c.FullName(), c.Email, c.Phone, cli.YesNo(c.IsActive))
		}
		return t
	})
}

var customersEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a customer",
	Long: `Edit a customer. The whole record is sent, so fields you do not pass
keep their current values.

Examples:
  vendorctl customers edit 31 --phone 08039876543
  vendorctl customers edit 31 --active=false
  vendorctl customers edit 31 -i             # open in $EDITOR`,
	Args: cobra.ExactArgs(1),
	RunE: runCustomersEdit,
}

var (
	personFirstName   string
	personLastName    string
	personEmail       string
	personPhone       string
	personAddress     string
	personInteractive bool
	customerActive    bool
)

func addPersonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&personFirstName, "first-name", "", "first name")
	f.StringVar(&personLastName, "last-name", "", "last name")
	f.StringVarP(&personEmail, "email", "e", "", "email")
	f.StringVar(&personPhone, "phone", "", "phone number")
	f.StringVar(&personAddress, "address", "", "address")
	f.BoolVarP(&personInteractive, "interactive", "i", false, "edit in $EDITOR")
}

func init() {
	addPersonFlags(customersEditCmd)
	customersEditCmd.Flags().BoolVar(&customerActive, "active", true, "whether the account is active")
	customersCmd.AddCommand(customersEditCmd)
}

// applyPersonFlags copies the changed name/contact flags into the given
// fields and reports whether any were set.
func applyPersonFlags(cmd *cobra.Command, first, last, email, phone, address *string) bool {
	f := cmd.Flags()
	changed := false
	set := func(name string, dst *string, value string) {
		if f.Changed(name) {
			*dst = strings.TrimSpace(value)
			changed = true
		}
	}
	set("first-name", first, personFirstName)
	set("last-name", last, personLastName)
	set("email", email, personEmail)
	set("phone", phone, personPhone)
	set("address", address, personAddress)
	return changed
}

func runCustomersEdit(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("customer", args[0])
	if err != nil {
		return err
	}

	customers := ops.NewCustomers(a.backend, a.opts)
	if err := customers.Load(ctx); err != nil {
		return err
	}
	current, ok := customers.Get(id)
	if !ok {
		return &cli.NotFoundError{Type: "customer", ID: args[0]}
	}

	in := current.Input()
	if personInteractive {
		if err := cli.EditYAML(ctx, in, &in); err != nil {
			if errors.Is(err, cli.ErrUnchanged) {
				fmt.Println("No changes made.")
				return nil
			}
			return err
		}
	} else {
		changed := applyPersonFlags(cmd, &in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Address)
		if cmd.Flags().Changed("active") {
			in.IsActive = customerActive
			changed = true
		}
		if !changed {
			return ops.ErrNothingToChange
		}
	}

	c, err := customers.Edit(ctx, id, in)
	if err != nil {
		return notFound(err)
	}
	fmt.Printf("Updated customer %d: %s\n", c.ID, c.FullName())
	return nil
}

var customersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomersDelete,
}

func init() {
	customersCmd.AddCommand(customersDeleteCmd)
}

func runCustomersDelete(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("customer", args[0])
	if err != nil {
		return err
	}

	customers := ops.NewCustomers(a.backend, a.opts)
	if err := customers.Load(ctx); err != nil {
		return err
	}
	c, ok := customers.Get(id)
	if !ok {
		return &cli.NotFoundError{Type: "customer", ID: args[0]}
	}
	if err := customers.Delete(ctx, id); err != nil {
		return cancelled(err)
	}
	fmt.Printf("Deleted customer %d: %s\n", c.ID, c.FullName())
	return nil
}

var vendorsCmd = &cobra.Command{
	Use:     "vendors",
	Aliases: []string{"vendor"},
	Short:   "Manage vendor accounts",
}

var vendorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vendors",
	Args:  cobra.NoArgs,
	RunE:  runVendorsList,
}

var (
	vendorsSearch string
	vendorsStatus string
)

func init() {
	vendorsListCmd.Flags().StringVarP(&vendorsSearch, "search", "s", "", "filter by store, name, email or id")
	vendorsListCmd.Flags().StringVar(&vendorsStatus, "status", "", "only this status: "+strings.Join(model.VendorStatuses, ", "))
	vendorsListCmd.RegisterFlagCompletionFunc("status", completeChoices(model.VendorStatuses))
	vendorsCmd.AddCommand(vendorsListCmd)
	rootCmd.AddCommand(vendorsCmd)
}

func runVendorsList(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	var status model.VendorStatus
	if vendorsStatus != "" {
		s, err := cli.MatchChoice("status", vendorsStatus, model.VendorStatuses)
		if err != nil {
			return err
		}
		status = model.VendorStatus(s)
	}

	vendors := ops.NewVendors(a.backend, a.opts)
	if err := vendors.Load(cmd.Context()); err != nil {
		return err
	}
	vendors.SetQuery(vendorsSearch)

	var items []model.Vendor
	for _, v := range vendors.View() {
		if status == "" || v.Status == status {
			items = append(items, v)
		}
	}
	return a.writeList(items, len(items), "No vendors found.", func() *cli.Table {
		t := cli.NewTable("ID", "STORE", "NAME", "EMAIL", "STATUS", "VERIFIED")
		t.SetMaxWidth(1, cli.DefaultMaxNameWidth)
		for _, v := range items {
			t.AddRow(strconv.Itoa(v.ID), v.StoreName, v.FullName(), v.Email, cli.VendorStatus(v.Status), cli.YesNo(v.IsVerified))
		}
		return t
	})
}

var vendorsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a vendor",
	Long: `Edit a vendor account. The whole record is sent, so fields you do not
pass keep their current values.

--status accepts a unique prefix: pending, approved or suspended.

Examples:
  vendorctl vendors edit 9 --status approved
  vendorctl vendors edit 9 --store-name "Gadget Hub"
  vendorctl vendors edit 9 -i                # open in $EDITOR`,
	Args: cobra.ExactArgs(1),
	RunE: runVendorsEdit,
}

var (
	vendorStoreName string
	vendorStatus    string
	vendorVerified  bool
)

func init() {
	addPersonFlags(vendorsEditCmd)
	vendorsEditCmd.Flags().StringVar(&vendorStoreName, "store-name", "", "store name")
	vendorsEditCmd.Flags().StringVar(&vendorStatus, "status", "", "status: "+strings.Join(model.VendorStatuses, ", "))
	vendorsEditCmd.RegisterFlagCompletionFunc("status", completeChoices(model.VendorStatuses))
	vendorsEditCmd.Flags().BoolVar(&vendorVerified, "verified", false, "whether the vendor is verified")
	vendorsCmd.AddCommand(vendorsEditCmd)
}

func runVendorsEdit(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("vendor", args[0])
	if err != nil {
		return err
	}

	vendors := ops.NewVendors(a.backend, a.opts)
	if err := vendors.Load(ctx); err != nil {
		return err
	}
	current, ok := vendors.Get(id)
	if !ok {
		return &cli.NotFoundError{Type: "vendor", ID: args[0]}
	}

	f := cmd.Flags()
	onlyStatus := f.Changed("status") && !personInteractive
	for _, name := range []string{"first-name", "last-name", "email", "phone", "address", "store-name", "verified"} {
		if f.Changed(name) {
			onlyStatus = false
		}
	}

	var v model.Vendor
	switch {
	case personInteractive:
		in := current.Input()
		if err := cli.EditYAML(ctx, in, &in); err != nil {
			if errors.Is(err, cli.ErrUnchanged) {
				fmt.Println("No changes made.")
				return nil
			}
			return err
		}
		v, err = vendors.Edit(ctx, id, in)
	case onlyStatus:
		s, err := cli.MatchChoice("status", vendorStatus, model.VendorStatuses)
		if err != nil {
			return err
		}
		if model.VendorStatus(s) == current.Status {
			fmt.Printf("Vendor %d is already %s\n", id, s)
			return nil
		}
		v, err = vendors.SetStatus(ctx, id, model.VendorStatus(s))
		if err != nil {
			return notFound(err)
		}
		fmt.Printf("Vendor %d (%s) is now %s\n", v.ID, v.StoreName, cli.VendorStatus(v.Status))
		return nil
	default:
		in := current.Input()
		changed := applyPersonFlags(cmd, &in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Address)
		if f.Changed("store-name") {
			in.StoreName = strings.TrimSpace(vendorStoreName)
			changed = true
		}
		if f.Changed("status") {
			s, err := cli.MatchChoice("status", vendorStatus, model.VendorStatuses)
			if err != nil {
				return err
			}
			in.Status = model.VendorStatus(s)
			changed = true
		}
		if f.Changed("verified") {
			in.IsVerified = vendorVerified
			changed = true
		}
		if !changed {
			return ops.ErrNothingToChange
		}
		v, err = vendors.Edit(ctx, id, in)
	}
	if err != nil {
		return notFound(err)
	}
	fmt.Printf("Updated vendor %d: %s\n", v.ID, v.StoreName)
	return nil
}

var vendorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a vendor",
	Args:  cobra.ExactArgs(1),
	RunE:  runVendorsDelete,
}

func init() {
	vendorsCmd.AddCommand(vendorsDeleteCmd)
}

func runVendorsDelete(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("vendor", args[0])
	if err != nil {
		return err
	}

	vendors := ops.NewVendors(a.backend, a.opts)
	if err := vendors.Load(ctx); err != nil {
		return err
	}
	v, ok := vendors.Get(id)
	if !ok {
		return &cli.NotFoundError{Type: "vendor", ID: args[0]}
	}
	if err := vendors.Delete(ctx, id); err != nil {
		return cancelled(err)
	}
	fmt.Printf("Deleted vendor %d: %s\n", v.ID, v.StoreName)
	return nil
}
