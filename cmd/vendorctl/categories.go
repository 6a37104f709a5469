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

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category"},
	Short:   "Manage product categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE:  runCategoriesList,
}

var categoriesSearch string

func init() {
	categoriesListCmd.Flags().StringVarP(&categoriesSearch, "search", "s", "", "filter by name or id")
	categoriesCmd.AddCommand(categoriesListCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	categories := ops.NewCategories(a.backend, a.opts)
	if err := categories.Load(cmd.Context()); err != nil {
		return err
	}
	categories.SetQuery(categoriesSearch)
	items := categories.View()
	return a.writeList(items, len(items), "No categories found.", func() *cli.Table {
		t := cli.NewTable("ID", "NAME", "DESCRIPTION")
		t.SetMaxWidth(2, 60)
		for _, c := range items {
			t.AddRow(strconv.Itoa(c.ID), c.Name, c.Description)
		}
		return t
	})
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesAdd,
}

var (
	categoryName        string
	categoryDescription string
	categoryInteractive bool
)

func init() {
	categoriesAddCmd.Flags().StringVarP(&categoryDescription, "description", "d", "", "description")
	categoriesCmd.AddCommand(categoriesAddCmd)
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	c, err := ops.NewCategories(a.backend, a.opts).Create(cmd.Context(), model.CategoryInput{
		Name:        args[0],
		Description: strings.TrimSpace(categoryDescription),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created category %d: %s\n", c.ID, c.Name)
	return nil
}

var categoriesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Rename or describe a category",
	Long: `Edit a category. The whole category is sent, so fields you do not
pass keep their current values.

Examples:
  vendorctl categories edit 4 --name "Shoes & Sandals"
  vendorctl categories edit 4 -i             # open in $EDITOR`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoriesEdit,
}

func init() {
	categoriesEditCmd.Flags().StringVarP(&categoryName, "name", "n", "", "new name")
	categoriesEditCmd.Flags().StringVarP(&categoryDescription, "description", "d", "", "new description")
	categoriesEditCmd.Flags().BoolVarP(&categoryInteractive, "interactive", "i", false, "edit in $EDITOR")
	categoriesCmd.AddCommand(categoriesEditCmd)
}

func runCategoriesEdit(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("category", args[0])
	if err != nil {
		return err
	}

	categories := ops.NewCategories(a.backend, a.opts)
	if err := categories.Load(ctx); err != nil {
		return err
	}
	current, ok := categories.Get(id)
	if !ok {
		return &cli.NotFoundError{Type: "category", ID: args[0]}
	}

	in := model.CategoryInput{Name: current.Name, Description: current.Description}
	if categoryInteractive {
		if err := cli.EditYAML(ctx, in, &in); err != nil {
			if errors.Is(err, cli.ErrUnchanged) {
				fmt.Println("No changes made.")
				return nil
			}
			return err
		}
	} else {
		f := cmd.Flags()
		if !f.Changed("name") && !f.Changed("description") {
			return ops.ErrNothingToChange
		}
		if f.Changed("name") {
			in.Name = categoryName
		}
		if f.Changed("description") {
			in.Description = strings.TrimSpace(categoryDescription)
		}
	}

	c, err := categories.Edit(ctx, id, in)
	if err != nil {
		return notFound(err)
	}
	fmt.Printf("Updated category %d: %s\n", c.ID, c.Name)
	return nil
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesDelete,
}

func init() {
	categoriesCmd.AddCommand(categoriesDeleteCmd)
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	a, err := authed()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id, err := parseID("category", args[0])
	if err != nil {
		return err
	}

	categories := ops.NewCategories(a.backend, a.opts)
	if err := categories.Load(ctx); err != nil {
		return err
	}
	c, ok := categories.Get(id)
	if !ok {
		return &cli.NotFoundError{Type: "category", ID: args[0]}
	}
	if err := categories.Delete(ctx, id); err != nil {
		return cancelled(err)
	}
	fmt.Printf("Deleted category %d: %s\n", c.ID, c.Name)
	return nil
}
