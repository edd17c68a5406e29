package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse services and parts for the selected car",
	}
	cmd.AddCommand(
		newCatalogCategoriesCmd(a),
		newCatalogProductsCmd(a),
		newCatalogShowCmd(a),
	)
	return cmd
}

func newCatalogCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories <service|ecommerce>",
		Short: "List categories of one kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.catalog.Categories(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tCATEGORY")
			for _, c := range categories {
				fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
			}
			return w.Flush()
		},
	}
}

func newCatalogProductsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "products <category-id>",
		Short: "List a category's products priced for the selected car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad category id %q", args[0])
			}
			products, err := a.catalog.ProductsByCategory(cmd.Context(), categoryID)
			if err != nil {
				return requireSelectedCar(err)
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tPRODUCT\tPRICE\tTYPE")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, rupees(p.FinalPrice), p.Type)
			}
			return w.Flush()
		},
	}
}

func newCatalogShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad product id %q", args[0])
			}
			p, err := a.catalog.ProductDetails(cmd.Context(), productID)
			if err != nil {
				return requireSelectedCar(err)
			}
			w := table(cmd)
			fmt.Fprintf(w, "ID\t%d\n", p.ID)
			fmt.Fprintf(w, "Name\t%s\n", p.Name)
			fmt.Fprintf(w, "Type\t%s\n", p.Type)
			fmt.Fprintf(w, "Price\t%s\n", rupees(p.Price))
			fmt.Fprintf(w, "Final price\t%s\n", rupees(p.FinalPrice))
			if p.Description != "" {
				fmt.Fprintf(w, "Description\t%s\n", p.Description)
			}
			return w.Flush()
		},
	}
}
