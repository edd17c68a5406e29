package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	wishlistapp "github.com/mgridtech/carfixit/internal/wishlist/app"
	"github.com/mgridtech/carfixit/internal/wishlist/domain"
)

func newWishlistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "A local list of products to come back for",
	}
	cmd.AddCommand(
		newWishlistListCmd(a),
		newWishlistAddCmd(a),
		newWishlistRemoveCmd(a),
	)
	return cmd
}

func newWishlistListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show wishlisted products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.wishlist.Items()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Wishlist is empty")
				return nil
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tPRODUCT\tPRICE\tTYPE\tADDED")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					e.ProductID, e.Name, rupees(e.FinalPrice), e.ProductType, e.AddedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}

func newWishlistAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Wishlist a product, snapshotting its current price",
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
			err = a.wishlist.Add(domain.Entry{
				ProductID:   p.ID,
				Name:        p.Name,
				Image:       p.Image,
				FinalPrice:  p.FinalPrice,
				ProductType: p.Type,
			})
			if errors.Is(err, wishlistapp.ErrAlreadyWishlisted) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already wishlisted\n", p.Name)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wishlisted %s at %s\n", p.Name, rupees(p.FinalPrice))
			return nil
		},
	}
}

func newWishlistRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad product id %q", args[0])
			}
			if err := a.wishlist.Remove(productID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed product %d from the wishlist\n", productID)
			return nil
		},
	}
}
