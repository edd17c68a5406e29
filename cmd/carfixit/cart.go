package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mgridtech/carfixit/internal/cart/domain"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and mutate the cart",
	}
	cmd.AddCommand(
		newCartShowCmd(a),
		newCartAddCmd(a),
		newCartRemoveCmd(a),
		newCartQuantityCmd(a, "inc", "Increase a line's quantity by one", a.cartInc),
		newCartQuantityCmd(a, "dec", "Decrease a line's quantity, never below one", a.cartDec),
		newCartClearCmd(a),
	)
	return cmd
}

func (a *app) cartInc(cmd *cobra.Command, cartItemID int) error {
	return a.cart.Increase(cmd.Context(), cartItemID)
}

func (a *app) cartDec(cmd *cobra.Command, cartItemID int) error {
	return a.cart.Decrease(cmd.Context(), cartItemID)
}

func newCartShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart with any applied coupon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cart.Refresh(cmd.Context()); err != nil {
				return err
			}
			items := a.cart.Items()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty")
				return nil
			}

			w := table(cmd)
			fmt.Fprintln(w, "LINE\tPRODUCT\tQTY\tUNIT\tTOTAL\tTYPE")
			for _, it := range items {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
					it.CartItemID, it.Name, it.Quantity, rupees(it.UnitPrice), rupees(it.ItemTotal), it.ProductType)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			total := a.cart.Total()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nTotal: %s\n", rupees(total))
			if discount := a.coupons.Discount(total); discount > 0 {
				coupon, _, _ := a.coupons.Applied()
				fmt.Fprintf(out, "Coupon %s: -%s\n", coupon.Code, rupees(discount))
				fmt.Fprintf(out, "Payable: %s\n", rupees(total-discount))
			}
			return nil
		},
	}
}

func newCartAddCmd(a *app) *cobra.Command {
	var quantity int
	var productType string
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product or service for the selected car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad product id %q", args[0])
			}
			if productType != domain.ProductTypeService && productType != domain.ProductTypeEcommerce {
				return fmt.Errorf("--type must be %q or %q", domain.ProductTypeService, domain.ProductTypeEcommerce)
			}
			if err := a.cart.Add(cmd.Context(), productID, productType, quantity); err != nil {
				return requireSelectedCar(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added; cart now has %d lines, total %s\n",
				a.cart.Count(), rupees(a.cart.Total()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&quantity, "qty", "q", 1, "quantity")
	cmd.Flags().StringVarP(&productType, "type", "t", domain.ProductTypeEcommerce, "product type (service|ecommerce)")
	return cmd
}

func newCartRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <line-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cartItemID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad line id %q", args[0])
			}
			if err := a.cart.Remove(cmd.Context(), cartItemID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed; total %s\n", rupees(a.cart.Total()))
			return nil
		},
	}
}

func newCartQuantityCmd(a *app, use, short string, run func(*cobra.Command, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <line-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cartItemID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad line id %q", args[0])
			}
			if err := run(cmd, cartItemID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total %s\n", rupees(a.cart.Total()))
			return nil
		},
	}
}

func newCartClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the local cart state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cart.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared")
			return nil
		},
	}
}
