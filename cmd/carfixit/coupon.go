package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgridtech/carfixit/internal/coupon/domain"
)

func newCouponCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupon",
		Short: "List and apply discount coupons",
	}
	cmd.AddCommand(
		newCouponListCmd(a),
		newCouponApplyCmd(a),
		newCouponRemoveCmd(a),
	)
	return cmd
}

func newCouponListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available coupons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coupons, err := a.coupons.Available(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "CODE\tDISCOUNT\tMIN ORDER\tEXPIRES")
			for _, c := range coupons {
				discount := rupees(c.DiscountAmount)
				if c.DiscountType == domain.DiscountPercentage {
					discount = fmt.Sprintf("%.0f%%", c.DiscountAmount)
				}
				expires := "-"
				if !c.ExpiresAt.IsZero() {
					expires = c.ExpiresAt.Format(time.DateOnly)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Code, discount, rupees(c.MinOrderAmount), expires)
			}
			return w.Flush()
		},
	}
}

func newCouponApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <code>",
		Short: "Apply a coupon to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coupon, err := a.coupons.Apply(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			total := a.cart.Total()
			discount := a.coupons.Discount(total)
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %s: -%s, payable %s\n",
				coupon.Code, rupees(discount), rupees(total-discount))
			return nil
		},
	}
}

func newCouponRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the applied coupon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.coupons.Remove(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Coupon removed; total back to %s\n", rupees(a.cart.Total()))
			return nil
		},
	}
}
