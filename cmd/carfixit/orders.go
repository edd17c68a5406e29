package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order history, details, cancellation and export",
	}
	cmd.AddCommand(
		newOrdersListCmd(a),
		newOrdersShowCmd(a),
		newOrdersCancelCmd(a),
		newOrdersExportCmd(a),
	)
	return cmd
}

func newOrdersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := a.orders.History(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orders yet")
				return nil
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tAPPOINTMENT\tSLOT\tTYPE\tTOTAL\tSTATUS")
			for _, o := range orders {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					o.ID, o.AppointmentDate, o.AppointmentTime, o.DeliveryType, rupees(o.TotalValue), o.Status)
			}
			return w.Flush()
		},
	}
}

func newOrdersShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad order id %q", args[0])
			}
			o, err := a.orders.Details(cmd.Context(), orderID)
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintf(w, "ID\t%d\n", o.ID)
			fmt.Fprintf(w, "Status\t%s\n", o.Status)
			fmt.Fprintf(w, "Appointment\t%s %s\n", o.AppointmentDate, o.AppointmentTime)
			fmt.Fprintf(w, "Type\t%s\n", o.DeliveryType)
			fmt.Fprintf(w, "Address\t%s\n", o.Address)
			fmt.Fprintf(w, "Payment\t%s\n", o.PaymentMethod)
			if !o.PlacedAt.IsZero() {
				fmt.Fprintf(w, "Placed\t%s\n", o.PlacedAt.Format(time.RFC1123))
			}
			fmt.Fprintf(w, "Total\t%s\n", rupees(o.TotalValue))
			if err := w.Flush(); err != nil {
				return err
			}

			if len(o.Items) > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
				items := table(cmd)
				fmt.Fprintln(items, "PRODUCT\tQTY\tPRICE\tTYPE")
				for _, it := range o.Items {
					fmt.Fprintf(items, "%s\t%d\t%s\t%s\n", it.Name, it.Quantity, rupees(it.Price), it.ProductType)
				}
				return items.Flush()
			}
			return nil
		},
	}
}

func newOrdersCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad order id %q", args[0])
			}
			if err := a.orders.Cancel(cmd.Context(), orderID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %d cancelled\n", orderID)
			return nil
		},
	}
}

func newOrdersExportCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the order history to an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.orders.Export(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "out", "o", "orders.xlsx", "output file")
	return cmd
}
