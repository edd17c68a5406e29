package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mgridtech/carfixit/internal/checkout/domain"
)

func newCheckoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Walk the booking flow and place the order",
	}
	cmd.AddCommand(
		newCheckoutStatusCmd(a),
		newCheckoutTypeCmd(a),
		newCheckoutAddressCmd(a),
		newCheckoutSlotsCmd(a),
		newCheckoutSlotCmd(a),
		newCheckoutSummaryCmd(a),
		newCheckoutSubmitCmd(a),
		newCheckoutResetCmd(a),
	)
	return cmd
}

func newCheckoutStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how far the booking has progressed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := a.checkout.Current()
			w := table(cmd)
			fmt.Fprintf(w, "Stage\t%s\n", st.Stage())
			if st.ServiceType != "" {
				fmt.Fprintf(w, "Service type\t%s\n", st.ServiceType)
			}
			if st.AddressID != 0 {
				fmt.Fprintf(w, "Address\t#%d\n", st.AddressID)
			}
			if st.Slot.ID != 0 {
				fmt.Fprintf(w, "Slot\t%s %s - %s\n", st.Slot.Date, st.Slot.FromTime, st.Slot.ToTime)
			}
			return w.Flush()
		},
	}
}

func newCheckoutTypeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "type <walkin|pickup>",
		Short: "Choose walk-in service or doorstep pickup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.checkout.ChooseServiceType(args[0]); err != nil {
				return err
			}
			next := "pick a slot with 'carfixit checkout slots <date>'"
			if args[0] == domain.ServicePickup {
				next = "choose an address with 'carfixit checkout address <address-id>'"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Service type set; %s\n", next)
			return nil
		},
	}
}

func newCheckoutAddressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "address <address-id>",
		Short: "Choose the pickup address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addressID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad address id %q", args[0])
			}
			if err := a.checkout.ChooseAddress(cmd.Context(), addressID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Address chosen")
			return nil
		},
	}
}

func newCheckoutSlotsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slots <date>",
		Short: "List available appointment slots for a day (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := a.checkout.Slots(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No slots available that day")
				return nil
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tFROM\tTO")
			for _, s := range slots {
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.FromTime, s.ToTime)
			}
			return w.Flush()
		},
	}
}

func newCheckoutSlotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slot <date> <slot-id>",
		Short: "Book a slot out of that day's availability",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bad slot id %q", args[1])
			}
			slots, err := a.checkout.Slots(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, s := range slots {
				if s.ID == slotID {
					if err := a.checkout.ChooseSlot(s); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Booked %s %s - %s; review with 'carfixit checkout summary'\n",
						s.Date, s.FromTime, s.ToTime)
					return nil
				}
			}
			return fmt.Errorf("slot %d is not available on %s", slotID, args[0])
		},
	}
}

func newCheckoutSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Review the booking before submitting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sum, err := a.checkout.Summary(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintf(w, "Service type\t%s\n", sum.ServiceType)
			if sum.Location != "" {
				fmt.Fprintf(w, "Location\t%s\n", sum.Location)
			}
			if sum.Slot.ID != 0 {
				fmt.Fprintf(w, "Slot\t%s %s - %s\n", sum.Slot.Date, sum.Slot.FromTime, sum.Slot.ToTime)
			}
			fmt.Fprintf(w, "Total\t%s\n", rupees(sum.Total))
			if sum.Discount > 0 {
				fmt.Fprintf(w, "Discount\t-%s\n", rupees(sum.Discount))
			}
			fmt.Fprintf(w, "Payable\t%s\n", rupees(sum.Payable))
			if err := w.Flush(); err != nil {
				return err
			}
			if !a.checkout.CanSubmit() {
				fmt.Fprintln(cmd.OutOrStdout(), "\nBooking is not complete yet; see 'carfixit checkout status'")
			}
			return nil
		},
	}
}

func newCheckoutSubmitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Place the order (cash on delivery)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := a.checkout.Submit(cmd.Context())
			if err != nil {
				return requireSelectedCar(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %d placed; track it with 'carfixit orders show %d'\n",
				ref.OrderID, ref.OrderID)
			return nil
		},
	}
}

func newCheckoutResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Abandon the in-progress booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.checkout.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Booking reset")
			return nil
		},
	}
}
