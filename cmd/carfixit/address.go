package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mgridtech/carfixit/internal/address/domain"
)

func newAddressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Manage the address book",
	}
	cmd.AddCommand(
		newAddressListCmd(a),
		newAddressAddCmd(a),
		newAddressEditCmd(a),
		newAddressRemoveCmd(a),
	)
	return cmd
}

func addressFlags(cmd *cobra.Command, a *domain.Address) {
	cmd.Flags().StringVar(&a.Address, "street", "", "street address")
	cmd.Flags().StringVar(&a.City, "city", "", "city")
	cmd.Flags().StringVar(&a.State, "state", "", "state")
	cmd.Flags().StringVar(&a.Country, "country", "", "country")
	cmd.Flags().StringVar(&a.Pincode, "pincode", "", "postal code")
}

func newAddressListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addresses, err := a.addresses.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(addresses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved addresses")
				return nil
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tADDRESS\tCITY\tSTATE\tCOUNTRY\tPINCODE")
			for _, addr := range addresses {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					addr.ID, addr.Address, addr.City, addr.State, addr.Country, addr.Pincode)
			}
			return w.Flush()
		},
	}
}

func newAddressAddCmd(a *app) *cobra.Command {
	var addr domain.Address
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			added, err := a.addresses.Add(cmd.Context(), addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved address %d\n", added.ID)
			return nil
		},
	}
	addressFlags(cmd, &addr)
	return cmd
}

func newAddressEditCmd(a *app) *cobra.Command {
	var addr domain.Address
	cmd := &cobra.Command{
		Use:   "edit <address-id>",
		Short: "Edit a saved address; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addressID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad address id %q", args[0])
			}
			current, err := a.addresses.Get(cmd.Context(), addressID)
			if err != nil {
				return err
			}
			if addr.Address != "" {
				current.Address = addr.Address
			}
			if addr.City != "" {
				current.City = addr.City
			}
			if addr.State != "" {
				current.State = addr.State
			}
			if addr.Country != "" {
				current.Country = addr.Country
			}
			if addr.Pincode != "" {
				current.Pincode = addr.Pincode
			}
			if _, err := a.addresses.Edit(cmd.Context(), current); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated address %d\n", addressID)
			return nil
		},
	}
	addressFlags(cmd, &addr)
	return cmd
}

func newAddressRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <address-id>",
		Short: "Delete a saved address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addressID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad address id %q", args[0])
			}
			if err := a.addresses.Delete(cmd.Context(), addressID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted address %d\n", addressID)
			return nil
		},
	}
}
