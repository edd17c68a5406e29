package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	vehicleapp "github.com/mgridtech/carfixit/internal/vehicle/app"
	"github.com/mgridtech/carfixit/internal/vehicle/domain"
)

func newCarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "car",
		Short: "Manage your cars and the selected one",
	}
	cmd.AddCommand(
		newCarBrandsCmd(a),
		newCarModelsCmd(a),
		newCarListCmd(a),
		newCarAddCmd(a),
		newCarSelectCmd(a),
		newCarRemoveCmd(a),
	)
	return cmd
}

func newCarBrandsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List supported brands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			brands, err := a.vehicles.Brands(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tBRAND")
			for _, b := range brands {
				fmt.Fprintf(w, "%d\t%s\n", b.ID, b.Name)
			}
			return w.Flush()
		},
	}
}

func newCarModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models <brand-id>",
		Short: "List models for a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			brandID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad brand id %q", args[0])
			}
			models, err := a.vehicles.ModelsByBrand(cmd.Context(), brandID)
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintln(w, "ID\tMODEL")
			for _, m := range models {
				fmt.Fprintf(w, "%d\t%s\n", m.ID, m.Name)
			}
			return w.Flush()
		},
	}
}

func newCarListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your cars; * marks the selected one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cars, err := a.vehicles.List(cmd.Context())
			if err != nil {
				return err
			}
			selectedID := 0
			if sel, err := a.vehicles.Selected(); err == nil {
				selectedID = sel.ID
			}

			w := table(cmd)
			fmt.Fprintln(w, " \tID\tBRAND\tMODEL\tPLATE\tFUEL\tTRANSMISSION")
			for _, c := range cars {
				mark := " "
				if c.ID == selectedID {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
					mark, c.ID, c.Brand, c.Model, c.PlateNumber, c.FuelType, c.Transmission)
			}
			return w.Flush()
		},
	}
}

func newCarAddCmd(a *app) *cobra.Command {
	var v domain.Vehicle
	var selectIt bool
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a car against your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v.AdminCarID == 0 || v.Brand == "" || v.Model == "" {
				return errors.New("--admin-car-id, --brand and --model are required")
			}
			added, err := a.vehicles.Add(cmd.Context(), v)
			if err != nil {
				return err
			}
			if selectIt {
				if err := a.vehicles.Select(added); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (car %d)\n", added.Brand, added.Model, added.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&v.AdminCarID, "admin-car-id", 0, "catalog car id (brand+model variant)")
	cmd.Flags().StringVar(&v.Brand, "brand", "", "brand name")
	cmd.Flags().StringVar(&v.Model, "model", "", "model name")
	cmd.Flags().StringVar(&v.PlateNumber, "plate", "", "plate number")
	cmd.Flags().StringVar(&v.FuelType, "fuel", "", "fuel type")
	cmd.Flags().StringVar(&v.Transmission, "transmission", "", "transmission")
	cmd.Flags().BoolVar(&selectIt, "select", false, "select the car after adding it")
	return cmd
}

func newCarSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <car-id>",
		Short: "Make a car the one catalog and cart operate on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad car id %q", args[0])
			}
			cars, err := a.vehicles.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cars {
				if c.ID == carID {
					if err := a.vehicles.Select(c); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Selected %s %s\n", c.Brand, c.Model)
					return nil
				}
			}
			return fmt.Errorf("car %d is not registered to this account", carID)
		},
	}
}

func newCarRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <car-id>",
		Short: "Delete a registered car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad car id %q", args[0])
			}
			if err := a.vehicles.Delete(cmd.Context(), carID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed car %d\n", carID)
			return nil
		},
	}
}

// requireSelectedCar turns the sentinel into a CLI-friendly hint.
func requireSelectedCar(err error) error {
	if errors.Is(err, vehicleapp.ErrNoVehicleSelected) {
		return errors.New("no car selected; run 'carfixit car select <car-id>' first")
	}
	return err
}
