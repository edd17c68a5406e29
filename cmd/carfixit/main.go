package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	addressapp "github.com/mgridtech/carfixit/internal/address/app"
	addressrest "github.com/mgridtech/carfixit/internal/address/infra/rest"
	cartapp "github.com/mgridtech/carfixit/internal/cart/app"
	cartmirror "github.com/mgridtech/carfixit/internal/cart/infra/localstore"
	cartrest "github.com/mgridtech/carfixit/internal/cart/infra/rest"
	catalogapp "github.com/mgridtech/carfixit/internal/catalog/app"
	catalogadapter "github.com/mgridtech/carfixit/internal/catalog/infra/adapter"
	catalogrest "github.com/mgridtech/carfixit/internal/catalog/infra/rest"
	checkoutapp "github.com/mgridtech/carfixit/internal/checkout/app"
	checkoutadapter "github.com/mgridtech/carfixit/internal/checkout/infra/adapter"
	checkoutdrafts "github.com/mgridtech/carfixit/internal/checkout/infra/localstore"
	checkoutrest "github.com/mgridtech/carfixit/internal/checkout/infra/rest"
	couponapp "github.com/mgridtech/carfixit/internal/coupon/app"
	couponapplied "github.com/mgridtech/carfixit/internal/coupon/infra/localstore"
	couponrest "github.com/mgridtech/carfixit/internal/coupon/infra/rest"
	identityapp "github.com/mgridtech/carfixit/internal/identity/app"
	identitysessions "github.com/mgridtech/carfixit/internal/identity/infra/localstore"
	identityrest "github.com/mgridtech/carfixit/internal/identity/infra/rest"
	orderapp "github.com/mgridtech/carfixit/internal/order/app"
	orderrest "github.com/mgridtech/carfixit/internal/order/infra/rest"
	vehicleapp "github.com/mgridtech/carfixit/internal/vehicle/app"
	vehicleselection "github.com/mgridtech/carfixit/internal/vehicle/infra/localstore"
	vehiclerest "github.com/mgridtech/carfixit/internal/vehicle/infra/rest"
	wishlistapp "github.com/mgridtech/carfixit/internal/wishlist/app"
	wishliststore "github.com/mgridtech/carfixit/internal/wishlist/infra/localstore"
	"github.com/mgridtech/carfixit/pkg/config"
	"github.com/mgridtech/carfixit/pkg/localstore"
	"github.com/mgridtech/carfixit/pkg/logger"
	"github.com/mgridtech/carfixit/pkg/restclient"
	"github.com/mgridtech/carfixit/pkg/shutdown"
)

// app is the wired service graph every command runs against. It is built
// once in the root PersistentPreRun so subcommands stay declarative.
type app struct {
	cfg   config.Config
	log   *slog.Logger
	store *localstore.Store
	rest  *restclient.Client

	identity  *identityapp.Service
	vehicles  *vehicleapp.Service
	catalog   *catalogapp.Service
	cart      *cartapp.Store
	coupons   *couponapp.Service
	checkout  *checkoutapp.Flow
	orders    *orderapp.Service
	addresses *addressapp.Service
	wishlist  *wishlistapp.Service
}

func (a *app) init(baseURL, stateDir string) error {
	_ = godotenv.Load()

	cfg := config.Load()
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	a.cfg = cfg
	a.log = logger.New(logger.Options{
		Service: "carfixit-cli",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	store, err := localstore.Open(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	a.store = store

	rest, err := restclient.New(cfg.BaseURL, cfg.HTTPTimeout, a.log)
	if err != nil {
		return err
	}
	a.rest = rest

	a.identity = identityapp.NewService(identityrest.NewGateway(rest), identitysessions.NewSessions(store), a.log)
	if sess, err := a.identity.Session(); err == nil {
		rest.SetToken(sess.Token)
	}

	a.vehicles = vehicleapp.NewService(vehiclerest.NewGateway(rest), vehicleselection.NewSelection(store), a.identity, a.log)
	carScope := catalogadapter.NewVehicleSelector(a.vehicles)
	a.catalog = catalogapp.NewService(catalogrest.NewGateway(rest), carScope)
	a.cart = cartapp.NewStore(cartrest.NewGateway(rest), cartmirror.NewMirror(store), a.identity, carScope, a.log)
	a.coupons = couponapp.NewService(couponrest.NewGateway(rest), couponapplied.NewApplied(store), a.identity, a.cart, a.log)
	a.addresses = addressapp.NewService(addressrest.NewGateway(rest), a.identity)
	a.checkout = checkoutapp.NewFlow(
		checkoutrest.NewGateway(rest),
		checkoutdrafts.NewDrafts(store),
		a.identity,
		checkoutadapter.NewVehicleSelector(a.vehicles),
		a.addresses,
		a.cart,
		a.coupons,
		a.log,
	)
	a.orders = orderapp.NewService(orderrest.NewGateway(rest), a.identity, a.log)
	a.wishlist = wishlistapp.NewService(wishliststore.NewWishlist(store), a.identity)

	if err := a.cart.Hydrate(); err != nil {
		a.log.Warn("hydrating cart", slog.Any("err", err))
	}
	if err := a.checkout.Hydrate(); err != nil {
		a.log.Warn("hydrating checkout", slog.Any("err", err))
	}
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func newRootCmd(a *app) *cobra.Command {
	var baseURL, stateDir string

	cmd := &cobra.Command{
		Use:           "carfixit",
		Short:         "CarFixIT car service and parts storefront client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init(baseURL, stateDir)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides CARFIXIT_BASE_URL)")
	cmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "local state directory (overrides CARFIXIT_STATE_DIR)")

	cmd.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newRegisterCmd(a),
		newForgotPasswordCmd(a),
		newProfileCmd(a),
		newCarCmd(a),
		newCatalogCmd(a),
		newCartCmd(a),
		newCouponCmd(a),
		newCheckoutCmd(a),
		newOrdersCmd(a),
		newAddressCmd(a),
		newWishlistCmd(a),
	)
	return cmd
}

func main() {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	a := &app{}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "carfixit:", err)
		os.Exit(1)
	}
}

func table(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

func rupees(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
