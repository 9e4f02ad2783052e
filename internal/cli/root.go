// Package cli is the presentation layer: a command tree over the storefront
// core. It touches store state only through the documented service methods.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ombela/internal/localstore"
	"ombela/internal/repository"
	"ombela/internal/service"
)

type app struct {
	store   *localstore.SQLite
	cart    *repository.Cart
	catalog *service.CatalogService
	orders  *service.OrderService
	account *service.AccountService
	reviews *service.ReviewService
}

// New builds the root command. Stores are opened lazily in the pre-run so
// that help and completion never touch the data file.
func New() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ombela",
		Short:         "Ombela Market storefront",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.store == nil {
				return nil
			}
			return a.store.Close()
		},
	}

	root.PersistentFlags().String("data", "ombela.db", "path to the data file")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.catalogCmd(),
		a.cartCmd(),
		a.orderCmd(),
		a.accountCmd(),
		a.reviewCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	v := viper.New()
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	v.SetEnvPrefix("OMBELA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName("ombela")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home + "/.ombela")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := localstore.OpenSQLite(v.GetString("data"))
	if err != nil {
		return err
	}
	a.store = store

	ctx := cmd.Context()
	catalog, err := repository.NewCatalog(ctx, store, log)
	if err != nil {
		return err
	}
	cart, err := repository.NewCart(ctx, store, log)
	if err != nil {
		return err
	}
	orders, err := repository.NewOrders(ctx, store, log)
	if err != nil {
		return err
	}
	reviews, err := repository.NewReviews(ctx, store, log)
	if err != nil {
		return err
	}
	users, err := repository.NewUsers(ctx, store, log)
	if err != nil {
		return err
	}
	session, err := repository.NewSession(ctx, store, log)
	if err != nil {
		return err
	}

	a.cart = cart
	a.catalog = service.NewCatalogService(catalog)
	a.orders = service.NewOrderService(cart, orders)
	a.account = service.NewAccountService(users, session)
	a.reviews = service.NewReviewService(reviews, catalog, session)
	return nil
}
