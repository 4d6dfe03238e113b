package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storefront"
)

const appKey = "storefront"

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newCLI(os.Stdout).RunContext(ctx, os.Args)
	stop()
	if err != nil {
		os.Exit(exitCode(os.Stderr, err))
	}
}

func newCLI(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "storefront",
		Usage:     "browse products, manage your cart and check out",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Usage: "backend base URL (overrides STOREFRONT_API_URL)"},
			&cli.StringFlag{Name: "token", Usage: "bearer token to use instead of the stored session"},
			&cli.StringFlag{Name: "storage", Usage: "storage driver: file, memory or postgres"},
			&cli.StringFlag{Name: "state-dir", Usage: "directory of the file storage driver"},
			&cli.StringFlag{Name: "log-level", Usage: "log level (debug, info, warn, error)"},
		},
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			productsCommand(),
			registerCommand(),
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			cartCommand(),
			checkoutCommand(),
			ordersCommand(),
		},
	}
}

func setup(c *cli.Context) error {
	cfg, err := config.LoadStorefront()
	if err != nil {
		return err
	}
	if c.IsSet("api-url") {
		cfg.APIURL = c.String("api-url")
	}
	if c.IsSet("token") {
		cfg.Token = c.String("token")
	}
	if c.IsSet("storage") {
		cfg.StorageDriver = c.String("storage")
	}
	if c.IsSet("state-dir") {
		cfg.StorageDir = c.String("state-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewWithOutput(c.App.ErrWriter, "storefront", cfg.LogLevel, cfg.LogFormat)

	app, err := storefront.Open(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	if err := app.Start(c.Context); err != nil {
		app.Close()
		return err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[appKey] = app
	return nil
}

func teardown(c *cli.Context) error {
	if app, ok := c.App.Metadata[appKey].(*storefront.App); ok {
		app.Close()
	}
	return nil
}

func appFrom(c *cli.Context) *storefront.App {
	return c.App.Metadata[appKey].(*storefront.App)
}

// exitCode prints err for the user and maps it to a process exit code.
// Redirects are hints, not failures of the tool itself.
func exitCode(w io.Writer, err error) int {
	var redirect *checkout.RedirectError
	var failed *checkout.FailedError
	var apiErr *clients.APIError

	switch {
	case errors.As(err, &redirect):
		fmt.Fprintln(w, redirectHint(redirect.Gate))
		return 2
	case errors.Is(err, storefront.ErrNotLoggedIn):
		fmt.Fprintln(w, redirectHint(checkout.GateLogin))
		return 2
	case errors.As(err, &failed):
		fmt.Fprintln(w, failed.Error())
	case errors.As(err, &apiErr):
		fmt.Fprintln(w, "error:", apiErr.Message)
	default:
		fmt.Fprintln(w, "error:", err)
	}
	return 1
}

func redirectHint(g checkout.Gate) string {
	switch g {
	case checkout.GateLogin:
		return `you are not logged in, run "storefront login"`
	case checkout.GateCart:
		return `your cart is empty, add something with "storefront cart add <product-id>"`
	default:
		return "storefront is still loading, try again"
	}
}
