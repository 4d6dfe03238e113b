// Package storefront wires the client-side stores, the backend clients and
// the checkout coordinator into one application value.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/auth"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

type App struct {
	Cart     *cart.Store
	Auth     *auth.Store
	Catalog  *clients.CatalogClient
	Orders   *clients.OrderClient
	Accounts *clients.AuthClient
	Payments *clients.PaymentClient
	Checkout *checkout.Coordinator

	logger  logrus.FieldLogger
	token   string
	closeFn func()
}

// Open builds an App from cfg, opening the configured storage backend.
func Open(ctx context.Context, cfg config.Storefront, logger logrus.FieldLogger) (*App, error) {
	store, closeFn, err := storage.Open(ctx, cfg.StorageOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	app := New(store, cfg.APIURL, &http.Client{Timeout: cfg.Timeout}, logger)
	app.token = cfg.Token
	app.closeFn = closeFn
	return app, nil
}

func New(store storage.Storage, apiURL string, httpClient *http.Client, logger logrus.FieldLogger) *App {
	authStore := auth.NewStore(store, logger)
	cartStore := cart.NewStore(store, logger)

	base := clients.NewClient("backend", apiURL, httpClient, authStore)
	app := &App{
		Cart:     cartStore,
		Auth:     authStore,
		Catalog:  clients.NewCatalogClient(base),
		Orders:   clients.NewOrderClient(base),
		Accounts: clients.NewAuthClient(base),
		Payments: clients.NewPaymentClient(base),
		logger:   logger,
		closeFn:  func() {},
	}
	app.Checkout = checkout.NewCoordinator(checkout.Deps{
		Cart:     cartStore,
		Auth:     authStore,
		Payments: app.Payments,
		Orders:   app.Orders,
		Profiles: app.Accounts,
		Logger:   logger,
	})
	return app
}

// Start hydrates both stores. A configured token that differs from the
// stored one replaces the session in memory only, leaving the user to be
// resolved by the profile endpoint on the next check.
func (a *App) Start(ctx context.Context) error {
	if err := a.Checkout.Hydrate(ctx); err != nil {
		return err
	}
	if a.token != "" && a.token != a.Auth.Token() {
		a.Auth.UseToken(a.token)
	}
	return nil
}

func (a *App) Close() { a.closeFn() }

func (a *App) Login(ctx context.Context, email, password string) (auth.User, error) {
	resp, err := a.Accounts.Login(ctx, email, password)
	if err != nil {
		return auth.User{}, err
	}
	return resp.User, a.Auth.SetAuth(ctx, resp.User, resp.Token)
}

func (a *App) Register(ctx context.Context, name, email, password string) (auth.User, error) {
	resp, err := a.Accounts.Register(ctx, name, email, password)
	if err != nil {
		return auth.User{}, err
	}
	return resp.User, a.Auth.SetAuth(ctx, resp.User, resp.Token)
}

func (a *App) Logout(ctx context.Context) error {
	return a.Auth.ClearAuth(ctx)
}

// ErrNotLoggedIn is returned when an operation needs a session and there is
// no token.
var ErrNotLoggedIn = errors.New("not logged in")

// CurrentUser returns the session user, fetching the profile when only a
// token is known.
func (a *App) CurrentUser(ctx context.Context) (auth.User, error) {
	sess := a.Auth.Session()
	if sess.Token == "" {
		return auth.User{}, ErrNotLoggedIn
	}
	if sess.IsAuthenticated && sess.User != nil {
		return *sess.User, nil
	}

	u, err := a.Accounts.Profile(ctx)
	if err != nil {
		return auth.User{}, err
	}
	return u, a.Auth.SetAuth(ctx, u, sess.Token)
}

// AddToCart fetches the product and adds it with its current price as the
// cart snapshot.
func (a *App) AddToCart(ctx context.Context, productID int64, quantity int) error {
	p, err := a.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("load product %d: %w", productID, err)
	}
	return a.Cart.AddItem(ctx, p, quantity)
}
