package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/auth"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

type State string

const (
	StateIdle         State = "idle"
	StateReady        State = "ready"
	StateSubmitting   State = "submitting"
	StatePaying       State = "paying"
	StatePlacingOrder State = "placing_order"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

func (s State) inFlight() bool {
	return s == StateSubmitting || s == StatePaying || s == StatePlacingOrder
}

// Gate is the outcome of the precondition check.
type Gate string

const (
	GateLoading Gate = "loading"
	GateLogin   Gate = "login"
	GateCart    Gate = "cart"
	GateReady   Gate = "ready"
)

type CartStore interface {
	Hydrate(ctx context.Context) error
	Items() []cart.Item
	ClearCart(ctx context.Context) error
}

type AuthStore interface {
	Initialize(ctx context.Context)
	Session() auth.Session
	SetAuth(ctx context.Context, user auth.User, token string) error
}

type Payments interface {
	Simulate(ctx context.Context, req payment.Request) (payment.Response, error)
}

type Orders interface {
	Place(ctx context.Context, quantities order.Quantities) (order.Order, error)
}

type Profiles interface {
	Profile(ctx context.Context) (auth.User, error)
}

type Deps struct {
	Cart     CartStore
	Auth     AuthStore
	Payments Payments
	Orders   Orders
	Profiles Profiles
	Logger   logrus.FieldLogger
}

// Payment is what the user typed into the payment form. Only the card
// number is sent to the simulator.
type Payment struct {
	CardNumber string
	Expiry     string
	CVV        string
}

type Result struct {
	OrderID          int64
	PaymentReference string
	Order            order.Order
}

// Coordinator runs one checkout attempt at a time over the cart and auth
// stores. Check reports GateLoading until Hydrate has completed.
type Coordinator struct {
	cart     CartStore
	auth     AuthStore
	payments Payments
	orders   Orders
	profiles Profiles
	logger   logrus.FieldLogger

	mu       sync.Mutex
	hydrated bool
	state    State
}

func NewCoordinator(d Deps) *Coordinator {
	return &Coordinator{
		cart:     d.Cart,
		auth:     d.Auth,
		payments: d.Payments,
		orders:   d.Orders,
		profiles: d.Profiles,
		logger:   d.Logger.WithField("component", "checkout"),
		state:    StateIdle,
	}
}

// Hydrate loads both stores from storage and opens the precondition gate.
func (c *Coordinator) Hydrate(ctx context.Context) error {
	c.auth.Initialize(ctx)
	if err := c.cart.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate cart: %w", err)
	}

	c.mu.Lock()
	c.hydrated = true
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Check evaluates the checkout preconditions. A token without a user is
// resolved through the profile endpoint.
func (c *Coordinator) Check(ctx context.Context) Gate {
	c.mu.Lock()
	hydrated := c.hydrated
	c.mu.Unlock()
	if !hydrated {
		return GateLoading
	}

	sess := c.auth.Session()
	if sess.Token == "" {
		return GateLogin
	}
	if !sess.IsAuthenticated || sess.User == nil {
		user, err := c.profiles.Profile(ctx)
		if err != nil {
			c.logger.WithError(err).Info("token could not be resolved to a profile")
			return GateLogin
		}
		if err := c.auth.SetAuth(ctx, user, sess.Token); err != nil {
			c.logger.WithError(err).Warn("session set but not persisted")
		}
	}

	if len(c.cart.Items()) == 0 {
		return GateCart
	}

	c.mu.Lock()
	if c.state == StateIdle {
		c.state = StateReady
	}
	c.mu.Unlock()
	return GateReady
}

// Submit pays for the current cart and places the order. On success the
// cart is cleared. On failure nothing is reversed: a captured payment whose
// order could not be placed is only logged.
func (c *Coordinator) Submit(ctx context.Context, p Payment) (Result, error) {
	c.mu.Lock()
	if c.state.inFlight() {
		c.mu.Unlock()
		return Result{}, ErrInProgress
	}
	prev := c.state
	c.state = StateSubmitting
	c.mu.Unlock()

	if gate := c.Check(ctx); gate != GateReady {
		c.setState(prev)
		return Result{}, &RedirectError{Gate: gate}
	}

	items := c.cart.Items()
	amount := cart.TotalAmount(items)
	log := c.logger.WithFields(logrus.Fields{"items": len(items), "amount": amount.String()})

	c.setState(StatePaying)
	resp, err := c.payments.Simulate(ctx, payment.Request{Amount: amount, CardNumber: p.CardNumber})
	if err != nil {
		return Result{}, c.fail(log, StatePaying, fmt.Errorf("simulate payment: %w", err))
	}
	if !resp.Successful() {
		return Result{}, c.fail(log, StatePaying, fmt.Errorf("%w: %q", errPaymentNotSuccessful, resp.Status))
	}
	log = log.WithField("paymentReference", resp.Reference)

	c.setState(StatePlacingOrder)
	placed, err := c.orders.Place(ctx, cart.Quantities(items))
	if err != nil {
		log.Warn("payment captured but order placement failed, payment is not reversed")
		return Result{}, c.fail(log, StatePlacingOrder, fmt.Errorf("place order: %w", err))
	}

	if err := c.cart.ClearCart(ctx); err != nil {
		log.WithError(err).Error("order placed but cleared cart was not persisted")
	}

	c.setState(StateCompleted)
	log.WithField("orderId", placed.ID).Info("checkout completed")
	return Result{OrderID: placed.ID, PaymentReference: resp.Reference, Order: placed}, nil
}

func (c *Coordinator) fail(log logrus.FieldLogger, stage State, err error) error {
	c.setState(StateFailed)
	log.WithError(err).WithField("stage", stage).Error("checkout failed")
	return &FailedError{Stage: stage, Err: err}
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
