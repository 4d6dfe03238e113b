package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/auth"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

// Users is the account registry behind the auth endpoints.
type Users interface {
	Register(ctx context.Context, name, email, password string) (auth.User, error)
	Authenticate(ctx context.Context, email, password string) (auth.User, error)
	Get(ctx context.Context, id int64) (auth.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) (auth.User, error)
	List(ctx context.Context) ([]auth.User, error)
}

type Tokens interface {
	middleware.TokenParser
	Issue(u auth.User) (string, error)
}

type Payments interface {
	Process(ctx context.Context, req payment.Request) (payment.Response, error)
}

type Deps struct {
	Logger           logrus.FieldLogger
	Products         catalog.Repository
	Orders           order.Repository
	Users            Users
	Tokens           Tokens
	Payments         Payments
	Events           events.Publisher
	CORSAllowOrigins []string

	// RateLimitRequests per RateLimitWindow across all clients; 0 disables.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func NewRouter(d Deps) http.Handler {
	h := &Handler{
		logger:   d.Logger,
		products: d.Products,
		orders:   d.Orders,
		users:    d.Users,
		tokens:   d.Tokens,
		payments: d.Payments,
		events:   d.Events,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.CORS(d.CORSAllowOrigins))
	r.Use(middleware.RateLimit(d.RateLimitRequests, d.RateLimitWindow))

	requireAuth := middleware.AuthJWT(d.Tokens)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/category/{category}", h.ListProductsByCategory)
			r.Get("/{id}", h.GetProduct)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.With(requireAuth).Get("/profile", h.GetProfile)
			r.With(requireAuth).Put("/profile", h.UpdateProfile)
		})

		r.Post("/payment/simulate", h.SimulatePayment)

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/place", h.PlaceOrder)
			r.Get("/my", h.ListMyOrders)
			r.Get("/{id}", h.GetOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(middleware.RequireAdmin)

			r.Get("/orders", h.AdminListOrders)
			r.Put("/orders/{id}/status", h.AdminUpdateOrderStatus)
			r.Post("/products", h.AdminCreateProduct)
			r.Put("/products/{id}", h.AdminUpdateProduct)
			r.Delete("/products/{id}", h.AdminDeleteProduct)
			r.Get("/users", h.AdminListUsers)
			r.Get("/stats", h.AdminStats)
		})
	})

	return r
}

// Handler serves the mock backend API.
type Handler struct {
	logger   logrus.FieldLogger
	products catalog.Repository
	orders   order.Repository
	users    Users
	tokens   Tokens
	payments Payments
	events   events.Publisher
}
