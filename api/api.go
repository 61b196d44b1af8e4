// Package api provides the HTTP API for the checkout backend: creating
// Stripe checkout sessions, confirming paid sessions into stored orders,
// and reading orders back.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/stakz/checkout-backend/api/apicommon"
	"github.com/stakz/checkout-backend/db"
	"github.com/stakz/checkout-backend/stripe"
)

// OrderStore combines the persistence operations the API serves. The
// stripe.Service only needs the insert side; the read endpoints need the
// lookups. db.MongoStorage implements all of them.
type OrderStore interface {
	stripe.OrderStore
	Order(orderID string) (*db.Order, error)
	OrdersByUser(userID string) ([]*db.Order, error)
}

// Config holds the API server configuration. Stripe may be nil when the
// provider secret is not configured; the checkout endpoints then answer
// with a configuration error instead of contacting the provider.
type Config struct {
	Host   string
	Port   int
	Store  OrderStore
	Stripe *stripe.Service
}

// API type represents the API HTTP server.
type API struct {
	host   string
	port   int
	store  OrderStore
	stripe *stripe.Service
	router *chi.Mux
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	return &API{
		host:   conf.Host,
		port:   conf.Port,
		store:  conf.Store,
		stripe: conf.Stripe,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatal().Err(err).Msg("failed to start the API server")
		}
	}()
}

// Router returns the HTTP handler with all routes and middleware, for use
// outside Start (tests, custom servers).
func (a *API) Router() http.Handler {
	return a.initRouter()
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	// Create the router with a basic middleware stack
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Client-Info", "Apikey"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	r.Use(middleware.Timeout(45 * time.Second))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		apicommon.HTTPWriteOK(w)
	})
	// create a checkout session
	log.Info().Str("method", "POST").Str("path", checkoutEndpoint).Msg("new route")
	r.Post(checkoutEndpoint, a.createCheckoutHandler)
	// confirm a completed checkout session
	log.Info().Str("method", "POST").Str("path", checkoutConfirmEndpoint).Msg("new route")
	r.Post(checkoutConfirmEndpoint, a.confirmOrderHandler)
	// get a stored order
	log.Info().Str("method", "GET").Str("path", orderEndpoint).Msg("new route")
	r.Get(orderEndpoint, a.orderInfoHandler)
	// list the orders of a buyer
	log.Info().Str("method", "GET").Str("path", userOrdersEndpoint).Msg("new route")
	r.Get(userOrdersEndpoint, a.userOrdersHandler)

	a.router = r
	return r
}
