package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/akovalyov/storefront-api/internal/auth"
	"github.com/akovalyov/storefront-api/internal/order"
	"github.com/akovalyov/storefront-api/internal/product"
	"github.com/akovalyov/storefront-api/internal/user"
)

type RouterDeps struct {
	Orders   order.Service
	Products product.Service
	Users    user.Service
	Tokens   *auth.Manager
	Dev      bool
}

func NewRouter(d RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	// The mobile client calls from an Expo origin; keep CORS permissive.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	NewAuthHandler(d.Users, d.Tokens).RegisterRoutes(r)
	NewProductHandler(d.Products).RegisterRoutes(r)
	NewOrderHandler(d.Orders, d.Dev).RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(d.Tokens.Middleware)
		NewUserHandler(d.Users).RegisterRoutes(r)
	})

	return r
}
