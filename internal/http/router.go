package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kpapadakis/emporos/internal/http/auth"
	"github.com/kpapadakis/emporos/internal/http/customer"
	"github.com/kpapadakis/emporos/internal/http/importfile"
	"github.com/kpapadakis/emporos/internal/http/order"
	"github.com/kpapadakis/emporos/internal/http/product"
	"github.com/kpapadakis/emporos/internal/http/stats"
)

func New(
	allowedOrigins []string,
	authV1 *auth.Handler,
	customersV1 *customer.Handler,
	productsV1 *product.Handler,
	ordersV1 *order.Handler,
	statsV1 *stats.Handler,
	importV1 *importfile.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.PublicRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(authV1.Authenticator)
				authV1.ProtectedRoutes(r)
			})
		})

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(authV1.Authenticator)

			r.Route("/customers", func(r chi.Router) {
				customersV1.Routes(r)
			})

			r.Route("/products", func(r chi.Router) {
				productsV1.Routes(r)
			})

			r.Route("/orders", func(r chi.Router) {
				ordersV1.Routes(r)
			})

			r.Route("/stats", func(r chi.Router) {
				statsV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)
		})
	})

	return router
}
