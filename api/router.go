package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(orders *OrderHandlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(RequirePrincipal)

		r.Post("/orders", orders.Create)
		r.Get("/orders", orders.List)
		r.Put("/orders/{id}/status", orders.UpdateStatus)
		r.Delete("/orders/{id}", orders.Delete)

		r.Get("/menu-items", listMenuItems)
		r.Post("/menu-items", createMenuItem)
		r.Put("/menu-items/{id}", updateMenuItem)
		r.Delete("/menu-items/{id}", deleteMenuItem)

		r.Get("/restaurants", listRestaurants)
		r.Get("/restaurants/{id}", getRestaurant)
		r.Post("/restaurants", createRestaurant)
	})

	return r
}
