package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the food-record API onto the router. The auth middleware is
// injected because the Lambda and local entrypoints authenticate differently.
func Routes(r chi.Router, h *FoodHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/food-records", h.GetDay)
			r.Post("/food-records", h.LogFood)
			r.Get("/food-records-range", h.GetRange)
			r.Get("/food-records/stats", h.GetStats)
			r.Delete("/food-records/{recordKey}", h.DeleteRecord)
			r.Post("/food-records/bulk-delete", h.BulkDelete)
		})
	})
}
