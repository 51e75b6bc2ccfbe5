package routes

import (
	"net/http"

	"github.com/dhindle/commerce-cif-commercetools/internal/handler"
	"github.com/dhindle/commerce-cif-commercetools/internal/router"
)

// Deps contains the handlers the HTTP surface is assembled from.
type Deps struct {
	Carts      *handler.CartHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler

	// Metrics is the /metrics endpoint handler, typically promhttp.
	Metrics http.Handler
}

// Register registers every route on the router.
func Register(r *router.Router, deps Deps) {
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})
	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Post("/carts/{id}/payment", deps.Carts.AttachPayment)
	r.Get("/carts/{id}/payment", deps.Carts.GetPayment)
	r.Delete("/carts/{id}/payment", deps.Carts.RemovePayment)
	r.Delete("/carts/{id}/payments/{paymentId}", deps.Carts.RemoveSpecificPayment)
	r.Get("/carts/{id}/payment-methods", deps.Carts.GetPaymentMethods)

	r.Get("/products", deps.Products.SearchProducts)
	r.Get("/products/{id}", deps.Products.GetProduct)

	r.Get("/categories", deps.Categories.ListCategories)
	r.Get("/categories/{id}", deps.Categories.GetCategory)
	r.Get("/categories/slug/{slug}", deps.Categories.GetCategoryBySlug)
}
