package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
	"github.com/dhindle/commerce-cif-commercetools/internal/domain"
	"github.com/dhindle/commerce-cif-commercetools/internal/language"
	"github.com/dhindle/commerce-cif-commercetools/internal/mapper"
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 200
)

// ProductClient is the product surface of the CommerceTools client.
type ProductClient interface {
	GetProduct(ctx context.Context, id string) (*commercetools.ProductProjection, error)
	SearchProducts(ctx context.Context, s commercetools.ProductSearch) (*commercetools.PagedQueryResult[commercetools.ProductProjection], error)
}

// ProductHandler serves the product endpoints.
type ProductHandler struct {
	client ProductClient
	logger *slog.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(client ProductClient, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{client: client, logger: logger}
}

// GetProduct handles GET /products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ct, err := h.client.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	m := mapper.NewProductMapper(language.New(r.Header.Get("Accept-Language")))
	product, err := m.Product(ct)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// SearchProducts handles GET /products.
//
// Query parameters: text (full-text query), filter (repeatable result
// filter), selectedFacets (facet selection string, also applied as result
// filters), queryFacets (explicit facet expressions, |-separated), limit,
// offset. When no queryFacets are given, facets are auto-discovered from the
// product type of the first result and the search is re-issued with them.
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang := language.New(r.Header.Get("Accept-Language"))

	limit, err := parsePositiveInt(q.Get("limit"), defaultPageLimit)
	if err != nil || limit > maxPageLimit {
		ErrorResponse(w, r, domain.Invalid("product.search", "invalid limit parameter"))
		return
	}
	offset, err := parsePositiveInt(q.Get("offset"), 0)
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("product.search", "invalid offset parameter"))
		return
	}

	selectedFacets := q.Get("selectedFacets")

	search := commercetools.ProductSearch{
		Text:    q.Get("text"),
		Lang:    lang.FirstTag(),
		Filters: q["filter"],
		Limit:   limit,
		Offset:  offset,
	}
	for _, sel := range splitPipe(selectedFacets) {
		search.Filters = append(search.Filters, sel)
	}
	search.Facets = splitPipe(q.Get("queryFacets"))

	result, err := h.client.SearchProducts(r.Context(), search)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	m := mapper.NewProductMapper(lang)

	// Without explicit facet expressions the aggregations a result supports
	// are only known after the product type is seen, so discover them from
	// the first page and run the search once more with facets attached.
	if len(search.Facets) == 0 && result.Count > 0 {
		for _, f := range m.ProductFacets(result) {
			search.Facets = append(search.Facets, f.Name)
		}
		result, err = h.client.SearchProducts(r.Context(), search)
		if err != nil {
			ErrorResponse(w, r, err)
			return
		}
	}

	page, err := m.PagedProducts(result, selectedFacets)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func parsePositiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.Invalid("handler", "expected a non-negative integer")
	}
	return n, nil
}

func splitPipe(raw string) []string {
	if raw == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(raw, "|") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
