package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
	"github.com/dhindle/commerce-cif-commercetools/internal/domain"
)

type mockProductClient struct {
	GetProductFunc     func(ctx context.Context, id string) (*commercetools.ProductProjection, error)
	SearchProductsFunc func(ctx context.Context, s commercetools.ProductSearch) (*commercetools.PagedQueryResult[commercetools.ProductProjection], error)
}

func (m *mockProductClient) GetProduct(ctx context.Context, id string) (*commercetools.ProductProjection, error) {
	return m.GetProductFunc(ctx, id)
}

func (m *mockProductClient) SearchProducts(ctx context.Context, s commercetools.ProductSearch) (*commercetools.PagedQueryResult[commercetools.ProductProjection], error) {
	return m.SearchProductsFunc(ctx, s)
}

func newProductMux(client ProductClient) *http.ServeMux {
	h := NewProductHandler(client, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", h.SearchProducts)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
	return mux
}

func searchResult(products ...commercetools.ProductProjection) *commercetools.PagedQueryResult[commercetools.ProductProjection] {
	return &commercetools.PagedQueryResult[commercetools.ProductProjection]{
		Count:   len(products),
		Total:   len(products),
		Results: products,
	}
}

func testProduct() commercetools.ProductProjection {
	return commercetools.ProductProjection{
		ID:   "prod-1",
		Name: commercetools.LocalizedString{"en": "Meskwielt"},
		MasterVariant: &commercetools.ProductVariant{
			ID:  1,
			SKU: "meskwielt-1",
		},
	}
}

func TestGetProductEndpoint(t *testing.T) {
	t.Run("maps and returns the product", func(t *testing.T) {
		client := &mockProductClient{
			GetProductFunc: func(ctx context.Context, id string) (*commercetools.ProductProjection, error) {
				assert.Equal(t, "prod-1", id)
				p := testProduct()
				return &p, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/products/prod-1", nil)
		req.Header.Set("Accept-Language", "en-US")
		rec := httptest.NewRecorder()
		newProductMux(client).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Meskwielt")
		assert.Contains(t, rec.Body.String(), "prod-1-1")
	})

	t.Run("maps an unknown product to 404", func(t *testing.T) {
		client := &mockProductClient{
			GetProductFunc: func(ctx context.Context, id string) (*commercetools.ProductProjection, error) {
				return nil, domain.NotFound("commercetools.getProduct", "product", id)
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/products/nope", nil)
		rec := httptest.NewRecorder()
		newProductMux(client).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("maps a product without a master variant to 500", func(t *testing.T) {
		client := &mockProductClient{
			GetProductFunc: func(ctx context.Context, id string) (*commercetools.ProductProjection, error) {
				return &commercetools.ProductProjection{ID: "prod-1"}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/products/prod-1", nil)
		rec := httptest.NewRecorder()
		newProductMux(client).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSearchProductsEndpoint(t *testing.T) {
	t.Run("passes text, filters and paging and re-issues with discovered facets", func(t *testing.T) {
		var searches []commercetools.ProductSearch
		client := &mockProductClient{
			SearchProductsFunc: func(ctx context.Context, s commercetools.ProductSearch) (*commercetools.PagedQueryResult[commercetools.ProductProjection], error) {
				searches = append(searches, s)
				return searchResult(testProduct()), nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/products?text=jacket&filter=categories.id:%22cat-1%22&limit=10&offset=20", nil)
		req.Header.Set("Accept-Language", "en")
		rec := httptest.NewRecorder()
		newProductMux(client).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, searches, 2)

		first := searches[0]
		assert.Equal(t, "jacket", first.Text)
		assert.Equal(t, "en", first.Lang)
		assert.Equal(t, []string{`categories.id:"cat-1"`}, first.Filters)
		assert.Equal(t, 10, first.Limit)
		assert.Equal(t, 20, first.Offset)
		assert.Empty(t, first.Facets)

		// Second pass carries the auto-discovered facets; the sample product
		// type has no searchable attributes so only the fixed pair remains.
		assert.Equal(t, []string{"categories.id", "variants.prices.value.centAmount"}, searches[1].Facets)
	})

	t.Run("explicit queryFacets skip discovery", func(t *testing.T) {
		var searches []commercetools.ProductSearch
		client := &mockProductClient{
			SearchProductsFunc: func(ctx context.Context, s commercetools.ProductSearch) (*commercetools.PagedQueryResult[commercetools.ProductProjection], error) {
				searches = append(searches, s)
				return searchResult(testProduct()), nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/products?queryFacets=categories.id", nil)
		rec := httptest.NewRecorder()
		newProductMux(client).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, searches, 1)
		assert.Equal(t, []string{"categories.id"}, searches[0].Facets)
	})

	t.Run("selected facets become result filters", func(t *testing.T) {
		var searches []commercetools.ProductSearch
		client := &mockProductClient{
			SearchProductsFunc: func(ctx context.Context, s commercetools.ProductSearch) (*commercetools.PagedQueryResult[commercetools.ProductProjection], error) {
				searches = append(searches, s)
				return searchResult(), nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, `/products?selectedFacets=categories.id:%22cat-1%22%7Cvariants.prices.value.centAmount:range(0%20to%205000)`, nil)
		rec := httptest.NewRecorder()
		newProductMux(client).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, searches, 1)
		assert.Equal(t, []string{
			`categories.id:"cat-1"`,
			`variants.prices.value.centAmount:range(0 to 5000)`,
		}, searches[0].Filters)
	})

	t.Run("empty result skips the facet pass", func(t *testing.T) {
		calls := 0
		client := &mockProductClient{
			SearchProductsFunc: func(ctx context.Context, s commercetools.ProductSearch) (*commercetools.PagedQueryResult[commercetools.ProductProjection], error) {
				calls++
				return searchResult(), nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/products?text=nothing", nil)
		rec := httptest.NewRecorder()
		newProductMux(client).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, calls)

		var page struct {
			Count   int `json:"count"`
			Results []any
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, 0, page.Count)
	})

	t.Run("rejects a bad limit", func(t *testing.T) {
		client := &mockProductClient{
			SearchProductsFunc: func(ctx context.Context, s commercetools.ProductSearch) (*commercetools.PagedQueryResult[commercetools.ProductProjection], error) {
				t.Fatal("client must not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/products?limit=-1", nil)
		rec := httptest.NewRecorder()
		newProductMux(client).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
