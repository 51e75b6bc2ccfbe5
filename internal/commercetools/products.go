package commercetools

import (
	"context"
	"net/url"
	"strconv"
)

// productTypeExpansion pulls the product-type attribute definitions into
// product responses; mapping needs them for attribute labels and the
// variant-discriminating flag.
const productTypeExpansion = "productType"

// ProductSearch parameterizes a product projection search.
type ProductSearch struct {
	// Text is a full-text query in the language given by Lang.
	Text string
	Lang string

	// Filters are result filters (filter.query), e.g. `categories.id:"<id>"`.
	Filters []string

	// Facets are facet expressions to aggregate on.
	Facets []string

	Limit  int
	Offset int
}

// GetProduct fetches a product projection by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*ProductProjection, error) {
	query := url.Values{}
	query.Set("expand", productTypeExpansion)

	var p ProductProjection
	if err := c.get(ctx, "commercetools.getProduct", "/product-projections/"+url.PathEscape(id), query, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchProducts runs a product projection search with optional full-text
// query, filters and facet aggregations.
func (c *Client) SearchProducts(ctx context.Context, s ProductSearch) (*PagedQueryResult[ProductProjection], error) {
	query := url.Values{}
	query.Set("expand", productTypeExpansion)
	if s.Text != "" {
		lang := s.Lang
		if lang == "" {
			lang = "en"
		}
		query.Set("text."+lang, s.Text)
	}
	for _, f := range s.Filters {
		query.Add("filter.query", f)
	}
	for _, f := range s.Facets {
		query.Add("facet", f)
	}
	if s.Limit > 0 {
		query.Set("limit", strconv.Itoa(s.Limit))
	}
	if s.Offset > 0 {
		query.Set("offset", strconv.Itoa(s.Offset))
	}

	var result PagedQueryResult[ProductProjection]
	if err := c.get(ctx, "commercetools.searchProducts", "/product-projections/search", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
