// Package ccif defines the vendor-neutral commerce data model returned to
// callers. Shapes are read models translated from the CommerceTools API;
// localized fields carry the single string picked for the request locale.
package ccif

// Product is the canonical product read model.
type Product struct {
	ID               string           `json:"id"`
	MasterVariantID  string           `json:"masterVariantId"`
	Name             string           `json:"name,omitempty"`
	Description      string           `json:"description,omitempty"`
	CreatedDate      string           `json:"createdDate,omitempty"`
	LastModifiedDate string           `json:"lastModifiedDate,omitempty"`
	Categories       []Category       `json:"categories,omitempty"`
	Variants         []ProductVariant `json:"variants"`
}

// ProductVariant carries a composite id of the form <productId>-<variantId>.
type ProductVariant struct {
	ID          string      `json:"id"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	SKU         string      `json:"sku,omitempty"`
	Prices      []Price     `json:"prices,omitempty"`
	Assets      []Asset     `json:"assets,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`
}

// Price is an amount in minor currency units.
type Price struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Country  string `json:"country,omitempty"`
}

// Asset references a product image or other media by url.
type Asset struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Attribute is a localized product attribute. VariantAttribute marks
// attributes that discriminate between variants of the same product.
type Attribute struct {
	ID               string `json:"id"`
	Name             string `json:"name,omitempty"`
	Value            string `json:"value,omitempty"`
	VariantAttribute bool   `json:"variantAttribute"`
}

// Facet is an aggregation bucket over a product search result set.
type Facet struct {
	Name   string       `json:"name"`
	Label  string       `json:"label,omitempty"`
	Type   string       `json:"type,omitempty"`
	Missed int          `json:"missed,omitempty"`
	Values []FacetValue `json:"facetValues,omitempty"`
}

// FacetValue is a single bucket of a facet. Selected is computed against the
// caller-supplied facet selection string.
type FacetValue struct {
	ID          string `json:"id"`
	Value       string `json:"value"`
	Occurrences int    `json:"occurrences"`
	Selected    bool   `json:"selected,omitempty"`
}

// PagedResponse wraps a windowed result set.
type PagedResponse[T any] struct {
	Offset  int     `json:"offset"`
	Count   int     `json:"count"`
	Total   int     `json:"total"`
	Results []T     `json:"results"`
	Facets  []Facet `json:"facets,omitempty"`
}
