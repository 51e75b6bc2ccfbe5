package mapper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
	"github.com/dhindle/commerce-cif-commercetools/internal/domain"
	"github.com/dhindle/commerce-cif-commercetools/internal/language"
)

// ProductMapper maps CommerceTools product projections to CCIF products.
type ProductMapper struct {
	lang *language.Parser
}

// NewProductMapper creates a product mapper bound to one request's locale.
func NewProductMapper(lang *language.Parser) *ProductMapper {
	return &ProductMapper{lang: lang}
}

// attributeType is the product-type metadata a variant attribute is resolved
// against: the localized label and the variant-discriminating flag.
type attributeType struct {
	id               string
	name             string
	variantAttribute bool
}

// Product maps a single product projection. A missing product id or master
// variant id aborts the mapping; no partial product is produced.
func (m *ProductMapper) Product(ct *commercetools.ProductProjection) (*ccif.Product, error) {
	if ct.ID == "" {
		return nil, domain.MissingProperty("mapper.product", "id")
	}
	if ct.MasterVariant == nil || ct.MasterVariant.ID == 0 {
		return nil, domain.MissingProperty("mapper.product", "master variant")
	}

	p := &ccif.Product{
		ID:               ct.ID,
		MasterVariantID:  variantID(ct.ID, ct.MasterVariant.ID),
		Name:             m.lang.Pick(ct.Name),
		CreatedDate:      ct.CreatedAt,
		LastModifiedDate: ct.LastModifiedAt,
		Variants:         m.mapVariants(ct),
	}
	if ct.Description != nil {
		p.Description = m.lang.Pick(ct.Description)
	}
	for _, ref := range ct.Categories {
		p.Categories = append(p.Categories, ccif.Category{ID: ref.ID})
	}
	return p, nil
}

// Products maps a slice of product projections. The first mapping failure
// aborts the whole batch.
func (m *ProductMapper) Products(cts []commercetools.ProductProjection) ([]ccif.Product, error) {
	products := make([]ccif.Product, 0, len(cts))
	for i := range cts {
		p, err := m.Product(&cts[i])
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

// PagedProducts maps a product search result including facets. selectedFacets
// is the caller-supplied facet selection string used to mark selected values.
func (m *ProductMapper) PagedProducts(result *commercetools.PagedQueryResult[commercetools.ProductProjection], selectedFacets string) (*ccif.PagedResponse[ccif.Product], error) {
	products, err := m.Products(result.Results)
	if err != nil {
		return nil, err
	}

	pr := &ccif.PagedResponse[ccif.Product]{
		Offset:  result.Offset,
		Count:   result.Count,
		Total:   result.Total,
		Results: products,
	}
	if len(result.Facets) > 0 {
		pr.Facets = m.Facets(result.Facets, selectedFacets)
	}
	return pr, nil
}

// ProductFacets auto-discovers the facet expressions for a result set from
// the searchable product-type attributes of its first product, plus the
// fixed category and price facets.
func (m *ProductMapper) ProductFacets(result *commercetools.PagedQueryResult[commercetools.ProductProjection]) []ccif.Facet {
	var facets []ccif.Facet
	if result != nil && result.Count > 0 {
		if pt := result.Results[0].ProductType.Obj; pt != nil {
			for _, attr := range pt.Attributes {
				if !attr.IsSearchable {
					continue
				}
				facets = append(facets, ccif.Facet{
					Name:  fmt.Sprintf("variants.attributes.%s.%s", attr.Name, m.lang.FirstTag()),
					Label: m.lang.Pick(attr.Label),
				})
			}
		}
	}

	facets = append(facets,
		ccif.Facet{Name: "categories.id", Label: "Category"},
		ccif.Facet{Name: "variants.prices.value.centAmount", Label: "Price"},
	)
	return facets
}

func variantID(productID string, variant int64) string {
	return fmt.Sprintf("%s-%d", productID, variant)
}

// mapVariants returns the master variant followed by the declared variants.
func (m *ProductMapper) mapVariants(ct *commercetools.ProductProjection) []ccif.ProductVariant {
	var types []attributeType
	if ct.ProductType.Obj != nil {
		types = m.attributeTypes(ct.ProductType.Obj)
	}

	variants := make([]ccif.ProductVariant, 0, len(ct.Variants)+1)
	variants = append(variants, m.mapVariant(ct.ID, ct.MasterVariant, types))
	for i := range ct.Variants {
		variants = append(variants, m.mapVariant(ct.ID, &ct.Variants[i], types))
	}
	return variants
}

func (m *ProductMapper) mapVariant(productID string, variant *commercetools.ProductVariant, types []attributeType) ccif.ProductVariant {
	return ccif.ProductVariant{
		ID:         variantID(productID, variant.ID),
		SKU:        variant.SKU,
		Prices:     mapPrices(variant.Prices),
		Assets:     mapImages(variant.Images),
		Attributes: m.mapAttributes(types, variant.Attributes),
	}
}

// attributeTypes extracts the attribute metadata of a product type. Unique
// and CombinationUnique constraints mark variant-discriminating attributes.
func (m *ProductMapper) attributeTypes(pt *commercetools.ProductType) []attributeType {
	types := make([]attributeType, 0, len(pt.Attributes))
	for _, attr := range pt.Attributes {
		types = append(types, attributeType{
			id:               attr.Name,
			name:             m.lang.Pick(attr.Label),
			variantAttribute: isVariantConstraint(attr.AttributeConstraint),
		})
	}
	return types
}

func isVariantConstraint(constraint string) bool {
	return constraint == "Unique" || constraint == "CombinationUnique"
}

func mapPrices(prices []commercetools.Price) []ccif.Price {
	if prices == nil {
		return nil
	}
	out := make([]ccif.Price, len(prices))
	for i, price := range prices {
		out[i] = ccif.Price{
			Amount:   price.Value.CentAmount,
			Currency: price.Value.CurrencyCode,
			Country:  price.Country,
		}
	}
	return out
}

// mapImages derives an asset id from the url basename when the image has
// no id of its own.
func mapImages(images []commercetools.Image) []ccif.Asset {
	if images == nil {
		return nil
	}
	out := make([]ccif.Asset, len(images))
	for i, image := range images {
		id := image.ID
		if id == "" {
			id = image.URL[strings.LastIndex(image.URL, "/")+1:]
		}
		out[i] = ccif.Asset{ID: id, URL: image.URL}
	}
	return out
}

func (m *ProductMapper) mapAttributes(types []attributeType, attributes []commercetools.AttributeValue) []ccif.Attribute {
	if attributes == nil {
		return nil
	}
	out := make([]ccif.Attribute, 0, len(attributes))
	for _, attr := range attributes {
		value := m.attributeValue(attr.Value)

		matched := false
		for _, at := range types {
			if at.id == attr.Name {
				out = append(out, ccif.Attribute{
					ID:               at.id,
					Name:             at.name,
					Value:            value,
					VariantAttribute: at.variantAttribute,
				})
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, ccif.Attribute{ID: attr.Name, Value: value})
		}
	}
	return out
}

// attributeValue resolves a polymorphic CommerceTools attribute value:
// plain string, localized map, enum object ({key, label}) or number.
func (m *ProductMapper) attributeValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var localized map[string]string
	if err := json.Unmarshal(raw, &localized); err == nil {
		return m.lang.Pick(localized)
	}

	var enum struct {
		Key   string          `json:"key"`
		Label json.RawMessage `json:"label"`
	}
	if err := json.Unmarshal(raw, &enum); err == nil && enum.Key != "" {
		if len(enum.Label) > 0 {
			return m.attributeValue(enum.Label)
		}
		return enum.Key
	}

	// Numbers and anything else keep their JSON rendering.
	return strings.Trim(string(raw), `"`)
}
