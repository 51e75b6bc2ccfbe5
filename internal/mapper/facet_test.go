package mapper_test

import (
	"encoding/json"
	"testing"

	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
	"github.com/dhindle/commerce-cif-commercetools/internal/language"
	"github.com/dhindle/commerce-cif-commercetools/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFacets() map[string]commercetools.Facet {
	return map[string]commercetools.Facet{
		"variants.attributes.color.en": {
			DataType: "text",
			Missing:  2,
			Terms: []commercetools.FacetTerm{
				{Term: json.RawMessage(`"red"`), ProductCount: 10},
				{Term: json.RawMessage(`"green"`), ProductCount: 3},
			},
		},
		"variants.prices.value.centAmount": {
			Type: "range",
			Ranges: []commercetools.FacetRange{
				{From: 5000, To: 15000, ProductCount: 7},
				{From: 15000, To: 30000, ProductCount: 2},
			},
		},
	}
}

func TestFacetMapping(t *testing.T) {
	m := mapper.NewProductMapper(language.New("en"))

	facets := m.Facets(sampleFacets(), "")
	require.Len(t, facets, 2)

	// Sorted by name for stable output.
	color := facets[0]
	assert.Equal(t, "variants.attributes.color.en", color.Name)
	assert.Equal(t, "text", color.Type)
	assert.Equal(t, 2, color.Missed)
	require.Len(t, color.Values, 2)
	assert.Equal(t, "red", color.Values[0].Value)
	assert.Equal(t, "variants.attributes.color.en.red", color.Values[0].ID)
	assert.Equal(t, 10, color.Values[0].Occurrences)

	price := facets[1]
	assert.Equal(t, "range", price.Type)
	require.Len(t, price.Values, 2)
	assert.Equal(t, "5000-15000", price.Values[0].Value)
	assert.Equal(t, "15000-30000", price.Values[1].Value)
	assert.Equal(t, 7, price.Values[0].Occurrences)
}

func TestFacetSelection(t *testing.T) {
	m := mapper.NewProductMapper(language.New("en"))

	t.Run("term selection", func(t *testing.T) {
		facets := m.Facets(sampleFacets(), "variants.attributes.color.en:red,blue")

		color := facets[0]
		assert.True(t, color.Values[0].Selected, "red is selected")
		assert.False(t, color.Values[1].Selected, "green is not selected")
	})

	t.Run("range selection", func(t *testing.T) {
		facets := m.Facets(sampleFacets(), "variants.prices.value.centAmount:range(5000 to 15000)")

		price := facets[1]
		assert.True(t, price.Values[0].Selected)
		assert.False(t, price.Values[1].Selected)
	})

	t.Run("multiple facets with quotes and whitespace", func(t *testing.T) {
		selection := `variants.attributes.color.en: "red" , "blue" |variants.prices.value.centAmount:range (15000 to 30000)`
		facets := m.Facets(sampleFacets(), selection)

		color, price := facets[0], facets[1]
		assert.True(t, color.Values[0].Selected)
		assert.False(t, color.Values[1].Selected)
		assert.False(t, price.Values[0].Selected)
		assert.True(t, price.Values[1].Selected)
	})

	t.Run("empty selection marks nothing", func(t *testing.T) {
		facets := m.Facets(sampleFacets(), "")
		for _, f := range facets {
			for _, v := range f.Values {
				assert.False(t, v.Selected)
			}
		}
	})
}

func TestFacetNumericTerms(t *testing.T) {
	m := mapper.NewProductMapper(language.New("en"))

	facets := m.Facets(map[string]commercetools.Facet{
		"variants.attributes.weight": {
			DataType: "number",
			Terms: []commercetools.FacetTerm{
				{Term: json.RawMessage(`750`), ProductCount: 1},
			},
		},
	}, "")

	require.Len(t, facets, 1)
	assert.Equal(t, "750", facets[0].Values[0].Value)
}
