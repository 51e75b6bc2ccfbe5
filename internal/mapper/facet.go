package mapper

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
)

// Facets maps raw CommerceTools facet results. Range facets format each
// bucket as "<from>-<to>"; term facets keep the raw term and take the
// dataType as the CCIF type tag. Facet names are emitted in sorted order so
// responses are stable.
func (m *ProductMapper) Facets(ctFacets map[string]commercetools.Facet, selectedFacets string) []ccif.Facet {
	if len(ctFacets) == 0 {
		return nil
	}

	selection := parseFacetSelection(selectedFacets)

	names := make([]string, 0, len(ctFacets))
	for name := range ctFacets {
		names = append(names, name)
	}
	sort.Strings(names)

	facets := make([]ccif.Facet, 0, len(names))
	for _, name := range names {
		ctFacet := ctFacets[name]
		facet := ccif.Facet{
			Name:   name,
			Missed: ctFacet.Missing,
		}

		if ctFacet.Type == "range" {
			facet.Type = ctFacet.Type
			for _, r := range ctFacet.Ranges {
				value := formatRange(r.From, r.To)
				facet.Values = append(facet.Values, facetValue(name, value, r.ProductCount, selection))
			}
		} else {
			facet.Type = ctFacet.DataType
			for _, term := range ctFacet.Terms {
				value := termString(term.Term)
				facet.Values = append(facet.Values, facetValue(name, value, term.ProductCount, selection))
			}
		}

		facets = append(facets, facet)
	}
	return facets
}

func facetValue(facetName, value string, count int, selection map[string][]string) ccif.FacetValue {
	fv := ccif.FacetValue{
		ID:          facetName + "." + value,
		Value:       value,
		Occurrences: count,
	}
	for _, selected := range selection[facetName] {
		if selected == value {
			fv.Selected = true
			break
		}
	}
	return fv
}

func formatRange(from, to float64) string {
	return strconv.FormatFloat(from, 'f', -1, 64) + "-" + strconv.FormatFloat(to, 'f', -1, 64)
}

// termString renders a raw facet term. Terms are strings for most fields and
// bare numbers for numeric ones.
func termString(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

var rangeSelection = regexp.MustCompile(`range\((\d+)to(\d+)\)`)

// parseFacetSelection parses a caller-supplied facet selection string of the
// form "name:v1,v2|name2:range(5000 to 15000)". Embedded whitespace and
// quoted terms are tolerated; range selections are normalized to the same
// "<from>-<to>" shape range facet values are formatted with.
func parseFacetSelection(selected string) map[string][]string {
	if selected == "" {
		return nil
	}

	selection := make(map[string][]string)
	for _, facet := range strings.Split(selected, "|") {
		name, rawValues, ok := strings.Cut(facet, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)

		// Whitespace is insignificant in selection values, including inside
		// range expressions ("range (5000 to 15000)").
		rawValues = strings.ReplaceAll(rawValues, " ", "")
		rawValues = strings.ReplaceAll(rawValues, "\t", "")

		for _, value := range strings.Split(rawValues, ",") {
			if strings.Contains(value, "range(") {
				value = rangeSelection.ReplaceAllString(value, "$1-$2")
			} else {
				value = strings.ReplaceAll(value, `"`, "")
			}
			if value != "" {
				selection[name] = append(selection[name], value)
			}
		}
	}
	return selection
}
