// Package language selects values from CommerceTools localized string maps
// based on the request's Accept-Language header.
package language

import (
	"sort"

	"golang.org/x/text/language"
)

// Parser holds the caller's language preferences for one request.
type Parser struct {
	tags []language.Tag
}

// New parses an Accept-Language header value. An empty or malformed header
// falls back to English.
func New(acceptLanguage string) *Parser {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{language.English}
	}
	return &Parser{tags: tags}
}

// FirstTag returns the base tag of the most preferred language, in the short
// form CommerceTools uses as localized-field keys (e.g. "en" for "en-US").
func (p *Parser) FirstTag() string {
	base, _ := p.tags[0].Base()
	return base.String()
}

// Pick selects the best-matching value from a localized string map. When no
// declared language matches the preferences it falls back to "en", then to
// the lexicographically first key so the result is deterministic.
func (p *Parser) Pick(localized map[string]string) string {
	if len(localized) == 0 {
		return ""
	}

	keys := make([]string, 0, len(localized))
	for k := range localized {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	supported := make([]language.Tag, 0, len(keys))
	candidates := make([]string, 0, len(keys))
	for _, k := range keys {
		tag, err := language.Parse(k)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		candidates = append(candidates, k)
	}

	if len(supported) > 0 {
		matcher := language.NewMatcher(supported)
		if _, idx, conf := matcher.Match(p.tags...); conf > language.No {
			return localized[candidates[idx]]
		}
	}

	if v, ok := localized["en"]; ok {
		return v
	}
	return localized[keys[0]]
}
