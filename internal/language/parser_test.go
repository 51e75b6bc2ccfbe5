package language_test

import (
	"testing"

	"github.com/dhindle/commerce-cif-commercetools/internal/language"
	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	localized := map[string]string{
		"en": "Men",
		"de": "Herren",
		"fr": "Hommes",
	}

	tests := []struct {
		name           string
		acceptLanguage string
		expected       string
	}{
		{"exact match", "de", "Herren"},
		{"region narrows to base", "en-US", "Men"},
		{"quality ordering", "fr;q=0.9, de;q=1.0", "Herren"},
		{"unknown falls back to english", "ja", "Men"},
		{"empty header falls back to english", "", "Men"},
		{"malformed header falls back to english", ";;;", "Men"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := language.New(tt.acceptLanguage)
			assert.Equal(t, tt.expected, p.Pick(localized))
		})
	}
}

func TestPickWithoutEnglish(t *testing.T) {
	localized := map[string]string{"de": "Herren", "fr": "Hommes"}

	// No match and no "en" key: deterministic fallback to first key.
	p := language.New("ja")
	assert.Equal(t, "Herren", p.Pick(localized))

	assert.Equal(t, "", p.Pick(nil))
}

func TestFirstTag(t *testing.T) {
	assert.Equal(t, "en", language.New("en-US,en;q=0.9").FirstTag())
	assert.Equal(t, "de", language.New("de-CH").FirstTag())
	assert.Equal(t, "en", language.New("").FirstTag())
}
