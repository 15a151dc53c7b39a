package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	slug := Slugify("Hello, World!")
	assert.True(t, strings.HasPrefix(slug, "hello-world-"), "got %q", slug)

	// Suffix keeps equal titles distinct
	assert.NotEqual(t, Slugify("Same Title"), Slugify("Same Title"))

	long := Slugify(strings.Repeat("very long title ", 20))
	assert.LessOrEqual(t, len(long), 89)

	assert.NotContains(t, Slugify("  spaced   out  "), " ")
}

func TestSlugifyTruncatesOnRuneBoundary(t *testing.T) {
	// The leading ASCII letter puts every two-byte rune on an odd offset,
	// so the length cap falls mid-rune.
	slug := Slugify("a" + strings.Repeat("é", 60))
	assert.True(t, utf8.ValidString(slug), "got %q", slug)
	assert.LessOrEqual(t, len(slug), 89)
}
