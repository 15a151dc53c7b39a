package service

import (
	"testing"

	"anoa.com/campquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsValid(t *testing.T) {
	require.NoError(t, validateCatalog())
	assert.NotEmpty(t, achievementCatalog)
}

func TestCatalogCodesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range achievementCatalog {
		assert.False(t, seen[def.Code], "duplicate code %s", def.Code)
		seen[def.Code] = true
	}
}

func TestCatalogEveryRequirementHasAccessor(t *testing.T) {
	for _, def := range achievementCatalog {
		_, ok := statAccessors[def.Requirement.Type]
		assert.True(t, ok, "%s uses unregistered requirement type %q", def.Code, def.Requirement.Type)
	}
}

func TestCatalogByCode(t *testing.T) {
	def, ok := CatalogByCode("FIRST_BLOG_POST")
	require.True(t, ok)
	assert.Equal(t, "First Words", def.Name)
	assert.Equal(t, 50, def.XP)

	_, ok = CatalogByCode("NO_SUCH_CODE")
	assert.False(t, ok)
}

func TestCatalogByCategoryPreservesOrder(t *testing.T) {
	defs := CatalogByCategory(model.CategoryContribution)
	require.NotEmpty(t, defs)
	assert.Equal(t, "FIRST_BLOG_POST", defs[0].Code)
	for _, def := range defs {
		assert.Equal(t, model.CategoryContribution, def.Category)
	}
}

func TestStatValue(t *testing.T) {
	stats := &model.UserStats{BlogPosts: 3, LoginStreak: 7}

	v, ok := statValue(stats, "blog_posts")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = statValue(stats, "login_streak")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = statValue(stats, "bogus_counter")
	assert.False(t, ok)
}

func TestRequirementSatisfied(t *testing.T) {
	tests := []struct {
		name      string
		compare   string
		value     int
		threshold int
		want      bool
	}{
		{"gte below", model.CompareGte, 4, 5, false},
		{"gte exact", model.CompareGte, 5, 5, true},
		{"gte above", model.CompareGte, 9, 5, true},
		{"eq below", model.CompareEq, 99, 100, false},
		{"eq exact", model.CompareEq, 100, 100, true},
		{"eq above", model.CompareEq, 101, 100, false},
		{"gt exact", model.CompareGt, 5, 5, false},
		{"gt above", model.CompareGt, 6, 5, true},
		{"lte above", model.CompareLte, 6, 5, false},
		{"lte exact", model.CompareLte, 5, 5, true},
		{"empty compare defaults to gte", "", 5, 5, true},
		{"zero threshold defaults to one", model.CompareGte, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, requirementSatisfied(tt.compare, tt.value, tt.threshold))
		})
	}
}
