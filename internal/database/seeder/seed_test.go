package seeder

import (
	"testing"

	"cofounder-match/internal/domain/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_SlugsUniqueAndCategorized(t *testing.T) {
	seen := map[string]struct{}{}
	for _, it := range catalog {
		_, dup := seen[it.Slug]
		require.False(t, dup, "duplicate slug %s", it.Slug)
		seen[it.Slug] = struct{}{}
		assert.True(t, it.Category.Valid(), it.Slug)
	}
}

func TestDemoProfiles_ReferenceCatalogWithinLimits(t *testing.T) {
	slugs := map[string]struct{}{}
	for _, it := range catalog {
		slugs[it.Slug] = struct{}{}
	}
	limits := matching.DefaultLimits()

	for _, p := range demoProfiles {
		assert.True(t, p.Role.Valid(), p.Handle)
		assert.LessOrEqual(t, len(p.Owned), limits.MaxOwned, p.Handle)
		assert.LessOrEqual(t, len(p.Wanted), limits.MaxWanted, p.Handle)
		for _, s := range append(append([]demoSkill{}, p.Owned...), p.Wanted...) {
			_, ok := slugs[s.Slug]
			assert.True(t, ok, "%s references unknown skill %s", p.Handle, s.Slug)
		}
	}
}

func TestDemoUserID_Stable(t *testing.T) {
	assert.Equal(t, DemoUserID("marie"), DemoUserID("marie"))
	assert.NotEqual(t, DemoUserID("marie"), DemoUserID("thomas"))
}
