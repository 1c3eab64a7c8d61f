package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersions_SortedAndEmbedded(t *testing.T) {
	versions, err := Versions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, "0001_init", versions[0])
	assert.IsNonDecreasing(t, versions)

	body, err := migrationsFS.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)
	for _, table := range []string{"contact_submissions", "user_roles", "blog_posts", "make_user_admin"} {
		assert.Contains(t, string(body), table)
	}
}

func TestVersions_SiteContentFollowsInit(t *testing.T) {
	versions, err := Versions()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init", "0002_site_content"}, versions)

	body, err := migrationsFS.ReadFile("migrations/0002_site_content.sql")
	require.NoError(t, err)
	for _, table := range []string{"pricing_plans", "services", "testimonials", "site_settings", "profiles", "touch_updated_at"} {
		assert.Contains(t, string(body), table)
	}
}
