package ports_test

import (
	"testing"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/mocks"
	mocksauth "github.com/sentinellock/sentinel-web/internal/mocks/auth"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AuthBackend = (*mocksauth.FakeAuthBackend)(nil)
	var _ ports.RoleLookup = (*mocksauth.StaticRoleLookup)(nil)
	var _ ports.LocalStore = (*mocksauth.MemoryLocalStore)(nil)
	var _ ports.Notifier = (*mocksauth.RecordingNotifier)(nil)

	var _ ports.AuthBackend = (*mocks.MockAuthBackend)(nil)
	var _ ports.RoleLookup = (*mocks.MockRoleLookup)(nil)
	var _ ports.PersistenceStrategy = (*mocks.MockPersistenceStrategy)(nil)
	var _ ports.LocalStore = (*mocks.MockLocalStore)(nil)
	var _ ports.ContactAdmin = (*mocks.MockContactAdmin)(nil)
	var _ ports.RoleAdmin = (*mocks.MockRoleAdmin)(nil)
	var _ ports.BlogPostSource = (*mocks.MockBlogPostSource)(nil)
	var _ ports.TokenVerifier = (*mocks.MockTokenVerifier)(nil)
	var _ ports.ContentTable[model.PricingPlan, model.PricingPlanInput] = (*mocks.MockContentTable[model.PricingPlan, model.PricingPlanInput])(nil)
	var _ ports.PostAdmin = (*mocks.MockPostAdmin)(nil)
	var _ ports.SiteSettings = (*mocks.MockSiteSettings)(nil)
	var _ ports.ProfileSource = (*mocks.MockProfileSource)(nil)
}
