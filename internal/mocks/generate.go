// Package mocks provides gomock implementations of the ports used by sentinel services.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	t.Cleanup(ctrl.Finish)
//	backend := mocks.NewMockAuthBackend(ctrl)
//	backend.EXPECT().Authenticate(gomock.Any(), "a@b.co", "pw").Return(identity, nil)
package mocks

// Generate mocks for every port in internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/sentinellock/sentinel-web/internal/ports AuthBackend,RoleLookup,RoleAdmin,TokenVerifier,PersistenceStrategy,LocalStore,Notifier,ContactAdmin,BlogPostSource,ContentTable,PostAdmin,SiteSettings,ProfileSource
