package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/mocks"
	mocksauth "github.com/sentinellock/sentinel-web/internal/mocks/auth"
)

type authorityFixture struct {
	backend  *mocksauth.FakeAuthBackend
	roles    *mocks.MockRoleLookup
	notifier *mocksauth.RecordingNotifier
	auth     *SessionAuthority
}

func newAuthorityFixture(t *testing.T, cfg SessionAuthorityConfig) *authorityFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &authorityFixture{
		backend:  mocksauth.NewFakeAuthBackend(),
		roles:    mocks.NewMockRoleLookup(ctrl),
		notifier: &mocksauth.RecordingNotifier{},
	}
	cfg.Notifier = f.notifier
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = "https://sentinellock.com/"
	}
	f.auth = NewSessionAuthority(SessionAuthorityOptions{
		Backend: f.backend,
		Roles:   f.roles,
		Config:  cfg,
	})
	t.Cleanup(f.auth.Close)
	return f
}

func (f *authorityFixture) signIn(t *testing.T) domainauth.Identity {
	t.Helper()
	require.NoError(t, f.auth.SignIn(context.Background(), "ana@sentinellock.com", "pw"))
	id := f.auth.Identity()
	require.NotNil(t, id)
	return *id
}

func lastNotice(t *testing.T, n *mocksauth.RecordingNotifier) model.Notice {
	t.Helper()
	notice, ok := n.Last()
	require.True(t, ok, "expected a notice")
	return notice
}

func TestNewSessionAuthority_StartsLoadingAndSignedOut(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})

	assert.True(t, f.auth.Loading())
	assert.Nil(t, f.auth.Identity())
	assert.False(t, f.auth.IsAdmin())
	assert.Equal(t, domainauth.StateUnauthenticated, f.auth.State())
}

func TestNewSessionAuthority_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { NewSessionAuthority(SessionAuthorityOptions{}) })
}

func TestRestoreSession_TimeoutFailsOpenToSignedOut(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{RestoreTimeout: 20 * time.Millisecond})
	f.backend.CurrentSessionFunc = func(ctx context.Context) (*domainauth.Identity, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	start := time.Now()
	err := f.auth.RestoreSession(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, f.auth.Loading())
	assert.Nil(t, f.auth.Identity())
	assert.Equal(t, domainauth.StateUnauthenticated, f.auth.State())
}

func TestRestoreSession_ErrorFailsOpenToSignedOut(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	f.backend.CurrentSessionFunc = func(context.Context) (*domainauth.Identity, error) {
		return nil, apperrors.Unavailable(errors.New("dial tcp"), "auth backend unavailable")
	}

	require.Error(t, f.auth.RestoreSession(context.Background()))
	assert.False(t, f.auth.Loading())
	assert.Equal(t, domainauth.StateUnauthenticated, f.auth.State())
}

func TestRestoreSession_RestoresIdentityAndSubscribesOnce(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	stored := mocksauth.DefaultIdentity("ana@sentinellock.com")
	f.backend.CurrentSessionFunc = func(context.Context) (*domainauth.Identity, error) {
		return &stored, nil
	}

	require.NoError(t, f.auth.RestoreSession(context.Background()))
	require.NoError(t, f.auth.RestoreSession(context.Background()))

	require.NotNil(t, f.auth.Identity())
	assert.Equal(t, stored.ID, f.auth.Identity().ID)
	assert.Equal(t, domainauth.StateRoleUnknown, f.auth.State())
	assert.False(t, f.auth.Loading())
	assert.False(t, f.auth.RoleGrant().Checked)
	assert.Equal(t, 1, f.backend.SubscribeCalls())
}

func TestRestoreSession_NoSession(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})

	require.NoError(t, f.auth.RestoreSession(context.Background()))
	assert.Nil(t, f.auth.Identity())
	assert.False(t, f.auth.Loading())
}

func TestSignIn_SuccessDoesNotCheckRole(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	// f.roles has no expectations: any HasRole call fails the test.

	id := f.signIn(t)

	assert.Equal(t, "ana@sentinellock.com", id.Email)
	assert.False(t, f.auth.IsAdmin())
	assert.Equal(t, domainauth.StateRoleUnknown, f.auth.State())
	assert.Equal(t, model.InfoNotice("Success", "Logged in successfully"), lastNotice(t, f.notifier))
}

func TestSignIn_EmailNotConfirmed(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	f.backend.AuthenticateFunc = func(context.Context, string, string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.New(apperrors.ErrCodeEmailNotConfirmed, "Email not confirmed")
	}

	err := f.auth.SignIn(context.Background(), "ana@sentinellock.com", "pw")

	require.Error(t, err)
	assert.True(t, apperrors.IsEmailNotConfirmed(err))
	assert.Nil(t, f.auth.Identity())
	assert.Equal(t, domainauth.StateUnauthenticated, f.auth.State())
	notice := lastNotice(t, f.notifier)
	assert.Equal(t, "Email Not Confirmed", notice.Title)
	assert.Equal(t, NoticeEmailNotConfirmed, notice.Description)
	assert.Equal(t, model.NoticeDestructive, notice.Variant)
}

func TestSignIn_InvalidCredentialsSurfacesProviderMessage(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	f.backend.AuthenticateFunc = func(context.Context, string, string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.New(apperrors.ErrCodeInvalidCredentials, "Invalid login credentials")
	}

	err := f.auth.SignIn(context.Background(), "ana@sentinellock.com", "wrong")

	require.Error(t, err)
	assert.Equal(t, model.ErrorNotice("Error", "Invalid login credentials"), lastNotice(t, f.notifier))
}

func TestSignIn_FailureKeepsExistingSession(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	f.signIn(t)

	f.backend.AuthenticateFunc = func(context.Context, string, string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.New(apperrors.ErrCodeInvalidCredentials, "Invalid login credentials")
	}
	require.Error(t, f.auth.SignIn(context.Background(), "other@sentinellock.com", "x"))

	assert.NotNil(t, f.auth.Identity())
	assert.Equal(t, domainauth.StateRoleUnknown, f.auth.State())
}

func TestSignIn_RequiresEmailAndPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	backend := mocks.NewMockAuthBackend(ctrl)
	auth := NewSessionAuthority(SessionAuthorityOptions{
		Backend: backend,
		Roles:   mocks.NewMockRoleLookup(ctrl),
	})

	err := auth.SignIn(context.Background(), "  ", "pw")
	assert.True(t, apperrors.IsValidation(err))

	err = auth.SignIn(context.Background(), "ana@sentinellock.com", "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestSignUp_ConfirmationPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	backend := mocks.NewMockAuthBackend(ctrl)
	notifier := &mocksauth.RecordingNotifier{}
	auth := NewSessionAuthority(SessionAuthorityOptions{
		Backend: backend,
		Roles:   mocks.NewMockRoleLookup(ctrl),
		Config:  SessionAuthorityConfig{RedirectURL: "https://sentinellock.com/", Notifier: notifier},
	})

	backend.EXPECT().
		Register(gomock.Any(), "new@sentinellock.com", "pw", domainauth.Profile{
			DisplayName: "New Person",
			RedirectURL: "https://sentinellock.com/",
		}).
		Return(domainauth.Registration{UserID: "u-9", Email: "new@sentinellock.com"}, nil)

	require.NoError(t, auth.SignUp(context.Background(), " new@sentinellock.com ", "pw", " New Person "))

	assert.Nil(t, auth.Identity())
	assert.Equal(t, domainauth.StateUnauthenticated, auth.State())
	assert.Equal(t, model.InfoNotice("Account Created", NoticeConfirmEmail), lastNotice(t, notifier))
}

func TestSignUp_ConfirmedSignsIn(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})

	require.NoError(t, f.auth.SignUp(context.Background(), "new@sentinellock.com", "pw", "New"))

	require.NotNil(t, f.auth.Identity())
	assert.Equal(t, "New", f.auth.Identity().DisplayName)
	assert.Equal(t, model.InfoNotice("Success", "Account created successfully"), lastNotice(t, f.notifier))
}

func TestSignUp_ErrorIsNotifiedAndReturned(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	f.backend.RegisterFunc = func(context.Context, string, string, domainauth.Profile) (domainauth.Registration, error) {
		return domainauth.Registration{}, apperrors.Conflict("User already registered")
	}

	err := f.auth.SignUp(context.Background(), "dup@sentinellock.com", "pw", "")
	require.Error(t, err)
	assert.Equal(t, model.ErrorNotice("Error", "User already registered"), lastNotice(t, f.notifier))
}

func TestSignOut_ClearsLocallyEvenWhenRemoteFails(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	f.signIn(t)
	f.roles.EXPECT().HasRole(gomock.Any(), "fake-user-1", domainauth.RoleAdmin).Return(true, nil)
	require.True(t, f.auth.CheckAdminRole(context.Background(), ""))

	f.backend.SignOutFunc = func(context.Context) error { return errors.New("network down") }
	f.auth.SignOut(context.Background())

	assert.Nil(t, f.auth.Identity())
	assert.False(t, f.auth.IsAdmin())
	assert.Equal(t, domainauth.StateUnauthenticated, f.auth.State())
	assert.Equal(t, model.ErrorNotice("Error", "network down"), lastNotice(t, f.notifier))
}

func TestSignOut_Success(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	f.signIn(t)

	f.auth.SignOut(context.Background())

	assert.Nil(t, f.auth.Identity())
	assert.Equal(t, model.InfoNotice("Success", "Logged out successfully"), lastNotice(t, f.notifier))
}

func TestCheckAdminRole_NoIdentityMakesNoRemoteCall(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})

	assert.False(t, f.auth.CheckAdminRole(context.Background(), ""))
	assert.False(t, f.auth.IsAdmin())
	assert.True(t, f.auth.RoleGrant().Checked)
}

func TestCheckAdminRole_LookupOutcomes(t *testing.T) {
	tests := []struct {
		name  string
		found bool
		err   error
		want  bool
	}{
		{name: "row found", found: true, want: true},
		{name: "no row", found: false, want: false},
		{name: "remote error denies", err: errors.New("permission denied"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthorityFixture(t, SessionAuthorityConfig{})
			id := f.signIn(t)
			f.roles.EXPECT().HasRole(gomock.Any(), id.ID, domainauth.RoleAdmin).Return(tt.found, tt.err)

			got := f.auth.CheckAdminRole(context.Background(), "")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, f.auth.IsAdmin())
			assert.Equal(t, domainauth.StateRoleChecked, f.auth.State())
		})
	}
}

func TestCheckAdminRole_TimeoutDeniesByDefault(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{RoleCheckTimeout: 20 * time.Millisecond})
	id := f.signIn(t)
	f.roles.EXPECT().HasRole(gomock.Any(), id.ID, domainauth.RoleAdmin).
		DoAndReturn(func(ctx context.Context, _ string, _ domainauth.Role) (bool, error) {
			<-ctx.Done()
			return true, nil
		})

	start := time.Now()
	assert.False(t, f.auth.CheckAdminRole(context.Background(), ""))
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, f.auth.IsAdmin())
}

func TestCheckAdminRole_TimeoutGrantsOnlyWithDebugFlag(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{
		RoleCheckTimeout:        20 * time.Millisecond,
		GrantAdminOnRoleTimeout: true,
	})
	id := f.signIn(t)
	f.roles.EXPECT().HasRole(gomock.Any(), id.ID, domainauth.RoleAdmin).
		DoAndReturn(func(ctx context.Context, _ string, _ domainauth.Role) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		})

	assert.True(t, f.auth.CheckAdminRole(context.Background(), ""))
	assert.True(t, f.auth.IsAdmin())
}

func TestCheckAdminRole_DebugFlagDoesNotGrantOnError(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{GrantAdminOnRoleTimeout: true})
	id := f.signIn(t)
	f.roles.EXPECT().HasRole(gomock.Any(), id.ID, domainauth.RoleAdmin).Return(false, errors.New("boom"))

	assert.False(t, f.auth.CheckAdminRole(context.Background(), ""))
}

func TestCheckAdminRole_ExplicitIDForOtherUserIsNotCached(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	f.signIn(t)
	f.roles.EXPECT().HasRole(gomock.Any(), "someone-else", domainauth.RoleAdmin).Return(true, nil)

	assert.True(t, f.auth.CheckAdminRole(context.Background(), "someone-else"))
	assert.False(t, f.auth.IsAdmin())
}

func TestCheckAdminRole_ConcurrentChecksCollapse(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	id := f.signIn(t)
	f.roles.EXPECT().HasRole(gomock.Any(), id.ID, domainauth.RoleAdmin).
		DoAndReturn(func(context.Context, string, domainauth.Role) (bool, error) {
			time.Sleep(100 * time.Millisecond)
			return true, nil
		}).Times(1)

	var wg sync.WaitGroup
	results := make([]bool, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.auth.CheckAdminRole(context.Background(), "")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.True(t, r)
	}
}

func TestCheckAdminRole_CanceledCallerDoesNotFailOtherWaiters(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{RoleCheckTimeout: time.Second})
	id := f.signIn(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.roles.EXPECT().HasRole(gomock.Any(), id.ID, domainauth.RoleAdmin).
		DoAndReturn(func(ctx context.Context, _ string, _ domainauth.Role) (bool, error) {
			close(started)
			select {
			case <-release:
				return true, nil
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}).Times(1)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan bool, 1)
	go func() { firstDone <- f.auth.CheckAdminRole(firstCtx, "") }()
	<-started

	secondDone := make(chan bool, 1)
	go func() { secondDone <- f.auth.CheckAdminRole(context.Background(), "") }()
	// Give the second caller time to join the in-flight lookup.
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.False(t, <-firstDone)

	close(release)
	assert.True(t, <-secondDone)
	assert.True(t, f.auth.IsAdmin())
}

func TestSessionChange_SignedOutClearsIdentityAndGrant(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	require.NoError(t, f.auth.RestoreSession(context.Background()))
	id := f.signIn(t)
	f.roles.EXPECT().HasRole(gomock.Any(), id.ID, domainauth.RoleAdmin).Return(true, nil)
	require.True(t, f.auth.CheckAdminRole(context.Background(), ""))

	f.backend.Emit(domainauth.SessionChange{Event: domainauth.EventExpired})

	assert.Nil(t, f.auth.Identity())
	assert.False(t, f.auth.IsAdmin())
	assert.Equal(t, domainauth.StateUnauthenticated, f.auth.State())
}

func TestSessionChange_TokenRefreshKeepsGrant(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	require.NoError(t, f.auth.RestoreSession(context.Background()))
	id := f.signIn(t)
	f.roles.EXPECT().HasRole(gomock.Any(), id.ID, domainauth.RoleAdmin).Return(true, nil)
	require.True(t, f.auth.CheckAdminRole(context.Background(), ""))

	refreshed := id
	refreshed.Credentials.AccessToken = "new-access"
	f.backend.Emit(domainauth.SessionChange{Event: domainauth.EventTokenRefreshed, Identity: &refreshed})

	assert.True(t, f.auth.IsAdmin())
	assert.Equal(t, "new-access", f.auth.Identity().Credentials.AccessToken)
}

func TestSessionChange_DifferentUserResetsGrant(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	require.NoError(t, f.auth.RestoreSession(context.Background()))
	id := f.signIn(t)
	f.roles.EXPECT().HasRole(gomock.Any(), id.ID, domainauth.RoleAdmin).Return(true, nil)
	require.True(t, f.auth.CheckAdminRole(context.Background(), ""))

	other := mocksauth.DefaultIdentity("bo@sentinellock.com")
	other.ID = "other-user"
	f.backend.Emit(domainauth.SessionChange{Event: domainauth.EventSignedIn, Identity: &other})

	assert.Equal(t, "other-user", f.auth.Identity().ID)
	assert.False(t, f.auth.IsAdmin())
	assert.Equal(t, domainauth.StateRoleUnknown, f.auth.State())
}

func TestClose_Unsubscribes(t *testing.T) {
	f := newAuthorityFixture(t, SessionAuthorityConfig{})
	require.NoError(t, f.auth.RestoreSession(context.Background()))
	require.Equal(t, 1, f.backend.Subscribers())

	f.auth.Close()
	assert.Equal(t, 0, f.backend.Subscribers())
}
