package gotrue

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
)

// tokenSourceTimeout bounds a Token call, which carries no context of its own.
const tokenSourceTimeout = 15 * time.Second

// TokenSource returns an oauth2.TokenSource yielding the signed-in user's access
// token, refreshed when expired. With no session it yields nil and the data client
// falls back to the project key.
func (b *Backend) TokenSource(fallback oauth2.TokenSource) oauth2.TokenSource {
	return &sessionTokenSource{backend: b, fallback: fallback}
}

type sessionTokenSource struct {
	backend  *Backend
	fallback oauth2.TokenSource
}

func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), tokenSourceTimeout)
	defer cancel()

	id, err := s.backend.load(ctx)
	if err != nil {
		return nil, err
	}
	if id == nil {
		if s.fallback != nil {
			return s.fallback.Token()
		}
		return nil, errNoSession
	}

	fresh, err := s.backend.ensureFresh(ctx, *id)
	if err != nil {
		if s.backend.sessionRejected(err) {
			s.backend.expire(ctx)
		}
		return nil, err
	}
	return oauthToken(fresh.Credentials), nil
}

type noSessionError struct{}

func (noSessionError) Error() string { return "no signed-in session" }

var errNoSession error = noSessionError{}

func oauthToken(c domainauth.Credentials) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       c.ExpiresAt,
	}
}

func staticToken(c domainauth.Credentials) oauth2.TokenSource {
	return oauth2.StaticTokenSource(oauthToken(c))
}
