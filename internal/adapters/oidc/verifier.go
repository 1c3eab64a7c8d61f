package oidc

// Package oidc verifies access tokens issued by the hosted auth backend so the
// admin API can trust a bearer token without a round trip per request.

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// VerifierConfig holds configuration for the token verifier. Either JWKSURL or
// SharedSecret must be set; projects still on symmetric signing use the secret.
type VerifierConfig struct {
	Issuer       string
	JWKSURL      string
	SharedSecret string
	// Audience is checked when non-empty (backend tokens use "authenticated").
	Audience   string
	HTTPClient *http.Client // Optional, defaults to a 10s client
	Now        func() time.Time
}

// Verifier implements ports.TokenVerifier.
type Verifier struct {
	issuer   string
	audience string
	now      func() time.Time

	remote *gooidc.IDTokenVerifier
	secret []byte
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// accessClaims are the custom claims read from a verified token.
type accessClaims struct {
	Email string `json:"email"`
}

// NewVerifier creates a token verifier. The remote key set is fetched lazily on
// first use and refreshed when an unknown key id appears.
func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	issuer := strings.TrimRight(strings.TrimSpace(cfg.Issuer), "/")
	if issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if cfg.JWKSURL == "" && cfg.SharedSecret == "" {
		return nil, errors.New("jwks URL or shared secret is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	v := &Verifier{issuer: issuer, audience: cfg.Audience, now: now}
	if cfg.SharedSecret != "" {
		v.secret = []byte(cfg.SharedSecret)
		return v, nil
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	// The key set keeps this context for its background fetches.
	ctx := gooidc.ClientContext(context.Background(), httpClient)
	keySet := gooidc.NewRemoteKeySet(ctx, cfg.JWKSURL)
	v.remote = gooidc.NewVerifier(issuer, keySet, &gooidc.Config{
		ClientID:             cfg.Audience,
		SkipClientIDCheck:    cfg.Audience == "",
		SupportedSigningAlgs: []string{gooidc.RS256, gooidc.ES256},
		Now:                  now,
	})
	return v, nil
}

// Verify validates rawToken and returns its subject, email and expiry.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (ports.VerifiedToken, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return ports.VerifiedToken{}, apperrors.Unauthorized("missing access token")
	}
	if v.secret != nil {
		return v.verifyShared(rawToken)
	}
	return v.verifyRemote(ctx, rawToken)
}

func (v *Verifier) verifyRemote(ctx context.Context, rawToken string) (ports.VerifiedToken, error) {
	tok, err := v.remote.Verify(ctx, rawToken)
	if err != nil {
		return ports.VerifiedToken{}, classify(err)
	}
	var claims accessClaims
	if err := tok.Claims(&claims); err != nil {
		return ports.VerifiedToken{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "unreadable token claims")
	}
	if tok.Subject == "" {
		return ports.VerifiedToken{}, apperrors.Unauthorized("token has no subject")
	}
	return ports.VerifiedToken{Subject: tok.Subject, Email: claims.Email, ExpiresAt: tok.Expiry}, nil
}

func (v *Verifier) verifyShared(rawToken string) (ports.VerifiedToken, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	claims := jwt.MapClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return ports.VerifiedToken{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "invalid access token")
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return ports.VerifiedToken{}, apperrors.Unauthorized("token has no subject")
	}
	out := ports.VerifiedToken{Subject: sub}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if exp, _ := claims.GetExpirationTime(); exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// classify separates key-set fetch failures (retryable) from rejected tokens.
func classify(err error) error {
	var expired *gooidc.TokenExpiredError
	if errors.As(err, &expired) {
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "access token expired")
	}
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) || strings.Contains(err.Error(), "fetching keys") {
		return apperrors.Unavailable(err, "token keys unavailable")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "invalid access token")
}
