package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// Static errors for err113 compliance.
var (
	ErrEmptyToken       = errors.New("token source returned an empty access token")
	ErrNilTokenSource   = errors.New("token source is nil")
	ErrScopeNotGranted  = errors.New("scope not granted by credentials")
	ErrEmptyStaticToken = errors.New("static token is empty")
)

func bearer(token *oauth2.Token) (http.Header, error) {
	if token == nil || token.AccessToken == "" {
		return nil, ErrEmptyToken
	}

	h := http.Header{}
	h.Set("Authorization", token.Type()+" "+token.AccessToken)

	return h, nil
}

// NoAuth sends no credentials. Only public data is readable.
type NoAuth struct{}

// Headers implements gcs.HeaderProvider.
func (NoAuth) Headers(context.Context, gcs.Scope) (http.Header, error) {
	return http.Header{}, nil
}

// StaticToken sends the same bearer token for every scope.
type StaticToken struct {
	token string
}

// NewStaticToken creates a provider for an access token obtained elsewhere,
// e.g. from `gcloud auth print-access-token`.
func NewStaticToken(token string) *StaticToken {
	return &StaticToken{token: token}
}

// Headers implements gcs.HeaderProvider.
func (s *StaticToken) Headers(context.Context, gcs.Scope) (http.Header, error) {
	if s.token == "" {
		return nil, ErrEmptyStaticToken
	}

	return bearer(&oauth2.Token{AccessToken: s.token, TokenType: "Bearer"})
}

// TokenSource takes tokens from an oauth2.TokenSource, reusing each until it
// expires. The scope is fixed by the source.
type TokenSource struct {
	source oauth2.TokenSource
}

// NewTokenSource wraps src. A nil src fails every call.
func NewTokenSource(src oauth2.TokenSource) *TokenSource {
	if src == nil {
		return &TokenSource{}
	}

	return &TokenSource{source: oauth2.ReuseTokenSource(nil, src)}
}

// Headers implements gcs.HeaderProvider.
func (t *TokenSource) Headers(context.Context, gcs.Scope) (http.Header, error) {
	if t.source == nil {
		return nil, ErrNilTokenSource
	}

	token, err := t.source.Token()
	if err != nil {
		return nil, fmt.Errorf("fetching token: %w", err)
	}

	return bearer(token)
}

// ServiceAccount signs a JWT per scope and exchanges it for an access token.
// One token source is kept per scope, so a read-only call never holds a
// full-control token.
type ServiceAccount struct {
	key      *ServiceAccountKey
	tokenURL string

	mutex   sync.Mutex
	sources map[gcs.Scope]oauth2.TokenSource
}

// NewServiceAccount creates a provider from a parsed key file.
func NewServiceAccount(key *ServiceAccountKey) *ServiceAccount {
	tokenURL := key.TokenURI
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	return &ServiceAccount{
		key:      key,
		tokenURL: tokenURL,
		sources:  make(map[gcs.Scope]oauth2.TokenSource),
	}
}

// Email returns the service account address.
func (s *ServiceAccount) Email() string {
	return s.key.ClientEmail
}

// Headers implements gcs.HeaderProvider.
func (s *ServiceAccount) Headers(_ context.Context, scope gcs.Scope) (http.Header, error) {
	token, err := s.source(scope).Token()
	if err != nil {
		return nil, fmt.Errorf("fetching service account token: %w", err)
	}

	return bearer(token)
}

func (s *ServiceAccount) source(scope gcs.Scope) oauth2.TokenSource {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	src, ok := s.sources[scope]
	if !ok {
		cfg := &jwt.Config{
			Email:        s.key.ClientEmail,
			PrivateKey:   []byte(s.key.PrivateKey),
			PrivateKeyID: s.key.PrivateKeyID,
			Scopes:       []string{string(scope)},
			TokenURL:     s.tokenURL,
		}
		// Tokens are fetched outside any request context, so one slow call
		// cannot cancel the refresh of another.
		src = cfg.TokenSource(context.Background())
		s.sources[scope] = src
	}

	return src
}

// AuthorizedUser refreshes a user's token with a stored refresh token. The
// granted scopes were fixed at consent time; Headers fails when a call needs
// more than was granted and the token endpoint reports the granted scopes.
type AuthorizedUser struct {
	source oauth2.TokenSource
}

// NewAuthorizedUser creates a provider from a parsed authorized user file.
func NewAuthorizedUser(creds *AuthorizedUserCredentials) *AuthorizedUser {
	tokenURL := creds.TokenURI
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return &AuthorizedUser{
		source: cfg.TokenSource(context.Background(), &oauth2.Token{RefreshToken: creds.RefreshToken}),
	}
}

// Headers implements gcs.HeaderProvider.
func (a *AuthorizedUser) Headers(_ context.Context, scope gcs.Scope) (http.Header, error) {
	token, err := a.source.Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing user token: %w", err)
	}

	if granted, ok := token.Extra("scope").(string); ok && granted != "" && !grants(granted, scope) {
		return nil, fmt.Errorf("%w: %s", ErrScopeNotGranted, scope)
	}

	return bearer(token)
}

// grants reports whether the space separated scope list covers want. Broader
// storage scopes cover narrower ones.
func grants(granted string, want gcs.Scope) bool {
	order := map[gcs.Scope]int{
		gcs.ScopeReadOnly:    1,
		gcs.ScopeReadWrite:   2,
		gcs.ScopeFullControl: 3,
	}

	for _, s := range splitScopes(granted) {
		switch {
		case s == cloudPlatformScope:
			return true
		case order[gcs.Scope(s)] >= order[want] && order[gcs.Scope(s)] > 0:
			return true
		}
	}

	return false
}
