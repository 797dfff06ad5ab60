package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister saves a refreshed token so the next process can reuse it.
type ConfigPersister interface {
	UpdateToken(token string, expiresAt time.Time) error
}

// PersistFunc adapts a function to ConfigPersister.
type PersistFunc func(token string, expiresAt time.Time) error

// UpdateToken implements ConfigPersister.
func (f PersistFunc) UpdateToken(token string, expiresAt time.Time) error {
	return f(token, expiresAt)
}

// ConfigTokenSource wraps a token source and hands every new token to a
// persister. Persist failures are reported through OnError and never fail
// the call that produced the token.
type ConfigTokenSource struct {
	source    oauth2.TokenSource
	persister ConfigPersister
	onError   func(error)

	mutex sync.Mutex
	last  string
}

// NewConfigTokenSource starts from initial, if it is still valid, and
// refreshes through src after that.
func NewConfigTokenSource(src oauth2.TokenSource, persister ConfigPersister, initial *oauth2.Token, onError func(error)) *ConfigTokenSource {
	last := ""
	if initial != nil {
		last = initial.AccessToken
	}

	return &ConfigTokenSource{
		source:    oauth2.ReuseTokenSource(initial, src),
		persister: persister,
		onError:   onError,
		last:      last,
	}
}

// Token implements oauth2.TokenSource.
func (m *ConfigTokenSource) Token() (*oauth2.Token, error) {
	token, err := m.source.Token()
	if err != nil {
		return nil, err
	}

	m.mutex.Lock()
	changed := token.AccessToken != m.last
	m.last = token.AccessToken
	m.mutex.Unlock()

	if changed {
		persistErr := m.persistToken(token)
		if persistErr != nil && m.onError != nil {
			m.onError(persistErr)
		}
	}

	return token, nil
}

func (m *ConfigTokenSource) persistToken(token *oauth2.Token) error {
	if m.persister == nil {
		return ErrNoConfigPersister
	}

	err := m.persister.UpdateToken(token.AccessToken, token.Expiry)
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}

	return nil
}
