package commands

import (
	"sync"
	"time"

	"github.com/fivetwenty-io/gcs-client/internal/auth"
)

// ConfigPersister implements the auth.ConfigPersister interface by caching
// refreshed access tokens in the config file.
type ConfigPersister struct {
	mutex sync.Mutex
	now   func() time.Time
}

var _ auth.ConfigPersister = (*ConfigPersister)(nil)

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{now: time.Now}
}

// UpdateToken stores token and its expiry in the config file.
func (p *ConfigPersister) UpdateToken(token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := readConfigFile()
	if err != nil {
		return err
	}

	config.CachedToken = token
	config.CachedTokenExpiresAt = nil

	if !expiresAt.IsZero() {
		config.CachedTokenExpiresAt = &expiresAt
	}

	now := p.now()
	config.LastRefreshed = &now

	return saveConfigStruct(config)
}
