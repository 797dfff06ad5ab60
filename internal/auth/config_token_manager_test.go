package auth

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type recordingPersister struct {
	mutex  sync.Mutex
	tokens []string
	err    error
}

func (p *recordingPersister) UpdateToken(token string, _ time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.tokens = append(p.tokens, token)

	return p.err
}

func TestConfigTokenSource(t *testing.T) {
	t.Parallel()

	t.Run("valid initial token is not persisted again", func(t *testing.T) {
		t.Parallel()

		persister := &recordingPersister{}
		initial := &oauth2.Token{AccessToken: "cached", Expiry: time.Now().Add(time.Hour)}
		src := NewConfigTokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
			t.Fatal("source should not be called")

			return nil, nil
		}), persister, initial, nil)

		token, err := src.Token()
		require.NoError(t, err)
		assert.Equal(t, "cached", token.AccessToken)
		assert.Empty(t, persister.tokens)
	})

	t.Run("refreshed token is persisted once", func(t *testing.T) {
		t.Parallel()

		persister := &recordingPersister{}
		initial := &oauth2.Token{AccessToken: "expired", Expiry: time.Now().Add(-time.Hour)}
		src := NewConfigTokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
			return &oauth2.Token{AccessToken: "fresh", Expiry: time.Now().Add(time.Hour)}, nil
		}), persister, initial, nil)

		for range 2 {
			token, err := src.Token()
			require.NoError(t, err)
			assert.Equal(t, "fresh", token.AccessToken)
		}

		assert.Equal(t, []string{"fresh"}, persister.tokens)
	})

	t.Run("persist failure is reported not returned", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("disk full")
		persister := &recordingPersister{err: boom}

		var reported error
		src := NewConfigTokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
			return &oauth2.Token{AccessToken: "fresh", Expiry: time.Now().Add(time.Hour)}, nil
		}), persister, nil, func(err error) { reported = err })

		_, err := src.Token()
		require.NoError(t, err)
		assert.ErrorIs(t, reported, boom)
	})

	t.Run("nil persister", func(t *testing.T) {
		t.Parallel()

		var reported error
		src := NewConfigTokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
			return &oauth2.Token{AccessToken: "fresh"}, nil
		}), nil, nil, func(err error) { reported = err })

		_, err := src.Token()
		require.NoError(t, err)
		assert.ErrorIs(t, reported, ErrNoConfigPersister)
	})
}
