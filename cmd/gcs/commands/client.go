package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/gcs-client/internal/auth"
	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
	"github.com/fivetwenty-io/gcs-client/pkg/gcsclient"
)

const userAgent = "gcs-cli/1.0"

// CreateClient builds a client from flags, environment and the config file.
// Credentials are taken in this order: access token, refresh token with
// client id and secret, credentials file, none.
func CreateClient(ctx context.Context) (gcs.Client, error) {
	config := effectiveConfig()

	cfg := clientConfig(ctx, config)

	client, err := gcsclient.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func clientConfig(ctx context.Context, config *Config) *gcs.Config {
	verbose := viper.GetBool(keyVerbose)
	logger := newLogger(os.Stderr, verbose)

	cfg := &gcs.Config{
		BaseURL:     config.BaseURL,
		UserAgent:   userAgent,
		HTTPTimeout: constants.ExtendedHTTPTimeout,
		RetryMax:    config.Retries,
		Debug:       verbose,
		Logger:      logger,
	}

	chain := gcs.NewInterceptorChain()
	chain.AddRequestInterceptor(gcs.RequestIDInterceptor())

	if config.QuotaProject != "" {
		chain.AddRequestInterceptor(gcs.HeaderInterceptor(map[string]string{
			"X-Goog-User-Project": config.QuotaProject,
		}))
	}

	cfg.Interceptors = chain

	switch {
	case config.Token != "":
		cfg.AccessToken = config.Token
	case config.RefreshToken != "" && config.ClientID != "":
		cfg.TokenSource = refreshingTokenSource(ctx, config, func(err error) {
			logger.Warn("Failed to cache refreshed token", map[string]interface{}{"error": err.Error()})
		})
	case config.Credentials != "":
		cfg.CredentialsFile = config.Credentials
	}

	return cfg
}

// refreshingTokenSource exchanges the configured refresh token for access
// tokens and caches each new one in the config file.
func refreshingTokenSource(ctx context.Context, config *Config, onError func(error)) oauth2.TokenSource {
	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = constants.GoogleTokenURL
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	var initial *oauth2.Token

	if config.CachedToken != "" && config.CachedTokenExpiresAt != nil && time.Now().Before(*config.CachedTokenExpiresAt) {
		initial = &oauth2.Token{
			AccessToken:  config.CachedToken,
			TokenType:    "Bearer",
			RefreshToken: config.RefreshToken,
			Expiry:       *config.CachedTokenExpiresAt,
		}
	}

	src := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: config.RefreshToken})

	return auth.NewConfigTokenSource(src, NewConfigPersister(), initial, onError)
}

// requireProject returns the configured project or ErrNoProject.
func requireProject(config *Config) (string, error) {
	if config.Project == "" {
		return "", constants.ErrNoProject
	}

	return config.Project, nil
}
