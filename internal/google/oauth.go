package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/larkvale/voicedesk/internal/credentials"
)

// Environment variables holding the OAuth client registration.
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
)

// oobRedirect is the out-of-band flow: Google shows the auth code to
// the user, who pastes it into `voicedesk auth exchange`.
const oobRedirect = "urn:ietf:wg:oauth:2.0:oob"

// Config wraps the oauth2 configuration for calendar access.
type Config struct {
	conf *oauth2.Config
}

// NewConfig builds a Config from explicit client credentials.
func NewConfig(clientID, clientSecret string) (*Config, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("google oauth client id and secret are required")
	}
	return &Config{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  oobRedirect,
			Scopes: []string{
				calendar.CalendarScope,
			},
		},
	}, nil
}

// NewConfigFromEnv builds a Config from GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET.
func NewConfigFromEnv() (*Config, error) {
	return NewConfig(os.Getenv(EnvClientID), os.Getenv(EnvClientSecret))
}

// OAuthConfig exposes the underlying oauth2 configuration for the
// refresh machinery.
func (c *Config) OAuthConfig() *oauth2.Config {
	return c.conf
}

// AuthURL returns the URL the user visits to authorize calendar
// access. Offline access is requested so a refresh token is issued.
func (c *Config) AuthURL(state string) string {
	return c.conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a grant.
func (c *Config) Exchange(ctx context.Context, code string) (*credentials.Grant, error) {
	t, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return credentials.FromToken(t, calendar.CalendarScope)
}
