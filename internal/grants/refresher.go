package grants

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/larkvale/voicedesk/internal/credentials"
)

// Refresher exchanges a refresh token for a fresh grant at the remote
// token endpoint.
type Refresher interface {
	Refresh(ctx context.Context, g *credentials.Grant) (*credentials.Grant, error)
}

// OAuthRefresher refreshes grants through an oauth2.Config token
// source.
type OAuthRefresher struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewOAuthRefresher creates an OAuthRefresher. httpClient may be nil
// to use the default client.
func NewOAuthRefresher(conf *oauth2.Config, httpClient *http.Client) *OAuthRefresher {
	return &OAuthRefresher{conf: conf, httpClient: httpClient}
}

// Refresh exchanges the grant's refresh token for a new access token.
func (r *OAuthRefresher) Refresh(ctx context.Context, g *credentials.Grant) (*credentials.Grant, error) {
	if !g.Refreshable() {
		return nil, fmt.Errorf("no refresh token available")
	}
	if r.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	}

	// Force the token source to consider the token expired so it hits
	// the token endpoint instead of returning the cached access token.
	stale := g.Token()
	stale.Expiry = staleExpiry

	newToken, err := r.conf.TokenSource(ctx, stale).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	refreshed, err := credentials.FromToken(newToken, g.Scope)
	if err != nil {
		return nil, fmt.Errorf("token endpoint returned unusable token: %w", err)
	}
	// Providers that do not rotate refresh tokens omit them from the
	// refresh response; keep the one we have.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = g.RefreshToken
	}
	return refreshed, nil
}
