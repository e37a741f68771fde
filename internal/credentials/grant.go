package credentials

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// Grant holds the OAuth credentials stored for a tenant. A Grant is
// only ever constructed whole: either from a successful token exchange
// or by decoding a previously persisted blob.
type Grant struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scope        string    `json:"scope,omitempty"`
}

// FromToken converts an oauth2 token into a Grant.
func FromToken(t *oauth2.Token, scope string) (*Grant, error) {
	if t == nil || t.AccessToken == "" {
		return nil, fmt.Errorf("token has no access token")
	}
	return &Grant{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
		Scope:        scope,
	}, nil
}

// Token converts the Grant into an oauth2 token.
func (g *Grant) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  g.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: g.RefreshToken,
		Expiry:       g.Expiry,
	}
}

// Valid reports whether the access token is still usable at now,
// allowing for clock skew. A zero expiry means the token does not
// expire.
func (g *Grant) Valid(now time.Time, skew time.Duration) bool {
	if g.AccessToken == "" {
		return false
	}
	if g.Expiry.IsZero() {
		return true
	}
	return now.Add(skew).Before(g.Expiry)
}

// Refreshable reports whether the grant carries a refresh token.
func (g *Grant) Refreshable() bool {
	return g.RefreshToken != ""
}

// Encode serializes the grant to its stored blob form.
func (g *Grant) Encode() ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to encode grant: %w", err)
	}
	return data, nil
}

// DecodeGrant parses a stored blob back into a Grant.
func DecodeGrant(data []byte) (*Grant, error) {
	var g Grant
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to decode grant: %w", err)
	}
	if g.AccessToken == "" {
		return nil, fmt.Errorf("stored grant has no access token")
	}
	return &g, nil
}
