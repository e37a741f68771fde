package credentials

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Store.Load when no grant is persisted for
// the tenant. Storage I/O failures are returned as distinct errors so
// callers never mistake a broken store for a missing grant.
var ErrNotFound = errors.New("no grant stored for tenant")

// Store persists per-tenant grants. Implementations must be safe for
// concurrent use across tenants; per-tenant serialization is handled
// by grants.Manager.
type Store interface {
	// Load returns the stored grant for a tenant, or ErrNotFound.
	Load(ctx context.Context, tenant string) (*Grant, error)

	// Save persists the grant for a tenant, replacing any previous one.
	Save(ctx context.Context, tenant string, g *Grant) error

	// Delete removes the grant for a tenant. Deleting a tenant that has
	// no grant is not an error.
	Delete(ctx context.Context, tenant string) error
}

// sanitizeTenant maps a tenant id onto a string safe for use in file
// names and store keys. Anything outside [A-Za-z0-9._-] becomes '_'.
func sanitizeTenant(tenant string) string {
	if tenant == "" {
		return "default"
	}
	var b strings.Builder
	b.Grow(len(tenant))
	for _, r := range tenant {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
