// Package grants owns the per-tenant credential lifecycle: deciding
// whether a tenant is authorized, refreshing expired grants against
// the provider's token endpoint, and persisting the result.
//
// Acquire is the single entry point. It serializes the
// load-check-refresh-save sequence per tenant so concurrent requests
// cannot trigger duplicate refreshes, which would invalidate rotated
// refresh tokens. Different tenants proceed fully in parallel.
package grants
