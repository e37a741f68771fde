// Package credentials provides durable, per-tenant storage of OAuth
// grants for the calendar provider.
//
// A Grant is the stored form of a tenant's access credentials. The
// Store interface is a narrow key-value contract (tenant id in, opaque
// serialized blob out) with several backends: local files, memory,
// Redis, and Postgres. Backends can seal blobs at rest with an
// AES-256-GCM Sealer.
//
// Stores only persist and retrieve. Deciding whether a grant is usable,
// refreshing it, and serializing access per tenant is the job of the
// grants package.
package credentials
