// Package google holds the OAuth 2.0 configuration for Google
// Workspace and the authorization-code flow used to mint the first
// grant for a tenant. Subsequent refreshes are handled by the grants
// package.
package google
