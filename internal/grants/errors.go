package grants

import "errors"

var (
	// ErrAuthorizationRequired means no usable grant exists for the
	// tenant and there is no automated path to obtain one: the tenant
	// must go through the consent flow again.
	ErrAuthorizationRequired = errors.New("calendar authorization required")

	// ErrAuthorizationExpired means a grant exists but refreshing it
	// failed. The stored grant is left untouched; deletion is an
	// explicit operator decision via Revoke, never a side effect of a
	// failed refresh.
	ErrAuthorizationExpired = errors.New("calendar authorization expired")
)

// IsAuthError reports whether err is one of the authorization
// failures. The tool boundary collapses both into a single
// "please authorize" message for the caller.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthorizationRequired) || errors.Is(err, ErrAuthorizationExpired)
}
