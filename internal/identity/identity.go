// Package identity extracts the acting user from a request. Authentication
// itself happens upstream; the proxy forwards the resolved user in a header.
package identity

import "net/http"

// Header carries the authenticated user id set by the upstream proxy.
const Header = "X-User-ID"

// DefaultUser is used when no header is present (single-tenant deployments).
const DefaultUser = "local"

// FromRequest returns the user id for the request, falling back to
// DefaultUser when the header is absent or blank.
func FromRequest(r *http.Request) string {
	if u := r.Header.Get(Header); u != "" {
		return u
	}
	return DefaultUser
}
