// Package credential defines the access/refresh token pair and its storage
// contract. Storage implementations live under internal/adapter/outbound.
package credential

import "errors"

// Pair is the access/refresh token pair issued by the server.
// Both values are opaque bearer strings; the client never decodes them.
// A Pair is replaced atomically on refresh and cleared atomically on
// logout or terminal refresh failure.
type Pair struct {
	// Access is the short-lived bearer token attached to authenticated requests.
	Access string `json:"access"`
	// Refresh is the longer-lived token used solely to obtain a new access token.
	Refresh string `json:"refresh"`
}

// IsZero reports whether the pair holds no tokens.
func (p Pair) IsZero() bool {
	return p.Access == "" && p.Refresh == ""
}

// Store provides durable credential persistence.
// This interface is defined in the domain to avoid circular imports.
// Implementations: file (prod), sqlite (prod), in-memory (test).
//
// Operations are synchronous: a Set is visible to every subsequent Get in
// the same process, with no eventual-consistency window.
type Store interface {
	// Get retrieves the stored pair.
	// Returns ErrNoCredentials if nothing is stored.
	Get() (Pair, error)

	// Set replaces the stored pair.
	Set(pair Pair) error

	// Clear removes the stored pair. Clearing an empty store is not an error.
	Clear() error
}

// ErrNoCredentials is returned when no credential pair is stored.
var ErrNoCredentials = errors.New("no credentials stored")
