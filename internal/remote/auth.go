package remote

// Authenticator provides authentication for OCI registry operations.
type Authenticator interface {
	// Authenticate returns credentials for the given registry. Empty
	// credentials fall back to the system keychain.
	Authenticate(registry string) (username, password string, err error)
}

// DefaultAuthenticator defers to the system keychain (like Docker).
type DefaultAuthenticator struct{}

// NewDefaultAuthenticator creates a default authenticator.
func NewDefaultAuthenticator() *DefaultAuthenticator {
	return &DefaultAuthenticator{}
}

// Authenticate returns empty credentials, selecting the keychain fallback.
func (a *DefaultAuthenticator) Authenticate(registry string) (string, string, error) {
	return "", "", nil
}
