package auth

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string // e.g. "google"
	ProviderUserID string // provider-scoped unique user identifier (sub)
	Email          string // email returned by provider
	Name           string // display name, may be empty
	EmailVerified  bool   // whether provider asserts email ownership
}
