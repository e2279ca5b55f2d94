package domain

// GrantType represents an OAuth 2.0 grant type.
type GrantType string

// GrantTypeClientCredentials is the only grant the Onsight NOW token endpoint issues to integrations.
const GrantTypeClientCredentials GrantType = "client_credentials"

// IsValid returns true if the grant type is a known valid value.
func (g GrantType) IsValid() bool {
	return g == GrantTypeClientCredentials
}

// String returns the string representation of the grant type.
func (g GrantType) String() string {
	return string(g)
}
