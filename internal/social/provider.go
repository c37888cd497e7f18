// Package social defines the identity-provider boundary for federated login:
// the three-legged authorization-code exchange and profile retrieval.
package social

import (
	"context"
	"fmt"
)

// Provider is an OAuth2 identity provider driving the code-exchange flow.
type Provider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the consent URL to redirect the browser to.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for an access token. Provider
	// rejections surface as *ProviderError; there is no retry.
	Exchange(ctx context.Context, code string) (*Token, error)

	// UserInfo fetches the user's profile using the access token.
	UserInfo(ctx context.Context, token *Token) (*Profile, error)
}

// Token is a provider access token obtained from the code exchange.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
	Scope       string
}

// Profile carries the profile fields federated provisioning needs.
type Profile struct {
	Name  string
	Email string
}

// ProviderError is a terminal failure from the identity provider. Any
// non-success status is surfaced to the caller as-is, never retried.
type ProviderError struct {
	Provider    string
	Operation   string
	Status      int
	Description string
	Err         error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s failed (status %d): %v", e.Provider, e.Operation, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s failed (status %d): %s", e.Provider, e.Operation, e.Status, e.Description)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
