package auth

import (
	"context"

	"github.com/nahiavl/GlobeTrek-app/internal/logging"
	"github.com/nahiavl/GlobeTrek-app/internal/store"
)

// CredentialStore is the slice of the user store the auth flow needs. Lookups
// report absence as (nil, nil); err is reserved for store faults.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*store.User, error)
	FindByID(ctx context.Context, id int64) (*store.User, error)
}

// Authenticator validates email+password credentials against the store.
type Authenticator struct {
	store  CredentialStore
	logger logging.Logger
}

func NewAuthenticator(credStore CredentialStore, logger logging.Logger) *Authenticator {
	return &Authenticator{
		store:  credStore,
		logger: logger,
	}
}

// Authenticate returns the matching user, or nil when the email is unknown or
// the password does not match. Both outcomes are indistinguishable to the
// caller so the response cannot leak which one was wrong. An error is only
// returned for store faults.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*store.User, error) {
	user, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	// Accounts provisioned via federated login have no local password yet.
	if user.Password == nil {
		return nil, nil
	}

	if err := ComparePasswordAndHash(password, *user.Password); err != nil {
		if a.logger != nil {
			a.logger.Debug(ctx, "password verification failed", "user_id", user.ID)
		}
		return nil, nil
	}

	return user, nil
}
