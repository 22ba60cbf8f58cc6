// Package auth handles caregiver accounts: password credentials and the
// session tokens that identify a caller on every RPC.
package auth

import (
	"context"

	"github.com/mmynk/careshare/internal/models"
)

// Authenticator registers and verifies caregiver accounts. The password
// implementation is the only one today; the interface keeps the service
// layer unaware of how credentials are checked.
type Authenticator interface {
	// Register creates an account. The email is normalized before storage.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account matching email and credential, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential before it is hashed.
	ValidateCredential(credential string) error
}
