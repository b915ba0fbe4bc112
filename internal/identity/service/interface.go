// Package service provides identity services: keypair provisioning and
// session token handling.
package service

import (
	"github.com/google/uuid"
)

// KeypairProvisioner generates the asymmetric keypair a principal receives at
// registration. Keys are returned once and persisted by the caller; the
// provisioner retains no copy.
type KeypairProvisioner interface {
	// Provision generates a fresh keypair and returns both halves PEM-encoded.
	Provision() (publicKeyPEM, privateKeyPEM string, err error)
}

// TokenService issues and verifies the session tokens that identify the
// acting principal on every request.
type TokenService interface {
	// Issue creates a signed token for the principal.
	Issue(principalID uuid.UUID) (string, error)

	// Verify validates a token and returns the principal ID it carries.
	Verify(token string) (uuid.UUID, error)
}
