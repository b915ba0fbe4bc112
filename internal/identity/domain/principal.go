// Package domain defines the core identity domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/courier/internal/errors"
)

// Principal represents an identity that can own files and receive grants.
//
// Each principal holds one RSA keypair provisioned at registration and never
// rotated. The private key is persisted PEM-encoded and is read only at the
// moment a wrapped key must be unwrapped on the principal's behalf; it must
// never be transmitted or logged.
type Principal struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	// PublicKey is the PEM-encoded PKIX RSA public key.
	PublicKey string
	// PrivateKey is the PEM-encoded PKCS#8 RSA private key.
	PrivateKey string
	// TeamName scopes the recipient picker: only same-team principals are
	// offered as upload recipients. Empty means no team.
	TeamName  string
	CreatedAt time.Time
}

// Domain-specific errors for principal operations.
var (
	// ErrPrincipalNotFound indicates the requested principal does not exist.
	ErrPrincipalNotFound = errors.Wrap(errors.ErrNotFound, "principal not found")

	// ErrPrincipalAlreadyExists indicates a principal with the same email already exists.
	ErrPrincipalAlreadyExists = errors.Wrap(errors.ErrConflict, "principal already exists")

	// ErrInvalidCredentials indicates the email/password pair did not match.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
