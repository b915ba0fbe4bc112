package service

import (
	"log/slog"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/courier/internal/crypto/domain"
	identityDomain "github.com/allisson/courier/internal/identity/domain"
)

// envelopeEngine implements EnvelopeEngine by orchestrating the symmetric
// cipher and the key wrapper.
type envelopeEngine struct {
	cipher  SymmetricCipher
	wrapper KeyWrapper
	logger  *slog.Logger
}

// NewEnvelopeEngine creates an EnvelopeEngine from the given primitives.
func NewEnvelopeEngine(cipher SymmetricCipher, wrapper KeyWrapper, logger *slog.Logger) EnvelopeEngine {
	return &envelopeEngine{
		cipher:  cipher,
		wrapper: wrapper,
		logger:  logger,
	}
}

// EncryptForRecipients seals plaintext once under a fresh symmetric key and
// wraps that key for every principal in {owner} ∪ recipients.
//
// The authorized set always includes the owner; a recipient list repeating
// the owner (or repeating a recipient) collapses to a single wrapped key per
// principal. If any wrap fails, no partial result is returned. The symmetric
// key is zeroed before returning and never leaves this method unwrapped.
func (e *envelopeEngine) EncryptForRecipients(
	plaintext []byte,
	owner *identityDomain.Principal,
	recipients []*identityDomain.Principal,
) ([]byte, map[uuid.UUID][]byte, error) {
	key, err := e.cipher.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	defer cryptoDomain.Zero(key)

	blob, err := e.cipher.Seal(plaintext, key)
	if err != nil {
		return nil, nil, err
	}

	// Authorized set: owner access is unconditional and cannot be omitted
	authorized := make([]*identityDomain.Principal, 0, len(recipients)+1)
	authorized = append(authorized, owner)
	for _, recipient := range recipients {
		authorized = append(authorized, recipient)
	}

	wrappedKeys := make(map[uuid.UUID][]byte, len(authorized))
	for _, principal := range authorized {
		if _, ok := wrappedKeys[principal.ID]; ok {
			continue
		}

		wrapped, err := e.wrapper.Wrap(key, principal.PublicKey)
		if err != nil {
			return nil, nil, err
		}
		wrappedKeys[principal.ID] = wrapped
	}

	return blob, wrappedKeys, nil
}

// DecryptForPrincipal unwraps the grant's key with the principal's private
// key and opens the ciphertext blob.
//
// Unwrap failures and authentication failures are logged with their real
// cause for diagnostics but collapse into a single ErrAccessDenied outward,
// so callers cannot use the failing stage as an oracle.
func (e *envelopeEngine) DecryptForPrincipal(
	blob []byte,
	wrappedKey []byte,
	principal *identityDomain.Principal,
) ([]byte, error) {
	key, err := e.wrapper.Unwrap(wrappedKey, principal.PrivateKey)
	if err != nil {
		e.logger.Warn("key unwrap failed",
			slog.String("principal_id", principal.ID.String()),
			slog.Any("error", err),
		)
		return nil, cryptoDomain.ErrAccessDenied
	}
	defer cryptoDomain.Zero(key)

	plaintext, err := e.cipher.Open(blob, key)
	if err != nil {
		e.logger.Warn("ciphertext open failed",
			slog.String("principal_id", principal.ID.String()),
			slog.Any("error", err),
		)
		return nil, cryptoDomain.ErrAccessDenied
	}

	return plaintext, nil
}
