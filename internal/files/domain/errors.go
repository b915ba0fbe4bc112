package domain

import (
	"github.com/allisson/courier/internal/errors"
)

// Domain-specific errors for file operations.
var (
	// ErrFileNotFound indicates the requested file does not exist.
	ErrFileNotFound = errors.Wrap(errors.ErrNotFound, "file not found")

	// ErrGrantNotFound indicates no grant exists for the file/principal pair.
	ErrGrantNotFound = errors.Wrap(errors.ErrNotFound, "grant not found")

	// ErrInvalidRecipient indicates an upload named a principal that does not exist.
	ErrInvalidRecipient = errors.Wrap(errors.ErrInvalidInput, "invalid recipient")

	// ErrNotFileOwner indicates the acting principal does not own the file.
	ErrNotFileOwner = errors.Wrap(errors.ErrForbidden, "not the file owner")
)
