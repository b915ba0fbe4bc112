// Package repository provides data persistence implementations for file entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/courier/internal/database"
	"github.com/allisson/courier/internal/files/domain"

	apperrors "github.com/allisson/courier/internal/errors"
)

// PostgreSQLFileRepository handles encrypted file persistence for PostgreSQL
type PostgreSQLFileRepository struct {
	db *sql.DB
}

// NewPostgreSQLFileRepository creates a new PostgreSQLFileRepository
func NewPostgreSQLFileRepository(db *sql.DB) *PostgreSQLFileRepository {
	return &PostgreSQLFileRepository{
		db: db,
	}
}

// Create inserts a new encrypted file record
func (r *PostgreSQLFileRepository) Create(ctx context.Context, file *domain.EncryptedFile) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO files (id, owner_id, filename, blob_ref, size, revoked, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := querier.ExecContext(ctx, query,
		file.ID, file.OwnerID, file.Filename, file.BlobRef, file.Size, file.Revoked,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create file")
	}
	return nil
}

// GetByID retrieves a file by ID
func (r *PostgreSQLFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.EncryptedFile, error) {
	var file domain.EncryptedFile
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, filename, blob_ref, size, revoked, created_at
			  FROM files WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&file.ID, &file.OwnerID, &file.Filename, &file.BlobRef,
		&file.Size, &file.Revoked, &file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get file by id")
	}

	return &file, nil
}

// Update persists the mutable fields of a file record
func (r *PostgreSQLFileRepository) Update(ctx context.Context, file *domain.EncryptedFile) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE files SET blob_ref = $1, revoked = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, file.BlobRef, file.Revoked, file.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update file")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrFileNotFound
	}

	return nil
}

// ListByOwner retrieves the files a principal owns, newest first
func (r *PostgreSQLFileRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.EncryptedFile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, filename, blob_ref, size, revoked, created_at
			  FROM files WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := querier.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list files by owner")
	}
	defer rows.Close()

	return scanFiles(rows)
}

// ListSharedWith retrieves the non-revoked files a principal holds a grant
// for but does not own, newest first
func (r *PostgreSQLFileRepository) ListSharedWith(ctx context.Context, principalID uuid.UUID) ([]*domain.EncryptedFile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT f.id, f.owner_id, f.filename, f.blob_ref, f.size, f.revoked, f.created_at
			  FROM files f
			  INNER JOIN file_grants g ON g.file_id = f.id
			  WHERE g.principal_id = $1 AND f.owner_id != $1 AND f.revoked = FALSE
			  ORDER BY f.created_at DESC, f.id DESC`

	rows, err := querier.QueryContext(ctx, query, principalID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list shared files")
	}
	defer rows.Close()

	return scanFiles(rows)
}

// scanFiles reads file rows into domain models
func scanFiles(rows *sql.Rows) ([]*domain.EncryptedFile, error) {
	var files []*domain.EncryptedFile
	for rows.Next() {
		var file domain.EncryptedFile
		if err := rows.Scan(
			&file.ID, &file.OwnerID, &file.Filename, &file.BlobRef,
			&file.Size, &file.Revoked, &file.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan file")
		}
		files = append(files, &file)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate files")
	}

	return files, nil
}
