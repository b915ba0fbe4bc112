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

// PostgreSQLGrantRepository handles access grant persistence for PostgreSQL
type PostgreSQLGrantRepository struct {
	db *sql.DB
}

// NewPostgreSQLGrantRepository creates a new PostgreSQLGrantRepository
func NewPostgreSQLGrantRepository(db *sql.DB) *PostgreSQLGrantRepository {
	return &PostgreSQLGrantRepository{
		db: db,
	}
}

// Create inserts a new access grant
func (r *PostgreSQLGrantRepository) Create(ctx context.Context, grant *domain.AccessGrant) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO file_grants (id, file_id, principal_id, wrapped_key, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query,
		grant.ID, grant.FileID, grant.PrincipalID, grant.WrappedKey,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create grant")
	}
	return nil
}

// Get retrieves the grant for a file/principal pair. Absence is definitive:
// it returns ErrGrantNotFound with no fallback lookup.
func (r *PostgreSQLGrantRepository) Get(ctx context.Context, fileID, principalID uuid.UUID) (*domain.AccessGrant, error) {
	var grant domain.AccessGrant
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, file_id, principal_id, wrapped_key, created_at
			  FROM file_grants WHERE file_id = $1 AND principal_id = $2`

	err := querier.QueryRowContext(ctx, query, fileID, principalID).Scan(
		&grant.ID, &grant.FileID, &grant.PrincipalID, &grant.WrappedKey, &grant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get grant")
	}

	return &grant, nil
}

// ListGranteeIDs retrieves the IDs of every principal holding a grant for a file
func (r *PostgreSQLGrantRepository) ListGranteeIDs(ctx context.Context, fileID uuid.UUID) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT principal_id FROM file_grants WHERE file_id = $1 ORDER BY created_at, id`

	rows, err := querier.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grantees")
	}
	defer rows.Close()

	var granteeIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan grantee id")
		}
		granteeIDs = append(granteeIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate grantees")
	}

	return granteeIDs, nil
}

// DeleteAllForFile removes every grant for a file. Deleting a file with no
// grants is not an error.
func (r *PostgreSQLGrantRepository) DeleteAllForFile(ctx context.Context, fileID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM file_grants WHERE file_id = $1`

	if _, err := querier.ExecContext(ctx, query, fileID); err != nil {
		return apperrors.Wrap(err, "failed to delete grants")
	}
	return nil
}
