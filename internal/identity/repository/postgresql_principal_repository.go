// Package repository provides data persistence implementations for principal entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/courier/internal/database"
	"github.com/allisson/courier/internal/identity/domain"

	apperrors "github.com/allisson/courier/internal/errors"
)

// PostgreSQLPrincipalRepository handles principal persistence for PostgreSQL
type PostgreSQLPrincipalRepository struct {
	db *sql.DB
}

// NewPostgreSQLPrincipalRepository creates a new PostgreSQLPrincipalRepository
func NewPostgreSQLPrincipalRepository(db *sql.DB) *PostgreSQLPrincipalRepository {
	return &PostgreSQLPrincipalRepository{
		db: db,
	}
}

// Create inserts a new principal
func (r *PostgreSQLPrincipalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO principals (id, email, password_hash, public_key, private_key, team_name, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	_, err := querier.ExecContext(ctx, query,
		principal.ID, principal.Email, principal.PasswordHash,
		principal.PublicKey, principal.PrivateKey, principal.TeamName,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrPrincipalAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create principal")
	}
	return nil
}

// GetByID retrieves a principal by ID
func (r *PostgreSQLPrincipalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	var principal domain.Principal
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, public_key, private_key, team_name, created_at
			  FROM principals WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&principal.ID, &principal.Email, &principal.PasswordHash,
		&principal.PublicKey, &principal.PrivateKey, &principal.TeamName, &principal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get principal by id")
	}

	return &principal, nil
}

// GetByEmail retrieves a principal by email
func (r *PostgreSQLPrincipalRepository) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	var principal domain.Principal
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, public_key, private_key, team_name, created_at
			  FROM principals WHERE email = $1`

	err := querier.QueryRowContext(ctx, query, email).Scan(
		&principal.ID, &principal.Email, &principal.PasswordHash,
		&principal.PublicKey, &principal.PrivateKey, &principal.TeamName, &principal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get principal by email")
	}

	return &principal, nil
}

// ListByTeam retrieves the principals sharing a team, excluding the given
// principal. Private keys are not selected; the listing feeds the recipient
// picker and never needs them.
func (r *PostgreSQLPrincipalRepository) ListByTeam(ctx context.Context, teamName string, excludeID uuid.UUID) ([]*domain.Principal, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, public_key, team_name, created_at
			  FROM principals WHERE team_name = $1 AND id != $2 ORDER BY email`

	rows, err := querier.QueryContext(ctx, query, teamName, excludeID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list principals by team")
	}
	defer rows.Close()

	var principals []*domain.Principal
	for rows.Next() {
		var principal domain.Principal
		if err := rows.Scan(
			&principal.ID, &principal.Email, &principal.PublicKey,
			&principal.TeamName, &principal.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan principal")
		}
		principals = append(principals, &principal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate principals")
	}

	return principals, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
