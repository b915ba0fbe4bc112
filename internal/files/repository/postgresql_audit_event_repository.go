package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/courier/internal/database"
	"github.com/allisson/courier/internal/files/domain"

	apperrors "github.com/allisson/courier/internal/errors"
)

// PostgreSQLAuditEventRepository handles append-only audit event persistence
// for PostgreSQL. Events are inserted and listed; there is no update or
// delete path.
type PostgreSQLAuditEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditEventRepository creates a new PostgreSQLAuditEventRepository
func NewPostgreSQLAuditEventRepository(db *sql.DB) *PostgreSQLAuditEventRepository {
	return &PostgreSQLAuditEventRepository{
		db: db,
	}
}

// Create inserts a new audit event
func (r *PostgreSQLAuditEventRepository) Create(ctx context.Context, event *domain.AuditEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO audit_events (id, file_id, actor_id, action, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query,
		event.ID, event.FileID, event.ActorID, event.Action,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit event")
	}
	return nil
}

// ListForFile retrieves the audit events for a file, newest first
func (r *PostgreSQLAuditEventRepository) ListForFile(ctx context.Context, fileID uuid.UUID) ([]*domain.AuditEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, file_id, actor_id, action, created_at
			  FROM audit_events WHERE file_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := querier.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer rows.Close()

	var events []*domain.AuditEvent
	for rows.Next() {
		var event domain.AuditEvent
		if err := rows.Scan(
			&event.ID, &event.FileID, &event.ActorID, &event.Action, &event.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit events")
	}

	return events, nil
}
