// Package dto provides data transfer objects for the file HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/courier/internal/files/domain"
)

// FileResponse represents the API response for a file. The blob reference is
// internal and never exposed.
type FileResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// FileListResponse groups the files visible to the caller
type FileListResponse struct {
	Owned  []FileResponse `json:"owned"`
	Shared []FileResponse `json:"shared"`
}

// GranteeListResponse lists the principals holding grants for a file
type GranteeListResponse struct {
	GranteeIDs []uuid.UUID `json:"grantee_ids"`
}

// AuditEventResponse represents one audit trail entry
type AuditEventResponse struct {
	ID        uuid.UUID `json:"id"`
	ActorID   uuid.UUID `json:"actor_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// ToFileResponse converts a domain EncryptedFile to a FileResponse DTO
func ToFileResponse(file *domain.EncryptedFile) FileResponse {
	return FileResponse{
		ID:        file.ID,
		OwnerID:   file.OwnerID,
		Filename:  file.Filename,
		Size:      file.Size,
		Revoked:   file.Revoked,
		CreatedAt: file.CreatedAt,
	}
}

// ToFileListResponse converts owned and shared file slices to a FileListResponse DTO
func ToFileListResponse(owned, shared []*domain.EncryptedFile) FileListResponse {
	response := FileListResponse{
		Owned:  make([]FileResponse, 0, len(owned)),
		Shared: make([]FileResponse, 0, len(shared)),
	}
	for _, file := range owned {
		response.Owned = append(response.Owned, ToFileResponse(file))
	}
	for _, file := range shared {
		response.Shared = append(response.Shared, ToFileResponse(file))
	}
	return response
}

// ToAuditEventListResponse converts domain audit events to response DTOs
func ToAuditEventListResponse(events []*domain.AuditEvent) []AuditEventResponse {
	responses := make([]AuditEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, AuditEventResponse{
			ID:        event.ID,
			ActorID:   event.ActorID,
			Action:    string(event.Action),
			CreatedAt: event.CreatedAt,
		})
	}
	return responses
}
