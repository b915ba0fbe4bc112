package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/courier/internal/identity/domain"
)

// PrincipalResponse represents the API response for a principal.
// The password hash and private key never leave the service.
type PrincipalResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	TeamName  string    `json:"team_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse represents the API response for a successful login
type LoginResponse struct {
	Token     string            `json:"token"`
	Principal PrincipalResponse `json:"principal"`
}

// RecipientResponse represents a selectable upload recipient
type RecipientResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// ToPrincipalResponse converts a domain Principal to a PrincipalResponse DTO
func ToPrincipalResponse(principal *domain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:        principal.ID,
		Email:     principal.Email,
		TeamName:  principal.TeamName,
		CreatedAt: principal.CreatedAt,
	}
}

// ToRecipientListResponse converts domain principals to recipient DTOs
func ToRecipientListResponse(principals []*domain.Principal) []RecipientResponse {
	recipients := make([]RecipientResponse, 0, len(principals))
	for _, principal := range principals {
		recipients = append(recipients, RecipientResponse{
			ID:    principal.ID,
			Email: principal.Email,
		})
	}
	return recipients
}
