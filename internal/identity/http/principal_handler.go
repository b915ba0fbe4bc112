package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/courier/internal/errors"
	"github.com/allisson/courier/internal/httputil"
	"github.com/allisson/courier/internal/identity/http/dto"
	"github.com/allisson/courier/internal/identity/usecase"
)

// PrincipalHandler handles principal-related HTTP requests
type PrincipalHandler struct {
	principalUseCase usecase.UseCase
	logger           *slog.Logger
}

// NewPrincipalHandler creates a new PrincipalHandler
func NewPrincipalHandler(principalUseCase usecase.UseCase, logger *slog.Logger) *PrincipalHandler {
	return &PrincipalHandler{
		principalUseCase: principalUseCase,
		logger:           logger,
	}
}

// RegisterHandler creates a new principal with a provisioned keypair.
// POST /v1/principals - Returns 201 Created with the principal data.
func (h *PrincipalHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	principal, err := h.principalUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		TeamName: req.TeamName,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPrincipalResponse(principal))
}

// LoginHandler verifies credentials and issues a session token.
// POST /v1/login - Returns 200 OK with the token.
func (h *PrincipalHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	output, err := h.principalUseCase.Login(c.Request.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     output.Token,
		Principal: dto.ToPrincipalResponse(output.Principal),
	})
}

// MeHandler returns the authenticated principal.
// GET /v1/me - Requires authentication.
func (h *PrincipalHandler) MeHandler(c *gin.Context) {
	principalID, ok := GetPrincipalID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	principal, err := h.principalUseCase.GetByID(c.Request.Context(), principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPrincipalResponse(principal))
}

// ListRecipientsHandler lists the principals the caller may share files with.
// GET /v1/recipients - Requires authentication.
func (h *PrincipalHandler) ListRecipientsHandler(c *gin.Context) {
	principalID, ok := GetPrincipalID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	members, err := h.principalUseCase.ListTeamMembers(c.Request.Context(), principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToRecipientListResponse(members))
}
