// Package http provides HTTP handlers for file sharing operations.
package http

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/courier/internal/errors"
	"github.com/allisson/courier/internal/files/http/dto"
	"github.com/allisson/courier/internal/files/usecase"
	"github.com/allisson/courier/internal/httputil"
	identityHTTP "github.com/allisson/courier/internal/identity/http"
)

// FileHandler handles file-related HTTP requests
type FileHandler struct {
	fileUseCase    usecase.UseCase
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(fileUseCase usecase.UseCase, maxUploadBytes int64, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileUseCase:    fileUseCase,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadHandler accepts a multipart upload and encrypts it for the caller and
// the named recipients.
// POST /v1/files - multipart form with a "file" part and repeated "recipients" fields.
// Returns 201 Created with the file metadata.
func (h *FileHandler) UploadHandler(c *gin.Context) {
	principalID, ok := identityHTTP.GetPrincipalID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	// Reject oversized bodies before buffering them
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("missing file part: %w", err), h.logger)
		return
	}

	recipientIDs, err := parseRecipientIDs(c.PostFormArray("recipients"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	opened, err := fileHeader.Open()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	defer opened.Close()

	content, err := io.ReadAll(opened)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	file, err := h.fileUseCase.Upload(c.Request.Context(), usecase.UploadInput{
		OwnerID:      principalID,
		Filename:     fileHeader.Filename,
		Content:      content,
		RecipientIDs: recipientIDs,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFileResponse(file))
}

// ListHandler lists the caller's owned and shared files.
// GET /v1/files
func (h *FileHandler) ListHandler(c *gin.Context) {
	principalID, ok := identityHTTP.GetPrincipalID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	listing, err := h.fileUseCase.ListForPrincipal(c.Request.Context(), principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToFileListResponse(listing.Owned, listing.Shared))
}

// GetHandler returns metadata for one file the caller owns or holds a grant for.
// GET /v1/files/:id
func (h *FileHandler) GetHandler(c *gin.Context) {
	principalID, ok := identityHTTP.GetPrincipalID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid file ID format: must be a valid UUID"),
			h.logger)
		return
	}

	file, err := h.fileUseCase.Get(c.Request.Context(), fileID, principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToFileResponse(file))
}

// DownloadHandler decrypts a file for an authorized caller and streams the
// plaintext as an attachment.
// GET /v1/files/:id/download
func (h *FileHandler) DownloadHandler(c *gin.Context) {
	principalID, ok := identityHTTP.GetPrincipalID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid file ID format: must be a valid UUID"),
			h.logger)
		return
	}

	output, err := h.fileUseCase.Download(c.Request.Context(), fileID, principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": output.Filename})
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "application/octet-stream", output.Plaintext)
}

// RevokeHandler destroys a file's ciphertext and all grants for it.
// POST /v1/files/:id/revoke - owner only. Returns 204 No Content.
func (h *FileHandler) RevokeHandler(c *gin.Context) {
	principalID, ok := identityHTTP.GetPrincipalID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid file ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.fileUseCase.Revoke(c.Request.Context(), fileID, principalID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListGranteesHandler lists the principals holding grants for a file.
// GET /v1/files/:id/grantees - owner only.
func (h *FileHandler) ListGranteesHandler(c *gin.Context) {
	principalID, ok := identityHTTP.GetPrincipalID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid file ID format: must be a valid UUID"),
			h.logger)
		return
	}

	granteeIDs, err := h.fileUseCase.ListGrantees(c.Request.Context(), fileID, principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GranteeListResponse{GranteeIDs: granteeIDs})
}

// ListAuditEventsHandler returns a file's audit trail, newest first.
// GET /v1/files/:id/events - owner only.
func (h *FileHandler) ListAuditEventsHandler(c *gin.Context) {
	principalID, ok := identityHTTP.GetPrincipalID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid file ID format: must be a valid UUID"),
			h.logger)
		return
	}

	events, err := h.fileUseCase.ListAuditEvents(c.Request.Context(), fileID, principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditEventListResponse(events))
}

// parseRecipientIDs parses and deduplicates recipient UUIDs from form values
func parseRecipientIDs(values []string) ([]uuid.UUID, error) {
	recipientIDs := make([]uuid.UUID, 0, len(values))
	seen := make(map[uuid.UUID]struct{}, len(values))

	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("invalid recipient ID %q: must be a valid UUID", value)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		recipientIDs = append(recipientIDs, id)
	}

	return recipientIDs, nil
}
