package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/vportella/landfolio/internal/errors"
	"github.com/vportella/landfolio/internal/middleware"
	"github.com/vportella/landfolio/internal/storage"
)

// UploadHandler issues signed upload URLs. When no signer is configured
// the endpoint reports that instead of failing opaquely.
type UploadHandler struct {
	signer *storage.Signer
}

// NewUploadHandler creates a new UploadHandler instance.
func NewUploadHandler(signer *storage.Signer) *UploadHandler {
	return &UploadHandler{signer: signer}
}

// SignRequest represents the query parameters for the sign endpoint.
type SignRequest struct {
	Filename    string `form:"filename" binding:"required"`
	ContentType string `form:"content_type" binding:"required"`
}

// Sign handles GET /api/v1/uploads/sign.
func (h *UploadHandler) Sign(c *gin.Context) {
	if h.signer == nil {
		apierrors.BadRequest(c, "Object storage is not configured on this server", nil)
		return
	}

	var req SignRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	signed, err := h.signer.SignUpload(req.Filename, req.ContentType)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to sign upload URL", err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Upload URL signed", map[string]interface{}{
			"object_key":   signed.ObjectKey,
			"content_type": req.ContentType,
		})
	}
	c.JSON(http.StatusOK, signed)
}
