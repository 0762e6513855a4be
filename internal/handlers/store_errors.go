package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/vportella/landfolio/internal/errors"
	"github.com/vportella/landfolio/internal/sheets"
)

// handleStoreError maps backing-store failures onto the error envelope.
// Returns true when the error was one of the store sentinels and a
// response has been written.
func handleStoreError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, sheets.ErrPermissionDenied):
		apierrors.PermissionDenied(c, "The spreadsheet rejected the service account")
	case errors.Is(err, sheets.ErrUnauthorized):
		apierrors.Unauthorized(c, "The spreadsheet credentials were refused")
	case errors.Is(err, sheets.ErrUnavailable), errors.Is(err, sheets.ErrUpstream):
		apierrors.UpstreamError(c, "The spreadsheet is unreachable", err)
	default:
		return false
	}
	return true
}
