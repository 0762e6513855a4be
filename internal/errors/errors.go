package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vportella/landfolio/internal/logger"
	"github.com/vportella/landfolio/internal/middleware"
)

// Error code constants for standardized error responses
const (
	ErrNotFound         = "NOT_FOUND"
	ErrBadRequest       = "BAD_REQUEST"
	ErrValidation       = "VALIDATION_ERROR"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrPermissionDenied = "PERMISSION_DENIED"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrUpstream         = "UPSTREAM_ERROR"
)

// ErrorResponse is the top-level error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// NotFound returns a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrNotFound, message, nil)
}

// BadRequest returns a 400 Bad Request error response with optional details.
func BadRequest(c *gin.Context, message string, details map[string]interface{}) {
	respond(c, http.StatusBadRequest, ErrBadRequest, message, details)
}

// PermissionDenied returns a 403 response, used when the backing store
// rejects the service account.
func PermissionDenied(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, ErrPermissionDenied, message, nil)
}

// Unauthorized returns a 401 response for auth failures surfaced by the
// backing store.
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrUnauthorized, message, nil)
}

// UpstreamError returns a 502 response for remote-store outages and
// server-side failures.
func UpstreamError(c *gin.Context, message string, err error) {
	log := middleware.GetLogger(c)
	if log != nil {
		log.Error("Upstream store failure", err, logger.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	}
	respond(c, http.StatusBadGateway, ErrUpstream, message, nil)
}

// InternalServerError returns a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func InternalServerError(c *gin.Context, message string, err error) {
	log := middleware.GetLogger(c)
	if log != nil {
		log.Error("Internal server error", err, logger.Fields{
			"message": message,
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	}
	respond(c, http.StatusInternalServerError, ErrInternalServer, message, nil)
}

// ValidationError returns a 400 response with field-specific validation
// errors parsed from the validator library.
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	details := make(map[string]interface{})
	for _, err := range validationErrors {
		details[err.Field()] = formatValidationError(err)
	}
	respond(c, http.StatusBadRequest, ErrValidation, "Validation failed for one or more fields", details)
}

func respond(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	requestID := middleware.GetRequestID(c)

	if status < http.StatusInternalServerError {
		if log := middleware.GetLogger(c); log != nil {
			fields := logger.Fields{
				"code":    code,
				"message": message,
				"path":    c.Request.URL.Path,
			}
			if details != nil {
				fields["details"] = details
			}
			log.Warn("Request rejected", fields)
		}
	}

	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: requestID,
		},
	})
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "gt":
		return "Must be greater than " + err.Param()
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "lt":
		return "Must be less than " + err.Param()
	case "lte":
		return "Must be less than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	case "url":
		return "Must be a valid URL"
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
