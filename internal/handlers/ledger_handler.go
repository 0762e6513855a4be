package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/vportella/landfolio/internal/errors"
	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/services"
)

// LedgerHandler handles ledger-related HTTP requests.
type LedgerHandler struct {
	service services.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler instance.
func NewLedgerHandler(service services.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// LedgerResponse represents the response for the ledger listing.
type LedgerResponse struct {
	Entries []models.LedgerEntry `json:"entries"`
	Count   int                  `json:"count"`
}

// List handles GET /api/v1/ledger.
func (h *LedgerHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		if handleStoreError(c, err) {
			return
		}
		apierrors.InternalServerError(c, "Failed to list ledger entries", err)
		return
	}

	c.JSON(http.StatusOK, LedgerResponse{Entries: entries, Count: len(entries)})
}

// CreateEntry handles POST /api/v1/ledger/entries.
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	var req services.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if err := h.service.CreateEntry(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, services.ErrParcelNotFound):
			apierrors.NotFound(c, "No parcel with this property number")
		case errors.Is(err, services.ErrInvalidDate),
			errors.Is(err, services.ErrInvalidAmount):
			apierrors.BadRequest(c, err.Error(), nil)
		case handleStoreError(c, err):
		default:
			apierrors.InternalServerError(c, "Failed to append ledger entry", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}
