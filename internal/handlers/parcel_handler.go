package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/vportella/landfolio/internal/errors"
	"github.com/vportella/landfolio/internal/middleware"
	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/services"
)

// ParcelHandler handles parcel-related HTTP requests.
type ParcelHandler struct {
	parcels services.ParcelService
	sales   services.SaleService
}

// NewParcelHandler creates a new ParcelHandler instance.
func NewParcelHandler(parcels services.ParcelService, sales services.SaleService) *ParcelHandler {
	return &ParcelHandler{
		parcels: parcels,
		sales:   sales,
	}
}

// ListRequest represents the query parameters for the listing endpoint.
type ListRequest struct {
	State  string `form:"state"`
	County string `form:"county"`
	Status string `form:"status" binding:"omitempty,oneof=sold available blocked"`
}

// ListResponse represents the response for the listing endpoint.
type ListResponse struct {
	Parcels []models.Parcel `json:"parcels"`
	Count   int             `json:"count"`
}

// List handles GET /api/v1/parcels.
func (h *ParcelHandler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	parcels, err := h.parcels.List(c.Request.Context(), services.ParcelFilter{
		State:  req.State,
		County: req.County,
		Status: req.Status,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidFilter) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		if handleStoreError(c, err) {
			return
		}
		apierrors.InternalServerError(c, "Failed to list parcels", err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Parcels: parcels, Count: len(parcels)})
}

// Create handles POST /api/v1/parcels.
// The body is a flat map of registry field names to cell values.
func (h *ParcelHandler) Create(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	if fields["property_number"] == "" {
		apierrors.BadRequest(c, "property_number is required", nil)
		return
	}

	if err := h.parcels.Create(c.Request.Context(), fields); err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownField):
			apierrors.BadRequest(c, err.Error(), nil)
		case errors.Is(err, services.ErrParcelExists):
			apierrors.BadRequest(c, err.Error(), nil)
		case handleStoreError(c, err):
		default:
			apierrors.InternalServerError(c, "Failed to register parcel", err)
		}
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Parcel created", map[string]interface{}{
			"number": fields["property_number"],
		})
	}
	c.JSON(http.StatusCreated, gin.H{"property_number": fields["property_number"]})
}

// Get handles GET /api/v1/parcels/:number.
func (h *ParcelHandler) Get(c *gin.Context) {
	parcel, err := h.parcels.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, services.ErrParcelNotFound) {
			apierrors.NotFound(c, "No parcel with this property number")
			return
		}
		if handleStoreError(c, err) {
			return
		}
		apierrors.InternalServerError(c, "Failed to load parcel", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parcel": parcel})
}

// Update handles PATCH /api/v1/parcels/:number.
// The body is a flat map of registry field names to new cell values.
func (h *ParcelHandler) Update(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	if len(fields) == 0 {
		apierrors.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := h.parcels.Update(c.Request.Context(), c.Param("number"), fields); err != nil {
		switch {
		case errors.Is(err, services.ErrParcelNotFound):
			apierrors.NotFound(c, "No parcel with this property number")
		case errors.Is(err, services.ErrUnknownField):
			apierrors.BadRequest(c, err.Error(), nil)
		case handleStoreError(c, err):
		default:
			apierrors.InternalServerError(c, "Failed to update parcel", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(fields)})
}

// Options handles GET /api/v1/parcels/options.
func (h *ParcelHandler) Options(c *gin.Context) {
	options, err := h.parcels.Options(c.Request.Context())
	if err != nil {
		if handleStoreError(c, err) {
			return
		}
		apierrors.InternalServerError(c, "Failed to load form options", err)
		return
	}

	c.JSON(http.StatusOK, options)
}

// Sale handles POST /api/v1/parcels/:number/sale.
func (h *ParcelHandler) Sale(c *gin.Context) {
	var req services.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	result, err := h.sales.RecordSale(c.Request.Context(), c.Param("number"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrParcelNotFound):
			apierrors.NotFound(c, "No parcel with this property number")
		case errors.Is(err, services.ErrInvalidDate),
			errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrInvalidCommission):
			apierrors.BadRequest(c, err.Error(), nil)
		case handleStoreError(c, err):
		default:
			apierrors.InternalServerError(c, "Failed to record sale", err)
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}
